/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package signature

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/nuts-foundation/go-ldsig/crypto"
	"github.com/nuts-foundation/go-ldsig/jsonld"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestVerifierForSuite(t *testing.T) {
	t.Run("error - unknown suite", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		_, err := VerifierForSuite("NoSuchSuite2099", crypto.NewMockByteVerifier(ctrl), jsonld.JCS{})

		assert.ErrorIs(t, err, ErrUnknownSuite)
	})
	t.Run("error - verifier bound to another algorithm", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		byteVerifier := crypto.NewMockByteVerifier(ctrl)
		byteVerifier.EXPECT().Algorithm().Return(jwa.EdDSA)

		_, err := VerifierForSuite(EcdsaSecp256k1Signature2019, byteVerifier, jsonld.JCS{})

		assert.ErrorIs(t, err, crypto.ErrAlgorithmMismatch)
	})
	t.Run("error - key doesn't fit the suite", func(t *testing.T) {
		privateKey, _ := secp256k1.GeneratePrivateKey()

		_, err := VerifierForKey(Ed25519Signature2018, privateKey.PubKey(), jsonld.JCS{})

		assert.ErrorIs(t, err, crypto.ErrUnsupportedKey)
	})
	t.Run("error - unknown suite for key", func(t *testing.T) {
		_, err := VerifierForKey("NoSuchSuite2099", ed25519.NewKeyFromSeed(make([]byte, 32)).Public(), jsonld.JCS{})

		assert.ErrorIs(t, err, ErrUnknownSuite)
	})
}

func TestLdVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	canonical := []byte("canonical")

	t.Run("ok - decoded value is passed to the byte verifier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		byteVerifier := crypto.NewMockByteVerifier(ctrl)
		byteVerifier.EXPECT().Algorithm().Return(jwa.RS256)
		byteVerifier.EXPECT().Verify(ctx, canonical, []byte{0xfb, 0xff}).Return(true, nil)
		verifier, _ := VerifierForSuite(RsaSignature2018, byteVerifier, jsonld.JCS{})

		valid, err := verifier.Verify(ctx, canonical, LdSignature{Type: RsaSignature2018, SignatureValue: "+/8="})

		require.NoError(t, err)
		assert.True(t, valid)
		assert.Equal(t, RsaSignature2018, verifier.Suite().ID)
	})
	t.Run("error - signature of another suite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		byteVerifier := crypto.NewMockByteVerifier(ctrl)
		byteVerifier.EXPECT().Algorithm().Return(jwa.RS256)
		verifier, _ := VerifierForSuite(RsaSignature2018, byteVerifier, jsonld.JCS{})

		valid, err := verifier.Verify(ctx, canonical, LdSignature{Type: Ed25519Signature2018, SignatureValue: "+/8="})

		assert.ErrorIs(t, err, ErrSuiteMismatch)
		assert.False(t, valid)
	})
	t.Run("error - invalid encoding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		byteVerifier := crypto.NewMockByteVerifier(ctrl)
		byteVerifier.EXPECT().Algorithm().Return(jwa.RS256)
		verifier, _ := VerifierForSuite(RsaSignature2018, byteVerifier, jsonld.JCS{})

		for _, value := range []string{"not base64!", "+/8", ""} {
			valid, err := verifier.Verify(ctx, canonical, LdSignature{Type: RsaSignature2018, SignatureValue: value})

			assert.ErrorIs(t, err, ErrVerification, value)
			assert.False(t, valid)
		}
	})
	t.Run("error - byte verifier fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		byteVerifier := crypto.NewMockByteVerifier(ctrl)
		cause := errors.New("connection refused")
		byteVerifier.EXPECT().Algorithm().Return(jwa.RS256)
		byteVerifier.EXPECT().Verify(ctx, canonical, gomock.Any()).Return(false, cause)
		verifier, _ := VerifierForSuite(RsaSignature2018, byteVerifier, jsonld.JCS{})

		_, err := verifier.Verify(ctx, canonical, LdSignature{Type: RsaSignature2018, SignatureValue: "+/8="})

		assert.ErrorIs(t, err, ErrVerification)
		assert.ErrorIs(t, err, cause)
	})
	t.Run("error - malformed DER signature", func(t *testing.T) {
		privateKey, _ := secp256k1.GeneratePrivateKey()
		verifier, err := VerifierForKey(EcdsaSecp256k1Signature2019, privateKey.PubKey(), jsonld.JCS{})
		require.NoError(t, err)

		valid, err := verifier.Verify(ctx, canonical, LdSignature{Type: EcdsaSecp256k1Signature2019, SignatureValue: Base64.Encode([]byte{0x30, 0x01, 0x02})})

		assert.ErrorIs(t, err, ErrVerification)
		assert.ErrorIs(t, err, crypto.ErrMalformedSignature)
		assert.False(t, valid)
	})
}

func TestLdVerifier_VerifyDocument(t *testing.T) {
	ctx := context.Background()
	privateKey := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
	signer, err := SignerForKey(Ed25519Signature2018, privateKey, jsonld.JCS{})
	require.NoError(t, err)
	verifier, err := VerifierForKey(Ed25519Signature2018, privateKey.Public(), jsonld.JCS{})
	require.NoError(t, err)

	t.Run("ok - signed with another key", func(t *testing.T) {
		otherKey := ed25519.NewKeyFromSeed([]byte("0123456789abcdef0123456789abcdef"))
		otherSigner, _ := SignerForKey(Ed25519Signature2018, otherKey, jsonld.JCS{})
		signed, _ := otherSigner.SignDocument(ctx, testDocument(), SignOptions{})

		valid, err := verifier.VerifyDocument(ctx, signed)

		require.NoError(t, err)
		assert.False(t, valid)
	})
	t.Run("ok - document isn't modified", func(t *testing.T) {
		signed, _ := signer.SignDocument(ctx, testDocument(), SignOptions{})
		expected, _ := AttachSignature(testDocument(), mustGetSignature(t, signed))

		_, err := verifier.VerifyDocument(ctx, signed)

		require.NoError(t, err)
		assert.Equal(t, expected, signed)
	})
	t.Run("ok - tampered signature record", func(t *testing.T) {
		signed, _ := signer.SignDocument(ctx, testDocument(), SignOptions{})
		record := signed[SignatureProperty].(map[string]interface{})
		value, _ := Base64.Decode(record["signatureValue"].(string))
		value[0] ^= 0x01
		record["signatureValue"] = Base64.Encode(value)

		valid, err := verifier.VerifyDocument(ctx, signed)

		require.NoError(t, err)
		assert.False(t, valid)
	})
	t.Run("ok - missing signature", func(t *testing.T) {
		before := testutil.ToFloat64(verifyCounter.WithLabelValues(string(Ed25519Signature2018), outcomeInvalid))

		valid, err := verifier.VerifyDocument(ctx, testDocument())

		require.NoError(t, err)
		assert.False(t, valid)
		assert.Equal(t, before+1, testutil.ToFloat64(verifyCounter.WithLabelValues(string(Ed25519Signature2018), outcomeInvalid)))
	})
	t.Run("error - malformed signature record", func(t *testing.T) {
		document := testDocument()
		document[SignatureProperty] = "signed!"

		valid, err := verifier.VerifyDocument(ctx, document)

		assert.ErrorIs(t, err, ErrVerification)
		assert.ErrorIs(t, err, ErrMalformedSignatureRecord)
		assert.False(t, valid)
	})
	t.Run("error - signed with another suite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		canonicalizer := NewMockCanonicalizer(ctrl)
		signed, _ := AttachSignature(testDocument(), LdSignature{Type: RsaSignature2018, SignatureValue: "+/8="})
		verifier, _ := VerifierForKey(Ed25519Signature2018, privateKey.Public(), canonicalizer)

		valid, err := verifier.VerifyDocument(ctx, signed)

		assert.ErrorIs(t, err, ErrSuiteMismatch)
		assert.False(t, valid)
	})
	t.Run("error - canonicalization fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		canonicalizer := NewMockCanonicalizer(ctrl)
		canonicalizer.EXPECT().Canonicalize(gomock.Any()).Return(nil, errors.New("invalid JSON-LD"))
		signed, _ := signer.SignDocument(ctx, testDocument(), SignOptions{})
		verifier, _ := VerifierForKey(Ed25519Signature2018, privateKey.Public(), canonicalizer)

		valid, err := verifier.VerifyDocument(ctx, signed)

		assert.ErrorIs(t, err, ErrCanonicalization)
		assert.False(t, valid)
	})
	t.Run("error - empty canonical form", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		canonicalizer := NewMockCanonicalizer(ctrl)
		canonicalizer.EXPECT().Canonicalize(gomock.Any()).Return(nil, nil)
		signed, _ := signer.SignDocument(ctx, testDocument(), SignOptions{})
		verifier, _ := VerifierForKey(Ed25519Signature2018, privateKey.Public(), canonicalizer)

		valid, err := verifier.VerifyDocument(ctx, signed)

		assert.ErrorIs(t, err, ErrCanonicalization)
		assert.False(t, valid)
	})
}

func TestSuiteIsolation(t *testing.T) {
	ctx := context.Background()
	privateKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	koblitzSigner, err := SignerForKey(EcdsaKoblitzSignature2016, privateKey, jsonld.JCS{})
	require.NoError(t, err)
	secp256k1Verifier, err := VerifierForKey(EcdsaSecp256k1Signature2019, privateKey.PubKey(), jsonld.JCS{})
	require.NoError(t, err)

	signed, err := koblitzSigner.SignDocument(ctx, testDocument(), SignOptions{})
	require.NoError(t, err)

	t.Run("same algorithm, other suite is rejected", func(t *testing.T) {
		valid, err := secp256k1Verifier.VerifyDocument(ctx, signed)

		assert.ErrorIs(t, err, ErrSuiteMismatch)
		assert.False(t, valid)
	})
	t.Run("verifier of the signing suite accepts", func(t *testing.T) {
		koblitzVerifier, _ := VerifierForKey(EcdsaKoblitzSignature2016, privateKey.PubKey(), jsonld.JCS{})

		valid, err := koblitzVerifier.VerifyDocument(ctx, signed)

		require.NoError(t, err)
		assert.True(t, valid)
	})
}

func mustGetSignature(t *testing.T, document Document) LdSignature {
	t.Helper()
	signature, err := GetSignature(document)
	require.NoError(t, err)
	return signature
}
