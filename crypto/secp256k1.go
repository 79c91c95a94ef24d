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

package crypto

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secp256k1ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/lestrrat-go/jwx/v2/jwa"
)

// es256kSigner signs a SHA-256 digest with ECDSA over secp256k1 (the Koblitz curve).
// Nonces are derived per RFC 6979, so signatures are deterministic. Signatures are DER encoded.
type es256kSigner struct {
	privateKey *secp256k1.PrivateKey
}

// NewES256KSigner returns a ByteSigner for ES256K.
func NewES256KSigner(privateKey *secp256k1.PrivateKey) (ByteSigner, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("%w: missing secp256k1 private key", ErrUnsupportedKey)
	}
	return es256kSigner{privateKey: privateKey}, nil
}

func (e es256kSigner) Algorithm() jwa.SignatureAlgorithm {
	return jwa.ES256K
}

func (e es256kSigner) Sign(_ context.Context, data []byte, algorithm jwa.SignatureAlgorithm) ([]byte, error) {
	if err := CheckAlgorithm(jwa.ES256K, algorithm); err != nil {
		return nil, err
	}
	sum, _, err := digest(jwa.ES256K, data)
	if err != nil {
		return nil, err
	}
	return secp256k1ecdsa.Sign(e.privateKey, sum).Serialize(), nil
}

type es256kVerifier struct {
	publicKey *secp256k1.PublicKey
}

// NewES256KVerifier returns a ByteVerifier for ES256K, accepting DER encoded signatures.
func NewES256KVerifier(publicKey *secp256k1.PublicKey) (ByteVerifier, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("%w: missing secp256k1 public key", ErrUnsupportedKey)
	}
	return es256kVerifier{publicKey: publicKey}, nil
}

func (e es256kVerifier) Algorithm() jwa.SignatureAlgorithm {
	return jwa.ES256K
}

func (e es256kVerifier) Verify(_ context.Context, data []byte, signature []byte) (bool, error) {
	sig, err := secp256k1ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}
	sum, _, err := digest(jwa.ES256K, data)
	if err != nil {
		return false, err
	}
	return sig.Verify(sum, e.publicKey), nil
}

// secp256k1PrivateKey converts an *ecdsa.PrivateKey on the secp256k1 curve.
func secp256k1PrivateKey(key *ecdsa.PrivateKey) (*secp256k1.PrivateKey, error) {
	if key.Curve != secp256k1.S256() {
		return nil, fmt.Errorf("%w: %s requires a secp256k1 key, got curve %s", ErrUnsupportedKey, jwa.ES256K, key.Curve.Params().Name)
	}
	return secp256k1.PrivKeyFromBytes(key.D.FillBytes(make([]byte, 32))), nil
}

// secp256k1PublicKey converts an *ecdsa.PublicKey on the secp256k1 curve.
func secp256k1PublicKey(key *ecdsa.PublicKey) (*secp256k1.PublicKey, error) {
	if key.Curve != secp256k1.S256() {
		return nil, fmt.Errorf("%w: %s requires a secp256k1 key, got curve %s", ErrUnsupportedKey, jwa.ES256K, key.Curve.Params().Name)
	}
	uncompressed := make([]byte, 65)
	uncompressed[0] = 0x04
	key.X.FillBytes(uncompressed[1:33])
	key.Y.FillBytes(uncompressed[33:])
	return secp256k1.ParsePubKey(uncompressed)
}
