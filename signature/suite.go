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
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	ssi "github.com/nuts-foundation/go-did"
	"github.com/nuts-foundation/go-ldsig/crypto"
	"github.com/nuts-foundation/go-ldsig/crypto/hash"
	"github.com/nuts-foundation/go-ldsig/jsonld"
)

const (
	// Ed25519Signature2018 signs with EdDSA over Ed25519, which hashes with SHA-512 internally.
	Ed25519Signature2018 ssi.ProofType = "Ed25519Signature2018"
	// RsaSignature2018 signs with RSASSA-PKCS1-v1_5 over SHA-256.
	RsaSignature2018 ssi.ProofType = "RsaSignature2018"
	// EcdsaKoblitzSignature2016 signs with ECDSA over secp256k1 and SHA-256.
	EcdsaKoblitzSignature2016 ssi.ProofType = "EcdsaKoblitzSignature2016"
	// EcdsaSecp256k1Signature2019 signs with ECDSA over secp256k1 and SHA-256.
	EcdsaSecp256k1Signature2019 ssi.ProofType = "EcdsaSecp256k1Signature2019"
)

// Encoding turns raw signature bytes into the text of a signature value, and back.
type Encoding interface {
	// Name returns the name of the encoding.
	Name() string
	// Encode encodes raw signature bytes.
	Encode(signature []byte) string
	// Decode decodes a signature value. It fails if value isn't validly encoded.
	Decode(value string) ([]byte, error)
}

// Base64 is the standard, padded base64 encoding (RFC 4648 section 4).
var Base64 Encoding = base64Encoding{}

type base64Encoding struct{}

func (base64Encoding) Name() string {
	return "base64"
}

func (base64Encoding) Encode(signature []byte) string {
	return base64.StdEncoding.EncodeToString(signature)
}

func (base64Encoding) Decode(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty signature value")
	}
	return base64.StdEncoding.Strict().DecodeString(value)
}

// Suite binds a signature suite identifier to the hash algorithm, signature algorithm and encoding it requires.
// Suites are immutable values; the set of suites is fixed at build time.
type Suite struct {
	// ID identifies the suite, it is the type of the signatures it produces.
	ID ssi.ProofType
	// HashAlgorithm is the hash algorithm the signature algorithm applies.
	HashAlgorithm hash.Algorithm
	// SignatureAlgorithm is the algorithm a byte signer or verifier must be bound to.
	SignatureAlgorithm jwa.SignatureAlgorithm
	// Encoding encodes the signature value.
	Encoding Encoding
	// Context is the JSON-LD context that defines the suite's vocabulary.
	Context string
}

// checkCapability returns an error if a byte signer or verifier bound to alg can't serve the suite:
// the algorithm must be the suite's, and must digest with the suite's hash algorithm.
func (s Suite) checkCapability(alg jwa.SignatureAlgorithm) error {
	if err := crypto.CheckAlgorithm(s.SignatureAlgorithm, alg); err != nil {
		return err
	}
	digest, err := crypto.HashAlgorithm(alg)
	if err != nil {
		return err
	}
	if digest != s.HashAlgorithm {
		return fmt.Errorf("%w: suite %s hashes with %s, %s with %s", crypto.ErrAlgorithmMismatch, s.ID, s.HashAlgorithm, alg, digest)
	}
	return nil
}

// KeySigner returns the byte signer adapter of this suite for a private key.
func (s Suite) KeySigner(privateKey interface{}) (crypto.ByteSigner, error) {
	return crypto.NewSigner(privateKey, s.SignatureAlgorithm)
}

// KeyVerifier returns the byte verifier adapter of this suite for a public key.
func (s Suite) KeyVerifier(publicKey interface{}) (crypto.ByteVerifier, error) {
	return crypto.NewVerifier(publicKey, s.SignatureAlgorithm)
}

// registry holds all supported suites. Order is stable, it determines the order of Suites().
var registry = []Suite{
	{
		ID:                 Ed25519Signature2018,
		HashAlgorithm:      hash.SHA512,
		SignatureAlgorithm: jwa.EdDSA,
		Encoding:           Base64,
		Context:            jsonld.SecurityV2Context,
	},
	{
		ID:                 RsaSignature2018,
		HashAlgorithm:      hash.SHA256,
		SignatureAlgorithm: jwa.RS256,
		Encoding:           Base64,
		Context:            jsonld.SecurityV2Context,
	},
	{
		ID:                 EcdsaKoblitzSignature2016,
		HashAlgorithm:      hash.SHA256,
		SignatureAlgorithm: jwa.ES256K,
		Encoding:           Base64,
		Context:            jsonld.SecurityV1Context,
	},
	{
		ID:                 EcdsaSecp256k1Signature2019,
		HashAlgorithm:      hash.SHA256,
		SignatureAlgorithm: jwa.ES256K,
		Encoding:           Base64,
		Context:            jsonld.SecurityV2Context,
	},
}

// Lookup returns the suite registered for id. It returns ErrUnknownSuite if there is none.
func Lookup(id ssi.ProofType) (Suite, error) {
	for _, suite := range registry {
		if suite.ID == id {
			return suite, nil
		}
	}
	return Suite{}, fmt.Errorf("%w: %s", ErrUnknownSuite, id)
}

// Suites returns all registered suites.
func Suites() []Suite {
	result := make([]Suite, len(registry))
	copy(result, registry)
	return result
}
