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
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/nuts-foundation/go-ldsig/crypto/hash"
)

// HashAlgorithm returns the digest algorithm alg applies to the data it signs.
// For EdDSA that's the SHA-512 Ed25519 applies internally.
func HashAlgorithm(alg jwa.SignatureAlgorithm) (hash.Algorithm, error) {
	switch alg {
	case jwa.EdDSA:
		return hash.SHA512, nil
	case jwa.RS256, jwa.ES256K:
		return hash.SHA256, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
}

// digest hashes data with the digest algorithm of alg.
func digest(alg jwa.SignatureAlgorithm, data []byte) ([]byte, crypto.Hash, error) {
	algorithm, err := HashAlgorithm(alg)
	if err != nil {
		return nil, 0, err
	}
	cryptoHash, err := algorithm.CryptoHash()
	if err != nil {
		return nil, 0, err
	}
	sum, err := algorithm.Sum(data)
	if err != nil {
		return nil, 0, err
	}
	return sum, cryptoHash, nil
}

// NewSigner returns the ByteSigner adapter for alg, bound to privateKey.
// Supported are EdDSA (ed25519), RS256 (RSA) and ES256K (secp256k1, either *secp256k1.PrivateKey or *ecdsa.PrivateKey on that curve).
// For EdDSA and RS256 any crypto.Signer holding a key of the right type can be used.
func NewSigner(privateKey interface{}, alg jwa.SignatureAlgorithm) (ByteSigner, error) {
	switch alg {
	case jwa.EdDSA:
		signer, ok := privateKey.(crypto.Signer)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires a crypto.Signer, got %T", ErrUnsupportedKey, alg, privateKey)
		}
		return NewEdDSASigner(signer)
	case jwa.RS256:
		signer, ok := privateKey.(crypto.Signer)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires a crypto.Signer, got %T", ErrUnsupportedKey, alg, privateKey)
		}
		return NewRS256Signer(signer)
	case jwa.ES256K:
		switch key := privateKey.(type) {
		case *secp256k1.PrivateKey:
			return NewES256KSigner(key)
		case *ecdsa.PrivateKey:
			converted, err := secp256k1PrivateKey(key)
			if err != nil {
				return nil, err
			}
			return NewES256KSigner(converted)
		default:
			return nil, fmt.Errorf("%w: %s requires a secp256k1 key, got %T", ErrUnsupportedKey, alg, privateKey)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
}

// NewVerifier returns the ByteVerifier adapter for alg, bound to publicKey.
func NewVerifier(publicKey interface{}, alg jwa.SignatureAlgorithm) (ByteVerifier, error) {
	switch alg {
	case jwa.EdDSA:
		key, ok := publicKey.(ed25519.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires an Ed25519 key, got %T", ErrUnsupportedKey, alg, publicKey)
		}
		return NewEdDSAVerifier(key)
	case jwa.RS256:
		key, ok := publicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires an RSA key, got %T", ErrUnsupportedKey, alg, publicKey)
		}
		return NewRS256Verifier(key)
	case jwa.ES256K:
		switch key := publicKey.(type) {
		case *secp256k1.PublicKey:
			return NewES256KVerifier(key)
		case *ecdsa.PublicKey:
			converted, err := secp256k1PublicKey(key)
			if err != nil {
				return nil, err
			}
			return NewES256KVerifier(converted)
		default:
			return nil, fmt.Errorf("%w: %s requires a secp256k1 key, got %T", ErrUnsupportedKey, alg, publicKey)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
}

// PublicKeyOf returns the public key of a private key supported by NewSigner.
func PublicKeyOf(privateKey interface{}) (interface{}, error) {
	switch key := privateKey.(type) {
	case *secp256k1.PrivateKey:
		return key.PubKey(), nil
	case crypto.Signer:
		return key.Public(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, privateKey)
	}
}
