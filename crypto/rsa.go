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
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
)

// rs256Signer signs with RSASSA-PKCS1-v1_5 over a SHA-256 digest.
type rs256Signer struct {
	signer crypto.Signer
}

// NewRS256Signer returns a ByteSigner for RS256. The signer may be a *rsa.PrivateKey or any crypto.Signer with a *rsa.PublicKey.
func NewRS256Signer(signer crypto.Signer) (ByteSigner, error) {
	if _, ok := signer.Public().(*rsa.PublicKey); !ok {
		return nil, fmt.Errorf("%w: %s requires an RSA key, got %T", ErrUnsupportedKey, jwa.RS256, signer.Public())
	}
	return rs256Signer{signer: signer}, nil
}

func (r rs256Signer) Algorithm() jwa.SignatureAlgorithm {
	return jwa.RS256
}

func (r rs256Signer) Sign(_ context.Context, data []byte, algorithm jwa.SignatureAlgorithm) ([]byte, error) {
	if err := CheckAlgorithm(jwa.RS256, algorithm); err != nil {
		return nil, err
	}
	sum, cryptoHash, err := digest(jwa.RS256, data)
	if err != nil {
		return nil, err
	}
	return r.signer.Sign(rand.Reader, sum, cryptoHash)
}

type rs256Verifier struct {
	publicKey *rsa.PublicKey
}

// NewRS256Verifier returns a ByteVerifier for RS256.
func NewRS256Verifier(publicKey *rsa.PublicKey) (ByteVerifier, error) {
	if publicKey == nil || publicKey.N == nil {
		return nil, fmt.Errorf("%w: missing RSA public key", ErrUnsupportedKey)
	}
	return rs256Verifier{publicKey: publicKey}, nil
}

func (r rs256Verifier) Algorithm() jwa.SignatureAlgorithm {
	return jwa.RS256
}

func (r rs256Verifier) Verify(_ context.Context, data []byte, signature []byte) (bool, error) {
	// PKCS#1 v1.5 signatures are exactly as long as the modulus
	if len(signature) != r.publicKey.Size() {
		return false, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, r.publicKey.Size(), len(signature))
	}
	sum, cryptoHash, err := digest(jwa.RS256, data)
	if err != nil {
		return false, err
	}
	return rsa.VerifyPKCS1v15(r.publicKey, cryptoHash, sum, signature) == nil, nil
}
