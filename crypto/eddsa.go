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
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
)

// edDSASigner signs with an Ed25519 key. Ed25519 signatures are deterministic.
type edDSASigner struct {
	signer crypto.Signer
}

// NewEdDSASigner returns a ByteSigner for EdDSA. The signer may be an ed25519.PrivateKey or any crypto.Signer
// (e.g. backed by an HSM) with an ed25519.PublicKey.
func NewEdDSASigner(signer crypto.Signer) (ByteSigner, error) {
	if _, ok := signer.Public().(ed25519.PublicKey); !ok {
		return nil, fmt.Errorf("%w: %s requires an Ed25519 key, got %T", ErrUnsupportedKey, jwa.EdDSA, signer.Public())
	}
	return edDSASigner{signer: signer}, nil
}

func (e edDSASigner) Algorithm() jwa.SignatureAlgorithm {
	return jwa.EdDSA
}

func (e edDSASigner) Sign(_ context.Context, data []byte, algorithm jwa.SignatureAlgorithm) ([]byte, error) {
	if err := CheckAlgorithm(jwa.EdDSA, algorithm); err != nil {
		return nil, err
	}
	// Ed25519 signs the message itself, crypto.Hash(0) tells the signer no pre-hashing was done.
	return e.signer.Sign(rand.Reader, data, crypto.Hash(0))
}

type edDSAVerifier struct {
	publicKey ed25519.PublicKey
}

// NewEdDSAVerifier returns a ByteVerifier for EdDSA.
func NewEdDSAVerifier(publicKey ed25519.PublicKey) (ByteVerifier, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: invalid Ed25519 public key length %d", ErrUnsupportedKey, len(publicKey))
	}
	return edDSAVerifier{publicKey: publicKey}, nil
}

func (e edDSAVerifier) Algorithm() jwa.SignatureAlgorithm {
	return jwa.EdDSA
}

func (e edDSAVerifier) Verify(_ context.Context, data []byte, signature []byte) (bool, error) {
	if len(signature) != ed25519.SignatureSize {
		return false, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, ed25519.SignatureSize, len(signature))
	}
	return ed25519.Verify(e.publicKey, data, signature), nil
}
