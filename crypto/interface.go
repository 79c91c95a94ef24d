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
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
)

// ErrAlgorithmMismatch is returned when a capability is asked to operate with another algorithm than the one it is bound to.
var ErrAlgorithmMismatch = errors.New("signature algorithm mismatch")

// ErrMalformedSignature is returned by a ByteVerifier when the signature bytes can't be parsed for its algorithm.
// It is not returned for a well-formed signature that does not match.
var ErrMalformedSignature = errors.New("malformed signature")

// ErrUnsupportedAlgorithm is returned when no adapter exists for the requested signature algorithm.
var ErrUnsupportedAlgorithm = errors.New("unsupported signature algorithm")

// ErrUnsupportedKey is returned when the key type can't be used with the requested signature algorithm.
var ErrUnsupportedKey = errors.New("key type not supported for signature algorithm")

// ByteSigner signs bytes with a single key, bound to a single signature algorithm.
// The caller owns the key material; implementations may keep it in memory, in a hardware wallet or behind a remote service.
// Implementations must be safe for concurrent use if the LdSigner they're bound to is shared between goroutines.
type ByteSigner interface {
	// Algorithm returns the signature algorithm this signer is bound to.
	Algorithm() jwa.SignatureAlgorithm
	// Sign signs data and returns the raw signature bytes.
	// It returns ErrAlgorithmMismatch if algorithm differs from Algorithm().
	Sign(ctx context.Context, data []byte, algorithm jwa.SignatureAlgorithm) ([]byte, error)
}

// ByteVerifier verifies a raw signature over bytes with a single public key, bound to a single signature algorithm.
type ByteVerifier interface {
	// Algorithm returns the signature algorithm this verifier is bound to.
	Algorithm() jwa.SignatureAlgorithm
	// Verify returns true if signature is a valid signature over data. It returns false (and no error) when the signature
	// doesn't match. It returns ErrMalformedSignature when the signature can't be parsed.
	Verify(ctx context.Context, data []byte, signature []byte) (bool, error)
}

// SignFunc signs data and returns the raw signature.
type SignFunc func(ctx context.Context, data []byte) ([]byte, error)

// VerifyFunc checks a raw signature over data.
type VerifyFunc func(ctx context.Context, data []byte, signature []byte) (bool, error)

// NewByteSigner turns fn into a ByteSigner bound to alg. Use it to plug in signing backends this module doesn't know about.
func NewByteSigner(alg jwa.SignatureAlgorithm, fn SignFunc) ByteSigner {
	return funcSigner{alg: alg, fn: fn}
}

// NewByteVerifier turns fn into a ByteVerifier bound to alg.
func NewByteVerifier(alg jwa.SignatureAlgorithm, fn VerifyFunc) ByteVerifier {
	return funcVerifier{alg: alg, fn: fn}
}

type funcSigner struct {
	alg jwa.SignatureAlgorithm
	fn  SignFunc
}

func (f funcSigner) Algorithm() jwa.SignatureAlgorithm {
	return f.alg
}

func (f funcSigner) Sign(ctx context.Context, data []byte, algorithm jwa.SignatureAlgorithm) ([]byte, error) {
	if err := CheckAlgorithm(f.alg, algorithm); err != nil {
		return nil, err
	}
	return f.fn(ctx, data)
}

type funcVerifier struct {
	alg jwa.SignatureAlgorithm
	fn  VerifyFunc
}

func (f funcVerifier) Algorithm() jwa.SignatureAlgorithm {
	return f.alg
}

func (f funcVerifier) Verify(ctx context.Context, data []byte, signature []byte) (bool, error) {
	return f.fn(ctx, data, signature)
}

// CheckAlgorithm returns ErrAlgorithmMismatch if a signer or verifier bound to one algorithm is asked to use another.
func CheckAlgorithm(bound jwa.SignatureAlgorithm, requested jwa.SignatureAlgorithm) error {
	if bound != requested {
		return fmt.Errorf("%w: bound to %s, requested %s", ErrAlgorithmMismatch, bound, requested)
	}
	return nil
}
