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
	"errors"
	"fmt"

	ssi "github.com/nuts-foundation/go-did"
	"github.com/nuts-foundation/go-ldsig/core"
	"github.com/nuts-foundation/go-ldsig/crypto"
	"github.com/nuts-foundation/go-ldsig/signature/log"
)

// LdVerifier verifies signatures of a single suite with a single key.
// It holds no mutable state: it's safe for concurrent use when its ByteVerifier is.
type LdVerifier struct {
	suite         Suite
	verifier      crypto.ByteVerifier
	canonicalizer Canonicalizer
}

// VerifierForSuite returns the LdVerifier of the suite identified by id.
// It returns ErrUnknownSuite for an unregistered suite, and crypto.ErrAlgorithmMismatch if verifier
// is bound to another algorithm than the suite requires.
func VerifierForSuite(id ssi.ProofType, verifier crypto.ByteVerifier, canonicalizer Canonicalizer) (*LdVerifier, error) {
	suite, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	if verifier == nil || canonicalizer == nil {
		return nil, errors.New("verifier and canonicalizer are required")
	}
	if err = suite.checkCapability(verifier.Algorithm()); err != nil {
		return nil, err
	}
	return &LdVerifier{suite: suite, verifier: verifier, canonicalizer: canonicalizer}, nil
}

// VerifierForKey returns the LdVerifier of the suite identified by id, verifying with publicKey through the suite's adapter.
func VerifierForKey(id ssi.ProofType, publicKey interface{}, canonicalizer Canonicalizer) (*LdVerifier, error) {
	suite, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	verifier, err := suite.KeyVerifier(publicKey)
	if err != nil {
		return nil, err
	}
	return VerifierForSuite(id, verifier, canonicalizer)
}

// Suite returns the suite the verifier is bound to.
func (v LdVerifier) Suite() Suite {
	return v.suite
}

// Verify checks the signature over the canonical form of a document.
// It returns false if the signature doesn't match, ErrSuiteMismatch if the signature was made with another suite,
// and ErrVerification if the signature can't be evaluated (e.g. invalid encoding or malformed signature bytes).
func (v LdVerifier) Verify(ctx context.Context, canonical []byte, signature LdSignature) (bool, error) {
	valid, err := v.verify(ctx, canonical, signature)
	v.count(valid, err)
	return valid, err
}

func (v LdVerifier) verify(ctx context.Context, canonical []byte, signature LdSignature) (bool, error) {
	if signature.Type != v.suite.ID {
		return false, fmt.Errorf("%w: signature type %s, verifier bound to %s", ErrSuiteMismatch, signature.Type, v.suite.ID)
	}
	raw, err := v.suite.Encoding.Decode(signature.SignatureValue)
	if err != nil {
		return false, core.WrapErrorf(ErrVerification, err, "suite %s: invalid %s signature value", v.suite.ID, v.suite.Encoding.Name())
	}
	valid, err := v.verifier.Verify(ctx, canonical, raw)
	if err != nil {
		return false, core.WrapErrorf(ErrVerification, err, "suite %s", v.suite.ID)
	}
	return valid, nil
}

// VerifyDocument verifies the signature attached to the document.
// A document without signature yields false, since that's a legitimate negative outcome.
// The signature record is removed from a copy of the document, which is then canonicalized and checked.
func (v LdVerifier) VerifyDocument(ctx context.Context, document Document) (bool, error) {
	signature, err := GetSignature(document)
	if errors.Is(err, ErrMissingSignature) {
		log.Logger().
			WithField(core.LogFieldSuite, v.suite.ID).
			Debug("Document has no signature")
		v.count(false, nil)
		return false, nil
	}
	if err != nil {
		err = core.WrapErrorf(ErrVerification, err, "suite %s", v.suite.ID)
		v.count(false, err)
		return false, err
	}
	if signature.Type != v.suite.ID {
		// check before canonicalization, which may be expensive
		return v.Verify(ctx, nil, signature)
	}
	unsigned, err := DetachSignature(document)
	if err != nil {
		v.count(false, err)
		return false, err
	}
	canonical, err := canonicalize(v.canonicalizer, v.suite.ID, unsigned)
	if err != nil {
		v.count(false, err)
		return false, err
	}
	return v.Verify(ctx, canonical, signature)
}

func (v LdVerifier) count(valid bool, err error) {
	outcome := outcomeInvalid
	switch {
	case err != nil:
		outcome = outcomeError
	case valid:
		outcome = outcomeSuccess
	}
	countVerify(v.suite.ID, outcome)
	logger := log.Logger().
		WithField(core.LogFieldSuite, v.suite.ID).
		WithField(core.LogFieldOutcome, outcome)
	if err != nil {
		logger.WithError(err).Debug("Signature verification failed")
		return
	}
	logger.Debug("Verified signature")
}
