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
	"time"

	ssi "github.com/nuts-foundation/go-did"
	"github.com/nuts-foundation/go-ldsig/core"
	"github.com/nuts-foundation/go-ldsig/crypto"
	"github.com/nuts-foundation/go-ldsig/signature/log"
)

var timeFunc = time.Now

// SignOptions holds the optional fields of the signature record created by SignDocument.
type SignOptions struct {
	// Created is the time of signing. Defaults to the current time.
	Created time.Time
	// Creator references the signing key.
	Creator string
	// VerificationMethod references the key to verify the signature with.
	VerificationMethod string
	// Domain restricts the signature to an operational domain.
	Domain string
	// Nonce is a value supplied by the verifier to prevent replay.
	Nonce string
	// Overwrite replaces an existing signature instead of failing with ErrAlreadySigned.
	Overwrite bool
}

// LdSigner signs documents with a single suite and key.
// It holds no mutable state: it's safe for concurrent use when its ByteSigner is.
type LdSigner struct {
	suite         Suite
	signer        crypto.ByteSigner
	canonicalizer Canonicalizer
}

// SignerForSuite returns the LdSigner of the suite identified by id.
// It returns ErrUnknownSuite for an unregistered suite, and crypto.ErrAlgorithmMismatch if signer
// is bound to another algorithm than the suite requires.
func SignerForSuite(id ssi.ProofType, signer crypto.ByteSigner, canonicalizer Canonicalizer) (*LdSigner, error) {
	suite, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	if signer == nil || canonicalizer == nil {
		return nil, errors.New("signer and canonicalizer are required")
	}
	if err = suite.checkCapability(signer.Algorithm()); err != nil {
		return nil, err
	}
	return &LdSigner{suite: suite, signer: signer, canonicalizer: canonicalizer}, nil
}

// SignerForKey returns the LdSigner of the suite identified by id, signing with privateKey through the suite's adapter.
func SignerForKey(id ssi.ProofType, privateKey interface{}, canonicalizer Canonicalizer) (*LdSigner, error) {
	suite, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	signer, err := suite.KeySigner(privateKey)
	if err != nil {
		return nil, err
	}
	return SignerForSuite(id, signer, canonicalizer)
}

// Suite returns the suite the signer is bound to.
func (s LdSigner) Suite() Suite {
	return s.suite
}

// Sign signs the canonical form of a document and returns the encoded signature value.
// Failures of the ByteSigner are returned as ErrSigning; they're never retried.
func (s LdSigner) Sign(ctx context.Context, canonical []byte) (string, error) {
	raw, err := s.signer.Sign(ctx, canonical, s.suite.SignatureAlgorithm)
	if err != nil {
		return "", core.WrapErrorf(ErrSigning, err, "suite %s", s.suite.ID)
	}
	return s.suite.Encoding.Encode(raw), nil
}

// SignDocument canonicalizes the document, signs it and returns a copy with the signature attached.
// A document that already holds a signature is rejected with ErrAlreadySigned, unless options.Overwrite is set.
// A null signature property counts as absent.
// The input document is never modified.
func (s LdSigner) SignDocument(ctx context.Context, document Document, options SignOptions) (Document, error) {
	result, err := s.signDocument(ctx, document, options)
	if err != nil {
		countSign(s.suite.ID, outcomeError)
		log.Logger().
			WithError(err).
			WithField(core.LogFieldSuite, s.suite.ID).
			Debug("Signing document failed")
		return nil, err
	}
	countSign(s.suite.ID, outcomeSuccess)
	log.Logger().
		WithField(core.LogFieldSuite, s.suite.ID).
		WithField(core.LogFieldKeyID, options.VerificationMethod).
		Debug("Signed document")
	return result, nil
}

func (s LdSigner) signDocument(ctx context.Context, document Document, options SignOptions) (Document, error) {
	if hasSignature(document) && !options.Overwrite {
		return nil, ErrAlreadySigned
	}
	unsigned, err := DetachSignature(document)
	if err != nil {
		return nil, err
	}
	canonical, err := canonicalize(s.canonicalizer, s.suite.ID, unsigned)
	if err != nil {
		return nil, err
	}
	value, err := s.Sign(ctx, canonical)
	if err != nil {
		return nil, err
	}
	created := options.Created
	if created.IsZero() {
		created = timeFunc()
	}
	created = created.UTC().Truncate(time.Second)
	return AttachSignature(unsigned, LdSignature{
		Type:               s.suite.ID,
		Created:            &created,
		Creator:            options.Creator,
		VerificationMethod: options.VerificationMethod,
		Domain:             options.Domain,
		Nonce:              options.Nonce,
		SignatureValue:     value,
	})
}
