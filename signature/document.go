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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/copystructure"
	ssi "github.com/nuts-foundation/go-did"
	"github.com/nuts-foundation/go-ldsig/core"
)

// SignatureProperty is the document property holding the signature.
const SignatureProperty = "signature"

// LdSignature is the signature record attached to a document.
type LdSignature struct {
	// Type is the identifier of the suite that produced the signature.
	Type ssi.ProofType `json:"type"`
	// Created is the time of signing. It's informational and not covered by the signature.
	Created *time.Time `json:"created,omitempty"`
	// Creator references the signing key.
	Creator string `json:"creator,omitempty"`
	// VerificationMethod references the key to verify the signature with.
	VerificationMethod string `json:"verificationMethod,omitempty"`
	// Domain restricts the signature to an operational domain.
	Domain string `json:"domain,omitempty"`
	// Nonce is a value supplied by the verifier to prevent replay.
	Nonce string `json:"nonce,omitempty"`
	// SignatureValue holds the encoded signature.
	SignatureValue string `json:"signatureValue"`
}

// toMap renders the record as it's attached to a document.
func (s LdSignature) toMap() map[string]interface{} {
	result := map[string]interface{}{
		"type":           string(s.Type),
		"signatureValue": s.SignatureValue,
	}
	if s.Created != nil {
		result["created"] = s.Created.UTC().Format(time.RFC3339)
	}
	optional := map[string]string{
		"creator":            s.Creator,
		"verificationMethod": s.VerificationMethod,
		"domain":             s.Domain,
		"nonce":              s.Nonce,
	}
	for key, value := range optional {
		if value != "" {
			result[key] = value
		}
	}
	return result
}

// Document is a structured (JSON) document that may carry a signature.
type Document map[string]interface{}

// GetSignature returns the signature record of the document.
// It returns ErrMissingSignature if there is none, and ErrMalformedSignatureRecord if it can't be read.
func GetSignature(document Document) (LdSignature, error) {
	if !hasSignature(document) {
		return LdSignature{}, ErrMissingSignature
	}
	raw := document[SignatureProperty]
	if _, isObject := raw.(map[string]interface{}); !isObject {
		return LdSignature{}, core.WrapError(ErrMalformedSignatureRecord, fmt.Errorf("expected an object, got %T", raw))
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return LdSignature{}, core.WrapError(ErrMalformedSignatureRecord, err)
	}
	var result LdSignature
	if err = json.Unmarshal(asJSON, &result); err != nil {
		return LdSignature{}, core.WrapError(ErrMalformedSignatureRecord, err)
	}
	if result.Type == "" {
		return LdSignature{}, core.WrapError(ErrMalformedSignatureRecord, errors.New("missing type"))
	}
	return result, nil
}

// AttachSignature returns a copy of the document with the signature record attached.
// It returns ErrAlreadySigned if the document already holds a signature; the input is never modified.
// A null signature property is replaced.
func AttachSignature(document Document, signature LdSignature) (Document, error) {
	if hasSignature(document) {
		return nil, ErrAlreadySigned
	}
	result, err := copyDocument(document)
	if err != nil {
		return nil, err
	}
	result[SignatureProperty] = signature.toMap()
	return result, nil
}

// DetachSignature returns a copy of the document without its signature record.
// A document without signature yields an equal copy; the input is never modified.
func DetachSignature(document Document) (Document, error) {
	result, err := copyDocument(document)
	if err != nil {
		return nil, err
	}
	delete(result, SignatureProperty)
	return result, nil
}

// hasSignature reports whether the document holds a signature property that isn't null.
func hasSignature(document Document) bool {
	raw, ok := document[SignatureProperty]
	return ok && raw != nil
}

func copyDocument(document Document) (Document, error) {
	if document == nil {
		return Document{}, nil
	}
	copied, err := copystructure.Copy(map[string]interface{}(document))
	if err != nil {
		return nil, fmt.Errorf("unable to copy document: %w", err)
	}
	return copied.(map[string]interface{}), nil
}
