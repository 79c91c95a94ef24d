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

package jsonld

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/piprate/json-gold/ld"
)

// URDNA2015Algorithm is the name of the RDF Dataset Normalization algorithm.
const URDNA2015Algorithm = "URDNA2015"

// nQuadsFormat is the output format of the normalization.
const nQuadsFormat = "application/n-quads"

// URDNA2015 canonicalizes JSON-LD documents according to the URDNA2015 [RDF-DATASET-NORMALIZATION] algorithm.
// The result is a set of sorted N-Quads, which doesn't depend on key order or whitespace of the input.
type URDNA2015 struct {
	// DocumentLoader resolves the contexts the document refers to.
	DocumentLoader ld.DocumentLoader
	// SafeMode makes canonicalization fail on properties that are not defined by the document's contexts,
	// instead of silently dropping them (in which case they aren't covered by the signature).
	SafeMode bool
}

// NewURDNA2015 returns a URDNA2015 canonicalizer that resolves contexts with the given loader.
// It runs in safe mode: a property the contexts don't define fails canonicalization.
func NewURDNA2015(loader ld.DocumentLoader) URDNA2015 {
	return URDNA2015{DocumentLoader: loader, SafeMode: true}
}

// Canonicalize returns the N-Quads of the normalized document.
func (u URDNA2015) Canonicalize(document map[string]interface{}) ([]byte, error) {
	if u.DocumentLoader == nil {
		return nil, errors.New("no JSON-LD document loader configured")
	}
	// Round-trip through JSON, so the processor only sees JSON types.
	asJSON, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal the json-ld document: %w", err)
	}
	var input map[string]interface{}
	if err = json.Unmarshal(asJSON, &input); err != nil {
		return nil, err
	}
	proc := ld.NewJsonLdProcessor()

	normalizeOptions := ld.NewJsonLdOptions("")
	normalizeOptions.DocumentLoader = u.DocumentLoader
	normalizeOptions.Format = nQuadsFormat
	normalizeOptions.Algorithm = URDNA2015Algorithm
	normalizeOptions.SafeMode = u.SafeMode

	result, err := proc.Normalize(input, normalizeOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to normalize the json-ld document: %w", err)
	}
	nQuads, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected normalization result (%T)", result)
	}
	return []byte(nQuads), nil
}

// JCS canonicalizes plain JSON documents according to the JSON Canonicalization Scheme (RFC 8785).
// Unlike URDNA2015 it needs no contexts, every property of the document is covered.
type JCS struct{}

// Canonicalize returns the RFC 8785 serialization of the document.
func (JCS) Canonicalize(document map[string]interface{}) ([]byte, error) {
	asJSON, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal the json document: %w", err)
	}
	result, err := jsoncanonicalizer.Transform(asJSON)
	if err != nil {
		return nil, fmt.Errorf("unable to canonicalize the json document: %w", err)
	}
	return result, nil
}
