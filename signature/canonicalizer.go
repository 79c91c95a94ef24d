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
	"errors"

	ssi "github.com/nuts-foundation/go-did"
	"github.com/nuts-foundation/go-ldsig/core"
)

// Canonicalizer reduces a document to a deterministic byte string.
// The same logical document must produce the same bytes, regardless of the order of its properties.
// The document passed in never contains a signature and must not be modified.
type Canonicalizer interface {
	Canonicalize(document map[string]interface{}) ([]byte, error)
}

var errEmptyCanonicalForm = errors.New("empty canonical form")

// canonicalize runs the canonicalizer on the unsigned document.
// An empty result is refused, since its signature would cover none of the document's content.
func canonicalize(canonicalizer Canonicalizer, suite ssi.ProofType, unsigned Document) ([]byte, error) {
	canonical, err := canonicalizer.Canonicalize(unsigned)
	if err == nil && len(canonical) == 0 {
		err = errEmptyCanonicalForm
	}
	if err != nil {
		return nil, core.WrapErrorf(ErrCanonicalization, err, "suite %s", suite)
	}
	return canonical, nil
}
