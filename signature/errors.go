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

import "errors"

// ErrUnknownSuite is returned when no signature suite is registered for an identifier.
var ErrUnknownSuite = errors.New("unknown signature suite")

// ErrSuiteMismatch is returned when the type of a signature differs from the suite the verifier is bound to.
// It is never downgraded to a negative verification result.
var ErrSuiteMismatch = errors.New("signature suite mismatch")

// ErrSigning is returned when the byte signer fails.
var ErrSigning = errors.New("signing failed")

// ErrVerification is returned when a signature can't be evaluated, e.g. because it isn't validly encoded.
// A well-formed signature that doesn't match is not an error, but a false result.
var ErrVerification = errors.New("verification failed")

// ErrCanonicalization is returned when the canonicalizer fails.
var ErrCanonicalization = errors.New("canonicalization failed")

// ErrMissingSignature is returned when a document holds no signature.
var ErrMissingSignature = errors.New("document has no signature")

// ErrAlreadySigned is returned when signing or attaching to a document that already holds a signature.
var ErrAlreadySigned = errors.New("document is already signed")

// ErrMalformedSignatureRecord is returned when the signature of a document can't be read.
var ErrMalformedSignatureRecord = errors.New("malformed signature record")
