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

package hash

import (
	"crypto"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// SHA256HashSize holds the size of a sha256 hash in bytes.
const SHA256HashSize = 32

// SHA256Hash is a SHA256 Hash over some bytes
type SHA256Hash [SHA256HashSize]byte

// SHA256Sum creates a sha256 hash from the given bytes
func SHA256Sum(data []byte) SHA256Hash {
	return sha256.Sum256(data)
}

// String returns the SHA256Hash as a hexidecimal string.
func (h SHA256Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Slice returns the Hash as a slice. It does not copy the array.
func (h SHA256Hash) Slice() []byte {
	return h[:]
}

// Algorithm is the name of a message digest algorithm, as used in signature suite descriptions.
type Algorithm string

const (
	// SHA256 is the SHA-256 message digest.
	SHA256 Algorithm = "SHA-256"
	// SHA512 is the SHA-512 message digest.
	SHA512 Algorithm = "SHA-512"
)

// CryptoHash returns the crypto.Hash for the algorithm.
func (a Algorithm) CryptoHash() (crypto.Hash, error) {
	switch a {
	case SHA256:
		return crypto.SHA256, nil
	case SHA512:
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("unsupported hash algorithm: %s", a)
	}
}

// Sum returns the digest of data.
func (a Algorithm) Sum(data []byte) ([]byte, error) {
	switch a {
	case SHA256:
		return SHA256Sum(data).Slice(), nil
	case SHA512:
		sum := sha512.Sum512(data)
		return sum[:], nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", a)
	}
}
