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
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// CurveSecp256k1 is the JWK "crv" value of secp256k1 keys (RFC 8812).
const CurveSecp256k1 = "secp256k1"

// ErrInvalidKey is returned when key material can't be parsed.
var ErrInvalidKey = errors.New("invalid key")

// ParsePrivateKey parses a PEM or JWK encoded private key.
// It returns ed25519.PrivateKey, *rsa.PrivateKey, *ecdsa.PrivateKey or *secp256k1.PrivateKey.
func ParsePrivateKey(data []byte) (interface{}, error) {
	key, err := parseKey(data)
	if err != nil {
		return nil, err
	}
	switch key.(type) {
	case ed25519.PrivateKey, *rsa.PrivateKey, *ecdsa.PrivateKey, *secp256k1.PrivateKey:
		return key, nil
	}
	return nil, fmt.Errorf("%w: expected a private key, got %T", ErrInvalidKey, key)
}

// ParsePublicKey parses a PEM or JWK encoded public key.
// Private keys are accepted as well, in which case their public part is returned.
func ParsePublicKey(data []byte) (interface{}, error) {
	key, err := parseKey(data)
	if err != nil {
		return nil, err
	}
	switch k := key.(type) {
	case ed25519.PublicKey, *rsa.PublicKey, *ecdsa.PublicKey, *secp256k1.PublicKey:
		return key, nil
	case ed25519.PrivateKey, *rsa.PrivateKey, *ecdsa.PrivateKey, *secp256k1.PrivateKey:
		return PublicKeyOf(k)
	}
	return nil, fmt.Errorf("%w: expected a public key, got %T", ErrInvalidKey, key)
}

func parseKey(data []byte) (interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	isJWK := bytes.HasPrefix(trimmed, []byte("{"))
	if isJWK {
		if key, ok, err := parseSecp256k1JWK(trimmed); ok {
			return key, err
		}
	}
	var options []jwk.ParseOption
	if !isJWK {
		options = append(options, jwk.WithPEM(true))
	}
	parsed, err := jwk.ParseKey(trimmed, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	var raw interface{}
	if err = parsed.Raw(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return raw, nil
}

type secp256k1JWK struct {
	KeyType string `json:"kty"`
	Curve   string `json:"crv"`
	X       string `json:"x"`
	Y       string `json:"y"`
	D       string `json:"d,omitempty"`
}

// parseSecp256k1JWK handles EC keys on secp256k1, which jwx only supports when built with the es256k tag.
// The second return value reports whether data was a secp256k1 JWK at all.
func parseSecp256k1JWK(data []byte) (interface{}, bool, error) {
	var key secp256k1JWK
	if err := json.Unmarshal(data, &key); err != nil || key.KeyType != "EC" || key.Curve != CurveSecp256k1 {
		return nil, false, nil
	}
	if key.D != "" {
		d, err := base64.RawURLEncoding.DecodeString(key.D)
		if err != nil || len(d) != 32 {
			return nil, true, fmt.Errorf("%w: secp256k1 JWK has an invalid 'd'", ErrInvalidKey)
		}
		return secp256k1.PrivKeyFromBytes(d), true, nil
	}
	x, err := base64.RawURLEncoding.DecodeString(key.X)
	if err != nil || len(x) != 32 {
		return nil, true, fmt.Errorf("%w: secp256k1 JWK has an invalid 'x'", ErrInvalidKey)
	}
	y, err := base64.RawURLEncoding.DecodeString(key.Y)
	if err != nil || len(y) != 32 {
		return nil, true, fmt.Errorf("%w: secp256k1 JWK has an invalid 'y'", ErrInvalidKey)
	}
	pub, err := secp256k1.ParsePubKey(append(append([]byte{0x04}, x...), y...))
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return pub, true, nil
}

// Secp256k1JWK renders a secp256k1 key as JWK, the inverse of what ParsePrivateKey and ParsePublicKey accept.
func Secp256k1JWK(key interface{}) ([]byte, error) {
	var pub *secp256k1.PublicKey
	result := secp256k1JWK{KeyType: "EC", Curve: CurveSecp256k1}
	switch k := key.(type) {
	case *secp256k1.PrivateKey:
		pub = k.PubKey()
		result.D = base64.RawURLEncoding.EncodeToString(k.Serialize())
	case *secp256k1.PublicKey:
		pub = k
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, key)
	}
	uncompressed := pub.SerializeUncompressed()
	result.X = base64.RawURLEncoding.EncodeToString(uncompressed[1:33])
	result.Y = base64.RawURLEncoding.EncodeToString(uncompressed[33:])
	return json.Marshal(result)
}
