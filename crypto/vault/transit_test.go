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

package vault

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	vault "github.com/hashicorp/vault/api"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/nuts-foundation/go-ldsig/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transitClient mimics the transit engine for a single ed25519 key, which can be rotated.
type transitClient struct {
	keys       map[int]ed25519.PrivateKey
	minVersion int
	requests   map[string]map[string]interface{}
	err        error
	readErr    error
	response   *vault.Secret
	tokenInfo  map[string]interface{}
}

func newTransitClient() *transitClient {
	return &transitClient{
		keys:       map[int]ed25519.PrivateKey{1: ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))},
		minVersion: 1,
		requests:   map[string]map[string]interface{}{},
		tokenInfo:  map[string]interface{}{"policies": []interface{}{"default"}},
	}
}

func (c *transitClient) rotate() {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = byte(len(c.keys))
	c.keys[len(c.keys)+1] = ed25519.NewKeyFromSeed(seed)
}

func (c *transitClient) ReadWithContext(_ context.Context, path string) (*vault.Secret, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.readErr != nil {
		return nil, c.readErr
	}
	switch path {
	case "auth/token/lookup-self":
		return &vault.Secret{Data: c.tokenInfo}, nil
	case "transit/keys/ldsig":
		return &vault.Secret{Data: map[string]interface{}{
			"type":                   "ed25519",
			"latest_version":         json.Number(strconv.Itoa(len(c.keys))),
			"min_decryption_version": json.Number(strconv.Itoa(c.minVersion)),
		}}, nil
	}
	return nil, nil
}

func (c *transitClient) WriteWithContext(_ context.Context, path string, data map[string]interface{}) (*vault.Secret, error) {
	c.requests[path] = data
	if c.err != nil {
		return nil, c.err
	}
	if c.response != nil {
		return c.response, nil
	}
	input, _ := base64.StdEncoding.DecodeString(data["input"].(string))
	switch {
	case strings.HasPrefix(path, "transit/sign/"):
		version := len(c.keys)
		if requested, ok := data["key_version"].(int); ok {
			version = requested
		}
		signature := ed25519.Sign(c.keys[version], input)
		return &vault.Secret{Data: map[string]interface{}{
			"signature": encodeSignature(signature, version),
		}}, nil
	case strings.HasPrefix(path, "transit/verify/"):
		value := data["signature"].(string)
		signature, err := decodeSignature(value)
		if err != nil {
			return nil, err
		}
		version, _ := strconv.Atoi(strings.TrimPrefix(strings.SplitN(value, ":", 3)[1], "v"))
		key, ok := c.keys[version]
		if !ok || version < c.minVersion {
			return nil, errors.New("invalid key version")
		}
		return &vault.Secret{Data: map[string]interface{}{
			"valid": ed25519.Verify(key.Public().(ed25519.PublicKey), input, signature),
		}}, nil
	}
	return nil, errors.New("unsupported path")
}

func testConfig() Config {
	config := DefaultConfig()
	config.KeyName = "ldsig"
	return config
}

func TestTransit_Sign(t *testing.T) {
	ctx := context.Background()

	t.Run("ok - signature verifies locally", func(t *testing.T) {
		client := newTransitClient()
		transit, err := newTransit(client, testConfig(), jwa.EdDSA)
		require.NoError(t, err)

		signature, err := transit.Sign(ctx, []byte("hello"), jwa.EdDSA)

		require.NoError(t, err)
		verifier, _ := crypto.NewEdDSAVerifier(client.keys[1].Public().(ed25519.PublicKey))
		valid, err := verifier.Verify(ctx, []byte("hello"), signature)
		require.NoError(t, err)
		assert.True(t, valid)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hello")), client.requests["transit/sign/ldsig"]["input"])
	})
	t.Run("ok - RS256 requests PKCS#1 v1.5 over SHA-256", func(t *testing.T) {
		client := newTransitClient()
		client.response = &vault.Secret{Data: map[string]interface{}{"signature": "vault:v2:AQID"}}
		config := testConfig()
		config.KeyVersion = 2
		transit, _ := newTransit(client, config, jwa.RS256)

		signature, err := transit.Sign(ctx, []byte("hello"), jwa.RS256)

		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, signature)
		request := client.requests["transit/sign/ldsig"]
		assert.Equal(t, "sha2-256", request["hash_algorithm"])
		assert.Equal(t, "pkcs1v15", request["signature_algorithm"])
		assert.Equal(t, 2, request["key_version"])
	})
	t.Run("error - algorithm mismatch", func(t *testing.T) {
		transit, _ := newTransit(newTransitClient(), testConfig(), jwa.EdDSA)

		_, err := transit.Sign(ctx, []byte("hello"), jwa.RS256)

		assert.ErrorIs(t, err, crypto.ErrAlgorithmMismatch)
	})
	t.Run("error - Vault returns an error", func(t *testing.T) {
		client := newTransitClient()
		client.err = errors.New("permission denied")
		transit, _ := newTransit(client, testConfig(), jwa.EdDSA)

		_, err := transit.Sign(ctx, []byte("hello"), jwa.EdDSA)

		assert.ErrorIs(t, err, ErrTransit)
		assert.EqualError(t, err, "vault transit error: unable to sign with key 'ldsig': permission denied")
	})
	t.Run("error - unexpected signature format", func(t *testing.T) {
		client := newTransitClient()
		client.response = &vault.Secret{Data: map[string]interface{}{"signature": "AQID"}}
		transit, _ := newTransit(client, testConfig(), jwa.EdDSA)

		_, err := transit.Sign(ctx, []byte("hello"), jwa.EdDSA)

		assert.ErrorIs(t, err, ErrTransit)
	})
	t.Run("error - empty response", func(t *testing.T) {
		client := newTransitClient()
		client.response = &vault.Secret{}
		transit, _ := newTransit(client, testConfig(), jwa.EdDSA)

		_, err := transit.Sign(ctx, []byte("hello"), jwa.EdDSA)

		assert.ErrorIs(t, err, ErrTransit)
	})
}

func TestTransit_Verify(t *testing.T) {
	ctx := context.Background()
	client := newTransitClient()
	transit, _ := newTransit(client, testConfig(), jwa.EdDSA)
	signature := ed25519.Sign(client.keys[1], []byte("hello"))

	t.Run("ok", func(t *testing.T) {
		valid, err := transit.Verify(ctx, []byte("hello"), signature)

		require.NoError(t, err)
		assert.True(t, valid)
		assert.True(t, strings.HasPrefix(client.requests["transit/verify/ldsig"]["signature"].(string), "vault:v1:"))
	})
	t.Run("ok - invalid signature", func(t *testing.T) {
		valid, err := transit.Verify(ctx, []byte("other"), signature)

		require.NoError(t, err)
		assert.False(t, valid)
	})
	t.Run("error - empty signature", func(t *testing.T) {
		_, err := transit.Verify(ctx, []byte("hello"), nil)

		assert.ErrorIs(t, err, crypto.ErrMalformedSignature)
	})
	t.Run("error - response without valid field", func(t *testing.T) {
		client := newTransitClient()
		client.response = &vault.Secret{Data: map[string]interface{}{}}
		transit, _ := newTransit(client, testConfig(), jwa.EdDSA)

		_, err := transit.Verify(ctx, []byte("hello"), signature)

		assert.ErrorIs(t, err, ErrTransit)
	})
	t.Run("error - key can't be read", func(t *testing.T) {
		client := newTransitClient()
		client.readErr = errors.New("permission denied")
		transit, _ := newTransit(client, testConfig(), jwa.EdDSA)

		_, err := transit.Verify(ctx, []byte("hello"), signature)

		assert.ErrorIs(t, err, ErrTransit)
		assert.EqualError(t, err, "vault transit error: unable to read key 'ldsig': permission denied")
	})
	t.Run("error - key not found", func(t *testing.T) {
		config := testConfig()
		config.KeyName = "other"
		transit, _ := newTransit(newTransitClient(), config, jwa.EdDSA)

		_, err := transit.Verify(ctx, []byte("hello"), signature)

		assert.ErrorIs(t, err, ErrTransit)
	})
}

func TestTransit_KeyRotation(t *testing.T) {
	ctx := context.Background()
	client := newTransitClient()
	transit, _ := newTransit(client, testConfig(), jwa.EdDSA)
	signedBeforeRotation, err := transit.Sign(ctx, []byte("hello"), jwa.EdDSA)
	require.NoError(t, err)
	client.rotate()
	signedAfterRotation, err := transit.Sign(ctx, []byte("hello"), jwa.EdDSA)
	require.NoError(t, err)

	t.Run("signature of the latest version verifies", func(t *testing.T) {
		valid, err := transit.Verify(ctx, []byte("hello"), signedAfterRotation)

		require.NoError(t, err)
		assert.True(t, valid)
		assert.True(t, strings.HasPrefix(client.requests["transit/verify/ldsig"]["signature"].(string), "vault:v2:"))
	})
	t.Run("signature of a previous version verifies", func(t *testing.T) {
		valid, err := transit.Verify(ctx, []byte("hello"), signedBeforeRotation)

		require.NoError(t, err)
		assert.True(t, valid)
		assert.True(t, strings.HasPrefix(client.requests["transit/verify/ldsig"]["signature"].(string), "vault:v1:"))
	})
	t.Run("versions below min_decryption_version aren't tried", func(t *testing.T) {
		client.minVersion = 2
		defer func() {
			client.minVersion = 1
		}()

		valid, err := transit.Verify(ctx, []byte("hello"), signedBeforeRotation)

		require.NoError(t, err)
		assert.False(t, valid)
	})
	t.Run("configured version only verifies its own signatures", func(t *testing.T) {
		config := testConfig()
		config.KeyVersion = 1
		pinned, _ := newTransit(client, config, jwa.EdDSA)

		valid, err := pinned.Verify(ctx, []byte("hello"), signedAfterRotation)

		require.NoError(t, err)
		assert.False(t, valid)
		assert.True(t, strings.HasPrefix(client.requests["transit/verify/ldsig"]["signature"].(string), "vault:v1:"))
	})
	t.Run("tampered data doesn't verify with any version", func(t *testing.T) {
		valid, err := transit.Verify(ctx, []byte("other"), signedAfterRotation)

		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestNewTransit(t *testing.T) {
	t.Run("error - secp256k1 is not supported by transit", func(t *testing.T) {
		_, err := newTransit(newTransitClient(), testConfig(), jwa.ES256K)

		assert.ErrorIs(t, err, crypto.ErrUnsupportedAlgorithm)
	})
	t.Run("error - missing key name", func(t *testing.T) {
		_, err := newTransit(newTransitClient(), DefaultConfig(), jwa.EdDSA)

		assert.EqualError(t, err, "vault transit key name not configured")
	})
	t.Run("default mount path", func(t *testing.T) {
		transit, err := newTransit(newTransitClient(), Config{KeyName: "k"}, jwa.EdDSA)

		require.NoError(t, err)
		assert.Equal(t, "transit/sign/k", transit.path("sign"))
	})
	t.Run("error - invalid address", func(t *testing.T) {
		config := testConfig()
		config.Address = "%zzzzz"

		_, err := NewTransit(config, jwa.EdDSA)

		assert.ErrorContains(t, err, "vault address invalid")
	})
}

func TestTransit_checkConnection(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		transit, _ := newTransit(newTransitClient(), testConfig(), jwa.EdDSA)

		assert.NoError(t, transit.checkConnection())
	})
	t.Run("error - no token information", func(t *testing.T) {
		client := newTransitClient()
		client.tokenInfo = nil
		transit, _ := newTransit(client, testConfig(), jwa.EdDSA)

		assert.EqualError(t, transit.checkConnection(), "could not read token information on auth/token/lookup-self")
	})
	t.Run("error - Vault unreachable", func(t *testing.T) {
		client := newTransitClient()
		client.err = errors.New("connection refused")
		transit, _ := newTransit(client, testConfig(), jwa.EdDSA)

		assert.ErrorContains(t, transit.checkConnection(), "unable to connect to Vault")
	})
}
