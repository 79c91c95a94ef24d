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
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	vault "github.com/hashicorp/vault/api"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/nuts-foundation/go-ldsig/core"
	"github.com/nuts-foundation/go-ldsig/crypto"
	"github.com/nuts-foundation/go-ldsig/crypto/log"
)

const defaultMountPath = "transit"
const signaturePrefix = "vault:v"

// RemoteSignerName is used to identify the Vault transit engine in logs.
const RemoteSignerName = "vault-transit"

// ErrTransit is returned when the Vault transit engine fails or returns an unexpected response.
var ErrTransit = errors.New("vault transit error")

// Config contains the config options to sign and verify with a key in the Vault transit secrets engine.
type Config struct {
	// Token to authenticate to the Vault cluster.
	Token string `koanf:"token"`
	// Address of the Vault cluster
	Address string `koanf:"address"`
	// MountPath can be used to overwrite the default 'transit' mount path.
	MountPath string `koanf:"mountpath"`
	// KeyName is the name of the transit key.
	KeyName string `koanf:"keyname"`
	// KeyVersion is the version of the transit key. When 0, signing uses the latest version and verification
	// accepts a signature of any version Vault still allows verifying with.
	KeyVersion int `koanf:"keyversion"`
	// Timeout specifies the Vault client timeout.
	Timeout time.Duration `koanf:"timeout"`
}

// DefaultConfig returns a Config with the MountPath containing the default value.
func DefaultConfig() Config {
	return Config{
		MountPath: defaultMountPath,
		Timeout:   5 * time.Second,
	}
}

// logicaler is an interface which has been implemented by the test client and real vault.Logical to allow testing vault without the server.
type logicaler interface {
	ReadWithContext(ctx context.Context, path string) (*vault.Secret, error)
	WriteWithContext(ctx context.Context, path string, data map[string]interface{}) (*vault.Secret, error)
}

// Transit signs and verifies with a named key of the Vault transit engine. The key never leaves Vault.
// It implements both crypto.ByteSigner and crypto.ByteVerifier. Vault transit has no secp256k1 keys,
// so only EdDSA (ed25519 keys) and RS256 (rsa-* keys) are supported.
type Transit struct {
	client    logicaler
	config    Config
	algorithm jwa.SignatureAlgorithm
}

var _ crypto.ByteSigner = (*Transit)(nil)
var _ crypto.ByteVerifier = (*Transit)(nil)

// NewTransit creates a Vault client for the given config, checks the connection and returns a Transit bound to algorithm.
// It currently only supports token authentication which should be provided by config.Token or the VAULT_TOKEN environment variable.
func NewTransit(config Config, algorithm jwa.SignatureAlgorithm) (*Transit, error) {
	client, err := configureVaultClient(config)
	if err != nil {
		return nil, err
	}
	transit, err := newTransit(client.Logical(), config, algorithm)
	if err != nil {
		return nil, err
	}
	if err = transit.checkConnection(); err != nil {
		return nil, err
	}
	return transit, nil
}

func newTransit(client logicaler, config Config, algorithm jwa.SignatureAlgorithm) (*Transit, error) {
	if algorithm != jwa.EdDSA && algorithm != jwa.RS256 {
		return nil, fmt.Errorf("%w: %s (Vault transit)", crypto.ErrUnsupportedAlgorithm, algorithm)
	}
	if config.KeyName == "" {
		return nil, errors.New("vault transit key name not configured")
	}
	if config.MountPath == "" {
		config.MountPath = defaultMountPath
	}
	return &Transit{client: client, config: config, algorithm: algorithm}, nil
}

func configureVaultClient(cfg Config) (*vault.Client, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Timeout = cfg.Timeout
	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize Vault client: %w", err)
	}
	// The Vault client will automatically use the env var VAULT_TOKEN
	// the client.SetToken overrides this value, so only set when not empty
	if cfg.Token != "" {
		client.SetToken(cfg.Token)
	}
	if cfg.Address != "" {
		if err = client.SetAddress(cfg.Address); err != nil {
			return nil, fmt.Errorf("vault address invalid: %w", err)
		}
	}
	return client, nil
}

func (t Transit) checkConnection() error {
	// Perform a token introspection to test the connection. This should be allowed by the default vault token policy.
	log.Logger().Debug("Verifying Vault connection...")
	secret, err := t.client.ReadWithContext(context.Background(), "auth/token/lookup-self")
	if err != nil {
		return fmt.Errorf("unable to connect to Vault: unable to retrieve token status: %w", err)
	}
	if secret == nil || len(secret.Data) == 0 {
		return fmt.Errorf("could not read token information on auth/token/lookup-self")
	}
	log.Logger().Info("Connected to Vault.")
	return nil
}

// Algorithm returns the signature algorithm this transit key is used with.
func (t Transit) Algorithm() jwa.SignatureAlgorithm {
	return t.algorithm
}

// Sign lets Vault sign data and returns the raw signature, without Vault's "vault:v<version>:" prefix.
func (t Transit) Sign(ctx context.Context, data []byte, algorithm jwa.SignatureAlgorithm) ([]byte, error) {
	if err := crypto.CheckAlgorithm(t.algorithm, algorithm); err != nil {
		return nil, err
	}
	request := t.request(data)
	if t.config.KeyVersion > 0 {
		request["key_version"] = t.config.KeyVersion
	}
	secret, err := t.client.WriteWithContext(ctx, t.path("sign"), request)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to sign with key '%s': %w", ErrTransit, t.config.KeyName, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("%w: empty sign response", ErrTransit)
	}
	value, _ := secret.Data["signature"].(string)
	signature, err := decodeSignature(value)
	if err != nil {
		return nil, err
	}
	log.Logger().
		WithField(core.LogFieldRemoteSigner, RemoteSignerName).
		WithField(core.LogFieldKeyID, t.config.KeyName).
		Debug("Signed with Vault transit key")
	return signature, nil
}

// Verify lets Vault check signature over data.
// Raw signatures don't carry the key version, so with no KeyVersion configured every version from the latest
// down to the key's min_decryption_version is tried, until one accepts the signature.
func (t Transit) Verify(ctx context.Context, data []byte, signature []byte) (bool, error) {
	if len(signature) == 0 {
		return false, fmt.Errorf("%w: empty signature", crypto.ErrMalformedSignature)
	}
	if t.config.KeyVersion > 0 {
		return t.verify(ctx, data, signature, t.config.KeyVersion)
	}
	latest, minimum, err := t.keyVersions(ctx)
	if err != nil {
		return false, err
	}
	for version := latest; version >= minimum; version-- {
		valid, err := t.verify(ctx, data, signature, version)
		if err != nil || valid {
			return valid, err
		}
	}
	return false, nil
}

func (t Transit) verify(ctx context.Context, data []byte, signature []byte, version int) (bool, error) {
	request := t.request(data)
	request["signature"] = encodeSignature(signature, version)
	secret, err := t.client.WriteWithContext(ctx, t.path("verify"), request)
	if err != nil {
		return false, fmt.Errorf("%w: unable to verify with key '%s': %w", ErrTransit, t.config.KeyName, err)
	}
	if secret == nil || secret.Data == nil {
		return false, fmt.Errorf("%w: empty verify response", ErrTransit)
	}
	valid, ok := secret.Data["valid"].(bool)
	if !ok {
		return false, fmt.Errorf("%w: verify response has no 'valid' field", ErrTransit)
	}
	return valid, nil
}

// keyVersions reads the latest version of the key and the lowest version that may still verify.
func (t Transit) keyVersions(ctx context.Context) (int, int, error) {
	secret, err := t.client.ReadWithContext(ctx, t.path("keys"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: unable to read key '%s': %w", ErrTransit, t.config.KeyName, err)
	}
	if secret == nil || secret.Data == nil {
		return 0, 0, fmt.Errorf("%w: key '%s' not found", ErrTransit, t.config.KeyName)
	}
	latest, err := intValue(secret.Data["latest_version"])
	if err != nil || latest < 1 {
		return 0, 0, fmt.Errorf("%w: key '%s' has no valid latest_version", ErrTransit, t.config.KeyName)
	}
	minimum, err := intValue(secret.Data["min_decryption_version"])
	if err != nil || minimum < 1 {
		minimum = 1
	}
	return latest, minimum, nil
}

// intValue reads a number of a Vault response, which is decoded as json.Number.
func intValue(value interface{}) (int, error) {
	switch v := value.(type) {
	case json.Number:
		i, err := v.Int64()
		return int(i), err
	case int:
		return v, nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("not a number: %T", value)
}

func (t Transit) request(data []byte) map[string]interface{} {
	request := map[string]interface{}{
		"input": base64.StdEncoding.EncodeToString(data),
	}
	if t.algorithm == jwa.RS256 {
		request["hash_algorithm"] = "sha2-256"
		request["signature_algorithm"] = "pkcs1v15"
	}
	return request
}

func (t Transit) path(operation string) string {
	return fmt.Sprintf("%s/%s/%s", strings.Trim(t.config.MountPath, "/"), operation, t.config.KeyName)
}

func encodeSignature(signature []byte, version int) string {
	return fmt.Sprintf("%s%d:%s", signaturePrefix, version, base64.StdEncoding.EncodeToString(signature))
}

// decodeSignature parses Vault's "vault:v<version>:<base64>" signature format.
func decodeSignature(value string) ([]byte, error) {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) != 3 || !strings.HasPrefix(value, signaturePrefix) {
		return nil, fmt.Errorf("%w: unexpected signature format", ErrTransit)
	}
	signature, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid signature encoding: %w", ErrTransit, err)
	}
	return signature, nil
}
