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

package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azkeys"
	"github.com/lestrrat-go/jwx/v2/jwa"
)

// DefaultChainCredentialType uses the default Azure credential chain (environment, workload identity, managed identity, Azure CLI).
const DefaultChainCredentialType = "default"

// ManagedIdentityCredentialType uses the managed identity of the host.
const ManagedIdentityCredentialType = "managed_identity"

// RemoteSignerName is used to identify Azure Key Vault in logs.
const RemoteSignerName = "azure-keyvault"

// ErrKeyNotFound is returned when the configured key does not exist in the Key Vault.
var ErrKeyNotFound = errors.New("key not found in Azure Key Vault")

// Config contains the config options to sign and verify with a key in Azure Key Vault.
type Config struct {
	// URL of the Key Vault, e.g. https://myvault.vault.azure.net/
	URL string `koanf:"url"`
	// Timeout specifies the Key Vault client timeout.
	Timeout time.Duration `koanf:"timeout"`
	// KeyName is the name of the Key Vault key.
	KeyName string `koanf:"keyname"`
	// KeyVersion is the version of the key. Empty means the latest version.
	KeyVersion string `koanf:"keyversion"`
	// Auth specifies how to authenticate to Key Vault.
	Auth AuthConfig `koanf:"auth"`
}

// AuthConfig contains the config options to authenticate to Key Vault.
type AuthConfig struct {
	// Type is the credential type, either DefaultChainCredentialType or ManagedIdentityCredentialType.
	Type string `koanf:"type"`
}

// DefaultConfig returns the default configuration for the Azure Key Vault signer.
func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
		Auth:    AuthConfig{Type: DefaultChainCredentialType},
	}
}

// keyVaultClient is an interface for the Azure Key Vault client, to support mocking.
type keyVaultClient interface {
	GetKey(ctx context.Context, name string, version string, options *azkeys.GetKeyOptions) (azkeys.GetKeyResponse, error)
	Sign(ctx context.Context, name string, version string, parameters azkeys.SignParameters, options *azkeys.SignOptions) (azkeys.SignResponse, error)
}

func createClient(config Config) (keyVaultClient, error) {
	if config.URL == "" {
		return nil, errors.New("azure Key Vault URL not configured")
	}
	if config.KeyName == "" {
		return nil, errors.New("azure Key Vault key name not configured")
	}
	credential, err := createCredential(config.Auth.Type)
	if err != nil {
		return nil, fmt.Errorf("unable to acquire Azure credential: %w", err)
	}
	client, err := azkeys.NewClient(config.URL, credential, &azkeys.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Telemetry: policy.TelemetryOptions{ApplicationID: "go-ldsig"},
			Retry:     policy.RetryOptions{TryTimeout: config.Timeout},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Azure Key Vault client: %w", err)
	}
	return client, nil
}

func createCredential(credentialType string) (azcore.TokenCredential, error) {
	switch credentialType {
	case DefaultChainCredentialType, "":
		return azidentity.NewDefaultAzureCredential(nil)
	case ManagedIdentityCredentialType:
		return azidentity.NewManagedIdentityCredential(nil)
	default:
		return nil, fmt.Errorf("unsupported Azure credential type: %s", credentialType)
	}
}

// signatureAlgorithm maps a JOSE algorithm to the Key Vault signature algorithm.
func signatureAlgorithm(algorithm jwa.SignatureAlgorithm) (azkeys.SignatureAlgorithm, bool) {
	switch algorithm {
	case jwa.ES256K:
		return azkeys.SignatureAlgorithmES256K, true
	case jwa.RS256:
		return azkeys.SignatureAlgorithmRS256, true
	}
	return "", false
}

func isNotFound(err error) bool {
	var responseError *azcore.ResponseError
	return errors.As(err, &responseError) && responseError.StatusCode == http.StatusNotFound
}
