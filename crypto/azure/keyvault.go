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
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azkeys"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secp256k1ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/nuts-foundation/go-ldsig/core"
	"github.com/nuts-foundation/go-ldsig/crypto"
	"github.com/nuts-foundation/go-ldsig/crypto/log"
)

// Signer signs with a Key Vault key. The SHA-256 digest is computed locally, only the digest is sent to Key Vault.
// Supported are ES256K (EC keys on P-256K) and RS256 (RSA keys).
type Signer struct {
	client    keyVaultClient
	config    Config
	algorithm jwa.SignatureAlgorithm
}

var _ crypto.ByteSigner = (*Signer)(nil)

// NewSigner creates a Key Vault client for the given config and returns a Signer bound to algorithm.
func NewSigner(config Config, algorithm jwa.SignatureAlgorithm) (*Signer, error) {
	if _, ok := signatureAlgorithm(algorithm); !ok {
		return nil, fmt.Errorf("%w: %s (Azure Key Vault)", crypto.ErrUnsupportedAlgorithm, algorithm)
	}
	client, err := createClient(config)
	if err != nil {
		return nil, err
	}
	return &Signer{client: client, config: config, algorithm: algorithm}, nil
}

// Algorithm returns the signature algorithm the key is used with.
func (s Signer) Algorithm() jwa.SignatureAlgorithm {
	return s.algorithm
}

// Sign hashes data with the digest algorithm of the signature algorithm (SHA-256 for both ES256K and RS256)
// and lets Key Vault sign the digest.
// EC signatures are returned by Key Vault as r|s and converted to DER, the format ES256K verifiers expect.
func (s Signer) Sign(ctx context.Context, data []byte, algorithm jwa.SignatureAlgorithm) ([]byte, error) {
	if err := crypto.CheckAlgorithm(s.algorithm, algorithm); err != nil {
		return nil, err
	}
	azureAlgorithm, _ := signatureAlgorithm(algorithm)
	hashAlgorithm, err := crypto.HashAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	digest, err := hashAlgorithm.Sum(data)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.config)
	defer cancel()
	response, err := s.client.Sign(ctx, s.config.KeyName, s.config.KeyVersion, azkeys.SignParameters{
		Algorithm: to.Ptr(azureAlgorithm),
		Value:     digest,
	}, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, s.config.KeyName)
		}
		return nil, fmt.Errorf("unable to sign with Azure Key Vault key '%s': %w", s.config.KeyName, err)
	}
	log.Logger().
		WithField(core.LogFieldRemoteSigner, RemoteSignerName).
		WithField(core.LogFieldKeyID, s.config.KeyName).
		Debug("Signed with Azure Key Vault key")
	if algorithm == jwa.ES256K {
		return rawToDER(response.Result)
	}
	return response.Result, nil
}

// NewVerifier fetches the public key of the configured Key Vault key and returns a local verifier for it.
func NewVerifier(ctx context.Context, config Config, algorithm jwa.SignatureAlgorithm) (crypto.ByteVerifier, error) {
	if _, ok := signatureAlgorithm(algorithm); !ok {
		return nil, fmt.Errorf("%w: %s (Azure Key Vault)", crypto.ErrUnsupportedAlgorithm, algorithm)
	}
	client, err := createClient(config)
	if err != nil {
		return nil, err
	}
	return newVerifier(ctx, client, config, algorithm)
}

func newVerifier(ctx context.Context, client keyVaultClient, config Config, algorithm jwa.SignatureAlgorithm) (crypto.ByteVerifier, error) {
	publicKey, err := getPublicKey(ctx, client, config)
	if err != nil {
		return nil, err
	}
	return crypto.NewVerifier(publicKey, algorithm)
}

func getPublicKey(ctx context.Context, client keyVaultClient, config Config) (interface{}, error) {
	ctx, cancel := withTimeout(ctx, config)
	defer cancel()
	response, err := client.GetKey(ctx, config.KeyName, config.KeyVersion, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, config.KeyName)
		}
		return nil, fmt.Errorf("unable to get Azure Key Vault key '%s': %w", config.KeyName, err)
	}
	return toPublicKey(response.Key)
}

func toPublicKey(key *azkeys.JSONWebKey) (interface{}, error) {
	if key == nil || key.Kty == nil {
		return nil, errors.New("azure Key Vault returned no key")
	}
	switch *key.Kty {
	case azkeys.KeyTypeEC, azkeys.KeyTypeECHSM:
		if key.Crv == nil || *key.Crv != azkeys.CurveNameP256K {
			return nil, fmt.Errorf("%w: only P-256K EC keys are supported", crypto.ErrUnsupportedKey)
		}
		if len(key.X) != 32 || len(key.Y) != 32 {
			return nil, fmt.Errorf("%w: invalid P-256K coordinates", crypto.ErrUnsupportedKey)
		}
		return secp256k1.ParsePubKey(append(append([]byte{0x04}, key.X...), key.Y...))
	case azkeys.KeyTypeRSA, azkeys.KeyTypeRSAHSM:
		return &rsa.PublicKey{
			N: new(big.Int).SetBytes(key.N),
			E: int(new(big.Int).SetBytes(key.E).Int64()),
		}, nil
	}
	return nil, fmt.Errorf("%w: key type %s", crypto.ErrUnsupportedKey, *key.Kty)
}

// rawToDER converts a r|s encoded secp256k1 signature to DER.
func rawToDER(signature []byte) ([]byte, error) {
	if len(signature) != 64 {
		return nil, fmt.Errorf("%w: expected 64 bytes r|s, got %d", crypto.ErrMalformedSignature, len(signature))
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow {
		return nil, fmt.Errorf("%w: r overflows the curve order", crypto.ErrMalformedSignature)
	}
	if overflow := s.SetByteSlice(signature[32:]); overflow {
		return nil, fmt.Errorf("%w: s overflows the curve order", crypto.ErrMalformedSignature)
	}
	return secp256k1ecdsa.NewSignature(&r, &s).Serialize(), nil
}

func withTimeout(ctx context.Context, config Config) (context.Context, context.CancelFunc) {
	if config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, config.Timeout)
}
