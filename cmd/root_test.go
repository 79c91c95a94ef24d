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

package cmd

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nuts-foundation/go-ldsig/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
  "@context": {"title": "http://schema.org/title"},
  "title": "Hello world!"
}`

func Test_rootCommand(t *testing.T) {
	t.Run("no args prints help", func(t *testing.T) {
		output, err := execute(t, nil)

		require.NoError(t, err)
		assert.Contains(t, output, "Available Commands")
	})
	t.Run("suites", func(t *testing.T) {
		output, err := execute(t, nil, "suites")

		require.NoError(t, err)
		for _, suite := range signature.Suites() {
			assert.Contains(t, output, string(suite.ID))
		}
		assert.Contains(t, output, "https://w3id.org/security/v1")
	})
	t.Run("config", func(t *testing.T) {
		output, err := execute(t, nil, "config", "--vault.keyname", "my-key")

		require.NoError(t, err)
		assert.Contains(t, output, "Current config")
		assert.Contains(t, output, "vault.keyname -> my-key")
	})
	t.Run("config - invalid verbosity", func(t *testing.T) {
		_, err := execute(t, nil, "config", "--verbosity", "chatty")

		assert.Error(t, err)
	})
}

func Test_signAndVerify(t *testing.T) {
	directory := t.TempDir()
	privateKeyFile, publicKeyFile := writeKeyPair(t, directory)
	documentFile := writeFile(t, directory, "document.json", testDocument)

	for _, canonicalizer := range []string{urdna2015Canonicalizer, jcsCanonicalizer} {
		t.Run(canonicalizer, func(t *testing.T) {
			signed, err := execute(t, nil, "sign", documentFile, privateKeyFile, "--canonicalizer", canonicalizer,
				"--verificationmethod", "did:example:123#key-1", "--nonce", "1234")
			require.NoError(t, err)
			var document map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(signed), &document))
			record := document[signature.SignatureProperty].(map[string]interface{})
			assert.Equal(t, string(signature.Ed25519Signature2018), record["type"])
			assert.Equal(t, "did:example:123#key-1", record["verificationMethod"])
			assert.Equal(t, "1234", record["nonce"])
			signedFile := writeFile(t, directory, "signed-"+canonicalizer+".json", signed)

			t.Run("valid", func(t *testing.T) {
				output, err := execute(t, nil, "verify", signedFile, publicKeyFile, "--canonicalizer", canonicalizer)

				require.NoError(t, err)
				assert.Contains(t, output, "Signature is valid")
			})
			t.Run("valid, document from stdin", func(t *testing.T) {
				output, err := execute(t, strings.NewReader(signed), "verify", "-", publicKeyFile, "--canonicalizer", canonicalizer)

				require.NoError(t, err)
				assert.Contains(t, output, "Signature is valid")
			})
			t.Run("tampered", func(t *testing.T) {
				tampered := strings.Replace(signed, "Hello world!", "Hello world?", 1)

				_, err := execute(t, strings.NewReader(tampered), "verify", "-", publicKeyFile, "--canonicalizer", canonicalizer)

				assert.ErrorIs(t, err, ErrInvalidSignature)
			})
			t.Run("already signed", func(t *testing.T) {
				_, err := execute(t, nil, "sign", signedFile, privateKeyFile, "--canonicalizer", canonicalizer)

				assert.ErrorIs(t, err, signature.ErrAlreadySigned)
			})
			t.Run("overwrite", func(t *testing.T) {
				_, err := execute(t, nil, "sign", signedFile, privateKeyFile, "--canonicalizer", canonicalizer, "--overwrite")

				assert.NoError(t, err)
			})
		})
	}
	t.Run("verify with another suite", func(t *testing.T) {
		signed, err := execute(t, nil, "sign", documentFile, privateKeyFile, "--canonicalizer", jcsCanonicalizer)
		require.NoError(t, err)

		_, err = execute(t, strings.NewReader(signed), "verify", "-", publicKeyFile, "--suite", string(signature.RsaSignature2018))

		assert.Error(t, err)
	})
	t.Run("verify unsigned document", func(t *testing.T) {
		_, err := execute(t, nil, "verify", documentFile, publicKeyFile)

		assert.ErrorIs(t, err, signature.ErrMissingSignature)
	})
}

func Test_signCommand_errors(t *testing.T) {
	directory := t.TempDir()
	privateKeyFile, _ := writeKeyPair(t, directory)
	documentFile := writeFile(t, directory, "document.json", testDocument)

	t.Run("unknown suite", func(t *testing.T) {
		_, err := execute(t, nil, "sign", documentFile, privateKeyFile, "--suite", "NoSuchSuite2099")

		assert.ErrorIs(t, err, signature.ErrUnknownSuite)
	})
	t.Run("unknown canonicalizer", func(t *testing.T) {
		_, err := execute(t, nil, "sign", documentFile, privateKeyFile, "--canonicalizer", "c14n")

		assert.EqualError(t, err, "unknown canonicalizer: c14n")
	})
	t.Run("unknown backend", func(t *testing.T) {
		_, err := execute(t, nil, "sign", documentFile, "--backend", "hsm")

		assert.EqualError(t, err, "unknown backend: hsm")
	})
	t.Run("missing key file", func(t *testing.T) {
		_, err := execute(t, nil, "sign", documentFile)

		assert.EqualError(t, err, "key file argument is required for the local backend")
	})
	t.Run("key doesn't fit the suite", func(t *testing.T) {
		_, err := execute(t, nil, "sign", documentFile, privateKeyFile, "--suite", string(signature.RsaSignature2018))

		assert.Error(t, err)
	})
	t.Run("document isn't JSON", func(t *testing.T) {
		_, err := execute(t, strings.NewReader("not JSON"), "sign", "-", privateKeyFile)

		assert.ErrorContains(t, err, "document is not a JSON object")
	})
	t.Run("document without context", func(t *testing.T) {
		_, err := execute(t, strings.NewReader(`{"hello": "world"}`), "sign", "-", privateKeyFile)

		assert.ErrorIs(t, err, signature.ErrCanonicalization)
	})
	t.Run("document doesn't exist", func(t *testing.T) {
		_, err := execute(t, nil, "sign", filepath.Join(directory, "missing.json"), privateKeyFile)

		assert.ErrorContains(t, err, "unable to read document")
	})
}

func execute(t *testing.T, stdin *strings.Reader, args ...string) (string, error) {
	t.Helper()
	// keep an ldsig.yaml in the working directory from influencing the tests
	t.Setenv("LDSIG_CONFIGFILE", filepath.Join(t.TempDir(), "ldsig.yaml"))
	buf := new(bytes.Buffer)
	command := CreateCommand()
	command.SetOut(buf)
	if stdin != nil {
		command.SetIn(stdin)
	}
	command.SetArgs(append([]string{}, args...))
	err := command.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeKeyPair(t *testing.T, directory string) (string, string) {
	t.Helper()
	privateKey := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
	privateBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	require.NoError(t, err)
	publicBytes, err := x509.MarshalPKIXPublicKey(privateKey.Public())
	require.NoError(t, err)
	privateKeyFile := writeFile(t, directory, "private.pem", string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateBytes})))
	publicKeyFile := writeFile(t, directory, "public.pem", string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicBytes})))
	return privateKeyFile, publicKeyFile
}

func writeFile(t *testing.T, directory string, name string, contents string) string {
	t.Helper()
	path := filepath.Join(directory, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}
