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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	ssi "github.com/nuts-foundation/go-did"
	"github.com/nuts-foundation/go-ldsig/core"
	"github.com/nuts-foundation/go-ldsig/crypto"
	"github.com/nuts-foundation/go-ldsig/crypto/azure"
	"github.com/nuts-foundation/go-ldsig/crypto/vault"
	"github.com/nuts-foundation/go-ldsig/jsonld"
	"github.com/nuts-foundation/go-ldsig/signature"
	"github.com/spf13/cobra"
)

var stdOutWriter io.Writer = os.Stdout

const (
	localBackend = "local"
	vaultBackend = "vault"
	azureBackend = "azure"
)

const (
	urdna2015Canonicalizer = "urdna2015"
	jcsCanonicalizer       = "jcs"
)

// ErrInvalidSignature is returned by the verify command when the document's signature doesn't verify.
var ErrInvalidSignature = errors.New("signature is invalid")

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "ldsig",
		Short:         "Signs JSON-LD documents with Linked Data Signatures and verifies them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}
}

func createSuitesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "Lists the supported signature suites",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Suite", "Hash", "Algorithm", "Encoding", "Context"})
			for _, suite := range signature.Suites() {
				t.AppendRow(table.Row{suite.ID, suite.HashAlgorithm, suite.SignatureAlgorithm, suite.Encoding.Name(), suite.Context})
			}
			style := table.StyleLight
			style.Options.DrawBorder = false
			t.SetStyle(style)
			t.Render()
		},
	}
}

func createPrintConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			cmd.Println("Current config")
			cmd.Println(cfg.core.PrintConfig())
			return nil
		},
	}
}

func createSignCommand() *cobra.Command {
	var options signature.SignOptions
	var suiteID, backend, canonicalizerName string
	cmd := &cobra.Command{
		Use:   "sign [document] [private key]",
		Short: "Signs a JSON-LD document and prints the signed document",
		Long: "Signs a JSON-LD document and prints the signed document. Use '-' to read the document from stdin. " +
			"The private key (PEM or JWK) is only required when signing with the local backend.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			suite, err := signature.Lookup(ssi.ProofType(suiteID))
			if err != nil {
				return err
			}
			document, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			canonicalizer, err := createCanonicalizer(cfg, canonicalizerName)
			if err != nil {
				return err
			}
			byteSigner, err := createByteSigner(cfg, suite, backend, args[1:])
			if err != nil {
				return err
			}
			signer, err := signature.SignerForSuite(suite.ID, byteSigner, canonicalizer)
			if err != nil {
				return err
			}
			signed, err := signer.SignDocument(cmd.Context(), document, options)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(signed, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&suiteID, "suite", string(signature.Ed25519Signature2018), "Signature suite to sign with. Run 'ldsig suites' to list the supported suites.")
	addBackendFlags(cmd, &backend, &canonicalizerName)
	cmd.Flags().StringVar(&options.Creator, "creator", "", "Sets the creator of the signature, e.g. the key ID.")
	cmd.Flags().StringVar(&options.VerificationMethod, "verificationmethod", "", "Sets the verification method of the signature, e.g. the key ID.")
	cmd.Flags().StringVar(&options.Domain, "domain", "", "Sets the domain the signature is restricted to.")
	cmd.Flags().StringVar(&options.Nonce, "nonce", "", "Sets the nonce of the signature.")
	cmd.Flags().BoolVar(&options.Overwrite, "overwrite", false, "Replaces an existing signature instead of failing.")
	return cmd
}

func createVerifyCommand() *cobra.Command {
	var suiteID, backend, canonicalizerName string
	cmd := &cobra.Command{
		Use:   "verify [document] [public key]",
		Short: "Verifies the signature of a signed JSON-LD document",
		Long: "Verifies the signature of a signed JSON-LD document. Use '-' to read the document from stdin. " +
			"The command fails when the signature is invalid. The public key (PEM or JWK) is only required when verifying with the local backend.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			document, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			if suiteID == "" {
				// take the suite from the signature itself
				record, err := signature.GetSignature(document)
				if err != nil {
					return err
				}
				suiteID = string(record.Type)
			}
			suite, err := signature.Lookup(ssi.ProofType(suiteID))
			if err != nil {
				return err
			}
			canonicalizer, err := createCanonicalizer(cfg, canonicalizerName)
			if err != nil {
				return err
			}
			byteVerifier, err := createByteVerifier(cmd.Context(), cfg, suite, backend, args[1:])
			if err != nil {
				return err
			}
			verifier, err := signature.VerifierForSuite(suite.ID, byteVerifier, canonicalizer)
			if err != nil {
				return err
			}
			valid, err := verifier.VerifyDocument(cmd.Context(), document)
			if err != nil {
				return err
			}
			if !valid {
				return ErrInvalidSignature
			}
			cmd.Println("Signature is valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&suiteID, "suite", "", "Signature suite to verify with. When empty, the suite is taken from the signature.")
	addBackendFlags(cmd, &backend, &canonicalizerName)
	return cmd
}

func addBackendFlags(cmd *cobra.Command, backend *string, canonicalizerName *string) {
	cmd.Flags().StringVar(backend, "backend", localBackend, "Where the key resides. Options: local (key file argument), vault (Vault transit engine), azure (Azure Key Vault).")
	cmd.Flags().StringVar(canonicalizerName, "canonicalizer", urdna2015Canonicalizer, "Canonicalization algorithm. Options: urdna2015, jcs.")
}

func readDocument(cmd *cobra.Command, name string) (signature.Document, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}
	var document signature.Document
	if err = json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("document is not a JSON object: %w", err)
	}
	return document, nil
}

func createCanonicalizer(cfg *settings, name string) (signature.Canonicalizer, error) {
	switch name {
	case urdna2015Canonicalizer:
		loader, err := cfg.jsonld.DocumentLoader(cfg.core.Strictmode)
		if err != nil {
			return nil, err
		}
		return jsonld.NewURDNA2015(loader), nil
	case jcsCanonicalizer:
		return jsonld.JCS{}, nil
	default:
		return nil, fmt.Errorf("unknown canonicalizer: %s", name)
	}
}

func createByteSigner(cfg *settings, suite signature.Suite, backend string, keyFile []string) (crypto.ByteSigner, error) {
	switch backend {
	case localBackend:
		data, err := readKeyFile(keyFile)
		if err != nil {
			return nil, err
		}
		privateKey, err := crypto.ParsePrivateKey(data)
		if err != nil {
			return nil, err
		}
		return suite.KeySigner(privateKey)
	case vaultBackend:
		transit, err := vault.NewTransit(cfg.vault, suite.SignatureAlgorithm)
		if err != nil {
			return nil, err
		}
		return crypto.WithRetry(transit), nil
	case azureBackend:
		signer, err := azure.NewSigner(cfg.azure, suite.SignatureAlgorithm)
		if err != nil {
			return nil, err
		}
		return crypto.WithRetry(signer), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}

func createByteVerifier(ctx context.Context, cfg *settings, suite signature.Suite, backend string, keyFile []string) (crypto.ByteVerifier, error) {
	switch backend {
	case localBackend:
		data, err := readKeyFile(keyFile)
		if err != nil {
			return nil, err
		}
		publicKey, err := crypto.ParsePublicKey(data)
		if err != nil {
			return nil, err
		}
		return suite.KeyVerifier(publicKey)
	case vaultBackend:
		return vault.NewTransit(cfg.vault, suite.SignatureAlgorithm)
	case azureBackend:
		return azure.NewVerifier(ctx, cfg.azure, suite.SignatureAlgorithm)
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}

func readKeyFile(args []string) ([]byte, error) {
	if len(args) == 0 {
		return nil, errors.New("key file argument is required for the local backend")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("unable to read key file: %w", err)
	}
	return data, nil
}

// CreateCommand creates the command with all subcommands and flags.
func CreateCommand() *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	command.AddCommand(createSuitesCommand())
	command.AddCommand(createSignCommand())
	command.AddCommand(createVerifyCommand())
	command.AddCommand(createPrintConfigCommand())
	command.PersistentFlags().AddFlagSet(core.FlagSet())
	command.PersistentFlags().AddFlagSet(jsonldFlagSet())
	command.PersistentFlags().AddFlagSet(vaultFlagSet())
	command.PersistentFlags().AddFlagSet(azureFlagSet())
	return command
}
