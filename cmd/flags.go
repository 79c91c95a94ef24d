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
	"github.com/nuts-foundation/go-ldsig/crypto/azure"
	"github.com/nuts-foundation/go-ldsig/crypto/vault"
	"github.com/nuts-foundation/go-ldsig/jsonld"
	"github.com/spf13/pflag"
)

// jsonldFlagSet returns the configuration flags for JSON-LD context loading
func jsonldFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("jsonld", pflag.ContinueOnError)

	defs := jsonld.DefaultConfig()
	flags.StringSlice("jsonld.contexts.remoteallowlist", defs.Contexts.RemoteAllowList, "In strict mode, fetching external JSON-LD contexts is not allowed except for context-URLs listed here.")

	return flags
}

// vaultFlagSet returns the configuration flags for signing with the Vault transit engine
func vaultFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("vault", pflag.ContinueOnError)

	defs := vault.DefaultConfig()
	flags.String("vault.token", defs.Token, "The Vault token. If set it overwrites the VAULT_TOKEN env var.")
	flags.String("vault.address", defs.Address, "The Vault address. If set it overwrites the VAULT_ADDR env var.")
	flags.Duration("vault.timeout", defs.Timeout, "Timeout of client calls to Vault, in Golang time.Duration string format (e.g. 5s).")
	flags.String("vault.mountpath", defs.MountPath, "Mount path of the Vault transit secrets engine.")
	flags.String("vault.keyname", defs.KeyName, "Name of the transit key to sign or verify with.")
	flags.Int("vault.keyversion", defs.KeyVersion, "Version of the transit key. When 0, the latest version is used for signing and every version Vault allows is tried for verification.")

	return flags
}

// azureFlagSet returns the configuration flags for signing with Azure Key Vault
func azureFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("azure", pflag.ContinueOnError)

	defs := azure.DefaultConfig()
	flags.String("azure.url", defs.URL, "The URL of the Azure Key Vault.")
	flags.Duration("azure.timeout", defs.Timeout, "Timeout of client calls to Azure Key Vault, in Golang time.Duration string format (e.g. 10s).")
	flags.String("azure.keyname", defs.KeyName, "Name of the Key Vault key to sign or verify with.")
	flags.String("azure.keyversion", defs.KeyVersion, "Version of the Key Vault key. When empty, the latest version is used.")
	flags.String("azure.auth.type", defs.Auth.Type, "Credential type to use when authenticating to Azure Key Vault. Options: default, managed_identity.")

	return flags
}
