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
	"github.com/nuts-foundation/go-ldsig/core"
	"github.com/nuts-foundation/go-ldsig/crypto/azure"
	"github.com/nuts-foundation/go-ldsig/crypto/vault"
	"github.com/nuts-foundation/go-ldsig/jsonld"
	"github.com/spf13/cobra"
)

// settings holds the global config and the config sections of the modules.
type settings struct {
	core   *core.Config
	jsonld jsonld.Config
	vault  vault.Config
	azure  azure.Config
}

// loadSettings loads the config using the flags of the given command.
// Sections that aren't configured keep their defaults.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg := core.NewConfig()
	if err := cfg.Load(cmd.Flags()); err != nil {
		return nil, err
	}
	result := &settings{
		core:   cfg,
		jsonld: jsonld.DefaultConfig(),
		vault:  vault.DefaultConfig(),
		azure:  azure.DefaultConfig(),
	}
	if err := cfg.Unmarshal("jsonld", &result.jsonld); err != nil {
		return nil, err
	}
	if err := cfg.Unmarshal("vault", &result.vault); err != nil {
		return nil, err
	}
	if err := cfg.Unmarshal("azure", &result.azure); err != nil {
		return nil, err
	}
	return result, nil
}
