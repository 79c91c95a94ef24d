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

package jsonld

import "github.com/piprate/json-gold/ld"

// Config holds the config for JSON-LD processing.
type Config struct {
	// Contexts contains the configuration for the JSON-LD Contexts
	Contexts ContextsConfig `koanf:"contexts"`
}

// DefaultConfig returns a fresh Config filled with default values
func DefaultConfig() Config {
	return Config{
		Contexts: DefaultContextConfig(),
	}
}

// DocumentLoader builds the context loader for this config.
// In strict mode only contexts on the allow list or mapped to a local file can be loaded.
func (c Config) DocumentLoader(strictMode bool) (ld.DocumentLoader, error) {
	return NewContextLoader(!strictMode, c.Contexts)
}
