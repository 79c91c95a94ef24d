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

package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const defaultConfigFile = "ldsig.yaml"
const configFileFlag = "configfile"

const defaultPrefix = "LDSIG_"
const defaultDelimiter = "."
const configValueListSeparator = ","

// Config has the global settings of the ldsig tooling, and holds the raw config map other modules unmarshal their section from.
type Config struct {
	Verbosity    string `koanf:"verbosity"`
	LoggerFormat string `koanf:"loggerformat"`
	// Strictmode forbids insecure settings, e.g. loading JSON-LD contexts from URLs that are not explicitly allowed.
	Strictmode bool `koanf:"strictmode"`
	configMap  *koanf.Koanf
}

// NewConfig creates an initialized empty config
func NewConfig() *Config {
	return &Config{
		configMap: koanf.New(defaultDelimiter),
	}
}

// Load loads the config, it follows the load order of flag defaults, config file, env vars and then commandline params.
// It also configures the global logrus logger.
func (c *Config) Load(flags *pflag.FlagSet) error {
	if err := c.loadConfigMap(flags); err != nil {
		return err
	}

	if err := c.configMap.UnmarshalWithConf("", c, koanf.UnmarshalConf{
		FlatPaths: false,
	}); err != nil {
		return err
	}

	lvl, err := logrus.ParseLevel(c.Verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	switch c.LoggerFormat {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid formatter: '%s'", c.LoggerFormat)
	}

	return nil
}

// Unmarshal loads the config section at path (e.g. "jsonld" or "vault") into target.
func (c *Config) Unmarshal(path string, target interface{}) error {
	return c.configMap.UnmarshalWithConf(path, target, koanf.UnmarshalConf{
		FlatPaths: false,
	})
}

// PrintConfig return the current config in string form
func (c *Config) PrintConfig() string {
	return c.configMap.Sprint()
}

// loadConfigMap populates the configMap with values from the config file, environment and pFlags
func (c *Config) loadConfigMap(flags *pflag.FlagSet) error {
	if err := loadFromFlagSet(c.configMap, flags); err != nil {
		return err
	}

	if err := loadFromFile(c.configMap, resolveConfigFilePath(flags)); err != nil {
		return err
	}

	if err := loadFromEnv(c.configMap); err != nil {
		return err
	}

	// explicitly set flags win over file and env
	return loadFromFlagSet(c.configMap, flags)
}

func loadFromFile(configMap *koanf.Koanf, filepath string) error {
	if filepath == "" {
		return nil
	}
	configFileProvider := file.Provider(filepath)
	if err := configMap.Load(configFileProvider, yaml.Parser()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func loadFromEnv(configMap *koanf.Koanf) error {
	e := env.ProviderWithValue(defaultPrefix, defaultDelimiter, func(rawKey string, rawValue string) (string, interface{}) {
		key := strings.Replace(strings.ToLower(strings.TrimPrefix(rawKey, defaultPrefix)), "_", defaultDelimiter, -1)

		// Support multiple values separated by a comma
		if strings.Contains(rawValue, configValueListSeparator) {
			values := strings.Split(rawValue, configValueListSeparator)
			for i, value := range values {
				values[i] = strings.TrimSpace(value)
			}
			return key, values
		}

		return key, rawValue
	})
	// errors can't occur for this provider
	return configMap.Load(e, nil)
}

func loadFromFlagSet(configMap *koanf.Koanf, flags *pflag.FlagSet) error {
	return configMap.Load(posflag.Provider(flags, defaultDelimiter, configMap), nil)
}

// resolveConfigFilePath resolves the path of the config file using the following sources:
// 1. commandline params (using the given flags)
// 2. environment vars,
// 3. default location.
func resolveConfigFilePath(flags *pflag.FlagSet) string {
	k := koanf.New(defaultDelimiter)

	e := env.Provider(defaultPrefix, defaultDelimiter, func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, defaultPrefix)), "_", defaultDelimiter, -1)
	})
	// can't return error
	_ = k.Load(e, nil)

	// without a parser, no error can be returned
	_ = k.Load(posflag.Provider(flags, defaultDelimiter, k), nil)

	return k.String(configFileFlag)
}

// FlagSet returns the global flags
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("global", pflag.ContinueOnError)
	flagSet.String(configFileFlag, defaultConfigFile, "ldsig config file")
	flagSet.String("verbosity", "info", "Log level (trace, debug, info, warn, error)")
	flagSet.String("loggerformat", "text", "Log format (text, json)")
	flagSet.Bool("strictmode", true, "When set, insecure settings are forbidden.")
	return flagSet
}
