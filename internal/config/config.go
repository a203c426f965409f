// Copyright (c) 2026 Massimiliano Mantione
// radicle-graphql - GraphQL API over the Radicle registry schema
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads process configuration from YAML files, environment
// variables and command-line flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the process configuration.
type Config struct {
	DB struct {
		// Type selects the storage engine: sqlite, postgres or mysql.
		Type string `mapstructure:"type"`
		// DSN is the engine-specific data source name.
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	// Listen is the address the GraphQL endpoint binds to.
	Listen string `mapstructure:"listen"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Defaults returns the default settings applied before any file, env or
// flag overrides.
func Defaults() map[string]any {
	return map[string]any{
		"db.type":   "sqlite",
		"db.dsn":    "radicle-graphql.db",
		"listen":    ":8080",
		"log_level": "info",
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "radicle-graphql")
		default: // Linux, macOS, etc.
			configDir = "/etc/radicle-graphql"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "radicle-graphql")
	}

	return filepath.Join(configDir, "radicle-graphql.yaml"), nil
}

// Load resolves the configuration for the given command. An explicit file
// path (from --config) has the highest file precedence; otherwise the
// standard user, system and working-directory locations are searched.
func Load(cmd *cobra.Command, explicitPath *string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("radicle-graphql")
	v.SetConfigType("yaml")

	if explicitPath != nil && *explicitPath != "" {
		v.SetConfigFile(*explicitPath)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("radicle_graphql")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}
