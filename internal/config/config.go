// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Moltis Authors

// Package config assembles the vault service configuration by merging, in
// priority order: environment variables, command-line flags, and an
// optional JSON file. The merged result is validated before use.
package config

import "time"

// StructuredConfig is the top-level configuration container for the vault
// service. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds configuration for the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// guard.
	Server Server `envPrefix:"SERVER_"`

	// Auth holds unlock-session token settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Vault holds vault lifecycle settings.
	Vault VaultConfig `envPrefix:"VAULT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and its values fill only the
	// fields that environment variables and flags left unset.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DBConfig `envPrefix:"DB_"`
}

// DBConfig holds relational database connection settings.
type DBConfig struct {
	// Driver selects the backend: "postgres" or "sqlite".
	Driver string `env:"DRIVER"`

	// DSN is the connection string (PostgreSQL URI or SQLite file path).
	DSN string `env:"DSN"`

	// MaxOpenConns caps the connection pool size. Ignored by SQLite.
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`

	// MaxIdleConns caps idle pooled connections. Ignored by SQLite.
	MaxIdleConns int `env:"MAX_IDLE_CONNS"`
}

// Server holds the HTTP guard network settings.
type Server struct {
	// HTTPAddress is the listen address in host:port form.
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of a single request,
	// including KDF work during unseal.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Auth holds unlock-session token settings for the HTTP guard.
type Auth struct {
	// TokenSignKey is the HMAC key signing session tokens. Required.
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the iss claim stamped into session tokens.
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long an unlock-session token stays valid.
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// VaultConfig holds vault lifecycle settings.
type VaultConfig struct {
	// AutoSealTimeout seals the vault after this idle period. Zero
	// disables the watchdog.
	AutoSealTimeout time.Duration `env:"AUTO_SEAL_TIMEOUT"`
}

// defaults returns the configuration applied underneath every other
// source.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DBConfig{
				Driver:       "sqlite",
				DSN:          "moltis-vault.db",
				MaxOpenConns: 10,
				MaxIdleConns: 4,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8099",
			RequestTimeout: 30 * time.Second,
		},
		Auth: Auth{
			TokenIssuer:   "moltis-vault",
			TokenDuration: 15 * time.Minute,
		},
		Vault: VaultConfig{
			AutoSealTimeout: 15 * time.Minute,
		},
	}
}

// GetConfig builds the final configuration: env over flags over JSON over
// defaults, validated.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
