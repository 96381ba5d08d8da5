// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Bridge) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Per-user bulk-add preferences (country code, inter-call delay, auto cleanup)
live in the settings domain; the values here are only the platform defaults
applied when a user has never saved their own.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Telegate API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for session and identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Telegram bridge sidecar (MTProto client process)
	BridgeURL     string        `env:"BRIDGE_URL,required"`
	BridgeAPIKey  string        `env:"BRIDGE_API_KEY"`
	BridgeTimeout time.Duration `env:"BRIDGE_TIMEOUT" envDefault:"30s"`

	// Bulk-add defaults, used when a user has no saved settings.
	DefaultCountryCode   string `env:"DEFAULT_COUNTRY_CODE"    envDefault:"84"`
	BulkAddDelayMs       int    `env:"BULK_ADD_DELAY_MS"       envDefault:"1000"`
	AutoCleanupContacts  bool   `env:"AUTO_CLEANUP_CONTACTS"   envDefault:"false"`
	PhoneValidationStrict bool  `env:"PHONE_VALIDATION_STRICT" envDefault:"true"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// The delay exists to respect Telegram's implicit flood limits; values
	// outside the supported window are clamped rather than rejected.
	if cfg.BulkAddDelayMs < 1000 {
		cfg.BulkAddDelayMs = 1000
	}
	if cfg.BulkAddDelayMs > 2000 {
		cfg.BulkAddDelayMs = 2000
	}

	return cfg, nil
}

// AllowedExtraOrigins returns the additional CORS origins configured via
// EXTRA_ORIGINS (comma-separated).
func (c *Config) AllowedExtraOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
