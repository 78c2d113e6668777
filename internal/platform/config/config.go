// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
  - DI-Friendly: Passed to core components (DB, Redis, token signing) via constructors.
  - Zero Hidden State: No global variables are used to store config.

The JWT signing secret has no default. A process without JWT_SECRET refuses to start.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// minProductionSecretLength is the HS256 key floor enforced outside development.
const minProductionSecretLength = 32

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the account/address persistence backend.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath overrides the embedded SQL migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Pool sizing and the per-connection statement_timeout.
	DBMaxConns         int32         `env:"DB_MAX_CONNS"         envDefault:"25"`
	DBMinConns         int32         `env:"DB_MIN_CONNS"         envDefault:"2"`
	DBStatementTimeout time.Duration `env:"DB_STATEMENT_TIMEOUT" envDefault:"10s"`

	// Key-Value store (Redis). Optional: when empty, verification mail is logged instead of queued.
	RedisURL      string `env:"REDIS_URL"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Token signing
	JWTSecret string        `env:"JWT_SECRET,required,unset"`
	JWTIssuer string        `env:"JWT_ISSUER"           envDefault:"userdesk.api"`
	AccessTTL time.Duration `env:"ACCESS_TOKEN_TTL"     envDefault:"1h"`
	VerifyTTL time.Duration `env:"VERIFICATION_TOKEN_TTL" envDefault:"24h"`

	// BcryptCost is the password hashing work factor.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// AppBaseURL is the public frontend origin used to build verification links.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the rules that span more than one field.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres"))
		}
	case StoreDriverMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("STORE_DRIVER=memory is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be blank"))
	} else if c.IsProduction() && len(c.JWTSecret) < minProductionSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes in production", minProductionSecretLength))
	}

	if c.AccessTTL <= 0 || c.VerifyTTL <= 0 {
		errs = append(errs, errors.New("token TTLs must be positive"))
	}

	if c.DBMaxConns < 1 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS %d / DB_MAX_CONNS %d are inconsistent", c.DBMinConns, c.DBMaxConns))
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d is outside [4, 31]", c.BcryptCost))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins, trimmed.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.ExtraOrigins))
	for _, origin := range c.ExtraOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
