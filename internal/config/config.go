// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package config holds application configuration loaded via Koanf v2 with
// layered sources (highest priority wins): environment variables, an optional
// YAML config file, and built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	GuestStore GuestStoreConfig `koanf:"guest_store"`
	Banner     BannerConfig     `koanf:"banner"`
	TMDB       TMDBConfig       `koanf:"tmdb"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// DatabaseConfig configures the DuckDB-backed ranking repository and movie
// catalog.
type DatabaseConfig struct {
	// Path is the database file location. Empty opens an in-memory database
	// (used by tests).
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads limits DuckDB worker threads. 0 uses runtime.NumCPU().
	Threads int `koanf:"threads" validate:"min=0"`
}

// GuestStoreConfig configures the durable guest interaction store.
type GuestStoreConfig struct {
	// Path is the BadgerDB directory. Empty forces the in-memory medium.
	Path string `koanf:"path"`
	// InMemory skips BadgerDB entirely, keeping guest data for the process
	// lifetime only.
	InMemory bool `koanf:"in_memory"`
}

// BannerConfig configures banner arbitration.
//
// The poller re-derives banner state from the guest store on every tick
// rather than reacting to individual mutations, so the visible state can lag
// an underlying change by up to one PollInterval. That bounded staleness is an
// accepted trade-off of the polling model.
type BannerConfig struct {
	PollInterval time.Duration `koanf:"poll_interval" validate:"min=100ms"`
	// ReturningThreshold is the interaction count at which an established
	// guest sees the returning banner.
	ReturningThreshold int `koanf:"returning_threshold" validate:"min=1"`
	// SavePromptThreshold is the lifetime interaction count that triggers the
	// save prompt.
	SavePromptThreshold int `koanf:"save_prompt_threshold" validate:"min=1"`
}

// TMDBConfig configures the movie metadata import client.
type TMDBConfig struct {
	Enabled           bool          `koanf:"enabled"`
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout" validate:"min=1s"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"min=0"`
}

// SecurityConfig configures identity resolution and HTTP protections.
type SecurityConfig struct {
	// JWTSecret verifies bearer tokens minted by the external auth provider.
	// Empty disables authenticated endpoints.
	JWTSecret         string        `koanf:"jwt_secret"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"min=1s"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for structural and cross-field errors.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}

	if c.TMDB.Enabled && c.TMDB.APIKey == "" {
		return fmt.Errorf("tmdb.api_key is required when tmdb.enabled is true")
	}

	return nil
}
