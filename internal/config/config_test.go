// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so a developer's config.yaml is not
	// picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8380 {
		t.Errorf("Server.Port = %d, want 8380", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}
	if cfg.Banner.PollInterval != time.Second {
		t.Errorf("Banner.PollInterval = %v, want 1s", cfg.Banner.PollInterval)
	}
	if cfg.Banner.ReturningThreshold != 5 {
		t.Errorf("Banner.ReturningThreshold = %d, want 5", cfg.Banner.ReturningThreshold)
	}
	if cfg.Banner.SavePromptThreshold != 10 {
		t.Errorf("Banner.SavePromptThreshold = %d, want 10", cfg.Banner.SavePromptThreshold)
	}
	if cfg.TMDB.Enabled {
		t.Error("TMDB.Enabled = true, want false by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BANNER_RETURNING_THRESHOLD", "7")
	t.Setenv("GUEST_STORE_IN_MEORY", "") // typo'd vars must be ignored
	t.Setenv("CORS_ORIGINS", "https://reawarding.app, https://www.reawarding.app")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Banner.ReturningThreshold != 7 {
		t.Errorf("Banner.ReturningThreshold = %d, want 7", cfg.Banner.ReturningThreshold)
	}
	want := []string{"https://reawarding.app", "https://www.reawarding.app"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i, origin := range want {
		if cfg.Security.CORSOrigins[i] != origin {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], origin)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
server:
  port: 8500
banner:
  save_prompt_threshold: 12
logging:
  format: console
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8500 {
		t.Errorf("Server.Port = %d, want 8500", cfg.Server.Port)
	}
	if cfg.Banner.SavePromptThreshold != 12 {
		t.Errorf("Banner.SavePromptThreshold = %d, want 12", cfg.Banner.SavePromptThreshold)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	// File values lose to env values.
	t.Setenv("HTTP_PORT", "8600")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() with env error = %v", err)
	}
	if cfg.Server.Port != 8600 {
		t.Errorf("Server.Port = %d, want env override 8600", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "tooshort" }, true},
		{"long jwt secret ok", func(c *Config) {
			c.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
		}, false},
		{"tmdb enabled without key", func(c *Config) { c.TMDB.Enabled = true }, true},
		{"tmdb enabled with key", func(c *Config) {
			c.TMDB.Enabled = true
			c.TMDB.APIKey = "k"
		}, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"zero returning threshold", func(c *Config) { c.Banner.ReturningThreshold = 0 }, true},
		{"poll interval too small", func(c *Config) { c.Banner.PollInterval = time.Millisecond }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"http_port", "server.port"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"GUEST_STORE_PATH", "guest_store.path"},
		{"PATH", ""},
		{"HOME", ""},
		{"UNRELATED_VAR", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
