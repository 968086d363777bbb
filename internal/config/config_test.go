// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package config

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// Validation Tests
// =============================================================================

// TestValidate exercises the per-section validators with one bad field at a
// time, starting from a known-good default configuration.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "PORT",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "PORT",
		},
		{
			name:    "server timeout too short",
			mutate:  func(c *Config) { c.Server.Timeout = 100 * time.Millisecond },
			wantErr: "SERVER_TIMEOUT",
		},
		{
			name:    "tmdb base url empty",
			mutate:  func(c *Config) { c.TMDB.BaseURL = "" },
			wantErr: "TMDB_BASE_URL",
		},
		{
			name:    "tmdb base url bad scheme",
			mutate:  func(c *Config) { c.TMDB.BaseURL = "ftp://api.themoviedb.org/3" },
			wantErr: "TMDB_BASE_URL",
		},
		{
			name:    "tmdb image url missing host",
			mutate:  func(c *Config) { c.TMDB.ImageBaseURL = "https:///t/p/w500" },
			wantErr: "TMDB_IMAGE_BASE_URL",
		},
		{
			name:    "watch region wrong length",
			mutate:  func(c *Config) { c.TMDB.WatchRegion = "IND" },
			wantErr: "TMDB_WATCH_REGION",
		},
		{
			name:    "tmdb timeout too long",
			mutate:  func(c *Config) { c.TMDB.Timeout = 5 * time.Minute },
			wantErr: "TMDB_TIMEOUT",
		},
		{
			name:    "gemini model empty",
			mutate:  func(c *Config) { c.Gemini.Model = "" },
			wantErr: "GEMINI_MODEL",
		},
		{
			name:    "gemini rpm zero",
			mutate:  func(c *Config) { c.Gemini.RequestsPerMinute = 0 },
			wantErr: "GEMINI_REQUESTS_PER_MINUTE",
		},
		{
			name:    "rate limit requests zero",
			mutate:  func(c *Config) { c.Security.RateLimitReqs = 0 },
			wantErr: "RATE_LIMIT_REQUESTS",
		},
		{
			name:    "rate limit window too long",
			mutate:  func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour },
			wantErr: "RATE_LIMIT_WINDOW",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

// TestRateLimitDisabledSkipsBoundsCheck verifies that rate limit bounds are
// only enforced when the limiter is enabled.
func TestRateLimitDisabledSkipsBoundsCheck(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	cfg.Security.RateLimitWindow = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with disabled rate limiter should ignore bounds, got: %v", err)
	}
}

// =============================================================================
// Accessor Tests
// =============================================================================

func TestAddress(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 5000

	if got := cfg.Address(); got != "127.0.0.1:5000" {
		t.Errorf("Address() = %q, want 127.0.0.1:5000", got)
	}
}

func TestConfiguredFlags(t *testing.T) {
	tests := []struct {
		name       string
		tmdbKey    string
		geminiKey  string
		wantTMDB   bool
		wantGemini bool
	}{
		{"neither configured", "", "", false, false},
		{"tmdb only", "tmdb_key", "", true, false},
		{"gemini only", "", "gemini_key", false, true},
		{"both configured", "tmdb_key", "gemini_key", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.TMDB.APIKey = tt.tmdbKey
			cfg.Gemini.APIKey = tt.geminiKey

			if got := cfg.TMDBConfigured(); got != tt.wantTMDB {
				t.Errorf("TMDBConfigured() = %v, want %v", got, tt.wantTMDB)
			}
			if got := cfg.GeminiConfigured(); got != tt.wantGemini {
				t.Errorf("GeminiConfigured() = %v, want %v", got, tt.wantGemini)
			}
		})
	}
}

func TestIsProductionIsDevelopment(t *testing.T) {
	tests := []struct {
		environment string
		wantProd    bool
		wantDev     bool
	}{
		{"", false, true},
		{"development", false, true},
		{"dev", false, true},
		{"production", true, false},
		{"prod", true, false},
		{"PRODUCTION", true, false},
		{"staging", false, false},
	}

	for _, tt := range tests {
		t.Run("env_"+tt.environment, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Server.Environment = tt.environment

			if got := cfg.IsProduction(); got != tt.wantProd {
				t.Errorf("IsProduction() with %q = %v, want %v", tt.environment, got, tt.wantProd)
			}
			if got := cfg.IsDevelopment(); got != tt.wantDev {
				t.Errorf("IsDevelopment() with %q = %v, want %v", tt.environment, got, tt.wantDev)
			}
		})
	}
}

// =============================================================================
// Secret Key Tests
// =============================================================================

func TestEnsureSecretKey(t *testing.T) {
	t.Run("preserves explicit key", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Security.SecretKey = "explicit-secret"

		if err := cfg.ensureSecretKey(); err != nil {
			t.Fatalf("ensureSecretKey() error = %v", err)
		}
		if cfg.Security.SecretKey != "explicit-secret" {
			t.Errorf("SecretKey = %q, want explicit-secret preserved", cfg.Security.SecretKey)
		}
	})

	t.Run("generates key when empty", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Security.SecretKey = ""

		if err := cfg.ensureSecretKey(); err != nil {
			t.Fatalf("ensureSecretKey() error = %v", err)
		}
		// 32 random bytes hex-encoded
		if len(cfg.Security.SecretKey) != 64 {
			t.Errorf("generated SecretKey length = %d, want 64", len(cfg.Security.SecretKey))
		}
	})

	t.Run("generated keys are unique", func(t *testing.T) {
		a := defaultConfig()
		b := defaultConfig()
		if err := a.ensureSecretKey(); err != nil {
			t.Fatalf("ensureSecretKey() error = %v", err)
		}
		if err := b.ensureSecretKey(); err != nil {
			t.Fatalf("ensureSecretKey() error = %v", err)
		}
		if a.Security.SecretKey == b.Security.SecretKey {
			t.Error("two generated secret keys should not match")
		}
	})
}
