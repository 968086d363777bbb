// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment variables
// and an optional config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Upstream Services:
//     - TMDB: The Movie Database metadata API (trending, search, details)
//     - Gemini: Google generative AI API (recommendations, chat)
//
//  2. Infrastructure:
//     - Server: HTTP server configuration (port, host, timeout, static assets)
//
//  3. Security & Observability:
//     - Security: Session secret, CORS, chassis rate limits
//     - Logging: Log levels and output formats
//
// Credentials are optional by design: a missing TMDB_API_KEY or GEMINI_API_KEY
// degrades the corresponding feature set without preventing startup. Handlers
// consult TMDBConfigured()/GeminiConfigured() rather than the raw key strings.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	server := http.Server{Addr: cfg.Address()}
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Gemini   GeminiConfig   `koanf:"gemini"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig contains HTTP server settings.
//
// Environment Variables:
//   - PORT: Listen port (default: 5000)
//   - HOST: Bind address (default: 0.0.0.0)
//   - SERVER_TIMEOUT: Read/write timeout (default: 30s)
//   - STATIC_DIR: Frontend asset directory (default: ./web/static)
//   - ENVIRONMENT: development or production (default: development)
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	StaticDir   string        `koanf:"static_dir"`
	Environment string        `koanf:"environment"`
}

// TMDBConfig contains The Movie Database client settings.
//
// Environment Variables:
//   - TMDB_API_KEY: API credential; empty leaves the movie gateway unconfigured
//   - TMDB_BASE_URL: API base URL (default: https://api.themoviedb.org/3)
//   - TMDB_IMAGE_BASE_URL: Poster/backdrop URL prefix (default: w500 size)
//   - TMDB_THUMB_BASE_URL: Cast photo / provider logo URL prefix (default: w185 size)
//   - TMDB_LANGUAGE: Response language (default: en-US)
//   - TMDB_WATCH_REGION: Country code for streaming providers (default: IN)
//   - TMDB_TIMEOUT: Outbound request timeout (default: 10s)
type TMDBConfig struct {
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	ThumbBaseURL string        `koanf:"thumb_base_url"`
	Language     string        `koanf:"language"`
	WatchRegion  string        `koanf:"watch_region"`
	Timeout      time.Duration `koanf:"timeout"`
}

// GeminiConfig contains Google Gemini client settings.
//
// Environment Variables:
//   - GEMINI_API_KEY: API credential; empty leaves the AI gateway unconfigured
//   - GEMINI_BASE_URL: API base URL (default: https://generativelanguage.googleapis.com/v1beta)
//   - GEMINI_MODEL: Model identifier (default: gemini-1.5-flash)
//   - GEMINI_TIMEOUT: Outbound request timeout (default: 10s)
//   - GEMINI_REQUESTS_PER_MINUTE: Client-side pacing budget (default: 15, the free tier)
type GeminiConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	Model             string        `koanf:"model"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerMinute int           `koanf:"requests_per_minute"`
}

// SecurityConfig contains session and HTTP chassis settings.
//
// Environment Variables:
//   - SECRET_KEY: Session-signing secret; a random one is generated when unset
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS: Requests per window for /api routes (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable chassis rate limiting entirely (default: false)
type SecurityConfig struct {
	SecretKey         string        `koanf:"secret_key"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig contains logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from environment variables and optional config file.
// Configuration is loaded in the following order (later sources override
// earlier ones):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// A missing SECRET_KEY is replaced by a generated random secret; a missing
// upstream credential is a valid degraded state and never an error.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Address returns the host:port string the HTTP server should bind to.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// TMDBConfigured reports whether the TMDB credential is present.
// The movie gateway degrades to empty results when this is false.
func (c *Config) TMDBConfigured() bool {
	return c.TMDB.APIKey != ""
}

// GeminiConfigured reports whether the Gemini credential is present.
// AI endpoints degrade to fixed fallback replies when this is false.
func (c *Config) GeminiConfigured() bool {
	return c.Gemini.APIKey != ""
}

// ensureSecretKey generates a random session secret when none is configured.
// The generated secret is process-local: sessions do not survive restarts
// without an explicit SECRET_KEY, which matches the stateless API surface.
func (c *Config) ensureSecretKey() error {
	if c.Security.SecretKey != "" {
		return nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate session secret: %w", err)
	}
	c.Security.SecretKey = hex.EncodeToString(buf)
	return nil
}
