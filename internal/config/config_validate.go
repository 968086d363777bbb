// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that configuration is structurally valid. Empty upstream
// credentials pass validation: they are a degraded state, not an error.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validateGemini(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.Server.Timeout < time.Second || c.Server.Timeout > 5*time.Minute {
		return fmt.Errorf("SERVER_TIMEOUT must be between 1s and 5m")
	}
	return nil
}

// Upstream timeout bounds. The 10s default is the documented ceiling for a
// single aggregation call; anything above a minute would stall request workers.
const (
	minUpstreamTimeout = time.Second
	maxUpstreamTimeout = time.Minute
)

// validateTMDB validates TMDB client configuration
func (c *Config) validateTMDB() error {
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ThumbBaseURL, "TMDB_THUMB_BASE_URL"); err != nil {
		return err
	}
	if len(c.TMDB.WatchRegion) != 2 {
		return fmt.Errorf("TMDB_WATCH_REGION must be a 2-letter country code")
	}
	if c.TMDB.Timeout < minUpstreamTimeout || c.TMDB.Timeout > maxUpstreamTimeout {
		return fmt.Errorf("TMDB_TIMEOUT must be between %v and %v", minUpstreamTimeout, maxUpstreamTimeout)
	}
	return nil
}

// validateGemini validates Gemini client configuration
func (c *Config) validateGemini() error {
	if err := validateHTTPURL(c.Gemini.BaseURL, "GEMINI_BASE_URL"); err != nil {
		return err
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("GEMINI_MODEL must not be empty")
	}
	if c.Gemini.Timeout < minUpstreamTimeout || c.Gemini.Timeout > maxUpstreamTimeout {
		return fmt.Errorf("GEMINI_TIMEOUT must be between %v and %v", minUpstreamTimeout, maxUpstreamTimeout)
	}
	if c.Gemini.RequestsPerMinute < 1 || c.Gemini.RequestsPerMinute > 1000 {
		return fmt.Errorf("GEMINI_REQUESTS_PER_MINUTE must be between 1 and 1000")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validateHTTPURL checks that a value is an absolute http(s) URL.
func validateHTTPURL(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", name)
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", name, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme", name)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}
