// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Package main is the entry point for the CineMatch server application.
//
// CineMatch is a thin aggregation backend for AI-powered movie discovery.
// It fronts two upstream services - The Movie Database (TMDB) for metadata
// and Google Gemini for generative ranking and chat - behind a small JSON
// API, and serves the single-page frontend from the same process.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from .env, environment variables and
//     an optional config file (Koanf v2)
//  2. Logging: zerolog with JSON/console output modes
//  3. Upstream gateways: TMDB and Gemini HTTP clients, each wrapped in a
//     circuit breaker (gobreaker)
//  4. HTTP Server: Chi router serving the API, Prometheus metrics,
//     Swagger documentation, and the static frontend
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (see .env.example)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Degraded Mode
//
// Both upstream credentials are optional. The server starts and serves
// traffic without them:
//   - No TMDB_API_KEY: browsing endpoints serve empty lists,
//     /api/recommend answers 503
//   - No GEMINI_API_KEY: recommendations fall back to rating order,
//     /api/chat answers with a fixed notice
//
// /health reports which credentials are configured so deployments can
// tell a degraded instance from a broken one.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/cinematch/cinematch/docs" // Import generated swagger docs
	"github.com/cinematch/cinematch/internal/api"
	"github.com/cinematch/cinematch/internal/config"
	"github.com/cinematch/cinematch/internal/gemini"
	"github.com/cinematch/cinematch/internal/logging"
	"github.com/cinematch/cinematch/internal/tmdb"
)

func main() {
	// .env is optional; containers configure through the environment
	_ = godotenv.Load()

	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting CineMatch")
	logging.Info().
		Str("addr", cfg.Address()).
		Str("static_dir", cfg.Server.StaticDir).
		Bool("tmdb_configured", cfg.TMDBConfigured()).
		Bool("gemini_configured", cfg.GeminiConfigured()).
		Msg("Configuration loaded")

	// Missing credentials are a degraded state, not a startup failure
	if !cfg.TMDBConfigured() {
		logging.Warn().Msg("TMDB_API_KEY not set - movie browsing will serve empty results")
	}
	if !cfg.GeminiConfigured() {
		logging.Warn().Msg("GEMINI_API_KEY not set - recommendations and chat will use non-AI fallbacks")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	// Upstream gateways with circuit breakers for fault tolerance.
	// Breakers stop hammering an upstream that is already failing, so
	// degraded responses come back fast instead of after N timeouts.
	movies := tmdb.NewBreakerClient(tmdb.NewHTTPClient(&cfg.TMDB))
	ai := gemini.NewBreakerClient(gemini.NewHTTPClient(&cfg.Gemini))

	handler := api.NewHandler(cfg, movies, ai)

	chiMW := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)

	router := api.NewRouter(handler, chiMW, cfg.Server.StaticDir)

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown timed out, forcing close")
		if err := server.Close(); err != nil {
			logging.Error().Err(err).Msg("Forced close failed")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
