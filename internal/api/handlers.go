// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"time"

	"github.com/cinematch/cinematch/internal/config"
	"github.com/cinematch/cinematch/internal/gemini"
	"github.com/cinematch/cinematch/internal/tmdb"
)

// Handler contains dependencies for the API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared response and logging helpers
//   - handlers_movies.go: trending, search, detail, and genre endpoints
//   - handlers_recommend.go: preference-driven recommendation endpoint
//   - handlers_chat.go: conversational AI endpoint
//   - handlers_health.go: health endpoint
type Handler struct {
	config    *config.Config
	movies    tmdb.Client
	ai        gemini.Client
	startTime time.Time
}

// NewHandler creates the API handler around the two upstream gateways.
//
// Either gateway may be unconfigured (missing credential). Handlers never
// treat that as a hard failure: browse endpoints serve empty lists, AI
// endpoints serve fixed fallback replies, and only the recommendation flow
// refuses outright (503) without TMDB.
//
// Example:
//
//	handler := api.NewHandler(cfg, movieClient, aiClient)
//	router := api.NewRouter(handler, chiMW, cfg.Server.StaticDir)
//	http.ListenAndServe(cfg.Address(), router.SetupChi())
func NewHandler(cfg *config.Config, movies tmdb.Client, ai gemini.Client) *Handler {
	return &Handler{
		config:    cfg,
		movies:    movies,
		ai:        ai,
		startTime: time.Now(),
	}
}
