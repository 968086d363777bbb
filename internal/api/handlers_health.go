// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"net/http"

	"github.com/cinematch/cinematch/internal/models"
)

// Health handles health check requests.
//
// The configured flags come from config state captured at startup; the
// endpoint never performs an outbound call, so it stays fast and truthful
// even when an upstream is down.
//
// @Summary Get service health
// @Description Returns liveness plus whether the TMDB and Gemini credentials are configured. Computed from startup configuration without contacting either upstream.
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthResponse "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		GeminiConfigured: h.config.GeminiConfigured(),
		TMDBConfigured:   h.config.TMDBConfigured(),
	})
}
