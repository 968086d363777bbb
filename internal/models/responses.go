// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package models

// MoviesResponse wraps a list of movie summaries. Movies is always present,
// [] when the upstream returned nothing or failed.
type MoviesResponse struct {
	Movies []MovieSummary `json:"movies"`
}

// RecommendResponse wraps ranked recommendations together with the
// preferences that produced them. Error is set only on the no-results shape.
type RecommendResponse struct {
	Movies []RecommendedMovie `json:"movies"`
	Prefs  RecommendRequest   `json:"prefs"`
	Error  string             `json:"error,omitempty"`
}

// ChatResponse wraps a single AI (or fallback) chat reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// GenresResponse wraps the TMDB genre list. Genres is always present,
// [] when the upstream returned nothing or failed.
type GenresResponse struct {
	Genres []Genre `json:"genres"`
}

// HealthResponse reports process liveness and which upstream credentials are
// configured. Computed from startup config state; never triggers an
// outbound call.
type HealthResponse struct {
	Status           string `json:"status"`
	GeminiConfigured bool   `json:"gemini_configured"`
	TMDBConfigured   bool   `json:"tmdb_configured"`
}

// ErrorResponse is the uniform error body for every failing endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
