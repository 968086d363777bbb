// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Package models defines data structures used throughout the CineMatch application.
// These models represent normalized movie data, recommendation results, and API
// request/response bodies.

package models

// MovieSummary represents a single movie normalized from TMDB list responses.
//
// This is the core card model used by trending, search, discovery, and
// recommendation results. Every value a missing upstream field would produce is
// an explicit zero, never an absent key:
//
//   - Title: defaults to "Unknown" when TMDB omits it
//   - Year: first 4 characters of release_date, "" when absent
//   - Rating: vote average rounded to 1 decimal place
//   - Poster/Backdrop: full w500 image URLs, "" when the path is missing
//   - Genres: TMDB genre ids (resolved to names client-side via /api/genres)
type MovieSummary struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Year       string  `json:"year"`
	Rating     float64 `json:"rating"`
	Votes      int     `json:"votes"`
	Overview   string  `json:"overview"`
	Poster     string  `json:"poster"`
	Backdrop   string  `json:"backdrop"`
	Genres     []int   `json:"genres"`
	Language   string  `json:"language"`
	Popularity float64 `json:"popularity"`
}

// MovieDetail represents the full detail view for a single movie, aggregated
// from the TMDB detail, credits, videos, external IDs, and watch provider
// endpoints.
//
// Optional associations degrade to empty strings or empty slices:
//   - IMDbURL: https://www.imdb.com/title/<id>/ or ""
//   - Trailer: first official YouTube trailer as a watch URL, or ""
//   - Providers: deduplicated streaming providers for the watch region, max 5
//   - Cast: top-billed cast, max 6
type MovieDetail struct {
	ID        int          `json:"id"`
	Title     string       `json:"title"`
	Tagline   string       `json:"tagline"`
	Overview  string       `json:"overview"`
	Year      string       `json:"year"`
	Runtime   int          `json:"runtime"`
	Rating    float64      `json:"rating"`
	Votes     int          `json:"votes"`
	Genres    []string     `json:"genres"`
	Poster    string       `json:"poster"`
	Backdrop  string       `json:"backdrop"`
	IMDbID    string       `json:"imdb_id"`
	IMDbURL   string       `json:"imdb_url"`
	Trailer   string       `json:"trailer"`
	Providers []Provider   `json:"providers"`
	Cast      []CastMember `json:"cast"`
	Language  string       `json:"language"`
	Budget    int64        `json:"budget"`
	Revenue   int64        `json:"revenue"`
}

// CastMember is one top-billed cast entry on a movie detail page.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Photo     string `json:"photo"`
}

// Provider is a streaming provider offering a movie in the configured watch
// region. Logo is a w185 image URL or "".
type Provider struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Genre is a TMDB genre id/name pair.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ExternalIDs holds cross-database identifiers for a movie.
type ExternalIDs struct {
	IMDbID string `json:"imdb_id"`
}

// RecommendedMovie is a MovieSummary enriched with AI ranking metadata.
//
// When Gemini produced the pick, AIReason, MoodMatch, Tag, and Rank come from
// the model output. Rating-ranked padding uses the fixed reason
// "Highly rated match for your preferences." with tag "Top Rated" and an
// empty MoodMatch.
type RecommendedMovie struct {
	MovieSummary
	AIReason  string `json:"ai_reason"`
	MoodMatch string `json:"mood_match"`
	Tag       string `json:"tag"`
	Rank      int    `json:"rank"`
}
