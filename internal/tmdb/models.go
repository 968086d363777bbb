// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package tmdb

import "github.com/cinematch/cinematch/internal/models"

// Upstream payload shapes for the TMDB v3 API. Only the fields the
// normalization layer reads are declared; everything else in a response is
// ignored during decoding.

// listResponse is the shared envelope for /trending, /search/movie and
// /discover/movie.
type listResponse struct {
	Results []movieResult `json:"results"`
}

// movieResult is a single entry in a list response.
type movieResult struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
}

// movieDetailResult is the /movie/{id} response with credits and videos
// attached via append_to_response.
type movieDetailResult struct {
	ID               int            `json:"id"`
	Title            string         `json:"title"`
	Tagline          string         `json:"tagline"`
	Overview         string         `json:"overview"`
	ReleaseDate      string         `json:"release_date"`
	Runtime          int            `json:"runtime"`
	VoteAverage      float64        `json:"vote_average"`
	VoteCount        int            `json:"vote_count"`
	Genres           []models.Genre `json:"genres"`
	PosterPath       string         `json:"poster_path"`
	BackdropPath     string         `json:"backdrop_path"`
	OriginalLanguage string         `json:"original_language"`
	Budget           int64          `json:"budget"`
	Revenue          int64          `json:"revenue"`
	Credits          creditsBlock   `json:"credits"`
	Videos           videosBlock    `json:"videos"`
}

type creditsBlock struct {
	Cast []castEntry `json:"cast"`
}

type castEntry struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type videosBlock struct {
	Results []videoEntry `json:"results"`
}

type videoEntry struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// genreListResponse is the /genre/movie/list response.
type genreListResponse struct {
	Genres []models.Genre `json:"genres"`
}

// providersResponse is the /movie/{id}/watch/providers response, keyed by
// ISO 3166-1 country code.
type providersResponse struct {
	Results map[string]regionOfferings `json:"results"`
}

// regionOfferings holds the per-country provider pools, declared in the order
// the aggregation drains them.
type regionOfferings struct {
	Flatrate []providerEntry `json:"flatrate"`
	Free     []providerEntry `json:"free"`
	Ads      []providerEntry `json:"ads"`
}

type providerEntry struct {
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}
