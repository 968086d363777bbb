// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cinematch/cinematch/internal/models"
	"github.com/cinematch/cinematch/internal/tmdb"
)

// Result caps for the browse endpoints. The gateway returns the full first
// TMDB page; the route decides how much of it the frontend gets.
const (
	maxTrendingResults = 12
	maxSearchResults   = 10
)

// Trending handles trending movie list requests.
//
// Upstream failure and a missing credential both degrade to an empty list:
// the frontend renders an empty rail instead of an error page.
//
// @Summary List trending movies
// @Description Returns up to 12 trending titles for the requested media type and time window. Serves an empty list when TMDB is unavailable.
// @Tags Movies
// @Produce json
// @Param media query string false "Media type: movie, tv, or all" default(movie)
// @Param window query string false "Time window: day or week" default(week)
// @Success 200 {object} models.MoviesResponse "Trending movies"
// @Router /api/trending [get]
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	media := r.URL.Query().Get("media")
	window := r.URL.Query().Get("window")

	movies, err := h.movies.ListTrending(r.Context(), media, window)
	if err != nil {
		logUpstreamDegraded("trending", err)
		respondJSON(w, http.StatusOK, models.MoviesResponse{Movies: []models.MovieSummary{}})
		return
	}

	respondJSON(w, http.StatusOK, models.MoviesResponse{Movies: capSummaries(movies, maxTrendingResults)})
}

// Search handles movie search requests.
//
// A missing or blank q is the one browse input rejected up front; every
// upstream problem after that degrades to an empty list.
//
// @Summary Search movies by title
// @Description Returns up to 10 search results for the query. Serves an empty list when TMDB is unavailable.
// @Tags Movies
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} models.MoviesResponse "Search results"
// @Failure 400 {object} models.ErrorResponse "Missing or empty query"
// @Router /api/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	movies, err := h.movies.Search(r.Context(), query)
	if err != nil {
		logUpstreamDegraded("search", err)
		respondJSON(w, http.StatusOK, models.MoviesResponse{Movies: []models.MovieSummary{}})
		return
	}

	respondJSON(w, http.StatusOK, models.MoviesResponse{Movies: capSummaries(movies, maxSearchResults)})
}

// MovieDetail handles single movie detail requests.
//
// The response aggregates the TMDB detail, credits, videos, watch provider,
// and external id endpoints. Provider and external id failures degrade to
// empty fields inside the gateway; only a failed core lookup becomes 404.
//
// @Summary Get movie details
// @Description Returns the full detail view for one movie: credits, trailer, streaming providers, and IMDb linkage.
// @Tags Movies
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} models.MovieDetail "Movie detail"
// @Failure 400 {object} models.ErrorResponse "Non-integer movie ID"
// @Failure 404 {object} models.ErrorResponse "Movie not found"
// @Router /api/movie/{id} [get]
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	movie, err := h.movies.GetByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, tmdb.ErrNotFound) {
			logUpstreamDegraded("movie_detail", err)
		}
		respondError(w, http.StatusNotFound, "Movie not found")
		return
	}

	respondJSON(w, http.StatusOK, movie)
}

// Genres handles genre catalog requests.
//
// @Summary List movie genres
// @Description Returns the TMDB genre id/name catalog the frontend uses to label movie cards. Serves an empty list when TMDB is unavailable.
// @Tags Movies
// @Produce json
// @Success 200 {object} models.GenresResponse "Genre catalog"
// @Router /api/genres [get]
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.movies.ListGenres(r.Context())
	if err != nil {
		logUpstreamDegraded("genres", err)
		respondJSON(w, http.StatusOK, models.GenresResponse{Genres: []models.Genre{}})
		return
	}
	if genres == nil {
		genres = []models.Genre{}
	}

	respondJSON(w, http.StatusOK, models.GenresResponse{Genres: genres})
}

// capSummaries bounds a result list and guarantees a non-nil slice so the
// movies key marshals as [] rather than null.
func capSummaries(movies []models.MovieSummary, limit int) []models.MovieSummary {
	if len(movies) > limit {
		movies = movies[:limit]
	}
	if movies == nil {
		movies = []models.MovieSummary{}
	}
	return movies
}
