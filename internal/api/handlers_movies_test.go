// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cinematch/cinematch/internal/models"
	"github.com/cinematch/cinematch/internal/tmdb"
)

// TestTrending tests the trending endpoint
func TestTrending(t *testing.T) {
	t.Parallel()

	t.Run("returns upstream results", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, trending: summaryPool(3)}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/trending", nil)
		rec := httptest.NewRecorder()

		handler.Trending(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp models.MoviesResponse
		decodeResponse(t, rec, &resp)

		if len(resp.Movies) != 3 {
			t.Fatalf("len(Movies) = %d, want 3", len(resp.Movies))
		}
		if resp.Movies[0].Title != "Movie 1" {
			t.Errorf("Movies[0].Title = %q, want %q", resp.Movies[0].Title, "Movie 1")
		}
	})

	t.Run("caps results at twelve", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, trending: summaryPool(15)}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/trending", nil)
		rec := httptest.NewRecorder()

		handler.Trending(rec, req)

		var resp models.MoviesResponse
		decodeResponse(t, rec, &resp)

		if len(resp.Movies) != maxTrendingResults {
			t.Errorf("len(Movies) = %d, want %d", len(resp.Movies), maxTrendingResults)
		}
	})

	t.Run("passes media and window to the gateway", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, trending: summaryPool(1)}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/trending?media=tv&window=day", nil)
		rec := httptest.NewRecorder()

		handler.Trending(rec, req)

		if movies.lastMedia != "tv" {
			t.Errorf("media = %q, want %q", movies.lastMedia, "tv")
		}
		if movies.lastWindow != "day" {
			t.Errorf("window = %q, want %q", movies.lastWindow, "day")
		}
	})

	t.Run("serves empty list when TMDB is unconfigured", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{trendingErr: tmdb.ErrUnconfigured}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/trending", nil)
		rec := httptest.NewRecorder()

		handler.Trending(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), `"movies":[]`) {
			t.Errorf("body = %s, want empty movies array", rec.Body.String())
		}
	})

	t.Run("serves empty list on upstream failure", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, trendingErr: errors.New("tmdb: status 500")}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/trending", nil)
		rec := httptest.NewRecorder()

		handler.Trending(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp models.MoviesResponse
		decodeResponse(t, rec, &resp)

		if len(resp.Movies) != 0 {
			t.Errorf("len(Movies) = %d, want 0", len(resp.Movies))
		}
	})
}

// TestSearch tests the search endpoint
func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("rejects missing or blank queries", func(t *testing.T) {
		t.Parallel()

		targets := []struct {
			name   string
			target string
		}{
			{name: "missing q", target: "/api/search"},
			{name: "empty q", target: "/api/search?q="},
			{name: "whitespace q", target: "/api/search?q=%20%20"},
		}

		for _, tt := range targets {
			t.Run(tt.name, func(t *testing.T) {
				movies := &stubMovies{configured: true}
				handler := newTestHandler(movies, &stubAI{})

				req := httptest.NewRequest(http.MethodGet, tt.target, nil)
				rec := httptest.NewRecorder()

				handler.Search(rec, req)

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
				}

				var resp models.ErrorResponse
				decodeResponse(t, rec, &resp)

				if resp.Error != "Search query is required" {
					t.Errorf("Error = %q, want %q", resp.Error, "Search query is required")
				}
				if movies.searchCalls != 0 {
					t.Errorf("searchCalls = %d, want 0", movies.searchCalls)
				}
			})
		}
	})

	t.Run("trims the query before searching", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, searchResults: summaryPool(1)}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=%20dune%20", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		if movies.lastQuery != "dune" {
			t.Errorf("query = %q, want %q", movies.lastQuery, "dune")
		}
	})

	t.Run("caps results at ten", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, searchResults: summaryPool(14)}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=movie", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		var resp models.MoviesResponse
		decodeResponse(t, rec, &resp)

		if len(resp.Movies) != maxSearchResults {
			t.Errorf("len(Movies) = %d, want %d", len(resp.Movies), maxSearchResults)
		}
	})

	t.Run("serves empty list on upstream failure", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, searchErr: errors.New("tmdb: status 502")}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=dune", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), `"movies":[]`) {
			t.Errorf("body = %s, want empty movies array", rec.Body.String())
		}
	})
}

// movieDetailRequest builds a request carrying id as the chi {id} URL param.
func movieDetailRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/movie/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// TestMovieDetail tests the movie detail endpoint
func TestMovieDetail(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid ids", func(t *testing.T) {
		t.Parallel()

		ids := []struct {
			name string
			id   string
		}{
			{name: "letters", id: "abc"},
			{name: "zero", id: "0"},
			{name: "negative", id: "-3"},
			{name: "fractional", id: "3.5"},
			{name: "empty", id: ""},
		}

		for _, tt := range ids {
			t.Run(tt.name, func(t *testing.T) {
				movies := &stubMovies{configured: true}
				handler := newTestHandler(movies, &stubAI{})

				rec := httptest.NewRecorder()
				handler.MovieDetail(rec, movieDetailRequest(tt.id))

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
				}

				var resp models.ErrorResponse
				decodeResponse(t, rec, &resp)

				if resp.Error != "Invalid movie id" {
					t.Errorf("Error = %q, want %q", resp.Error, "Invalid movie id")
				}
				if movies.detailCalls != 0 {
					t.Errorf("detailCalls = %d, want 0", movies.detailCalls)
				}
			})
		}
	})

	t.Run("returns 404 for unknown movies", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, detailErr: tmdb.ErrNotFound}
		handler := newTestHandler(movies, &stubAI{})

		rec := httptest.NewRecorder()
		handler.MovieDetail(rec, movieDetailRequest("99999999"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}

		var resp models.ErrorResponse
		decodeResponse(t, rec, &resp)

		if resp.Error != "Movie not found" {
			t.Errorf("Error = %q, want %q", resp.Error, "Movie not found")
		}
	})

	t.Run("returns 404 on upstream failure", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, detailErr: errors.New("tmdb: status 500")}
		handler := newTestHandler(movies, &stubAI{})

		rec := httptest.NewRecorder()
		handler.MovieDetail(rec, movieDetailRequest("603"))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("returns the aggregated detail", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{
			configured: true,
			detail: &models.MovieDetail{
				ID:      27205,
				Title:   "Inception",
				Year:    "2010",
				Rating:  8.4,
				Genres:  []string{"Action", "Science Fiction"},
				IMDbID:  "tt1375666",
				IMDbURL: "https://www.imdb.com/title/tt1375666/",
				Trailer: "https://www.youtube.com/watch?v=YoHD9XEInc0",
				Providers: []models.Provider{
					{Name: "Netflix", Logo: "https://image.tmdb.org/t/p/w185/netflix.jpg"},
				},
				Cast: []models.CastMember{
					{Name: "Leonardo DiCaprio", Character: "Cobb"},
				},
			},
		}
		handler := newTestHandler(movies, &stubAI{})

		rec := httptest.NewRecorder()
		handler.MovieDetail(rec, movieDetailRequest("27205"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if movies.lastID != 27205 {
			t.Errorf("gateway id = %d, want 27205", movies.lastID)
		}

		var resp models.MovieDetail
		decodeResponse(t, rec, &resp)

		if resp.ID != 27205 {
			t.Errorf("ID = %d, want 27205", resp.ID)
		}
		if resp.Title != "Inception" {
			t.Errorf("Title = %q, want %q", resp.Title, "Inception")
		}
		if len(resp.Providers) != 1 || resp.Providers[0].Name != "Netflix" {
			t.Errorf("Providers = %v, want [Netflix]", resp.Providers)
		}
		if len(resp.Cast) != 1 || resp.Cast[0].Character != "Cobb" {
			t.Errorf("Cast = %v, want [Cobb]", resp.Cast)
		}
	})
}

// TestGenres tests the genre catalog endpoint
func TestGenres(t *testing.T) {
	t.Parallel()

	t.Run("returns the catalog", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{
			configured: true,
			genres: []models.Genre{
				{ID: 28, Name: "Action"},
				{ID: 18, Name: "Drama"},
			},
		}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/genres", nil)
		rec := httptest.NewRecorder()

		handler.Genres(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp models.GenresResponse
		decodeResponse(t, rec, &resp)

		if len(resp.Genres) != 2 {
			t.Fatalf("len(Genres) = %d, want 2", len(resp.Genres))
		}
		if resp.Genres[0].Name != "Action" {
			t.Errorf("Genres[0].Name = %q, want %q", resp.Genres[0].Name, "Action")
		}
	})

	t.Run("serves empty list on upstream failure", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, genresErr: errors.New("tmdb: status 500")}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/genres", nil)
		rec := httptest.NewRecorder()

		handler.Genres(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), `"genres":[]`) {
			t.Errorf("body = %s, want empty genres array", rec.Body.String())
		}
	})

	t.Run("serves empty list for a nil catalog", func(t *testing.T) {
		t.Parallel()

		movies := &stubMovies{configured: true, genres: nil}
		handler := newTestHandler(movies, &stubAI{})

		req := httptest.NewRequest(http.MethodGet, "/api/genres", nil)
		rec := httptest.NewRecorder()

		handler.Genres(rec, req)

		if !strings.Contains(rec.Body.String(), `"genres":[]`) {
			t.Errorf("body = %s, want empty genres array", rec.Body.String())
		}
	})
}

// TestCapSummaries tests the list bounding helper
func TestCapSummaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		movies  []models.MovieSummary
		limit   int
		wantLen int
	}{
		{name: "nil becomes empty", movies: nil, limit: 5, wantLen: 0},
		{name: "under limit unchanged", movies: summaryPool(3), limit: 5, wantLen: 3},
		{name: "at limit unchanged", movies: summaryPool(5), limit: 5, wantLen: 5},
		{name: "over limit truncated", movies: summaryPool(8), limit: 5, wantLen: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := capSummaries(tt.movies, tt.limit)

			if got == nil {
				t.Fatal("capSummaries returned nil")
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}
