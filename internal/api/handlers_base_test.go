// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/cinematch/cinematch/internal/config"
	"github.com/cinematch/cinematch/internal/gemini"
	"github.com/cinematch/cinematch/internal/models"
	"github.com/cinematch/cinematch/internal/tmdb"
)

// stubMovies is a scripted tmdb.Client. Every operation returns its scripted
// fields, counts the call, and records the arguments it saw, so tests can
// assert both what a handler served and what it asked the gateway for.
type stubMovies struct {
	configured bool

	trending      []models.MovieSummary
	trendingErr   error
	trendingCalls int
	lastMedia     string
	lastWindow    string

	searchResults []models.MovieSummary
	searchErr     error
	searchCalls   int
	lastQuery     string

	discoverResults []models.MovieSummary
	discoverErr     error
	discoverCalls   int
	lastFilters     tmdb.DiscoverFilters

	detail      *models.MovieDetail
	detailErr   error
	detailCalls int
	lastID      int

	genres      []models.Genre
	genresErr   error
	genresCalls int

	providers      []models.Provider
	providersErr   error
	providersCalls int

	externalIDs      *models.ExternalIDs
	externalIDsErr   error
	externalIDsCalls int
}

func (s *stubMovies) Configured() bool {
	return s.configured
}

func (s *stubMovies) ListTrending(_ context.Context, media, window string) ([]models.MovieSummary, error) {
	s.trendingCalls++
	s.lastMedia = media
	s.lastWindow = window
	return s.trending, s.trendingErr
}

func (s *stubMovies) Search(_ context.Context, query string) ([]models.MovieSummary, error) {
	s.searchCalls++
	s.lastQuery = query
	return s.searchResults, s.searchErr
}

func (s *stubMovies) Discover(_ context.Context, filters tmdb.DiscoverFilters) ([]models.MovieSummary, error) {
	s.discoverCalls++
	s.lastFilters = filters
	return s.discoverResults, s.discoverErr
}

func (s *stubMovies) GetByID(_ context.Context, id int) (*models.MovieDetail, error) {
	s.detailCalls++
	s.lastID = id
	return s.detail, s.detailErr
}

func (s *stubMovies) ListGenres(_ context.Context) ([]models.Genre, error) {
	s.genresCalls++
	return s.genres, s.genresErr
}

func (s *stubMovies) GetProviders(_ context.Context, _ int) ([]models.Provider, error) {
	s.providersCalls++
	return s.providers, s.providersErr
}

func (s *stubMovies) GetExternalIDs(_ context.Context, _ int) (*models.ExternalIDs, error) {
	s.externalIDsCalls++
	return s.externalIDs, s.externalIDsErr
}

// totalCalls sums every operation counter.
func (s *stubMovies) totalCalls() int {
	return s.trendingCalls + s.searchCalls + s.discoverCalls +
		s.detailCalls + s.genresCalls + s.providersCalls + s.externalIDsCalls
}

var _ tmdb.Client = (*stubMovies)(nil)

// stubAI is a scripted gemini.Client.
type stubAI struct {
	configured bool

	generateReply string
	generateErr   error
	generateCalls int
	lastPrompt    string

	chatReply   string
	chatErr     error
	chatCalls   int
	lastMessage string
	lastHistory []models.ChatTurn
}

func (s *stubAI) Configured() bool {
	return s.configured
}

func (s *stubAI) GenerateText(_ context.Context, prompt string) (string, error) {
	s.generateCalls++
	s.lastPrompt = prompt
	return s.generateReply, s.generateErr
}

func (s *stubAI) Chat(_ context.Context, history []models.ChatTurn, message string) (string, error) {
	s.chatCalls++
	s.lastHistory = history
	s.lastMessage = message
	return s.chatReply, s.chatErr
}

var _ gemini.Client = (*stubAI)(nil)

// testConfig returns a config with both upstream credentials present.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:      "127.0.0.1",
			Port:      5000,
			StaticDir: "./web/static",
		},
		TMDB:   config.TMDBConfig{APIKey: "test-tmdb-key"},
		Gemini: config.GeminiConfig{APIKey: "test-gemini-key"},
	}
}

// newTestHandler wires a handler around scripted gateways.
func newTestHandler(movies *stubMovies, ai *stubAI) *Handler {
	return &Handler{
		config:    testConfig(),
		movies:    movies,
		ai:        ai,
		startTime: time.Now(),
	}
}

// summaryPool builds n distinct movie summaries with strictly descending
// ratings, titled "Movie 1" through "Movie n".
func summaryPool(n int) []models.MovieSummary {
	movies := make([]models.MovieSummary, 0, n)
	for i := 0; i < n; i++ {
		movies = append(movies, models.MovieSummary{
			ID:     1000 + i,
			Title:  "Movie " + strconv.Itoa(i+1),
			Year:   "2020",
			Rating: 9.0 - float64(i)*0.1,
			Genres: []int{},
		})
	}
	return movies
}

// jsonRequest builds a request carrying body as JSON.
func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	return httptest.NewRequest(method, target, bytes.NewReader(data))
}

// decodeResponse decodes a recorded JSON body into dst.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}

// TestNewHandler tests the NewHandler constructor
func TestNewHandler(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	handler := NewHandler(cfg, &stubMovies{configured: true}, &stubAI{configured: true})

	if handler == nil {
		t.Fatal("NewHandler returned nil")
	}

	if handler.config != cfg {
		t.Error("Expected config to be retained")
	}

	if handler.movies == nil {
		t.Error("Expected movie gateway to be set")
	}

	if handler.ai == nil {
		t.Error("Expected AI gateway to be set")
	}

	if handler.startTime.IsZero() {
		t.Error("Expected start time to be set")
	}
}

// TestNewHandler_UnconfiguredGateways tests that the constructor accepts
// gateways without credentials; degradation is a handler concern.
func TestNewHandler_UnconfiguredGateways(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	handler := NewHandler(cfg, &stubMovies{}, &stubAI{})

	if handler == nil {
		t.Fatal("NewHandler returned nil")
	}

	if handler.movies.Configured() {
		t.Error("Expected movie gateway to report unconfigured")
	}

	if handler.ai.Configured() {
		t.Error("Expected AI gateway to report unconfigured")
	}
}
