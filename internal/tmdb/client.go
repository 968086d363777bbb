// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Package tmdb implements the client for The Movie Database (TMDB) v3 API.
//
// The package exposes a narrow Client interface covering the seven upstream
// operations the discovery endpoints need, a production HTTPClient that
// normalizes raw TMDB payloads into the wire models served to browsers, and a
// BreakerClient that adds circuit breaking on top of any Client.
//
// Operations make exactly one attempt per call. There is no retry or backoff
// here: the HTTP handlers degrade to empty results on failure, and retrying a
// browser-facing request would only stack latency on an already slow
// upstream.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/cinematch/cinematch/internal/config"
	"github.com/cinematch/cinematch/internal/logging"
	"github.com/cinematch/cinematch/internal/metrics"
	"github.com/cinematch/cinematch/internal/models"
)

var (
	// ErrUnconfigured is returned when no TMDB API key is set. Every
	// operation checks the key before touching the network, so an
	// unconfigured deployment fails fast and never dials out.
	ErrUnconfigured = errors.New("tmdb: api key not configured")

	// ErrNotFound is returned when TMDB has no movie for the requested ID.
	ErrNotFound = errors.New("tmdb: movie not found")
)

const (
	// maxErrorBodySize limits how much of an upstream error body is read
	// into error messages (64KB).
	maxErrorBodySize = 64 * 1024

	// maxCastMembers caps the cast list on a movie detail.
	maxCastMembers = 6

	// maxProviders caps the watch provider list after pooling.
	maxProviders = 5
)

// Client defines the TMDB operations the API layer depends on.
//
// Handlers are written against this interface so tests can substitute stubs
// and production wiring can layer a circuit breaker over the HTTP client.
// Every operation returns ErrUnconfigured without network activity when no
// API key is set; GetByID returns ErrNotFound for unknown movie IDs. Any
// other error is an upstream or transport failure and the caller decides how
// to degrade.
type Client interface {
	// Configured reports whether an API key is present.
	Configured() bool

	// ListTrending returns the first page of trending titles. Unknown media
	// types fall back to "movie" and unknown windows to "week".
	ListTrending(ctx context.Context, media, window string) ([]models.MovieSummary, error)

	// Search returns the first page of movie search results for query.
	Search(ctx context.Context, query string) ([]models.MovieSummary, error)

	// Discover returns the first page of highly rated movies matching the
	// filters, sorted by vote average.
	Discover(ctx context.Context, filters DiscoverFilters) ([]models.MovieSummary, error)

	// GetByID assembles the full detail view for one movie: core record with
	// credits and videos, plus best-effort watch providers and IMDb linkage.
	GetByID(ctx context.Context, id int) (*models.MovieDetail, error)

	// ListGenres returns the movie genre catalog.
	ListGenres(ctx context.Context) ([]models.Genre, error)

	// GetProviders returns up to 5 deduplicated streaming providers for the
	// configured watch region.
	GetProviders(ctx context.Context, id int) ([]models.Provider, error)

	// GetExternalIDs returns cross-site identifiers for a movie.
	GetExternalIDs(ctx context.Context, id int) (*models.ExternalIDs, error)
}

// DiscoverFilters narrows the /discover/movie query. Zero values leave the
// corresponding parameter off the request entirely.
type DiscoverFilters struct {
	GenreID      int    // with_genres
	Language     string // with_original_language, ISO 639-1
	ReleasedFrom string // primary_release_date.gte, YYYY-MM-DD
	ReleasedTo   string // primary_release_date.lte, YYYY-MM-DD
}

// HTTPClient is the production TMDB client. All requests carry the configured
// API key and language, and image paths are expanded against the configured
// CDN bases during normalization.
type HTTPClient struct {
	baseURL   string
	apiKey    string
	language  string
	region    string
	imageBase string // posters and backdrops (w500)
	thumbBase string // provider logos and cast photos (w185)
	client    *http.Client
}

// NewHTTPClient creates a TMDB client from configuration.
func NewHTTPClient(cfg *config.TMDBConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		language:  cfg.Language,
		region:    cfg.WatchRegion,
		imageBase: cfg.ImageBaseURL,
		thumbBase: cfg.ThumbBaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Configured reports whether an API key is present.
func (c *HTTPClient) Configured() bool {
	return c.apiKey != ""
}

// ListTrending fetches /trending/{media}/{window}. The media and window path
// segments are validated against TMDB's allowed values before interpolation;
// anything else falls back to the defaults.
func (c *HTTPClient) ListTrending(ctx context.Context, media, window string) ([]models.MovieSummary, error) {
	if !c.Configured() {
		return nil, ErrUnconfigured
	}

	media = normalizeMedia(media)
	window = normalizeWindow(window)

	start := time.Now()
	var payload listResponse
	err := c.get(ctx, fmt.Sprintf("/trending/%s/%s", media, window), nil, &payload)
	metrics.RecordTMDBRequest("trending", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return c.summaries(payload.Results), nil
}

// Search fetches the first page of /search/movie results.
func (c *HTTPClient) Search(ctx context.Context, query string) ([]models.MovieSummary, error) {
	if !c.Configured() {
		return nil, ErrUnconfigured
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")

	start := time.Now()
	var payload listResponse
	err := c.get(ctx, "/search/movie", params, &payload)
	metrics.RecordTMDBRequest("search", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return c.summaries(payload.Results), nil
}

// Discover fetches the first page of /discover/movie, restricted to titles
// with at least 80 votes and sorted by vote average so the recommendation
// pool skews toward well-known movies.
func (c *HTTPClient) Discover(ctx context.Context, filters DiscoverFilters) ([]models.MovieSummary, error) {
	if !c.Configured() {
		return nil, ErrUnconfigured
	}

	params := url.Values{}
	params.Set("sort_by", "vote_average.desc")
	params.Set("vote_count.gte", "80")
	params.Set("page", "1")
	if filters.GenreID != 0 {
		params.Set("with_genres", strconv.Itoa(filters.GenreID))
	}
	if filters.Language != "" {
		params.Set("with_original_language", filters.Language)
	}
	if filters.ReleasedFrom != "" {
		params.Set("primary_release_date.gte", filters.ReleasedFrom)
	}
	if filters.ReleasedTo != "" {
		params.Set("primary_release_date.lte", filters.ReleasedTo)
	}

	start := time.Now()
	var payload listResponse
	err := c.get(ctx, "/discover/movie", params, &payload)
	metrics.RecordTMDBRequest("discover", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return c.summaries(payload.Results), nil
}

// GetByID assembles the detail view for one movie. The core lookup uses
// append_to_response to fold credits and videos into a single request.
// Provider and external ID lookups are best-effort: a failure in either
// leaves the corresponding fields empty instead of failing the whole call.
func (c *HTTPClient) GetByID(ctx context.Context, id int) (*models.MovieDetail, error) {
	if !c.Configured() {
		return nil, ErrUnconfigured
	}

	params := url.Values{}
	params.Set("append_to_response", "credits,videos")

	start := time.Now()
	var payload movieDetailResult
	err := c.get(ctx, fmt.Sprintf("/movie/%d", id), params, &payload)
	metrics.RecordTMDBRequest("movie_detail", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if payload.ID == 0 {
		return nil, ErrNotFound
	}

	detail := c.detail(payload)

	providers, err := c.GetProviders(ctx, id)
	if err != nil {
		logging.Warn().Err(err).Int("movie_id", id).Msg("Failed to fetch watch providers")
	} else {
		detail.Providers = providers
	}

	ids, err := c.GetExternalIDs(ctx, id)
	if err != nil {
		logging.Warn().Err(err).Int("movie_id", id).Msg("Failed to fetch external IDs")
	} else if ids.IMDbID != "" {
		detail.IMDbID = ids.IMDbID
		detail.IMDbURL = fmt.Sprintf("https://www.imdb.com/title/%s/", ids.IMDbID)
	}

	return detail, nil
}

// ListGenres fetches the movie genre catalog.
func (c *HTTPClient) ListGenres(ctx context.Context) ([]models.Genre, error) {
	if !c.Configured() {
		return nil, ErrUnconfigured
	}

	start := time.Now()
	var payload genreListResponse
	err := c.get(ctx, "/genre/movie/list", nil, &payload)
	metrics.RecordTMDBRequest("genre_list", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if payload.Genres == nil {
		return []models.Genre{}, nil
	}
	return payload.Genres, nil
}

// GetProviders fetches /movie/{id}/watch/providers and flattens the pools for
// the configured region. Flatrate offerings win over free, free over
// ad-supported; duplicates by provider name are dropped and the result is
// capped at 5.
func (c *HTTPClient) GetProviders(ctx context.Context, id int) ([]models.Provider, error) {
	if !c.Configured() {
		return nil, ErrUnconfigured
	}

	start := time.Now()
	var payload providersResponse
	err := c.get(ctx, fmt.Sprintf("/movie/%d/watch/providers", id), nil, &payload)
	metrics.RecordTMDBRequest("watch_providers", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	region := payload.Results[c.region]
	providers := make([]models.Provider, 0, maxProviders)
	seen := make(map[string]bool)
	for _, pool := range [][]providerEntry{region.Flatrate, region.Free, region.Ads} {
		for _, p := range pool {
			if p.ProviderName == "" || seen[p.ProviderName] {
				continue
			}
			seen[p.ProviderName] = true
			providers = append(providers, models.Provider{
				Name: p.ProviderName,
				Logo: imageURL(c.thumbBase, p.LogoPath),
			})
			if len(providers) == maxProviders {
				return providers, nil
			}
		}
	}
	return providers, nil
}

// GetExternalIDs fetches /movie/{id}/external_ids.
func (c *HTTPClient) GetExternalIDs(ctx context.Context, id int) (*models.ExternalIDs, error) {
	if !c.Configured() {
		return nil, ErrUnconfigured
	}

	start := time.Now()
	var payload models.ExternalIDs
	err := c.get(ctx, fmt.Sprintf("/movie/%d/external_ids", id), nil, &payload)
	metrics.RecordTMDBRequest("external_ids", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// get performs a single GET against the TMDB API and decodes the JSON
// response into result. The API key and language are appended to every
// request. A 404 maps to ErrNotFound; other non-200 statuses become errors
// carrying a bounded slice of the response body.
func (c *HTTPClient) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	logging.Debug().Str("endpoint", endpoint).Msg("TMDB request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach TMDB: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%s request failed with status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// readBodyForError reads a response body for error reporting, bounded by
// maxErrorBodySize so a large upstream error page cannot balloon memory.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// summaries converts raw list results into wire summaries.
func (c *HTTPClient) summaries(results []movieResult) []models.MovieSummary {
	movies := make([]models.MovieSummary, 0, len(results))
	for _, r := range results {
		genres := r.GenreIDs
		if genres == nil {
			genres = []int{}
		}
		movies = append(movies, models.MovieSummary{
			ID:         r.ID,
			Title:      titleOrUnknown(r.Title),
			Year:       yearOf(r.ReleaseDate),
			Rating:     roundRating(r.VoteAverage),
			Votes:      r.VoteCount,
			Overview:   r.Overview,
			Poster:     imageURL(c.imageBase, r.PosterPath),
			Backdrop:   imageURL(c.imageBase, r.BackdropPath),
			Genres:     genres,
			Language:   r.OriginalLanguage,
			Popularity: r.Popularity,
		})
	}
	return movies
}

// detail converts a raw detail payload into the wire detail model. Providers
// and IMDb fields start empty; GetByID fills them from the follow-up calls.
func (c *HTTPClient) detail(r movieDetailResult) *models.MovieDetail {
	genres := make([]string, 0, len(r.Genres))
	for _, g := range r.Genres {
		genres = append(genres, g.Name)
	}

	cast := make([]models.CastMember, 0, maxCastMembers)
	for _, member := range r.Credits.Cast {
		if len(cast) == maxCastMembers {
			break
		}
		cast = append(cast, models.CastMember{
			Name:      member.Name,
			Character: member.Character,
			Photo:     imageURL(c.thumbBase, member.ProfilePath),
		})
	}

	return &models.MovieDetail{
		ID:        r.ID,
		Title:     titleOrUnknown(r.Title),
		Tagline:   r.Tagline,
		Overview:  r.Overview,
		Year:      yearOf(r.ReleaseDate),
		Runtime:   r.Runtime,
		Rating:    roundRating(r.VoteAverage),
		Votes:     r.VoteCount,
		Genres:    genres,
		Poster:    imageURL(c.imageBase, r.PosterPath),
		Backdrop:  imageURL(c.imageBase, r.BackdropPath),
		Trailer:   trailerURL(r.Videos.Results),
		Providers: []models.Provider{},
		Cast:      cast,
		Language:  r.OriginalLanguage,
		Budget:    r.Budget,
		Revenue:   r.Revenue,
	}
}

// trailerURL picks the first YouTube-hosted trailer and renders a watch URL.
func trailerURL(videos []videoEntry) string {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return "https://www.youtube.com/watch?v=" + v.Key
		}
	}
	return ""
}

// normalizeMedia validates the trending media type path segment.
func normalizeMedia(media string) string {
	switch media {
	case "movie", "tv", "all":
		return media
	default:
		return "movie"
	}
}

// normalizeWindow validates the trending time window path segment.
func normalizeWindow(window string) string {
	switch window {
	case "day", "week":
		return window
	default:
		return "week"
	}
}

// yearOf extracts the four-digit year from a release date ("2024-07-19"
// yields "2024"). Shorter values pass through unchanged, so an absent date
// stays "".
func yearOf(releaseDate string) string {
	if len(releaseDate) > 4 {
		return releaseDate[:4]
	}
	return releaseDate
}

// roundRating rounds a vote average to one decimal place.
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// titleOrUnknown substitutes the display fallback for missing titles.
func titleOrUnknown(title string) string {
	if title == "" {
		return "Unknown"
	}
	return title
}

// imageURL expands a TMDB image path against a CDN base. Empty paths yield
// "" rather than a URL pointing at the bare base.
func imageURL(base, path string) string {
	if path == "" {
		return ""
	}
	return base + path
}

var _ Client = (*HTTPClient)(nil)
