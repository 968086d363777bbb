// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/cinematch/cinematch/internal/logging"
	"github.com/cinematch/cinematch/internal/metrics"
	"github.com/cinematch/cinematch/internal/models"
	"github.com/cinematch/cinematch/internal/tmdb"
	"github.com/cinematch/cinematch/internal/validation"
)

const (
	// finalRecommendationCount is the fixed size of a recommendation
	// response whenever the candidate pool can supply it.
	finalRecommendationCount = 6

	// aiCandidatePoolSize bounds how many candidates go into the prompt.
	aiCandidatePoolSize = 20

	// overviewSnippetLength bounds each candidate's overview in the prompt.
	overviewSnippetLength = 100
)

// genreLabels maps frontend preference labels to TMDB genre names.
// Fantasy intentionally resolves to Adventure.
var genreLabels = map[string]string{
	"Action":    "Action",
	"Comedy":    "Comedy",
	"Horror":    "Horror",
	"Sci-Fi":    "Science Fiction",
	"Romance":   "Romance",
	"Thriller":  "Thriller",
	"Drama":     "Drama",
	"Fantasy":   "Adventure",
	"Animation": "Animation",
}

// languageCodes maps preference labels to ISO 639-1 codes for discovery.
var languageCodes = map[string]string{
	"English":  "en",
	"Hindi":    "hi",
	"Telugu":   "te",
	"Tamil":    "ta",
	"Korean":   "ko",
	"Spanish":  "es",
	"French":   "fr",
	"Japanese": "ja",
}

// errBadAIReply marks model output that did not decode as the requested
// JSON picks array.
var errBadAIReply = errors.New("ai reply is not a valid picks array")

// aiPick is one entry of the JSON array the model is asked to return.
type aiPick struct {
	Rank      int    `json:"rank"`
	Title     string `json:"title"`
	Reason    string `json:"reason"`
	MoodMatch string `json:"mood_match"`
	Tag       string `json:"tag"`
}

// Recommend handles personalized recommendation requests.
//
// The flow: resolve preferences into discovery filters, build a candidate
// pool (discovery, falling back to trending), then ask the model to rank it.
// Every AI failure mode degrades to rating order; the response carries six
// picks whenever the pool allows. TMDB is the one hard dependency here,
// which is why a missing movie credential answers 503 instead of degrading.
//
// @Summary Get personalized movie recommendations
// @Description Ranks TMDB candidates against the stated preferences, using the generative model when configured and rating order otherwise. Returns six picks with reasons, mood match scores, and tags.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body models.RecommendRequest true "Viewing preferences"
// @Success 200 {object} models.RecommendResponse "Ranked recommendations"
// @Failure 400 {object} models.ErrorResponse "Malformed body or invalid preferences"
// @Failure 404 {object} models.RecommendResponse "No movies matched the preferences"
// @Failure 503 {object} models.ErrorResponse "TMDB credential not configured"
// @Router /api/recommend [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var prefs models.RecommendRequest
	if err := decodeRequestBody(r, &prefs); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&prefs); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Message())
		return
	}

	if !h.movies.Configured() {
		respondError(w, http.StatusServiceUnavailable, "TMDB API not configured")
		return
	}

	pool := h.candidatePool(r.Context(), prefs)
	if len(pool) == 0 {
		respondJSON(w, http.StatusNotFound, models.RecommendResponse{
			Movies: []models.RecommendedMovie{},
			Prefs:  prefs,
			Error:  "No movies found",
		})
		return
	}

	picks, source := h.rankPool(r.Context(), prefs, pool)
	metrics.RecordRecommendations(source, len(picks))

	respondJSON(w, http.StatusOK, models.RecommendResponse{Movies: picks, Prefs: prefs})
}

// candidatePool runs preference-filtered discovery, falling back to the
// trending list when the filters match nothing. Upstream failures leave the
// pool empty rather than failing the request.
func (h *Handler) candidatePool(ctx context.Context, prefs models.RecommendRequest) []models.MovieSummary {
	pool, err := h.movies.Discover(ctx, h.discoverFilters(ctx, prefs))
	if err != nil {
		logUpstreamDegraded("recommend", err)
	}

	if len(pool) == 0 {
		logging.Info().Msg("No discover results, falling back to trending")
		pool, err = h.movies.ListTrending(ctx, "movie", "week")
		if err != nil {
			logUpstreamDegraded("recommend", err)
		}
	}

	return pool
}

// discoverFilters resolves the free-text preferences into discovery filters.
// The genre label resolves against the live TMDB catalog so the id stays
// correct even if TMDB renumbers; a failed catalog fetch just drops the
// genre filter. Unknown labels drop out the same way.
func (h *Handler) discoverFilters(ctx context.Context, prefs models.RecommendRequest) tmdb.DiscoverFilters {
	var filters tmdb.DiscoverFilters

	if name := genreLabels[prefs.Genre]; name != "" {
		genres, err := h.movies.ListGenres(ctx)
		if err != nil {
			logging.Warn().Err(err).Str("genre", sanitizeLogValue(prefs.Genre)).Msg("Failed to resolve genre filter")
		}
		for _, g := range genres {
			if g.Name == name {
				filters.GenreID = g.ID
				break
			}
		}
	}

	filters.Language = languageCodes[prefs.Language]

	switch prefs.Era {
	case "2020-2024":
		filters.ReleasedFrom = "2020-01-01"
		filters.ReleasedTo = "2024-12-31"
	case "2010s":
		filters.ReleasedFrom = "2010-01-01"
		filters.ReleasedTo = "2019-12-31"
	case "classics":
		filters.ReleasedTo = "2009-12-31"
	}

	return filters
}

// rankPool asks the model to rank the pool, then pads the result to six
// with rating-ordered picks. Every AI failure collapses to rating order
// alone; the response stays 200 either way.
//
// The returned source is "ai" when at least one model pick survived title
// matching, "rating" otherwise.
func (h *Handler) rankPool(ctx context.Context, prefs models.RecommendRequest, pool []models.MovieSummary) ([]models.RecommendedMovie, string) {
	var picks []models.RecommendedMovie
	source := "rating"

	if h.ai.Configured() {
		aiPicks, err := h.aiRank(ctx, prefs, pool)
		switch {
		case err != nil:
			metrics.RecordAIFallback("recommend", fallbackReason(err))
			logging.Error().Err(err).Msg("Gemini error")
		case len(aiPicks) > 0:
			picks = aiPicks
			source = "ai"
		}
	} else {
		metrics.RecordAIFallback("recommend", "unconfigured")
	}

	return padByRating(picks, pool), source
}

// aiRank runs the ranking prompt and resolves the reply back to pool
// entries.
func (h *Handler) aiRank(ctx context.Context, prefs models.RecommendRequest, pool []models.MovieSummary) ([]models.RecommendedMovie, error) {
	reply, err := h.ai.GenerateText(ctx, recommendPrompt(prefs, pool))
	if err != nil {
		return nil, err
	}

	picks, err := parseAIPicks(reply)
	if err != nil {
		return nil, err
	}
	logging.Info().Int("count", len(picks)).Msg("AI generated recommendations")

	return matchPicks(picks, pool), nil
}

// recommendPrompt builds the ranking prompt: the stated preferences plus a
// compact candidate listing, demanding a bare JSON array back.
func recommendPrompt(prefs models.RecommendRequest, pool []models.MovieSummary) string {
	var sb strings.Builder

	sb.WriteString("\nUser Preferences:\n")
	fmt.Fprintf(&sb, "Genre: %s | Sub-genre: %s\n", orDefault(prefs.Genre, "Any"), orDefault(prefs.SubGenre, "Any"))
	fmt.Fprintf(&sb, "Language: %s | Mood: %s\n", orDefault(prefs.Language, "Any"), orDefault(prefs.Mood, "Any"))
	fmt.Fprintf(&sb, "Viewing with: %s | Era: %s\n", orDefault(prefs.Context, "Solo"), orDefault(prefs.Era, "Any"))
	fmt.Fprintf(&sb, "Favorites: %s\n", orDefault(prefs.Favorites, "Not specified"))

	sb.WriteString("\nTMDB Movies Pool:\n")
	sb.WriteString(moviePoolListing(pool))

	sb.WriteString("\n\nReturn ONLY a valid JSON array (no markdown) of top 6 picks:\n")
	sb.WriteString(`[{"rank":1,"title":"exact movie title","reason":"2-sentence personalized reason","mood_match":"92%","tag":"Must Watch"}]`)
	sb.WriteString("\nTags options: \"Must Watch\", \"Hidden Gem\", \"Crowd Pleaser\", \"Deep Cut\", \"Feel Good\", \"Mind Bender\"\n")

	return sb.String()
}

// moviePoolListing renders up to 20 candidates as one prompt line each.
func moviePoolListing(pool []models.MovieSummary) string {
	if len(pool) > aiCandidatePoolSize {
		pool = pool[:aiCandidatePoolSize]
	}

	lines := make([]string, 0, len(pool))
	for _, m := range pool {
		lines = append(lines, fmt.Sprintf("- %s (%s) Rating:%.1f Overview:%s",
			m.Title, m.Year, m.Rating, snippet(m.Overview, overviewSnippetLength)))
	}
	return strings.Join(lines, "\n")
}

// parseAIPicks decodes the model reply, stripping any markdown code fences
// the model wrapped around the JSON despite instructions.
func parseAIPicks(reply string) ([]aiPick, error) {
	text := strings.ReplaceAll(reply, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var picks []aiPick
	if err := json.Unmarshal([]byte(text), &picks); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadAIReply, err)
	}
	return picks, nil
}

// matchPicks resolves AI titles back to pool entries. Titles match
// case-insensitively against the first pool entry with that title; picks
// that match nothing are dropped. A missing rank numbers the pick by its
// position in the matched list.
func matchPicks(picks []aiPick, pool []models.MovieSummary) []models.RecommendedMovie {
	matched := make([]models.RecommendedMovie, 0, len(picks))
	for _, pick := range picks {
		for _, movie := range pool {
			if !strings.EqualFold(movie.Title, pick.Title) {
				continue
			}

			rank := pick.Rank
			if rank == 0 {
				rank = len(matched) + 1
			}
			matched = append(matched, models.RecommendedMovie{
				MovieSummary: movie,
				AIReason:     pick.Reason,
				MoodMatch:    pick.MoodMatch,
				Tag:          pick.Tag,
				Rank:         rank,
			})
			break
		}
	}
	return matched
}

// padByRating fills picks up to six entries with the highest rated unused
// pool movies, and caps oversized AI output at six.
func padByRating(picks []models.RecommendedMovie, pool []models.MovieSummary) []models.RecommendedMovie {
	if picks == nil {
		picks = make([]models.RecommendedMovie, 0, finalRecommendationCount)
	}
	if len(picks) > finalRecommendationCount {
		picks = picks[:finalRecommendationCount]
	}

	used := make(map[int]bool, len(picks))
	for _, p := range picks {
		used[p.ID] = true
	}

	ranked := make([]models.MovieSummary, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	for _, movie := range ranked {
		if len(picks) >= finalRecommendationCount {
			break
		}
		if used[movie.ID] {
			continue
		}
		used[movie.ID] = true
		picks = append(picks, models.RecommendedMovie{
			MovieSummary: movie,
			AIReason:     "Highly rated match for your preferences.",
			Tag:          "Top Rated",
			Rank:         len(picks) + 1,
		})
	}

	return picks
}
