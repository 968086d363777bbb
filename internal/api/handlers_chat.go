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
	"strings"

	"github.com/cinematch/cinematch/internal/logging"
	"github.com/cinematch/cinematch/internal/metrics"
	"github.com/cinematch/cinematch/internal/models"
	"github.com/cinematch/cinematch/internal/tmdb"
	"github.com/cinematch/cinematch/internal/validation"
)

const (
	// chatSearchQueryLength bounds how much of the message becomes the
	// grounding search query.
	chatSearchQueryLength = 60

	// chatGroundingResults is how many search hits go into the grounding
	// context line.
	chatGroundingResults = 3
)

// Fixed replies for the degraded chat states. The endpoint answers 200 with
// one of these instead of an error status so the conversation UI never
// breaks.
const (
	replyEmptyMessage  = "Please ask me something!"
	replyAIUnavailable = "AI chat is currently unavailable. Please check your API configuration."
	replyAIError       = "I'm having trouble connecting right now. Please try again!"
)

// chatTriggers are the substrings that mark a message as movie discovery
// intent worth grounding with live search results.
var chatTriggers = []string{"find", "recommend", "suggest", "best", "top", "watch", "movie", "film", "show"}

// Chat handles conversational AI requests.
//
// Messages that read like movie discovery get a grounding context line of
// live TMDB search results appended before the model sees them. An empty
// message, a missing AI credential, and every model failure all answer 200
// with a fixed fallback reply.
//
// @Summary Chat with the movie assistant
// @Description Sends the message and recent history to the generative model, grounding discovery questions with live TMDB search results. Degraded states answer 200 with a fixed fallback reply.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Message and conversation history"
// @Success 200 {object} models.ChatResponse "Assistant reply"
// @Failure 400 {object} models.ErrorResponse "Malformed body or invalid history"
// @Router /api/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeRequestBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Message())
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		respondJSON(w, http.StatusOK, models.ChatResponse{Reply: replyEmptyMessage})
		return
	}

	if !h.ai.Configured() {
		metrics.RecordAIFallback("chat", "unconfigured")
		respondJSON(w, http.StatusOK, models.ChatResponse{Reply: replyAIUnavailable})
		return
	}

	fullMessage := message + h.groundingContext(r.Context(), message)

	reply, err := h.ai.Chat(r.Context(), req.History, fullMessage)
	if err != nil {
		metrics.RecordAIFallback("chat", fallbackReason(err))
		logging.Error().Err(err).Msg("Chat error")
		respondJSON(w, http.StatusOK, models.ChatResponse{Reply: replyAIError})
		return
	}

	respondJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

// groundingContext returns a context line of live search results when the
// message reads like movie discovery, or "" when it does not. The line is
// appended to the outgoing message, never shown to the user. Search
// failures (including an unconfigured TMDB credential) drop the grounding
// silently; the chat still goes out.
func (h *Handler) groundingContext(ctx context.Context, message string) string {
	if !hasChatTrigger(message) {
		return ""
	}

	results, err := h.movies.Search(ctx, snippet(message, chatSearchQueryLength))
	if err != nil {
		if !errors.Is(err, tmdb.ErrUnconfigured) {
			logging.Warn().Err(err).Msg("Chat grounding search failed")
		}
		return ""
	}
	if len(results) == 0 {
		return ""
	}
	if len(results) > chatGroundingResults {
		results = results[:chatGroundingResults]
	}

	entries := make([]string, 0, len(results))
	for _, m := range results {
		entries = append(entries, fmt.Sprintf("%s (%s, ⭐%.1f)", m.Title, m.Year, m.Rating))
	}
	return "\n\nRelevant TMDB results: " + strings.Join(entries, ", ")
}

// hasChatTrigger reports whether the lowercased message contains any
// discovery keyword.
func hasChatTrigger(message string) bool {
	lower := strings.ToLower(message)
	for _, trigger := range chatTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
