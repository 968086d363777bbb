// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/cinematch/cinematch/internal/gemini"
	"github.com/cinematch/cinematch/internal/logging"
	"github.com/cinematch/cinematch/internal/models"
	"github.com/cinematch/cinematch/internal/tmdb"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
// This includes newlines, carriage returns, tabs, and other control characters that could
// allow attackers to forge log entries or corrupt log files.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		// Replace control characters (0x00-0x1F and 0x7F) with a safe representation
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	etag := generateETag(data)
	w.Header().Set("ETag", etag)

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends the uniform {"error": message} body.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}

// decodeRequestBody decodes a JSON request body into dst. An empty body is
// valid and leaves dst at its zero value, matching a request with every
// field omitted.
func decodeRequestBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// logUpstreamDegraded records why a movie endpoint served its empty-value
// shape. A missing credential is an expected state and logs at debug; real
// upstream failures log at error.
func logUpstreamDegraded(endpoint string, err error) {
	if errors.Is(err, tmdb.ErrUnconfigured) {
		logging.Debug().Str("endpoint", endpoint).Msg("TMDB not configured, serving empty result")
		return
	}
	logging.Error().Err(err).Str("endpoint", endpoint).Msg("TMDB request failed, serving empty result")
}

// fallbackReason classifies an AI failure for the fallback metric.
func fallbackReason(err error) string {
	switch {
	case errors.Is(err, gemini.ErrUnconfigured):
		return "unconfigured"
	case errors.Is(err, gemini.ErrQuotaExhausted):
		return "quota"
	case errors.Is(err, errBadAIReply):
		return "parse_error"
	default:
		return "upstream_error"
	}
}

// snippet clips s to its first n characters. Clipping is rune-aware so
// multi-byte titles and overviews never split mid-character.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

// orDefault substitutes fallback for an empty preference value.
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
