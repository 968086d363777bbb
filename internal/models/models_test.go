// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package models

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

// TestHealthResponseWireShape pins the exact health body consumed by
// deployment probes and the frontend.
func TestHealthResponseWireShape(t *testing.T) {
	body, err := json.Marshal(HealthResponse{Status: "healthy"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"status":"healthy","gemini_configured":false,"tmdb_configured":false}`
	if string(body) != want {
		t.Errorf("health body = %s, want %s", body, want)
	}
}

// TestMovieSummaryZeroValueKeys verifies that a summary built from a sparse
// upstream payload still serializes every key with an explicit zero value.
func TestMovieSummaryZeroValueKeys(t *testing.T) {
	body, err := json.Marshal(MovieSummary{Title: "Unknown", Genres: []int{}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, key := range []string{
		`"id":0`, `"title":"Unknown"`, `"year":""`, `"rating":0`, `"votes":0`,
		`"overview":""`, `"poster":""`, `"backdrop":""`, `"genres":[]`,
		`"language":""`, `"popularity":0`,
	} {
		if !strings.Contains(string(body), key) {
			t.Errorf("serialized summary missing %s: %s", key, body)
		}
	}
}

// TestRecommendedMovieFlattens verifies the embedded summary fields and the
// AI metadata share one JSON object level.
func TestRecommendedMovieFlattens(t *testing.T) {
	m := RecommendedMovie{
		MovieSummary: MovieSummary{ID: 27205, Title: "Inception", Genres: []int{28}},
		AIReason:     "A heist inside dreams.",
		MoodMatch:    "92%",
		Tag:          "Mind Bender",
		Rank:         1,
	}

	body, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if _, ok := decoded["id"]; !ok {
		t.Error("embedded summary id should be a top-level key")
	}
	if _, ok := decoded["ai_reason"]; !ok {
		t.Error("ai_reason should be a top-level key")
	}
	if _, ok := decoded["MovieSummary"]; ok {
		t.Error("embedded struct must flatten, not nest")
	}
}

// TestRecommendResponseErrorKey verifies error only appears on the
// no-results shape.
func TestRecommendResponseErrorKey(t *testing.T) {
	withMovies, err := json.Marshal(RecommendResponse{
		Movies: []RecommendedMovie{},
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(withMovies), `"error"`) {
		t.Errorf("success shape should omit error key: %s", withMovies)
	}

	noResults, err := json.Marshal(RecommendResponse{
		Movies: []RecommendedMovie{},
		Error:  "No movies found",
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(noResults), `"error":"No movies found"`) {
		t.Errorf("no-results shape should carry error key: %s", noResults)
	}
	if !strings.Contains(string(noResults), `"movies":[]`) {
		t.Errorf("no-results shape should keep empty movies list: %s", noResults)
	}
}
