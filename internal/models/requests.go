// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package models

// RecommendRequest carries the user's stated preferences for the
// recommendation flow. Every field is optional free text from the frontend
// preference picker; empty fields simply drop out of the discovery filters
// and the AI prompt.
//
// The subGenre key is camelCase on the wire because the frontend sends it
// that way.
type RecommendRequest struct {
	Genre     string `json:"genre" validate:"omitempty,max=100"`
	SubGenre  string `json:"subGenre" validate:"omitempty,max=100"`
	Language  string `json:"language" validate:"omitempty,max=100"`
	Mood      string `json:"mood" validate:"omitempty,max=200"`
	Context   string `json:"context" validate:"omitempty,max=200"`
	Era       string `json:"era" validate:"omitempty,max=100"`
	Favorites string `json:"favorites" validate:"omitempty,max=500"`
}

// ChatTurn is one prior turn of the chat conversation. Role is "user" or
// "model" following the Gemini content roles.
type ChatTurn struct {
	Role string `json:"role" validate:"omitempty,oneof=user model"`
	Text string `json:"text" validate:"max=2000"`
}

// ChatRequest carries a chat message plus trailing conversation history.
// An empty message is valid; the handler answers it with a fixed prompt
// instead of calling the AI.
type ChatRequest struct {
	Message string     `json:"message" validate:"max=2000"`
	History []ChatTurn `json:"history" validate:"max=20,dive"`
}
