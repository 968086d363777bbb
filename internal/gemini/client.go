// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Package gemini implements the client for Google's Gemini generative AI
// API (v1beta REST surface).
//
// The client carries a fixed CineMatch persona as the system instruction on
// every request and paces itself with a local token bucket sized for the
// free tier, rejecting immediately when the budget is spent instead of
// queueing browser requests behind a rate limit. Like the TMDB client it
// makes exactly one attempt per call and leaves degradation to the HTTP
// handlers.
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/cinematch/cinematch/internal/config"
	"github.com/cinematch/cinematch/internal/logging"
	"github.com/cinematch/cinematch/internal/metrics"
	"github.com/cinematch/cinematch/internal/models"
)

var (
	// ErrUnconfigured is returned when no Gemini API key is set. Checked
	// before any network activity or limiter accounting.
	ErrUnconfigured = errors.New("gemini: api key not configured")

	// ErrQuotaExhausted is returned when the local pacing budget is spent or
	// the upstream answers 429. Callers fall back rather than retry.
	ErrQuotaExhausted = errors.New("gemini: request quota exhausted")
)

const (
	// maxErrorBodySize limits how much of an upstream error body is read
	// into error messages (64KB).
	maxErrorBodySize = 64 * 1024

	// maxHistoryTurns caps how much chat history is replayed per request.
	// Older turns are dropped from the front.
	maxHistoryTurns = 6

	roleUser  = "user"
	roleModel = "model"
)

// systemInstruction is the CineMatch persona sent with every request.
const systemInstruction = `You are CineMatch AI, a cinematic and enthusiastic movie recommendation expert.
You have deep knowledge of world cinema — Hollywood, Bollywood, Tollywood, Korean, and beyond.
When recommending movies, be specific, insightful, and passionate.
Always respond in valid JSON when asked for structured data.
For chat responses, be conversational, warm, and knowledgeable.`

// Client defines the generative AI operations the API layer depends on.
//
// Both operations return ErrUnconfigured without network activity when no
// API key is set and ErrQuotaExhausted when the pacing budget is spent. The
// handlers translate every error into a canned responder-friendly reply.
type Client interface {
	// Configured reports whether an API key is present.
	Configured() bool

	// GenerateText runs a single-turn generation for prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Chat runs a multi-turn generation: the last 6 history turns followed
	// by message as the closing user turn.
	Chat(ctx context.Context, history []models.ChatTurn, message string) (string, error)
}

// HTTPClient is the production Gemini client.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPClient creates a Gemini client from configuration. A
// RequestsPerMinute of zero or less disables local pacing.
func NewHTTPClient(cfg *config.GeminiConfig) *HTTPClient {
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
			cfg.RequestsPerMinute,
		)
	}

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
	}
}

// Configured reports whether an API key is present.
func (c *HTTPClient) Configured() bool {
	return c.apiKey != ""
}

// GenerateText runs a single-turn generation.
func (c *HTTPClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []content{
		{Role: roleUser, Parts: []part{{Text: prompt}}},
	}
	return c.generate(ctx, "generate", contents)
}

// Chat replays up to the last 6 history turns and appends message as the
// closing user turn. Turns without a role default to the user role.
func (c *HTTPClient) Chat(ctx context.Context, history []models.ChatTurn, message string) (string, error) {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		role := turn.Role
		if role == "" {
			role = roleUser
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: turn.Text}}})
	}
	contents = append(contents, content{Role: roleUser, Parts: []part{{Text: message}}})

	return c.generate(ctx, "chat", contents)
}

// generate runs the configuration and pacing gates, then makes the upstream
// call. Pacing rejections are counted separately from upstream requests.
func (c *HTTPClient) generate(ctx context.Context, op string, contents []content) (string, error) {
	if !c.Configured() {
		return "", ErrUnconfigured
	}
	if c.limiter != nil && !c.limiter.Allow() {
		metrics.RecordQuotaRejection()
		logging.Warn().Str("operation", op).Msg("Gemini request rejected by local pacing budget")
		return "", ErrQuotaExhausted
	}

	start := time.Now()
	text, err := c.makeRequest(ctx, contents)
	metrics.RecordGeminiRequest(op, time.Since(start), err)
	return text, err
}

// makeRequest performs a single :generateContent POST and extracts the first
// candidate's text. An upstream 429 maps onto ErrQuotaExhausted so callers
// treat provider throttling and local pacing the same way.
func (c *HTTPClient) makeRequest(ctx context.Context, contents []content) (string, error) {
	reqBody := generateContentRequest{
		Contents: contents,
		SystemInstruction: &content{
			Parts: []part{{Text: systemInstruction}},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logging.Debug().Str("model", c.model).Int("turns", len(contents)).Msg("Gemini request")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach Gemini: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("upstream throttled: %w", ErrQuotaExhausted)
	}
	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return "", fmt.Errorf("generateContent failed with status %d: %s", resp.StatusCode, string(body))
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode generateContent response: %w", err)
	}

	if usage := out.UsageMetadata; usage != nil {
		metrics.RecordGeminiUsage(usage.PromptTokenCount, usage.CandidatesTokenCount)
	}

	text := out.text()
	if text == "" {
		return "", errors.New("gemini returned no candidate text")
	}
	return text, nil
}

// readBodyForError reads a response body for error reporting, bounded by
// maxErrorBodySize.
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

var _ Client = (*HTTPClient)(nil)
