// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - TMDB upstream call performance
// - Gemini upstream call performance and quota pacing
// - Circuit breaker state
// - Recommendation outcomes (AI-ranked vs rating fallback)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// TMDB Upstream Metrics
	TMDBRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_tmdb_requests_total",
			Help: "Total number of TMDB API requests",
		},
		[]string{"operation", "outcome"}, // outcome: "success", "error"
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Gemini Upstream Metrics
	GeminiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_gemini_requests_total",
			Help: "Total number of Gemini API requests",
		},
		[]string{"operation", "outcome"}, // outcome: "success", "error"
	)

	GeminiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_gemini_request_duration_seconds",
			Help:    "Duration of Gemini API requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30}, // Generation can take tens of seconds
		},
		[]string{"operation"},
	)

	GeminiTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_gemini_tokens_total",
			Help: "Total number of Gemini tokens consumed",
		},
		[]string{"kind"}, // "prompt", "candidates"
	)

	GeminiQuotaRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_gemini_quota_rejections_total",
			Help: "Total number of Gemini calls rejected by the local request pacer",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_recommendations_total",
			Help: "Total number of recommended movies served",
		},
		[]string{"source"}, // "ai", "rating"
	)

	AIFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_ai_fallbacks_total",
			Help: "Total number of responses degraded to a non-AI fallback",
		},
		[]string{"endpoint", "reason"}, // reason: "unconfigured", "quota", "upstream_error", "parse_error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinematch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinematch_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinematch_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the HTTP rate limiter
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordTMDBRequest records a TMDB upstream call and its outcome
func RecordTMDBRequest(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	TMDBRequestsTotal.WithLabelValues(operation, outcome).Inc()
	TMDBRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordGeminiRequest records a Gemini upstream call and its outcome
func RecordGeminiRequest(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	GeminiRequestsTotal.WithLabelValues(operation, outcome).Inc()
	GeminiRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordGeminiUsage records token consumption reported by the Gemini API
func RecordGeminiUsage(promptTokens, candidateTokens int) {
	if promptTokens > 0 {
		GeminiTokensTotal.WithLabelValues("prompt").Add(float64(promptTokens))
	}
	if candidateTokens > 0 {
		GeminiTokensTotal.WithLabelValues("candidates").Add(float64(candidateTokens))
	}
}

// RecordQuotaRejection records a Gemini call rejected before it was sent
func RecordQuotaRejection() {
	GeminiQuotaRejections.Inc()
}

// RecordRecommendations records how many recommended movies were served and
// whether AI ranking or the rating fallback produced them
func RecordRecommendations(source string, count int) {
	if count > 0 {
		RecommendationsTotal.WithLabelValues(source).Add(float64(count))
	}
}

// RecordAIFallback records a response that degraded to a non-AI fallback
func RecordAIFallback(endpoint, reason string) {
	AIFallbacksTotal.WithLabelValues(endpoint, reason).Inc()
}
