// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/cinematch/cinematch/internal/logging"
	"github.com/cinematch/cinematch/internal/metrics"
	"github.com/cinematch/cinematch/internal/models"
)

// BreakerClient wraps a Client with the circuit breaker pattern. A model
// outage then degrades in microseconds instead of holding every chat request
// for the full upstream timeout.
type BreakerClient struct {
	inner Client
	cb    *gobreaker.CircuitBreaker[interface{}]
	name  string
}

// NewBreakerClient wraps inner with a circuit breaker using the same
// settings as the TMDB gateway: max 3 half-open probes, 1 minute measurement
// window, 2 minute recovery timeout, opening at a 60% failure rate over at
// least 10 requests.
//
// ErrQuotaExhausted counts as success for tripping purposes: pacing and
// provider throttling are budget signals, not outages, and must not blow the
// circuit open for two minutes. Unconfigured calls never enter the breaker.
func NewBreakerClient(inner Client) *BreakerClient {
	cbName := "gemini-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false // Need at least 10 requests for statistical significance
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening Gemini circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// IsSuccessful keeps quota rejections out of the failure counts.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrQuotaExhausted)
		},
	})

	return &BreakerClient{
		inner: inner,
		cb:    cb,
		name:  cbName,
	}
}

// Configured reports whether the wrapped client has an API key.
func (bc *BreakerClient) Configured() bool {
	return bc.inner.Configured()
}

// GenerateText delegates through the circuit breaker.
func (bc *BreakerClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !bc.inner.Configured() {
		return "", ErrUnconfigured
	}
	return bc.execute(func() (interface{}, error) {
		return bc.inner.GenerateText(ctx, prompt)
	})
}

// Chat delegates through the circuit breaker.
func (bc *BreakerClient) Chat(ctx context.Context, history []models.ChatTurn, message string) (string, error) {
	if !bc.inner.Configured() {
		return "", ErrUnconfigured
	}
	return bc.execute(func() (interface{}, error) {
		return bc.inner.Chat(ctx, history, message)
	})
}

// execute wraps a Gemini call with circuit breaker protection and records
// request outcome metrics. Both operations return strings, so the unwrap is
// inlined rather than going through a generic cast.
func (bc *BreakerClient) execute(fn func() (interface{}, error)) (string, error) {
	result, err := bc.cb.Execute(fn)

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", bc.name).Msg("[CIRCUIT BREAKER] Request rejected")
		case errors.Is(err, ErrQuotaExhausted):
			// The breaker counted this as success; mirror that in the metrics.
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "failure").Inc()

			counts := bc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(bc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(bc.name).Set(0)

	text, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return text, nil
}

// stateToFloat converts circuit breaker state to a numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

var _ Client = (*BreakerClient)(nil)
