// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package tmdb

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

// BreakerClient wraps a Client with the circuit breaker pattern so a failing
// TMDB backend gets room to recover instead of absorbing a request per page
// load.
//
// DETERMINISM NOTE: the breaker uses real time (via sony/gobreaker) for its
// interval and timeout calculations. Tests that need failure-state behavior
// should construct a breaker with shortened settings or stub the wrapped
// client rather than waiting out production timeouts.
type BreakerClient struct {
	inner Client
	cb    *gobreaker.CircuitBreaker[interface{}]
	name  string
}

// NewBreakerClient wraps inner with a circuit breaker.
//
// Breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
//
// ErrNotFound counts as success: a missing movie is a valid upstream answer,
// and a burst of lookups for unknown IDs must not take the whole gateway
// down. An unconfigured client never enters the breaker at all.
func NewBreakerClient(inner Client) *BreakerClient {
	cbName := "tmdb-api"

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,               // Allow 3 concurrent requests in half-open state
		Interval:    time.Minute,     // Reset counts after 1 minute in closed state
		Timeout:     2 * time.Minute, // Wait 2 minutes before transitioning from open to half-open

		// ReadyToTrip determines when to open the circuit
		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false // Need at least 10 requests for statistical significance
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening TMDB circuit")
			}

			return shouldTrip
		},

		// OnStateChange is called whenever the circuit breaker changes state
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			// Reset consecutive failures when transitioning to closed
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// IsSuccessful keeps not-found lookups out of the failure counts.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
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

// ListTrending delegates through the circuit breaker.
func (bc *BreakerClient) ListTrending(ctx context.Context, media, window string) ([]models.MovieSummary, error) {
	if !bc.inner.Configured() {
		return nil, ErrUnconfigured
	}
	return castResult[[]models.MovieSummary](bc.execute(func() (interface{}, error) {
		return bc.inner.ListTrending(ctx, media, window)
	}))
}

// Search delegates through the circuit breaker.
func (bc *BreakerClient) Search(ctx context.Context, query string) ([]models.MovieSummary, error) {
	if !bc.inner.Configured() {
		return nil, ErrUnconfigured
	}
	return castResult[[]models.MovieSummary](bc.execute(func() (interface{}, error) {
		return bc.inner.Search(ctx, query)
	}))
}

// Discover delegates through the circuit breaker.
func (bc *BreakerClient) Discover(ctx context.Context, filters DiscoverFilters) ([]models.MovieSummary, error) {
	if !bc.inner.Configured() {
		return nil, ErrUnconfigured
	}
	return castResult[[]models.MovieSummary](bc.execute(func() (interface{}, error) {
		return bc.inner.Discover(ctx, filters)
	}))
}

// GetByID delegates through the circuit breaker. The detail aggregation in
// the wrapped client counts as a single breaker request.
func (bc *BreakerClient) GetByID(ctx context.Context, id int) (*models.MovieDetail, error) {
	if !bc.inner.Configured() {
		return nil, ErrUnconfigured
	}
	return castResult[*models.MovieDetail](bc.execute(func() (interface{}, error) {
		return bc.inner.GetByID(ctx, id)
	}))
}

// ListGenres delegates through the circuit breaker.
func (bc *BreakerClient) ListGenres(ctx context.Context) ([]models.Genre, error) {
	if !bc.inner.Configured() {
		return nil, ErrUnconfigured
	}
	return castResult[[]models.Genre](bc.execute(func() (interface{}, error) {
		return bc.inner.ListGenres(ctx)
	}))
}

// GetProviders delegates through the circuit breaker.
func (bc *BreakerClient) GetProviders(ctx context.Context, id int) ([]models.Provider, error) {
	if !bc.inner.Configured() {
		return nil, ErrUnconfigured
	}
	return castResult[[]models.Provider](bc.execute(func() (interface{}, error) {
		return bc.inner.GetProviders(ctx, id)
	}))
}

// GetExternalIDs delegates through the circuit breaker.
func (bc *BreakerClient) GetExternalIDs(ctx context.Context, id int) (*models.ExternalIDs, error) {
	if !bc.inner.Configured() {
		return nil, ErrUnconfigured
	}
	return castResult[*models.ExternalIDs](bc.execute(func() (interface{}, error) {
		return bc.inner.GetExternalIDs(ctx, id)
	}))
}

// execute wraps a TMDB call with circuit breaker protection and records
// request outcome metrics.
func (bc *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := bc.cb.Execute(fn)

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			// Circuit is open or too many concurrent requests in half-open state
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", bc.name).Msg("[CIRCUIT BREAKER] Request rejected")
		case errors.Is(err, ErrNotFound):
			// The breaker counted this as success; mirror that in the metrics.
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "failure").Inc()

			counts := bc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(bc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(bc.name).Set(0)

	return result, nil
}

// castResult converts the breaker's untyped result back to the operation's
// return type.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
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
