// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/metrics"
)

// Breaker trip thresholds.
const (
	breakerMinRequests  = 10
	breakerFailureRatio = 0.6
	breakerInterval     = time.Minute
	breakerHalfOpenReqs = 3
)

// CircuitBreakerSearcher wraps a ReleaseSearcher with a circuit breaker.
//
// Rate-limited, not-found and canceled lookups are counted as successes:
// they show the source is reachable and must not open the circuit.
type CircuitBreakerSearcher struct {
	searcher ReleaseSearcher
	cb       *gobreaker.CircuitBreaker[interface{}]
	name     string
}

// NewCircuitBreakerSearcher wraps searcher. The circuit opens at a 60%
// failure rate over at least 10 requests and stays open for timeout.
func NewCircuitBreakerSearcher(searcher ReleaseSearcher, name string, timeout time.Duration) *CircuitBreakerSearcher {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerHalfOpenReqs,
		Interval:    breakerInterval,
		Timeout:     timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < breakerMinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= breakerFailureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			switch KindOf(err) {
			case "", KindRateLimited, KindNotFound, KindCanceled:
				return true
			default:
				return false
			}
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
	})

	return &CircuitBreakerSearcher{searcher: searcher, cb: cb, name: name}
}

// SearchRelease runs the wrapped lookup through the breaker. A rejected call
// fails with KindCircuitOpen.
func (s *CircuitBreakerSearcher) SearchRelease(ctx context.Context, artist, title string) (*Release, error) {
	return castResult[Release](s.execute(func() (interface{}, error) {
		return s.searcher.SearchRelease(ctx, artist, title)
	}))
}

// State returns the current breaker state as a string.
func (s *CircuitBreakerSearcher) State() string {
	return stateToString(s.cb.State())
}

func (s *CircuitBreakerSearcher) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			return nil, &SourceError{Source: SourceSecondary, Kind: KindCircuitOpen, Err: err}
		}
		counts := s.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(float64(counts.ConsecutiveFailures))
		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(0)
	return result, nil
}

// castResult type-casts the circuit breaker result.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

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
