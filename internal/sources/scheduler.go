// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/metrics"
)

// Scheduler paces calls to a rate-limited source. It combines a per-item
// start stagger, a concurrency bound and a token bucket.
type Scheduler struct {
	limiter   *rate.Limiter
	slots     *semaphore.Weighted
	step      time.Duration
	jitterMax time.Duration

	// jitter returns a value in [0, n). Replaced in tests.
	jitter func(n int64) int64
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewScheduler creates a scheduler from the secondary config section.
func NewScheduler(cfg *config.SecondaryConfig) *Scheduler {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Scheduler{
		limiter:   rate.NewLimiter(limit, burst),
		slots:     semaphore.NewWeighted(int64(maxConcurrent)),
		step:      cfg.StaggerStep,
		jitterMax: cfg.JitterMax,
		jitter:    rand.Int64N,
		sleep:     sleepContext,
	}
}

// StaggerDelay returns the start delay for the item at position:
// position x step plus jitter in [0, jitterMax).
func (s *Scheduler) StaggerDelay(position int) time.Duration {
	delay := time.Duration(position) * s.step
	if s.jitterMax > 0 {
		delay += time.Duration(s.jitter(int64(s.jitterMax)))
	}
	return delay
}

// Stagger waits the start delay for position or until ctx is done.
func (s *Scheduler) Stagger(ctx context.Context, position int) error {
	return s.sleep(ctx, s.StaggerDelay(position))
}

// Acquire blocks until a concurrency slot and a rate token are available.
// The returned release must be called once the request completes and
// before any backoff sleep.
func (s *Scheduler) Acquire(ctx context.Context) (release func(), err error) {
	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	if err := s.limiter.Wait(ctx); err != nil {
		s.slots.Release(1)
		return nil, err
	}
	metrics.EnrichmentInFlight.Inc()

	released := false
	return func() {
		if released {
			return
		}
		released = true
		metrics.EnrichmentInFlight.Dec()
		s.slots.Release(1)
	}, nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
