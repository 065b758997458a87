// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/albumatlas/internal/config"
)

func TestScheduler_StaggerDelay(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&config.SecondaryConfig{
		MaxConcurrent: 1,
		StaggerStep:   50 * time.Millisecond,
		JitterMax:     250 * time.Millisecond,
	})
	s.jitter = func(n int64) int64 {
		if n != int64(250*time.Millisecond) {
			t.Errorf("jitter bound = %d", n)
		}
		return int64(10 * time.Millisecond)
	}

	tests := []struct {
		position int
		want     time.Duration
	}{
		{0, 10 * time.Millisecond},
		{1, 60 * time.Millisecond},
		{10, 510 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := s.StaggerDelay(tt.position); got != tt.want {
			t.Errorf("StaggerDelay(%d) = %v, want %v", tt.position, got, tt.want)
		}
	}
}

func TestScheduler_JitterStaysInRange(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&config.SecondaryConfig{MaxConcurrent: 1, JitterMax: 5 * time.Millisecond})
	for i := 0; i < 200; i++ {
		d := s.StaggerDelay(0)
		if d < 0 || d >= 5*time.Millisecond {
			t.Fatalf("StaggerDelay(0) = %v, want [0, 5ms)", d)
		}
	}
}

func TestScheduler_StaggerCanceled(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&config.SecondaryConfig{MaxConcurrent: 1, StaggerStep: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Stagger(ctx, 3); !errors.Is(err, context.Canceled) {
		t.Errorf("Stagger() = %v, want context.Canceled", err)
	}
}

func TestScheduler_AcquireBoundsConcurrency(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&config.SecondaryConfig{MaxConcurrent: 2})

	var (
		active  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := s.Acquire(context.Background())
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			n := active.Add(1)
			for {
				m := maxSeen.Load()
				if n <= m || maxSeen.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
			release()
		}()
	}
	wg.Wait()

	if got := maxSeen.Load(); got > 2 {
		t.Errorf("max concurrent = %d, want <= 2", got)
	}
}

func TestScheduler_AcquireCanceledWhileWaiting(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&config.SecondaryConfig{MaxConcurrent: 1})
	release, err := s.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := s.Acquire(ctx); err == nil {
		t.Error("Acquire() with held slot and expired ctx = nil error")
	}
}

func TestScheduler_ReleaseIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&config.SecondaryConfig{MaxConcurrent: 1})
	release, err := s.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	release()
	release()

	// A double release must not free a second slot.
	r1, err := s.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer r1()
	if s.slots.TryAcquire(1) {
		t.Error("second slot available after double release")
	}
}

func TestScheduler_RateLimit(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&config.SecondaryConfig{MaxConcurrent: 4, RequestsPerSecond: 50, Burst: 1})

	start := time.Now()
	for i := 0; i < 4; i++ {
		release, err := s.Acquire(context.Background())
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		release()
	}
	// Burst of 1 at 50/s: three waits of ~20ms.
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("4 acquisitions took %v, want >= 50ms", elapsed)
	}
}
