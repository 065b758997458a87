// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/models"
)

// searchFunc adapts a function to ReleaseSearcher.
type searchFunc func(ctx context.Context, artist, title string) (*Release, error)

func (f searchFunc) SearchRelease(ctx context.Context, artist, title string) (*Release, error) {
	return f(ctx, artist, title)
}

// tagFunc adapts a function to TagSource.
type tagFunc func(ctx context.Context, tag string, limit int) ([]models.RawTagItem, error)

func (f tagFunc) TopAlbumsForTag(ctx context.Context, tag string, limit int) ([]models.RawTagItem, error) {
	return f(ctx, tag, limit)
}

// sleepRecorder records requested sleeps and returns immediately.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *sleepRecorder) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

func testSecondaryConfig() *config.SecondaryConfig {
	return &config.SecondaryConfig{
		RequestsPerSecond: 0,
		Burst:             1,
		MaxConcurrent:     4,
		MaxRetries:        2,
		RetryBaseDelay:    2 * time.Second,
		MaxRetryAfter:     time.Minute,
	}
}

// newTestEnricher builds an enricher whose stagger and backoff sleeps are
// recorded instead of waited.
func newTestEnricher(searcher ReleaseSearcher) (*Enricher, *sleepRecorder, *sleepRecorder) {
	cfg := testSecondaryConfig()
	stagger := &sleepRecorder{}
	backoff := &sleepRecorder{}

	sched := NewScheduler(cfg)
	sched.sleep = stagger.sleep

	e := NewEnricher(searcher, sched, cfg)
	e.sleep = backoff.sleep
	return e, stagger, backoff
}

func uniqueItem(creator, name string) models.UniqueItem {
	key, _ := models.NormalizeKey(name, creator)
	return models.UniqueItem{
		Name:           name,
		CreatorName:    creator,
		NormalizedKey:  key,
		SourceTag:      "jazz",
		ChosenImageURL: "https://img/primary-" + name + ".png",
	}
}
