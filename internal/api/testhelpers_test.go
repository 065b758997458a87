// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package api

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/albumatlas/internal/cache"
	"github.com/tomtom215/albumatlas/internal/catalog"
	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/models"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Output: io.Discard})
}

// stubCatalog is a master catalog with a fixed snapshot.
type stubCatalog struct {
	mu        sync.Mutex
	snap      cache.Snapshot
	triggered int
}

func (s *stubCatalog) Snapshot() cache.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggered++
	if s.snap.State == cache.StateEmpty {
		s.snap.State = cache.StateLoading
	}
	return s.snap
}

func (s *stubCatalog) Wait(context.Context) cache.Snapshot { return s.Peek() }

func (s *stubCatalog) Peek() cache.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func album(creator, name string, year int) models.EnrichedItem {
	return models.EnrichedItem{
		UniqueItem:       models.UniqueItem{Name: name, CreatorName: creator, ChosenImageURL: "img"},
		ReleaseYear:      year,
		CoverURL:         "cover",
		EnrichmentStatus: models.EnrichmentEnriched,
	}
}

func loadedStub() *stubCatalog {
	items := []models.EnrichedItem{
		album("Radiohead", "Kid A", 2000),
		album("Nirvana", "Nevermind", 1991),
		album("Pixies", "Doolittle", 1989),
		album("Miles Davis", "Kind of Blue", 1959),
		album("Nobody", "Lost Tapes", 0),
	}
	catalog.SortCatalog(items)
	return &stubCatalog{snap: cache.Snapshot{
		State:   cache.StateLoaded,
		Items:   items,
		BuildID: "build01",
		BuiltAt: time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC),
	}}
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"https://albums.example"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
	}
}

func newTestHandler(t *testing.T, c catalog.Catalog) *Handler {
	t.Helper()
	idx, err := catalog.NewDecadeIndex(2020, 1959)
	if err != nil {
		t.Fatal(err)
	}
	return NewHandler(catalog.NewService(c, idx, 100*time.Millisecond), nil, testConfig())
}
