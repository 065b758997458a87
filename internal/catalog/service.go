// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package catalog

import (
	"context"
	"time"

	"github.com/tomtom215/albumatlas/internal/cache"
	"github.com/tomtom215/albumatlas/internal/metrics"
	"github.com/tomtom215/albumatlas/internal/models"
)

// QueryOptions controls SelectDecade.
type QueryOptions struct {
	// Wait blocks until an in-flight build finishes, bounded by the
	// service's maximum wait and the caller's context.
	Wait bool

	Offset int
	Limit  int // 0 = no limit
}

// Selection is the result of a decade query.
type Selection struct {
	Status  models.CatalogStatus  `json:"status"`
	Filter  models.DecadeFilter   `json:"decade"`
	Items   []models.EnrichedItem `json:"items"`
	Total   int                   `json:"total"`
	BuildID string                `json:"build_id,omitempty"`
}

// StatusReport describes the master catalog for operators.
type StatusReport struct {
	State     string     `json:"state"`
	Items     int        `json:"items"`
	BuildID   string     `json:"build_id,omitempty"`
	BuiltAt   *time.Time `json:"built_at,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// Catalog is the master catalog as seen by the query service.
type Catalog interface {
	Snapshot() cache.Snapshot
	Wait(ctx context.Context) cache.Snapshot
	Peek() cache.Snapshot
}

// Service answers decade queries from the master catalog.
type Service struct {
	master  Catalog
	index   *DecadeIndex
	maxWait time.Duration
}

// NewService creates a query service.
func NewService(master Catalog, index *DecadeIndex, maxWait time.Duration) *Service {
	return &Service{master: master, index: index, maxWait: maxWait}
}

// Decades returns the available filters in display order.
func (s *Service) Decades() []models.DecadeFilter {
	return s.index.Filters()
}

// Lookup resolves a decade slug.
func (s *Service) Lookup(slug string) (models.DecadeFilter, bool) {
	return s.index.Lookup(slug)
}

// SelectDecade returns the catalog items matching filter. The first query
// starts the catalog build; until it completes the status is loading.
func (s *Service) SelectDecade(ctx context.Context, filter models.DecadeFilter, opts QueryOptions) Selection {
	snap := s.master.Snapshot()
	if snap.State != cache.StateLoaded && opts.Wait {
		waitCtx := ctx
		if s.maxWait > 0 {
			var cancel context.CancelFunc
			waitCtx, cancel = context.WithTimeout(ctx, s.maxWait)
			defer cancel()
		}
		snap = s.master.Wait(waitCtx)
	}

	sel := Selection{Filter: filter, BuildID: snap.BuildID, Items: []models.EnrichedItem{}}
	switch {
	case snap.State != cache.StateLoaded:
		sel.Status = models.StatusLoading
	case len(snap.Items) == 0:
		sel.Status = models.StatusEmpty
	default:
		sel.Status = models.StatusReady
		matched := s.index.Apply(filter, snap.Items)
		sel.Total = len(matched)
		sel.Items = paginate(matched, opts.Offset, opts.Limit)
	}

	metrics.RecordCatalogQuery(filter.Slug, string(sel.Status))
	return sel
}

// Status reports the master catalog state without starting a build.
func (s *Service) Status() StatusReport {
	snap := s.master.Peek()
	report := StatusReport{
		State:     snap.State.String(),
		Items:     len(snap.Items),
		BuildID:   snap.BuildID,
		LastError: snap.LastError,
	}
	if !snap.BuiltAt.IsZero() {
		builtAt := snap.BuiltAt
		report.BuiltAt = &builtAt
	}
	return report
}

func paginate(items []models.EnrichedItem, offset, limit int) []models.EnrichedItem {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []models.EnrichedItem{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
