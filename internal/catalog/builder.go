// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/models"
	"github.com/tomtom215/albumatlas/internal/sources"
)

// Build stages reported to progress observers.
const (
	StageFetching     = "fetching_tags"
	StageFetched      = "tags_fetched"
	StageDeduplicated = "deduplicated"
	StageEnriching    = "enriching"
	StageSorted       = "sorted"
)

// ProgressEvent describes one step of a catalog build.
type ProgressEvent struct {
	BuildID string `json:"build_id"`
	Stage   string `json:"stage"`
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Failed  int    `json:"failed,omitempty"`
}

// ProgressObserver receives build progress. Calls are serialized.
type ProgressObserver interface {
	BuildProgress(ev ProgressEvent)
}

// TagFetcher fans out tag lookups.
type TagFetcher interface {
	FetchAll(ctx context.Context, tags []string) ([]models.RawTagItem, sources.TagFetchReport, error)
}

// ItemEnricher enriches unique items.
type ItemEnricher interface {
	EnrichAll(ctx context.Context, items []models.UniqueItem, progress sources.ProgressFunc) ([]models.EnrichedItem, sources.EnrichReport, error)
}

// Builder runs the fetch, dedup, enrich and sort pipeline.
type Builder struct {
	fetcher     TagFetcher
	enricher    ItemEnricher
	tags        []string
	maxItems    int
	placeholder string

	mu        sync.Mutex
	observers []ProgressObserver
}

// NewBuilder creates a pipeline over fetcher and enricher.
func NewBuilder(fetcher TagFetcher, enricher ItemEnricher, cfg *config.Config) *Builder {
	return &Builder{
		fetcher:     fetcher,
		enricher:    enricher,
		tags:        append([]string(nil), cfg.Primary.Tags...),
		maxItems:    cfg.Catalog.MaxItems,
		placeholder: cfg.Catalog.PlaceholderImage,
	}
}

// AddObserver registers o for progress events.
func (b *Builder) AddObserver(o ProgressObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

// Build produces the sorted master catalog. An empty unique set is a valid,
// empty result. Build fails only when ctx is done.
func (b *Builder) Build(ctx context.Context) ([]models.EnrichedItem, error) {
	log := logging.Ctx(ctx)
	buildID := logging.CorrelationIDFromContext(ctx)
	tags := sources.NormalizeTags(b.tags)

	b.emit(ProgressEvent{BuildID: buildID, Stage: StageFetching, Total: len(tags)})
	raw, report, err := b.fetcher.FetchAll(ctx, tags)
	if err != nil {
		return nil, fmt.Errorf("fetch tags: %w", err)
	}
	b.emit(ProgressEvent{
		BuildID: buildID,
		Stage:   StageFetched,
		Done:    report.Succeeded,
		Total:   report.Tags,
		Failed:  len(report.Failed),
	})

	unique := Deduplicate(raw, b.maxItems, b.placeholder)
	log.Info().Int("raw", len(raw)).Int("unique", len(unique)).Int("cap", b.maxItems).Msg("Deduplicated tag results")
	b.emit(ProgressEvent{BuildID: buildID, Stage: StageDeduplicated, Done: len(unique), Total: len(raw)})

	if len(unique) == 0 {
		log.Warn().Int("failed_tags", len(report.Failed)).Msg("No albums found for any tag")
		return []models.EnrichedItem{}, nil
	}

	enriched, _, err := b.enricher.EnrichAll(ctx, unique, func(done, total int) {
		b.emit(ProgressEvent{BuildID: buildID, Stage: StageEnriching, Done: done, Total: total})
	})
	if err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}

	SortCatalog(enriched)
	b.emit(ProgressEvent{BuildID: buildID, Stage: StageSorted, Done: len(enriched), Total: len(enriched)})
	return enriched, nil
}

func (b *Builder) emit(ev ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range b.observers {
		o.BuildProgress(ev)
	}
}
