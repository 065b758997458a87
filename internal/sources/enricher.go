// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/albumatlas/internal/cache"
	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/metrics"
	"github.com/tomtom215/albumatlas/internal/models"
)

// ProgressFunc receives enrichment progress. Calls are serialized and done
// is strictly increasing.
type ProgressFunc func(done, total int)

// EnrichReport counts items per enrichment status.
type EnrichReport struct {
	Total       int
	Enriched    int
	NotFound    int
	RateLimited int
	Failed      int
	CircuitOpen int
	Retries     int
}

func (r *EnrichReport) add(status string, retries int) {
	r.Retries += retries
	switch status {
	case models.EnrichmentEnriched:
		r.Enriched++
	case models.EnrichmentNotFound:
		r.NotFound++
	case models.EnrichmentRateLimited:
		r.RateLimited++
	case models.EnrichmentCircuitOpen:
		r.CircuitOpen++
	default:
		r.Failed++
	}
}

// Enricher merges secondary source data into unique items.
type Enricher struct {
	searcher      ReleaseSearcher
	scheduler     *Scheduler
	maxRetries    int
	baseDelay     time.Duration
	maxRetryAfter time.Duration

	// lookups memoizes definitive outcomes by normalized key. A nil
	// *Release records "not found". Nil when disabled.
	lookups *cache.LRU[*Release]

	sleep func(ctx context.Context, d time.Duration) error
}

// NewEnricher creates an enricher that paces searcher through scheduler.
func NewEnricher(searcher ReleaseSearcher, scheduler *Scheduler, cfg *config.SecondaryConfig) *Enricher {
	e := &Enricher{
		searcher:      searcher,
		scheduler:     scheduler,
		maxRetries:    cfg.MaxRetries,
		baseDelay:     cfg.RetryBaseDelay,
		maxRetryAfter: cfg.MaxRetryAfter,
		sleep:         sleepContext,
	}
	if cfg.LookupCacheSize > 0 {
		e.lookups = cache.NewLRU[*Release](cfg.LookupCacheSize, cfg.LookupCacheTTL)
	}
	return e
}

// EnrichAll enriches every item concurrently and returns the results in
// input order. Lookup failures degrade the affected item only; EnrichAll
// fails, with no partial result, only when ctx is done.
func (e *Enricher) EnrichAll(ctx context.Context, items []models.UniqueItem, progress ProgressFunc) ([]models.EnrichedItem, EnrichReport, error) {
	out := make([]models.EnrichedItem, len(items))
	retries := make([]int, len(items))

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := range items {
		g.Go(func() error {
			enriched, n, err := e.enrichOne(gctx, i, items[i])
			if err != nil {
				return err
			}
			out[i] = enriched
			retries[i] = n
			metrics.RecordEnrichment(enriched.EnrichmentStatus)

			mu.Lock()
			done++
			if progress != nil {
				progress(done, len(items))
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, EnrichReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, EnrichReport{}, err
	}

	report := EnrichReport{Total: len(items)}
	for i := range out {
		report.add(out[i].EnrichmentStatus, retries[i])
	}

	logging.Ctx(ctx).Info().
		Int("total", report.Total).
		Int("enriched", report.Enriched).
		Int("not_found", report.NotFound).
		Int("rate_limited", report.RateLimited).
		Int("failed", report.Failed).
		Int("circuit_open", report.CircuitOpen).
		Int("retries", report.Retries).
		Msg("Enrichment complete")

	return out, report, nil
}

// enrichOne resolves a single item. The returned error is non-nil only
// when ctx is done; every lookup failure becomes a degraded item.
func (e *Enricher) enrichOne(ctx context.Context, position int, item models.UniqueItem) (models.EnrichedItem, int, error) {
	if enriched, ok := e.memoized(item); ok {
		return enriched, 0, nil
	}
	if err := e.scheduler.Stagger(ctx, position); err != nil {
		return models.EnrichedItem{}, 0, err
	}

	log := logging.Ctx(ctx).With().
		Str("creator", logging.SanitizeField(item.CreatorName)).
		Str("album", logging.SanitizeField(item.Name)).
		Logger()

	for attempt := 0; ; attempt++ {
		release, err := e.scheduler.Acquire(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return models.EnrichedItem{}, attempt, ctx.Err()
			}
			return models.EnrichedItem{}, attempt, fmt.Errorf("scheduler: %w", err)
		}
		rel, err := e.searcher.SearchRelease(ctx, item.CreatorName, item.Name)
		release()

		if err == nil {
			e.remember(item, rel)
			return Merge(item, rel), attempt, nil
		}
		if ctx.Err() != nil {
			return models.EnrichedItem{}, attempt, ctx.Err()
		}

		rl, limited := AsRateLimited(err)
		if !limited {
			status := statusForKind(KindOf(err))
			if status == models.EnrichmentNotFound {
				e.remember(item, nil)
			} else {
				log.Debug().Err(err).Str("status", status).Msg("Enrichment degraded")
			}
			return models.Degraded(item, status), attempt, nil
		}

		if attempt >= e.maxRetries {
			log.Warn().Int("attempts", attempt+1).Msg("Rate limit retries exhausted, degrading item")
			return models.Degraded(item, models.EnrichmentRateLimited), attempt, nil
		}

		delay := time.Duration(attempt+1) * e.baseDelay
		if rl.HasRetryAfter {
			if rl.RetryAfter > e.maxRetryAfter {
				log.Warn().Dur("retry_after", rl.RetryAfter).Dur("max", e.maxRetryAfter).
					Msg("Directed retry delay too long, degrading item")
				return models.Degraded(item, models.EnrichmentRateLimited), attempt, nil
			}
			delay = rl.RetryAfter
		}

		log.Debug().Int("attempt", attempt+1).Dur("delay", delay).Msg("Rate limited, backing off")
		metrics.RecordRetry(SourceSecondary, delay)
		if err := e.sleep(ctx, delay); err != nil {
			return models.EnrichedItem{}, attempt, err
		}
	}
}

func (e *Enricher) memoized(item models.UniqueItem) (models.EnrichedItem, bool) {
	if e.lookups == nil || item.NormalizedKey == "" {
		return models.EnrichedItem{}, false
	}
	rel, ok := e.lookups.Get(item.NormalizedKey)
	if !ok {
		return models.EnrichedItem{}, false
	}
	if rel == nil {
		return models.Degraded(item, models.EnrichmentNotFound), true
	}
	return Merge(item, rel), true
}

func (e *Enricher) remember(item models.UniqueItem, rel *Release) {
	if e.lookups != nil && item.NormalizedKey != "" {
		e.lookups.Add(item.NormalizedKey, rel)
	}
}

// statusForKind maps a non-rate-limit failure to an enrichment status.
func statusForKind(kind Kind) string {
	switch kind {
	case KindNotFound:
		return models.EnrichmentNotFound
	case KindCircuitOpen:
		return models.EnrichmentCircuitOpen
	case KindRateLimited:
		return models.EnrichmentRateLimited
	default:
		return models.EnrichmentFailed
	}
}

// Merge combines item with a secondary source match.
func Merge(item models.UniqueItem, rel *Release) models.EnrichedItem {
	out := models.EnrichedItem{
		UniqueItem:       item,
		ReleaseYearRaw:   rel.Year,
		ReleaseYear:      ParseYear(rel.Year),
		CoverURL:         item.ChosenImageURL,
		EnrichmentStatus: models.EnrichmentEnriched,
	}
	if rel.ID != 0 {
		id := rel.ID
		out.SecondaryID = &id
	}
	if rel.MasterID != 0 {
		mid := rel.MasterID
		out.MasterID = &mid
	}
	if rel.CoverImage != "" && !isSpacerImage(rel.CoverImage) {
		out.CoverURL = rel.CoverImage
	}
	return out
}

// ParseYear returns the year encoded by the leading four digits of raw,
// or 0 when raw does not start with a plausible year.
func ParseYear(raw string) int {
	if len(raw) < 4 {
		return 0
	}
	year := 0
	for i := 0; i < 4; i++ {
		c := raw[i]
		if c < '0' || c > '9' {
			return 0
		}
		year = year*10 + int(c-'0')
	}
	if len(raw) > 4 && raw[4] >= '0' && raw[4] <= '9' {
		return 0
	}
	return year
}
