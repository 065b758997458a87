// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/metrics"
	"github.com/tomtom215/albumatlas/internal/models"
)

// TagFailure records one tag whose lookup failed.
type TagFailure struct {
	Tag  string
	Kind Kind
	Err  error
}

// TagFetchReport summarizes a FetchAll call.
type TagFetchReport struct {
	Tags      int
	Succeeded int
	Failed    []TagFailure
	Items     int
}

// TagFetcher fans out lookups over many tags against a TagSource.
type TagFetcher struct {
	source        TagSource
	limit         int
	maxConcurrent int
	limiter       *rate.Limiter // nil = unpaced
}

// NewTagFetcher creates a fetcher from the primary config section.
func NewTagFetcher(source TagSource, cfg *config.PrimaryConfig) *TagFetcher {
	f := &TagFetcher{
		source:        source,
		limit:         cfg.TagLimit,
		maxConcurrent: cfg.MaxConcurrent,
	}
	if cfg.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return f
}

// NormalizeTags trims, lowercases, deduplicates and sorts tags. Blank tags
// are dropped.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FetchAll looks up every tag in parallel and returns the concatenation of
// the per-tag results in sorted tag order, each tag's items in rank order.
//
// A failed tag contributes no items and is listed in the report; it never
// affects the other lookups. FetchAll itself fails only when ctx is done.
func (f *TagFetcher) FetchAll(ctx context.Context, tags []string) ([]models.RawTagItem, TagFetchReport, error) {
	tags = NormalizeTags(tags)
	report := TagFetchReport{Tags: len(tags)}

	// Each goroutine writes only its own index.
	perTag := make([][]models.RawTagItem, len(tags))
	failures := make([]*TagFailure, len(tags))

	var g errgroup.Group
	if f.maxConcurrent > 0 {
		g.SetLimit(f.maxConcurrent)
	}

	for i, tag := range tags {
		g.Go(func() error {
			items, err := f.fetchTag(ctx, tag)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				kind := KindOf(err)
				logging.Ctx(ctx).Warn().Err(err).
					Str("tag", tag).
					Str("kind", string(kind)).
					Msg("Tag lookup failed, continuing without it")
				metrics.RecordTagFetch(0, string(kind))

				failures[i] = &TagFailure{Tag: tag, Kind: kind, Err: err}
				return nil
			}
			metrics.RecordTagFetch(len(items), "")
			perTag[i] = items
			return nil
		})
	}
	_ = g.Wait() // per-tag errors are recorded, never returned

	if err := ctx.Err(); err != nil {
		return nil, report, err
	}

	var out []models.RawTagItem
	for i := range tags {
		if failures[i] != nil {
			report.Failed = append(report.Failed, *failures[i])
			continue
		}
		report.Succeeded++
		out = append(out, perTag[i]...)
	}
	report.Items = len(out)

	logging.Ctx(ctx).Info().
		Int("tags", report.Tags).
		Int("succeeded", report.Succeeded).
		Int("failed", len(report.Failed)).
		Int("items", report.Items).
		Msg("Tag fan-out complete")

	return out, report, nil
}

func (f *TagFetcher) fetchTag(ctx context.Context, tag string) ([]models.RawTagItem, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, &SourceError{Source: SourcePrimary, Kind: KindCanceled, Err: err}
		}
	}

	items, err := f.source.TopAlbumsForTag(ctx, tag, f.limit)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Rank < items[b].Rank
	})
	if f.limit > 0 && len(items) > f.limit {
		items = items[:f.limit]
	}
	for i := range items {
		items[i].SourceTag = tag
	}
	return items, nil
}
