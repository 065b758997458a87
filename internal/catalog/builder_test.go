// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/models"
	"github.com/tomtom215/albumatlas/internal/sources"
)

type fakeFetcher struct {
	items   []models.RawTagItem
	report  sources.TagFetchReport
	err     error
	gotTags []string
}

func (f *fakeFetcher) FetchAll(_ context.Context, tags []string) ([]models.RawTagItem, sources.TagFetchReport, error) {
	f.gotTags = tags
	return f.items, f.report, f.err
}

// yearEnricher assigns years by album name and reports progress per item.
type yearEnricher struct {
	years map[string]int
	err   error
	calls int
}

func (e *yearEnricher) EnrichAll(_ context.Context, items []models.UniqueItem, progress sources.ProgressFunc) ([]models.EnrichedItem, sources.EnrichReport, error) {
	e.calls++
	if e.err != nil {
		return nil, sources.EnrichReport{}, e.err
	}
	out := make([]models.EnrichedItem, 0, len(items))
	for i, it := range items {
		en := models.Degraded(it, models.EnrichmentNotFound)
		if y, ok := e.years[it.Name]; ok {
			en.ReleaseYear = y
			en.EnrichmentStatus = models.EnrichmentEnriched
		}
		out = append(out, en)
		if progress != nil {
			progress(i+1, len(items))
		}
	}
	return out, sources.EnrichReport{Total: len(items)}, nil
}

type progressLog struct {
	events []ProgressEvent
}

func (p *progressLog) BuildProgress(ev ProgressEvent) {
	p.events = append(p.events, ev)
}

func (p *progressLog) stages() []string {
	var out []string
	for _, ev := range p.events {
		if len(out) > 0 && out[len(out)-1] == ev.Stage {
			continue
		}
		out = append(out, ev.Stage)
	}
	return out
}

func testConfig(tags ...string) *config.Config {
	return &config.Config{
		Primary: config.PrimaryConfig{Tags: tags},
		Catalog: config.CatalogConfig{MaxItems: 300, PlaceholderImage: placeholder},
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		items: []models.RawTagItem{
			raw("jazz", "Miles Davis", "Kind of Blue"),
			raw("jazz", "Unknown Band", "Demo"),
			raw("rock", "miles davis", "kind of blue"),
			raw("rock", "Radiohead", "Kid A"),
		},
		report: sources.TagFetchReport{Tags: 2, Succeeded: 2},
	}
	enricher := &yearEnricher{years: map[string]int{"Kind of Blue": 1959, "Kid A": 2000}}
	progress := &progressLog{}

	b := NewBuilder(fetcher, enricher, testConfig("Rock", "jazz", "rock "))
	b.AddObserver(progress)

	ctx := logging.ContextWithCorrelationID(context.Background(), "build-1")
	items, err := b.Build(ctx)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !reflect.DeepEqual(fetcher.gotTags, []string{"jazz", "rock"}) {
		t.Errorf("fetched tags = %v, want normalized [jazz rock]", fetcher.gotTags)
	}

	want := []string{"Radiohead/Kid A", "Miles Davis/Kind of Blue", "Unknown Band/Demo"}
	if got := labels(items); !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}

	wantStages := []string{StageFetching, StageFetched, StageDeduplicated, StageEnriching, StageSorted}
	if got := progress.stages(); !reflect.DeepEqual(got, wantStages) {
		t.Errorf("stages = %v, want %v", got, wantStages)
	}
	for _, ev := range progress.events {
		if ev.BuildID != "build-1" {
			t.Errorf("event %s BuildID = %q, want build-1", ev.Stage, ev.BuildID)
		}
	}
	last := progress.events[len(progress.events)-1]
	if last.Done != 3 || last.Total != 3 {
		t.Errorf("final event = %+v", last)
	}
}

func TestBuilder_EmptyUniqueSet(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		items: []models.RawTagItem{raw("rock", "", "Nameless")},
		report: sources.TagFetchReport{
			Tags:   1,
			Failed: []sources.TagFailure{{Tag: "jazz", Kind: sources.KindTransport}},
		},
	}
	enricher := &yearEnricher{}

	items, err := NewBuilder(fetcher, enricher, testConfig("rock")).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("Build() = %#v, want non-nil empty slice", items)
	}
	if enricher.calls != 0 {
		t.Errorf("enricher called %d times for empty set", enricher.calls)
	}
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	t.Run("fetch", func(t *testing.T) {
		t.Parallel()
		fetcher := &fakeFetcher{err: context.Canceled}
		_, err := NewBuilder(fetcher, &yearEnricher{}, testConfig("rock")).Build(context.Background())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Build() error = %v, want context.Canceled", err)
		}
	})

	t.Run("enrich", func(t *testing.T) {
		t.Parallel()
		fetcher := &fakeFetcher{items: []models.RawTagItem{raw("rock", "A", "B")}}
		enricher := &yearEnricher{err: context.DeadlineExceeded}
		_, err := NewBuilder(fetcher, enricher, testConfig("rock")).Build(context.Background())
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Build() error = %v, want context.DeadlineExceeded", err)
		}
	})
}

func TestBuilder_AppliesCap(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{items: []models.RawTagItem{
		raw("rock", "A", "1"), raw("rock", "B", "2"), raw("rock", "C", "3"),
	}}
	cfg := testConfig("rock")
	cfg.Catalog.MaxItems = 2

	items, err := NewBuilder(fetcher, &yearEnricher{}, cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}
