// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/models"
)

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	got := NormalizeTags([]string{" Rock", "jazz", "", "rock ", "Blues", "  "})
	want := []string{"blues", "jazz", "rock"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags() = %v, want %v", got, want)
	}
}

func TestTagFetcher_FetchAllOrderAndIsolation(t *testing.T) {
	t.Parallel()

	source := tagFunc(func(ctx context.Context, tag string, limit int) ([]models.RawTagItem, error) {
		switch tag {
		case "jazz":
			// Returned out of rank order on purpose.
			return []models.RawTagItem{
				{Name: "Blue Train", CreatorName: "John Coltrane", Rank: 2},
				{Name: "Kind of Blue", CreatorName: "Miles Davis", Rank: 1},
			}, nil
		case "blues":
			time.Sleep(10 * time.Millisecond)
			return []models.RawTagItem{{Name: "King of the Delta Blues Singers", CreatorName: "Robert Johnson", Rank: 1}}, nil
		case "metal":
			return nil, &SourceError{Source: SourcePrimary, Kind: KindAPIError, Err: errors.New("tag not found")}
		default:
			return nil, nil
		}
	})

	f := NewTagFetcher(source, &config.PrimaryConfig{TagLimit: 30})
	items, report, err := f.FetchAll(context.Background(), []string{"Metal", "jazz", "blues", "ambient"})
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}

	var got []string
	for _, it := range items {
		got = append(got, it.SourceTag+"/"+it.Name)
	}
	want := []string{
		"blues/King of the Delta Blues Singers",
		"jazz/Kind of Blue",
		"jazz/Blue Train",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}

	if report.Tags != 4 || report.Succeeded != 3 || report.Items != 3 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Failed) != 1 || report.Failed[0].Tag != "metal" || report.Failed[0].Kind != KindAPIError {
		t.Errorf("report.Failed = %+v", report.Failed)
	}
}

func TestTagFetcher_AllFail(t *testing.T) {
	t.Parallel()

	source := tagFunc(func(ctx context.Context, tag string, limit int) ([]models.RawTagItem, error) {
		return nil, &SourceError{Source: SourcePrimary, Kind: KindTransport, Err: errors.New("connection refused")}
	})

	items, report, err := NewTagFetcher(source, &config.PrimaryConfig{TagLimit: 30}).
		FetchAll(context.Background(), []string{"rock", "pop"})
	if err != nil {
		t.Fatalf("FetchAll() error = %v, want nil", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
	if len(report.Failed) != 2 || report.Succeeded != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestTagFetcher_RespectsConcurrencyAndLimit(t *testing.T) {
	t.Parallel()

	var active, maxSeen atomic.Int32
	source := tagFunc(func(ctx context.Context, tag string, limit int) ([]models.RawTagItem, error) {
		if limit != 2 {
			t.Errorf("limit = %d, want 2", limit)
		}
		n := active.Add(1)
		defer active.Add(-1)
		for {
			m := maxSeen.Load()
			if n <= m || maxSeen.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return []models.RawTagItem{
			{Name: "a", CreatorName: "x", Rank: 1},
			{Name: "b", CreatorName: "x", Rank: 2},
			{Name: "c", CreatorName: "x", Rank: 3},
		}, nil
	})

	f := NewTagFetcher(source, &config.PrimaryConfig{TagLimit: 2, MaxConcurrent: 2})
	items, _, err := f.FetchAll(context.Background(), []string{"a", "b", "c", "d", "e", "f"})
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(items) != 12 {
		t.Errorf("len(items) = %d, want 12 (limit enforced per tag)", len(items))
	}
	if got := maxSeen.Load(); got > 2 {
		t.Errorf("max concurrent lookups = %d, want <= 2", got)
	}
}

func TestTagFetcher_Canceled(t *testing.T) {
	t.Parallel()

	source := tagFunc(func(ctx context.Context, tag string, limit int) ([]models.RawTagItem, error) {
		<-ctx.Done()
		return nil, &SourceError{Source: SourcePrimary, Kind: KindCanceled, Err: ctx.Err()}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	items, _, err := NewTagFetcher(source, &config.PrimaryConfig{TagLimit: 30}).FetchAll(ctx, []string{"rock"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("FetchAll() error = %v, want deadline exceeded", err)
	}
	if items != nil {
		t.Errorf("items = %v, want nil", items)
	}
}
