// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package catalog

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/albumatlas/internal/cache"
	"github.com/tomtom215/albumatlas/internal/models"
)

type fakeCatalog struct {
	mu        sync.Mutex
	snap      cache.Snapshot
	afterWait *cache.Snapshot
	snapshots int
	waits     int
	waitCtx   context.Context
}

func (c *fakeCatalog) Snapshot() cache.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots++
	return c.snap
}

func (c *fakeCatalog) Wait(ctx context.Context) cache.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waits++
	c.waitCtx = ctx
	if c.afterWait != nil {
		c.snap = *c.afterWait
	}
	return c.snap
}

func (c *fakeCatalog) Peek() cache.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func loadedCatalog(items ...models.EnrichedItem) *fakeCatalog {
	return &fakeCatalog{snap: cache.Snapshot{
		State:   cache.StateLoaded,
		Items:   items,
		BuildID: "b1",
		BuiltAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}
}

func sampleItems() []models.EnrichedItem {
	items := []models.EnrichedItem{
		enriched("A", "a", 1995),
		enriched("B", "b", 1991),
		enriched("C", "c", 1972),
		enriched("D", "d", 1950),
		enriched("E", "e", 0),
	}
	SortCatalog(items)
	return items
}

func newTestService(t *testing.T, c Catalog) *Service {
	t.Helper()
	return NewService(c, mustIndex(t), time.Second)
}

func TestService_SelectDecade(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, loadedCatalog(sampleItems()...))

	tests := []struct {
		slug string
		want []string
	}{
		{"all", []string{"A/a", "B/b", "C/c", "D/d", "E/e"}},
		{"1990s", []string{"A/a", "B/b"}},
		{"1970s", []string{"C/c"}},
		{"older", []string{"D/d", "E/e"}},
		{"2010s", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			filter, ok := svc.Lookup(tt.slug)
			if !ok {
				t.Fatalf("Lookup(%q) failed", tt.slug)
			}
			sel := svc.SelectDecade(context.Background(), filter, QueryOptions{})
			if sel.Status != models.StatusReady {
				t.Errorf("Status = %q, want ready", sel.Status)
			}
			if got := labels(sel.Items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Items = %v, want %v", got, tt.want)
			}
			if sel.Total != len(tt.want) {
				t.Errorf("Total = %d, want %d", sel.Total, len(tt.want))
			}
			if sel.BuildID != "b1" || sel.Filter.Slug != tt.slug {
				t.Errorf("BuildID = %q, Filter = %+v", sel.BuildID, sel.Filter)
			}
		})
	}
}

func TestService_SelectDecade_Loading(t *testing.T) {
	t.Parallel()

	c := &fakeCatalog{snap: cache.Snapshot{State: cache.StateLoading, BuildID: "b2"}}
	svc := newTestService(t, c)
	all, _ := svc.Lookup("all")

	sel := svc.SelectDecade(context.Background(), all, QueryOptions{})
	if sel.Status != models.StatusLoading {
		t.Errorf("Status = %q, want loading", sel.Status)
	}
	if sel.Items == nil || len(sel.Items) != 0 {
		t.Errorf("Items = %#v, want empty non-nil", sel.Items)
	}
	if c.waits != 0 {
		t.Errorf("Wait called %d times without opts.Wait", c.waits)
	}
	if c.snapshots != 1 {
		t.Errorf("Snapshot called %d times, want 1", c.snapshots)
	}
}

func TestService_SelectDecade_Empty(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, loadedCatalog())
	all, _ := svc.Lookup("all")

	sel := svc.SelectDecade(context.Background(), all, QueryOptions{})
	if sel.Status != models.StatusEmpty {
		t.Errorf("Status = %q, want empty", sel.Status)
	}
}

func TestService_SelectDecade_Wait(t *testing.T) {
	t.Parallel()

	loaded := cache.Snapshot{State: cache.StateLoaded, Items: sampleItems(), BuildID: "b3"}
	c := &fakeCatalog{
		snap:      cache.Snapshot{State: cache.StateLoading, BuildID: "b3"},
		afterWait: &loaded,
	}
	svc := newTestService(t, c)
	nineties, _ := svc.Lookup("1990s")

	sel := svc.SelectDecade(context.Background(), nineties, QueryOptions{Wait: true})
	if sel.Status != models.StatusReady || len(sel.Items) != 2 {
		t.Fatalf("SelectDecade(wait) = %q with %d items", sel.Status, len(sel.Items))
	}
	if c.waits != 1 {
		t.Errorf("Wait called %d times, want 1", c.waits)
	}
	if _, ok := c.waitCtx.Deadline(); !ok {
		t.Error("wait context has no deadline")
	}
}

func TestService_SelectDecade_WaitSkippedWhenLoaded(t *testing.T) {
	t.Parallel()

	c := loadedCatalog(sampleItems()...)
	svc := newTestService(t, c)
	all, _ := svc.Lookup("all")

	svc.SelectDecade(context.Background(), all, QueryOptions{Wait: true})
	if c.waits != 0 {
		t.Errorf("Wait called %d times on a loaded catalog", c.waits)
	}
}

func TestService_SelectDecade_Pagination(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, loadedCatalog(sampleItems()...))
	all, _ := svc.Lookup("all")

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []string
	}{
		{"first page", 0, 2, []string{"A/a", "B/b"}},
		{"second page", 2, 2, []string{"C/c", "D/d"}},
		{"tail", 4, 2, []string{"E/e"}},
		{"past end", 10, 2, []string{}},
		{"negative offset", -3, 1, []string{"A/a"}},
		{"no limit", 3, 0, []string{"D/d", "E/e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := svc.SelectDecade(context.Background(), all, QueryOptions{Offset: tt.offset, Limit: tt.limit})
			if got := labels(sel.Items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Items = %v, want %v", got, tt.want)
			}
			if sel.Total != 5 {
				t.Errorf("Total = %d, want 5", sel.Total)
			}
		})
	}
}

func TestService_SelectDecade_Repeatable(t *testing.T) {
	t.Parallel()

	c := loadedCatalog(sampleItems()...)
	svc := newTestService(t, c)
	all, _ := svc.Lookup("all")

	first := svc.SelectDecade(context.Background(), all, QueryOptions{})
	first.Items[0].Name = "mutated"

	second := svc.SelectDecade(context.Background(), all, QueryOptions{})
	if second.Items[0].Name != "a" {
		t.Errorf("second query saw mutation: %q", second.Items[0].Name)
	}
	if c.snap.Items[0].Name != "a" {
		t.Error("query result aliases the master catalog")
	}
}

func TestService_Status(t *testing.T) {
	t.Parallel()

	c := loadedCatalog(sampleItems()...)
	report := newTestService(t, c).Status()
	if report.State != "loaded" || report.Items != 5 || report.BuildID != "b1" {
		t.Errorf("Status() = %+v", report)
	}
	if report.BuiltAt == nil || !report.BuiltAt.Equal(c.snap.BuiltAt) {
		t.Errorf("BuiltAt = %v", report.BuiltAt)
	}
	if c.snapshots != 0 {
		t.Error("Status() triggered a build")
	}

	empty := newTestService(t, &fakeCatalog{snap: cache.Snapshot{State: cache.StateEmpty, LastError: "boom"}}).Status()
	if empty.State != "empty" || empty.BuiltAt != nil || empty.LastError != "boom" {
		t.Errorf("Status() on empty = %+v", empty)
	}
}

func TestService_Decades(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, loadedCatalog())
	d := svc.Decades()
	if len(d) != 9 || d[0].Slug != SlugAll || d[len(d)-1].Slug != SlugOlder {
		t.Errorf("Decades() = %+v", d)
	}
}
