// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package catalog

import (
	"fmt"
	"strings"

	"github.com/tomtom215/albumatlas/internal/models"
)

// Slugs of the two non-decade filters.
const (
	SlugAll   = "all"
	SlugOlder = "older"
)

// DecadeIndex is the ordered set of filters offered to consumers.
type DecadeIndex struct {
	filters   []models.DecadeFilter
	bySlug    map[string]models.DecadeFilter
	oldestEnd int
}

// NewDecadeIndex builds "All Time", one filter per decade from newest down
// to oldestEnd+1, and "Older" covering everything up to oldestEnd.
// newest must be a multiple of 10 and oldestEnd+1 a multiple of 10.
func NewDecadeIndex(newest, oldestEnd int) (*DecadeIndex, error) {
	if newest%10 != 0 || (oldestEnd+1)%10 != 0 || oldestEnd >= newest {
		return nil, fmt.Errorf("invalid decade bounds: newest=%d oldest_end=%d", newest, oldestEnd)
	}

	idx := &DecadeIndex{
		bySlug:    make(map[string]models.DecadeFilter),
		oldestEnd: oldestEnd,
	}
	idx.add(models.DecadeFilter{Label: "All Time", Slug: SlugAll})
	for start := newest; start > oldestEnd; start -= 10 {
		s, e := start, start+9
		label := fmt.Sprintf("%ds", start)
		idx.add(models.DecadeFilter{Label: label, Slug: label, StartYear: &s, EndYear: &e})
	}
	end := oldestEnd
	idx.add(models.DecadeFilter{Label: "Older", Slug: SlugOlder, EndYear: &end})
	return idx, nil
}

func (idx *DecadeIndex) add(f models.DecadeFilter) {
	idx.filters = append(idx.filters, f)
	idx.bySlug[f.Slug] = f
}

// Filters returns the filters in display order.
func (idx *DecadeIndex) Filters() []models.DecadeFilter {
	return append([]models.DecadeFilter(nil), idx.filters...)
}

// Lookup returns the filter for slug, case-insensitive.
func (idx *DecadeIndex) Lookup(slug string) (models.DecadeFilter, bool) {
	f, ok := idx.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	return f, ok
}

// Match reports whether year falls in f. Year 0 means unknown and matches
// only "All Time" and the oldest bucket.
func (idx *DecadeIndex) Match(f models.DecadeFilter, year int) bool {
	if f.IsAll() {
		return true
	}
	if f.StartYear == nil && f.EndYear != nil && *f.EndYear == idx.oldestEnd {
		return year == 0 || (year > 0 && year <= *f.EndYear)
	}
	if year == 0 {
		return false
	}
	if f.StartYear != nil && year < *f.StartYear {
		return false
	}
	if f.EndYear != nil && year > *f.EndYear {
		return false
	}
	return true
}

// Apply returns the items matching f in their original order. The result
// is always a new slice.
func (idx *DecadeIndex) Apply(f models.DecadeFilter, items []models.EnrichedItem) []models.EnrichedItem {
	out := make([]models.EnrichedItem, 0, len(items))
	for i := range items {
		if idx.Match(f, items[i].ReleaseYear) {
			out = append(out, items[i])
		}
	}
	return out
}
