// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package catalog

import (
	"sort"
	"strings"

	"github.com/tomtom215/albumatlas/internal/models"
)

// SortCatalog orders items in place: known years first, newest year first,
// then creator and name ascending, case-insensitive. Exact-case comparison
// breaks remaining ties so the order is total.
func SortCatalog(items []models.EnrichedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return lessItem(&items[i], &items[j])
	})
}

func lessItem(a, b *models.EnrichedItem) bool {
	if ak, bk := a.HasKnownYear(), b.HasKnownYear(); ak != bk {
		return ak
	}
	if a.ReleaseYear != b.ReleaseYear {
		return a.ReleaseYear > b.ReleaseYear
	}
	if c := compareFold(a.CreatorName, b.CreatorName); c != 0 {
		return c < 0
	}
	if c := compareFold(a.Name, b.Name); c != 0 {
		return c < 0
	}
	if a.CreatorName != b.CreatorName {
		return a.CreatorName < b.CreatorName
	}
	return a.Name < b.Name
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
