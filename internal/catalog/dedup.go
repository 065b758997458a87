// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package catalog

import (
	"strings"

	"github.com/tomtom215/albumatlas/internal/models"
	"github.com/tomtom215/albumatlas/internal/sources"
)

// Deduplicate collapses items to one UniqueItem per normalized
// (creator, name) key. The first occurrence in input order wins, items with
// a blank name or creator are dropped, and at most maxItems are returned
// (maxItems <= 0 means no cap).
func Deduplicate(items []models.RawTagItem, maxItems int, placeholder string) []models.UniqueItem {
	capacity := len(items)
	if maxItems > 0 && maxItems < capacity {
		capacity = maxItems
	}

	seen := make(map[string]struct{}, capacity)
	out := make([]models.UniqueItem, 0, capacity)

	for i := range items {
		if maxItems > 0 && len(out) >= maxItems {
			break
		}
		raw := &items[i]
		key, ok := models.NormalizeKey(raw.Name, raw.CreatorName)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, models.UniqueItem{
			Name:           strings.TrimSpace(raw.Name),
			CreatorName:    strings.TrimSpace(raw.CreatorName),
			NormalizedKey:  key,
			SourceTag:      raw.SourceTag,
			ChosenImageURL: sources.SelectImage(raw.Images, placeholder),
			ExternalRefID:  raw.ExternalID,
		})
	}
	return out
}
