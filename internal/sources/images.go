// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"strings"

	"github.com/tomtom215/albumatlas/internal/models"
)

// imagePreference lists size labels from most to least preferred.
var imagePreference = []string{
	models.ImageSizeExtraLarge,
	models.ImageSizeLarge,
	models.ImageSizeMedium,
	models.ImageSizeSmall,
}

// BestImage returns the preferred usable URL among variants: the first
// non-empty URL by size preference, then the first non-empty URL of any size.
func BestImage(variants []models.ImageVariant) (string, bool) {
	for _, size := range imagePreference {
		for _, v := range variants {
			if !strings.EqualFold(strings.TrimSpace(v.Size), size) {
				continue
			}
			if u := strings.TrimSpace(v.URL); u != "" {
				return u, true
			}
		}
	}
	for _, v := range variants {
		if u := strings.TrimSpace(v.URL); u != "" {
			return u, true
		}
	}
	return "", false
}

// SelectImage returns BestImage or placeholder when no variant is usable.
func SelectImage(variants []models.ImageVariant, placeholder string) string {
	if u, ok := BestImage(variants); ok {
		return u
	}
	return placeholder
}

// isSpacerImage reports whether u is a blank spacer graphic rather than
// real cover art.
func isSpacerImage(u string) bool {
	return strings.Contains(strings.ToLower(u), "spacer.gif")
}
