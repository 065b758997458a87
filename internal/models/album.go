// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package models

import "strings"

// keySeparator joins the creator and name halves of a normalized key.
// ASCII unit separator never appears in trimmed display names.
const keySeparator = "\x1f"

// Image size labels reported by the primary source, best first.
const (
	ImageSizeExtraLarge = "extralarge"
	ImageSizeLarge      = "large"
	ImageSizeMedium     = "medium"
	ImageSizeSmall      = "small"
)

// Enrichment outcomes recorded on every EnrichedItem.
const (
	EnrichmentEnriched    = "enriched"
	EnrichmentNotFound    = "not_found"
	EnrichmentRateLimited = "rate_limited"
	EnrichmentFailed      = "failed"
	EnrichmentCircuitOpen = "circuit_open"
)

// ImageVariant is one labeled image URL from the primary source.
type ImageVariant struct {
	Size string `json:"size"`
	URL  string `json:"url"`
}

// RawTagItem is a single album as returned for one tag lookup.
// It is consumed by deduplication and then discarded.
type RawTagItem struct {
	Name          string         `json:"name"`
	CreatorName   string         `json:"creator_name"`
	NormalizedKey string         `json:"-"`
	SourceTag     string         `json:"source_tag"`
	Rank          int            `json:"rank"`
	ExternalID    string         `json:"external_id,omitempty"`
	Images        []ImageVariant `json:"images,omitempty"`
}

// UniqueItem is one album per distinct normalized key.
type UniqueItem struct {
	Name           string `json:"name"`
	CreatorName    string `json:"creator_name"`
	NormalizedKey  string `json:"-"`
	SourceTag      string `json:"source_tag"`
	ChosenImageURL string `json:"image_url"`
	ExternalRefID  string `json:"external_ref_id,omitempty"`
}

// EnrichedItem is a UniqueItem merged with secondary source data.
// Values are write-once; the master catalog only ever holds copies.
type EnrichedItem struct {
	UniqueItem

	ReleaseYearRaw   string `json:"release_year_raw,omitempty"`
	ReleaseYear      int    `json:"release_year"` // 0 = unknown
	SecondaryID      *int64 `json:"secondary_id,omitempty"`
	MasterID         *int64 `json:"master_id,omitempty"`
	CoverURL         string `json:"cover_url"`
	EnrichmentStatus string `json:"enrichment_status"`
}

// HasKnownYear reports whether the release year was resolved.
func (e *EnrichedItem) HasKnownYear() bool {
	return e.ReleaseYear > 0
}

// Degraded builds the fallback EnrichedItem used when no secondary data is
// available: unknown year and the primary source's best image.
func Degraded(item UniqueItem, status string) EnrichedItem {
	return EnrichedItem{
		UniqueItem:       item,
		CoverURL:         item.ChosenImageURL,
		EnrichmentStatus: status,
	}
}

// NormalizeKey returns the case-insensitive dedup key for a (name, creator)
// pair. ok is false when either half is blank after trimming.
func NormalizeKey(name, creator string) (key string, ok bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	c := strings.ToLower(strings.TrimSpace(creator))
	if n == "" || c == "" {
		return "", false
	}
	return c + keySeparator + n, true
}
