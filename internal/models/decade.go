// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package models

// DecadeFilter selects a year range from the master catalog.
// Both bounds unset means "all". The oldest bucket has no start bound and an
// end bound equal to the index's oldest boundary; it also matches unknown years.
type DecadeFilter struct {
	Label     string `json:"label"`
	Slug      string `json:"slug"`
	StartYear *int   `json:"start_year,omitempty"`
	EndYear   *int   `json:"end_year,omitempty"`
}

// IsAll reports whether the filter has no bounds.
func (f DecadeFilter) IsAll() bool {
	return f.StartYear == nil && f.EndYear == nil
}

// CatalogStatus is the caller-visible state of a catalog query.
type CatalogStatus string

const (
	StatusLoading CatalogStatus = "loading"
	StatusReady   CatalogStatus = "ready"
	StatusEmpty   CatalogStatus = "empty"
)
