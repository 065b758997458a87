// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

/*
Package models defines the data structures shared across AlbumAtlas.

Items move through three shapes as a catalog is built:

  - RawTagItem: one album from a single tag lookup on the primary source
  - UniqueItem: one album per normalized (creator, name) key after dedup
  - EnrichedItem: a UniqueItem merged with secondary release data

Every EnrichedItem carries an EnrichmentStatus. Items that could not be
enriched are produced with Degraded, which keeps the primary image as the
cover and leaves the release year unknown (zero).

DecadeFilter and CatalogStatus describe catalog queries and their results.
NormalizeKey is the single definition of album identity; the fetcher,
deduplicator and enricher all use it.
*/
package models
