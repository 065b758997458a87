// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

/*
Package sources talks to the two upstream album indexes.

The primary source (a Last.fm-compatible tag index) supplies candidate albums
per category tag. The secondary source (a Discogs-compatible release index)
supplies release years, cover art and identifiers.

# Components

  - LastFMClient: tag.gettopalbums lookups
  - TagFetcher: parallel per-tag fan-out with per-tag failure isolation
  - DiscogsClient: database/search lookups
  - CircuitBreakerSearcher: sony/gobreaker protection for the release index
  - Scheduler: stagger, concurrency slots and a token bucket for the release index
  - Enricher: per-item lookups with 429 retry and degraded fallback

# Errors

Every client failure is a *SourceError carrying a Kind. Callers branch on
KindOf(err) or AsRateLimited(err), never on error strings.

# Rate Limiting

A 429 response with Retry-After (delta-seconds or HTTP-date) is retried no
sooner than the directed delay. Without the header the enricher waits
attempt x retry_base_delay. Directed delays above max_retry_after degrade
the item instead of stalling the build.
*/
package sources
