// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

/*
Package cache holds the in-memory state of AlbumAtlas.

# Master catalog

Master owns the single enriched catalog of the process and its build
lifecycle:

	empty --Snapshot/Load--> loading --build ok--> loaded
	                            |
	                            +--build failed/canceled--> empty

Only one build runs at a time. Callers that arrive while a build is in
flight share its result. A loaded catalog is never rebuilt; a failed build
leaves the master empty so the next Snapshot starts a fresh one. Snapshot
items share the stored slice and are read-only.

	m := cache.NewMaster(ctx, builder.Build, 30*time.Minute)
	m.AddObserver(hub)
	snap := m.Snapshot() // starts the build, returns immediately

# Lookup memo

LRU is a generic least recently used cache with a fixed TTL. The enricher
keeps secondary lookup outcomes in one so that a rebuild after a failed
build does not repeat requests that already succeeded.
*/
package cache
