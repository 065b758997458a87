// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

/*
Package main is the entry point for the AlbumAtlas server.

AlbumAtlas builds one album catalog per process: it fans out tag lookups to
a Last.fm-compatible tag index, deduplicates the results, enriches every
album with its release year and cover from a Discogs-compatible release
index, sorts the catalog newest first and serves it by decade.

# Application Architecture

	RootSupervisor ("albumatlas")
	├── CatalogSupervisor ("catalog-layer")
	│   └── Catalog warmup (CATALOG_WARM_ON_STARTUP=true)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket Hub (catalog_state, catalog_progress)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi)

Initialization order:

 1. Configuration: Koanf v2 with environment variables and config file
 2. Logging: zerolog with JSON or console output
 3. Sources: tag fetcher, release client, circuit breaker, scheduler
 4. Catalog: pipeline builder, master catalog, decade query service
 5. WebSocket Hub: observes builds and state changes
 6. Supervisor Tree: suture v4
 7. HTTP Server: chi router with middleware stack

Without warmup the first catalog query starts the build and answers
"loading" until it completes.

# Configuration

Priority: environment variables > config file > defaults.

	# Sources
	LASTFM_API_KEY=<key>            # required
	CATALOG_TAGS=rock,jazz,hip-hop  # tags fanned out per build
	DISCOGS_TOKEN=<token>
	DISCOGS_RPS=1                   # release lookups per second
	DISCOGS_MAX_RETRIES=2           # retries after a 429

	# Catalog
	CATALOG_MAX_ITEMS=300
	CATALOG_WARM_ON_STARTUP=false
	CATALOG_BUILD_TIMEOUT=30m

	# Server
	HTTP_PORT=8080
	LOG_LEVEL=info                  # trace, debug, info, warn, error
	LOG_FORMAT=json                 # json or console

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT, websocket clients are closed and an in-flight
catalog build is canceled.
*/
package main
