// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

/*
Package config provides layered configuration loading for AlbumAtlas.

Configuration is assembled by LoadWithKoanf from three sources, lowest
precedence first:

  - Struct defaults (defaultConfig)
  - An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/albumatlas/config.yaml)
  - Environment variables mapped through envTransformFunc

# Sections

  - primary: tag index (Last.fm-compatible) URL, API key, per-tag limit, tag list
  - secondary: release index (Discogs-compatible) URL, token, scheduler and retry policy
  - catalog: item cap, placeholder image, decade bounds, build timeout
  - server: HTTP listener
  - security: CORS origins and API rate limiting
  - logging: level, format, caller

# Environment Variables

Primary source:
  - LASTFM_URL, LASTFM_API_KEY (required), LASTFM_TIMEOUT
  - LASTFM_TAG_LIMIT (default: 30), LASTFM_MAX_CONCURRENT, LASTFM_RPS
  - CATALOG_TAGS: comma-separated tag list

Secondary source:
  - DISCOGS_URL, DISCOGS_TOKEN, DISCOGS_USER_AGENT, DISCOGS_RESULT_TYPE
  - DISCOGS_RPS (default: 1), DISCOGS_BURST, DISCOGS_MAX_CONCURRENT
  - DISCOGS_STAGGER_STEP, DISCOGS_JITTER_MAX
  - DISCOGS_MAX_RETRIES (default: 2), DISCOGS_RETRY_BASE_DELAY, DISCOGS_MAX_RETRY_AFTER
  - DISCOGS_BREAKER_ENABLED, DISCOGS_BREAKER_TIMEOUT

Catalog:
  - CATALOG_MAX_ITEMS (default: 300), CATALOG_PLACEHOLDER_IMAGE
  - CATALOG_NEWEST_DECADE, CATALOG_OLDEST_DECADE_END (default: 1959)
  - CATALOG_BUILD_TIMEOUT, CATALOG_WARM_ON_STARTUP, CATALOG_MAX_WAIT

Server, security and logging:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT, ENVIRONMENT
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Config.Validate runs after loading and rejects malformed URLs, non-positive
limits, retry counts outside 0..5 and decade bounds that do not fall on decade
boundaries.
*/
package config
