// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered at package init with promauto and exposed at /metrics
in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Upstream Source Metrics:
  - source_requests_total: Lookups by source and outcome (counter)
  - source_request_duration_seconds: Lookup latency (histogram)
  - source_retries_total: Retries after 429 responses (counter)
  - source_retry_delay_seconds: Backoff before a retry (histogram)

Catalog Metrics:
  - catalog_builds_total: Builds by result (counter)
    Labels: result (loaded, empty, failed, canceled)
  - catalog_build_duration_seconds: Build duration (histogram)
  - catalog_items: Items in the loaded catalog (gauge)
  - catalog_state: Current state as a one-hot gauge (gauge)
  - catalog_queries_total: Decade queries by status (counter)
  - enrichment_items_total: Items by enrichment status (counter)
  - tag_fetch_failures_total: Failed tag lookups by failure kind (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_state_transitions_total: State changes (counter)

# Usage

	start := time.Now()
	items, err := build(ctx)
	metrics.RecordCatalogBuild("loaded", time.Since(start), len(items))

# Thread Safety

All metric operations are safe for concurrent use.
*/
package metrics
