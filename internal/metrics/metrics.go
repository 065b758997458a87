// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Source names used as label values.
const (
	SourcePrimary   = "primary"
	SourceSecondary = "secondary"
)

var startedAt = time.Now()

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Upstream Source Metrics
	SourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_requests_total",
			Help: "Total number of upstream lookups by outcome",
		},
		[]string{"source", "outcome"}, // outcome: "ok" or a failure kind
	)

	SourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_request_duration_seconds",
			Help:    "Upstream lookup duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	SourceRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_retries_total",
			Help: "Total number of retries after a rate-limited response",
		},
		[]string{"source"},
	)

	SourceRetryDelay = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_retry_delay_seconds",
			Help:    "Backoff waited before a retry",
			Buckets: []float64{0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"source"},
	)

	// Enrichment Metrics
	EnrichmentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_items_total",
			Help: "Total number of enriched items by enrichment status",
		},
		[]string{"status"},
	)

	EnrichmentInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enrichment_in_flight",
			Help: "Current number of secondary lookups holding a scheduler slot",
		},
	)

	// Catalog Metrics
	CatalogBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_build_duration_seconds",
			Help:    "Duration of master catalog builds in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		},
	)

	CatalogBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_builds_total",
			Help: "Total number of master catalog builds by result",
		},
		[]string{"result"}, // "loaded", "empty", "failed", "canceled"
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_items",
			Help: "Number of items in the loaded master catalog",
		},
	)

	CatalogState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_state",
			Help: "Master catalog state (1 for the current state, 0 otherwise)",
		},
		[]string{"state"},
	)

	CatalogLastBuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_build_timestamp",
			Help: "Unix timestamp of the last successful catalog build",
		},
	)

	CatalogQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Total number of decade queries by decade slug and returned status",
		},
		[]string{"decade", "status"},
	)

	// Tag Fetch Metrics
	TagFetchItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tag_fetch_items",
			Help:    "Number of raw items returned per tag",
			Buckets: []float64{0, 5, 10, 25, 50, 100},
		},
	)

	TagFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tag_fetch_failures_total",
			Help: "Total number of tags whose lookup failed",
		},
		[]string{"kind"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
		func() float64 { return time.Since(startedAt).Seconds() },
	)
)

// catalogStates lists every value of the catalog_state label.
var catalogStates = []string{"empty", "loading", "loaded"}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSourceRequest records one upstream lookup. An empty outcome is
// recorded as "ok".
func RecordSourceRequest(source, outcome string, duration time.Duration) {
	if outcome == "" {
		outcome = "ok"
	}
	SourceRequestsTotal.WithLabelValues(source, outcome).Inc()
	SourceRequestDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordRetry records a retry and the delay waited before it.
func RecordRetry(source string, delay time.Duration) {
	SourceRetries.WithLabelValues(source).Inc()
	SourceRetryDelay.WithLabelValues(source).Observe(delay.Seconds())
}

// RecordEnrichment records the final status of one enriched item.
func RecordEnrichment(status string) {
	EnrichmentOutcomes.WithLabelValues(status).Inc()
}

// RecordTagFetch records the result of one tag lookup. kind is empty on success.
func RecordTagFetch(items int, kind string) {
	if kind != "" {
		TagFetchFailures.WithLabelValues(kind).Inc()
		return
	}
	TagFetchItems.Observe(float64(items))
}

// RecordCatalogBuild records a finished build attempt.
func RecordCatalogBuild(result string, duration time.Duration, items int) {
	CatalogBuildsTotal.WithLabelValues(result).Inc()
	CatalogBuildDuration.Observe(duration.Seconds())
	if result == "loaded" || result == "empty" {
		CatalogItems.Set(float64(items))
		CatalogLastBuild.Set(float64(time.Now().Unix()))
	}
}

// SetCatalogState marks state as the current catalog state.
func SetCatalogState(state string) {
	for _, s := range catalogStates {
		v := 0.0
		if s == state {
			v = 1
		}
		CatalogState.WithLabelValues(s).Set(v)
	}
}

// RecordCatalogQuery records a decade query by slug and returned status.
func RecordCatalogQuery(decade, status string) {
	CatalogQueries.WithLabelValues(decade, status).Inc()
}
