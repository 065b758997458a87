// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

/*
Package middleware provides HTTP middleware for request tracing and
Prometheus instrumentation.

Both middlewares use the http.HandlerFunc form and are adapted to chi's
func(http.Handler) http.Handler in the api package:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

RequestID honors an upstream X-Request-ID header and otherwise generates a
UUID. The ID is echoed in the response and stored in the request context
together with a fresh correlation ID, so logging.Ctx(r.Context()) carries both.

PrometheusMetrics labels requests by chi route pattern rather than raw path,
keeping label cardinality bounded. Its response wrapper supports hijacking so
websocket upgrades pass through.
*/
package middleware
