// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

// @title AlbumAtlas API
// @version 1.0
// @description Decade-browsable album catalog aggregated from a tag index and enriched with release data.
// @description
// @description ## Catalog lifecycle
// @description
// @description The catalog is built once per process. The first query starts the build and returns `status: loading`.
// @description Pass `wait=true` to block until the build finishes. Once built, queries return `ready` or `empty`.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "VALIDATION_FAILED", "message": "decade must be all, older, or a decade such as 1990s"},
// @description   "meta": {"request_id": "...", "timestamp": "2026-05-06T07:08:09Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/albumatlas/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Catalog
// @tag.description Decade-filtered album catalog and build status
//
// @tag.name Health
// @tag.description Liveness and readiness probes
package main
