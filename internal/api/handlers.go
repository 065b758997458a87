// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/albumatlas/internal/catalog"
	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/logging"
	ws "github.com/tomtom215/albumatlas/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, websocket upgrade
//   - handlers_catalog.go: catalog query endpoints
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	catalog   *catalog.Service
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler. wsHub may be nil, in which case the
// websocket endpoint answers 503.
func NewHandler(svc *catalog.Service, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		catalog:   svc,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// WebSocket upgrades the connection and subscribes it to catalog events.
//
// @Summary Catalog event stream
// @Description Upgrades to a websocket that receives catalog_state and catalog_progress messages. The current catalog_state is sent on connect.
// @Tags Catalog
// @Success 101 "Switching protocols"
// @Failure 503 {object} APIResponse "Websocket hub unavailable"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		NewResponseWriter(w, r).ServiceUnavailable("WebSocket service unavailable")
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// configured CORS origins. Requests without an Origin header are rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
