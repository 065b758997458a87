// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package api

import (
	"net/http"

	"github.com/tomtom215/albumatlas/internal/logging"
)

// Catalog returns the albums for one decade filter.
//
// The first query after startup (or after a failed build) starts the catalog
// build and answers with status "loading". Every status is a 200; clients
// switch on data.status.
//
// @Summary Query the catalog by decade
// @Description Returns albums released in the selected decade, newest first. Status is loading until the catalog has been built, then ready, or empty when no albums were found.
// @Tags Catalog
// @Produce json
// @Param decade query string false "all, older, or a decade such as 1990s" default(all)
// @Param wait query bool false "Wait for an in-flight build to finish"
// @Param limit query int false "Page size (0 = all, max 500)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} APIResponse{data=catalog.Selection} "Decade selection"
// @Failure 400 {object} APIResponse "Invalid query parameters"
// @Failure 404 {object} APIResponse "Unknown decade"
// @Router /catalog [get]
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	rw := NewResponseWriter(w, r)

	req, apiErr := parseCatalogRequest(r)
	if apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	filter, ok := h.catalog.Lookup(req.Decade)
	if !ok {
		rw.NotFound("Unknown decade: " + req.Decade)
		return
	}

	sel := h.catalog.SelectDecade(r.Context(), filter, req.QueryOptions())
	logging.Ctx(r.Context()).Debug().
		Str("decade", filter.Slug).
		Str("status", string(sel.Status)).
		Int("items", len(sel.Items)).
		Msg("Catalog query")

	rw.SuccessWithPagination(sel, &PaginationMeta{
		Total:   sel.Total,
		Count:   len(sel.Items),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: req.Offset+len(sel.Items) < sel.Total,
	})
}

// Decades lists the available decade filters in display order.
//
// @Summary List decade filters
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.DecadeFilter} "Decade filters"
// @Router /catalog/decades [get]
func (h *Handler) Decades(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	NewResponseWriter(w, r).Success(h.catalog.Decades())
}

// CatalogStatus reports the master catalog state without starting a build.
//
// @Summary Catalog build status
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=catalog.StatusReport} "Catalog status"
// @Router /catalog/status [get]
func (h *Handler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	NewResponseWriter(w, r).Success(h.catalog.Status())
}
