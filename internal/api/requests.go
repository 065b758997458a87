// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/albumatlas/internal/catalog"
	"github.com/tomtom215/albumatlas/internal/validation"
)

// CatalogRequest represents the validated query parameters for /catalog.
//
// Fields:
//   - Decade: all, older, or a decade slug such as 1990s (default all)
//   - Wait: block until an in-flight build finishes
//   - Limit: page size (0 = everything)
//   - Offset: items to skip
type CatalogRequest struct {
	Decade string `validate:"required,decade"`
	Wait   bool
	Limit  int `validate:"min=0,max=500"`
	Offset int `validate:"min=0,max=100000"`
}

// QueryOptions converts the request to catalog query options.
func (req *CatalogRequest) QueryOptions() catalog.QueryOptions {
	return catalog.QueryOptions{Wait: req.Wait, Offset: req.Offset, Limit: req.Limit}
}

// parseCatalogRequest reads and validates /catalog query parameters. On
// failure it returns the error body for a 400 response.
func parseCatalogRequest(r *http.Request) (*CatalogRequest, *validation.APIError) {
	q := r.URL.Query()

	req := &CatalogRequest{Decade: strings.ToLower(strings.TrimSpace(q.Get("decade")))}
	if req.Decade == "" {
		req.Decade = catalog.SlugAll
	}

	var ok bool
	if req.Wait, ok = parseBoolParam(q.Get("wait")); !ok {
		return nil, invalidParam("wait", "wait must be true or false")
	}
	if req.Limit, ok = parseIntParam(q.Get("limit"), 0); !ok {
		return nil, invalidParam("limit", "limit must be an integer")
	}
	if req.Offset, ok = parseIntParam(q.Get("offset"), 0); !ok {
		return nil, invalidParam("offset", "offset must be an integer")
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr.ToAPIError()
	}
	return req, nil
}

func invalidParam(field, message string) *validation.APIError {
	return &validation.APIError{
		Code:    ErrCodeValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}
