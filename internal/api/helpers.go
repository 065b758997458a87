// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// sanitizeLogValue escapes control characters so request data cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// requireMethod writes a 405 and returns false when r is not method.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	NewResponseWriter(w, r).MethodNotAllowed()
	return false
}

// parseIntParam parses an integer query value. An empty value yields
// defaultValue; a malformed one yields ok=false.
func parseIntParam(value string, defaultValue int) (n int, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseBoolParam parses a boolean query value. An empty value is false.
func parseBoolParam(value string) (b, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, true
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return b, true
}
