// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package logging

import (
	"net/url"
	"strings"
	"unicode"
)

// maxFieldLength bounds externally sourced strings written to logs.
const maxFieldLength = 200

// sensitiveParams are query parameters whose values never reach the logs.
var sensitiveParams = []string{"api_key", "apikey", "token", "key", "secret"}

// SanitizeToken masks a token, showing only first and last 4 characters.
// Example: "abcd1234efgh5678" -> "abcd...5678"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// RedactURL renders u with credential query parameters masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	changed := false
	for _, p := range sensitiveParams {
		if v := q.Get(p); v != "" {
			q.Set(p, SanitizeToken(v))
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	clone := *u
	clone.RawQuery = q.Encode()
	return clone.String()
}

// SanitizeField strips control characters from externally sourced text
// (album names, tags, response bodies) and truncates it.
func SanitizeField(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	if len(s) > maxFieldLength {
		return s[:maxFieldLength] + "..."
	}
	return s
}
