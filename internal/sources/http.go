// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// maxErrorBodySize limits the amount of response body read for error reporting.
const maxErrorBodySize = 4 * 1024

// maxResponseSize bounds decoded response bodies.
const maxResponseSize = 8 * 1024 * 1024

// readBodyForError reads at most maxErrorBodySize bytes of r for diagnostics.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return strings.TrimSpace(string(body))
}

// doGet performs a GET request and classifies every failure into a
// SourceError. On success the caller owns resp.Body.
func doGet(ctx context.Context, client *http.Client, source string, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil, &SourceError{Source: source, Kind: KindCanceled, Err: ctx.Err()}
		}
		return nil, &SourceError{Source: source, Kind: KindTransport, Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		_ = resp.Body.Close()
		se := &SourceError{
			Source:     source,
			Kind:       KindRateLimited,
			StatusCode: resp.StatusCode,
			Err:        errors.New("rate limit exceeded"),
		}
		se.RetryAfter, se.HasRetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		return nil, se
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		_ = resp.Body.Close()
		return nil, &SourceError{
			Source:     source,
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", body),
		}
	}

	return resp, nil
}

// decodeJSON decodes a bounded response body into v.
func decodeJSON(source string, resp *http.Response, v interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize))
	if err := decoder.Decode(v); err != nil {
		return &SourceError{Source: source, Kind: KindParse, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// parseRetryAfter parses a Retry-After header in either delta-seconds or
// HTTP-date form. A date in the past yields a zero delay.
func parseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := t.Sub(now); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}

// flexString decodes a JSON string or number into a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

// flexInt decodes a JSON number or numeric string into an int.
// Non-numeric strings decode as zero.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}
