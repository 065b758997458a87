// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// Kind classifies an upstream failure.
type Kind string

// Failure kinds.
const (
	KindRateLimited Kind = "rate_limited"
	KindTransport   Kind = "transport"
	KindHTTPStatus  Kind = "http_status"
	KindParse       Kind = "parse"
	KindAPIError    Kind = "api_error"
	KindNotFound    Kind = "not_found"
	KindCircuitOpen Kind = "circuit_open"
	KindCanceled    Kind = "canceled"
)

// ErrNotFound is returned when the secondary source has no matching release.
var ErrNotFound = errors.New("no matching release")

// SourceError is the error type returned by every source client.
type SourceError struct {
	Source     string
	Kind       Kind
	StatusCode int

	// RetryAfter is the delay directed by a 429 response. Only meaningful
	// when HasRetryAfter is set.
	RetryAfter    time.Duration
	HasRetryAfter bool

	Err error
}

func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Source, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.HasRetryAfter {
		msg += fmt.Sprintf(" retry after %s", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err. Context errors are reported as
// KindCanceled and unclassified errors as KindTransport. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return KindCircuitOpen
	default:
		return KindTransport
	}
}

// AsRateLimited returns the SourceError carried by err when it reports a
// rate-limited response.
func AsRateLimited(err error) (*SourceError, bool) {
	var se *SourceError
	if errors.As(err, &se) && se.Kind == KindRateLimited {
		return se, true
	}
	return nil, false
}
