// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/metrics"
)

// SourceSecondary names the release index in errors, logs and metrics.
const SourceSecondary = metrics.SourceSecondary

// searchPageSize is the number of candidates requested per search.
const searchPageSize = 5

// Release is the best secondary source match for one album.
type Release struct {
	ID         int64
	MasterID   int64
	Type       string
	Title      string
	Year       string
	CoverImage string
	Thumb      string
}

// ReleaseSearcher looks up a release by creator and album name.
type ReleaseSearcher interface {
	SearchRelease(ctx context.Context, artist, title string) (*Release, error)
}

// DiscogsClient queries a Discogs-compatible database/search endpoint.
type DiscogsClient struct {
	baseURL    string
	token      string
	userAgent  string
	resultType string
	client     *http.Client
}

// NewDiscogsClient creates a release index client from the secondary config section.
func NewDiscogsClient(cfg *config.SecondaryConfig) *DiscogsClient {
	return &DiscogsClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		resultType: cfg.ResultType,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

type discogsResult struct {
	ID         int64      `json:"id"`
	MasterID   int64      `json:"master_id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Year       flexString `json:"year"`
	CoverImage string     `json:"cover_image"`
	Thumb      string     `json:"thumb"`
}

type discogsSearchResponse struct {
	Results []discogsResult `json:"results"`
}

// SearchRelease returns the first search result for artist and title.
// A search with no results fails with ErrNotFound.
func (c *DiscogsClient) SearchRelease(ctx context.Context, artist, title string) (*Release, error) {
	start := time.Now()
	rel, err := c.searchRelease(ctx, artist, title)
	metrics.RecordSourceRequest(SourceSecondary, string(KindOf(err)), time.Since(start))
	return rel, err
}

func (c *DiscogsClient) searchRelease(ctx context.Context, artist, title string) (*Release, error) {
	params := url.Values{}
	params.Set("artist", artist)
	params.Set("release_title", title)
	if c.resultType != "" {
		params.Set("type", c.resultType)
	}
	params.Set("per_page", fmt.Sprint(searchPageSize))

	reqURL := c.baseURL + "/database/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}

	resp, err := doGet(ctx, c.client, SourceSecondary, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload discogsSearchResponse
	if err := decodeJSON(SourceSecondary, resp, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		logging.Ctx(ctx).Debug().
			Str("artist", logging.SanitizeField(artist)).
			Str("title", logging.SanitizeField(title)).
			Msg("No release found")
		return nil, &SourceError{Source: SourceSecondary, Kind: KindNotFound, StatusCode: resp.StatusCode, Err: ErrNotFound}
	}

	best := payload.Results[0]
	return &Release{
		ID:         best.ID,
		MasterID:   best.MasterID,
		Type:       best.Type,
		Title:      best.Title,
		Year:       strings.TrimSpace(string(best.Year)),
		CoverImage: strings.TrimSpace(best.CoverImage),
		Thumb:      strings.TrimSpace(best.Thumb),
	}, nil
}
