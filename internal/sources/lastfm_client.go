// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/metrics"
	"github.com/tomtom215/albumatlas/internal/models"
)

// SourcePrimary names the tag index in errors, logs and metrics.
const SourcePrimary = metrics.SourcePrimary

// TagSource returns the top albums for a single tag, best ranked first.
type TagSource interface {
	TopAlbumsForTag(ctx context.Context, tag string, limit int) ([]models.RawTagItem, error)
}

// LastFMClient queries a Last.fm-compatible tag.gettopalbums endpoint.
type LastFMClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewLastFMClient creates a tag index client from the primary config section.
func NewLastFMClient(cfg *config.PrimaryConfig) *LastFMClient {
	return &LastFMClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type lastfmImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

type lastfmAlbum struct {
	Name   string `json:"name"`
	MBID   string `json:"mbid"`
	URL    string `json:"url"`
	Artist struct {
		Name string `json:"name"`
		MBID string `json:"mbid"`
	} `json:"artist"`
	Image []lastfmImage `json:"image"`
	Attr  struct {
		Rank flexInt `json:"rank"`
	} `json:"@attr"`
}

type lastfmTopAlbumsResponse struct {
	Albums *struct {
		Album []lastfmAlbum `json:"album"`
	} `json:"albums"`

	// API-level failures are reported in a 200 body.
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// TopAlbumsForTag returns at most limit albums for tag in rank order.
func (c *LastFMClient) TopAlbumsForTag(ctx context.Context, tag string, limit int) ([]models.RawTagItem, error) {
	start := time.Now()
	items, err := c.topAlbumsForTag(ctx, tag, limit)
	metrics.RecordSourceRequest(SourcePrimary, string(KindOf(err)), time.Since(start))
	return items, err
}

func (c *LastFMClient) topAlbumsForTag(ctx context.Context, tag string, limit int) ([]models.RawTagItem, error) {
	params := url.Values{}
	params.Set("method", "tag.gettopalbums")
	params.Set("tag", tag)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	reqURL, err := url.Parse(c.baseURL + "/2.0/?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to build tag request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logging.Ctx(ctx).Trace().Str("url", logging.RedactURL(reqURL)).Msg("Fetching tag")

	resp, err := doGet(ctx, c.client, SourcePrimary, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload lastfmTopAlbumsResponse
	if err := decodeJSON(SourcePrimary, resp, &payload); err != nil {
		return nil, err
	}
	if payload.Error != 0 {
		return nil, &SourceError{
			Source:     SourcePrimary,
			Kind:       KindAPIError,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("error %d: %s", payload.Error, payload.Message),
		}
	}
	if payload.Albums == nil {
		return nil, &SourceError{
			Source:     SourcePrimary,
			Kind:       KindParse,
			StatusCode: resp.StatusCode,
			Err:        errors.New("response has no albums object"),
		}
	}

	albums := payload.Albums.Album
	if limit > 0 && len(albums) > limit {
		albums = albums[:limit]
	}

	items := make([]models.RawTagItem, 0, len(albums))
	for i := range albums {
		a := &albums[i]
		rank := int(a.Attr.Rank)
		if rank <= 0 {
			rank = i + 1
		}
		images := make([]models.ImageVariant, 0, len(a.Image))
		for _, img := range a.Image {
			images = append(images, models.ImageVariant{Size: img.Size, URL: img.URL})
		}
		externalID := a.MBID
		if externalID == "" {
			externalID = a.URL
		}
		items = append(items, models.RawTagItem{
			Name:        a.Name,
			CreatorName: a.Artist.Name,
			SourceTag:   tag,
			Rank:        rank,
			ExternalID:  externalID,
			Images:      images,
		})
	}
	return items, nil
}
