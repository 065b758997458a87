// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/albumatlas/internal/config"
)

const lastfmRockResponse = `{
  "albums": {
    "album": [
      {
        "name": "Kind of Blue",
        "mbid": "mb-1",
        "url": "https://www.last.fm/music/Miles+Davis/Kind+of+Blue",
        "artist": {"name": "Miles Davis", "mbid": "artist-1"},
        "image": [
          {"#text": "https://img/s.png", "size": "small"},
          {"#text": "https://img/xl.png", "size": "extralarge"}
        ],
        "@attr": {"rank": "1"}
      },
      {
        "name": "Blue Train",
        "mbid": "",
        "url": "https://www.last.fm/music/John+Coltrane/Blue+Train",
        "artist": {"name": "John Coltrane", "mbid": ""},
        "image": [],
        "@attr": {"rank": 2}
      }
    ]
  }
}`

func newLastFMTestClient(url string) *LastFMClient {
	return NewLastFMClient(&config.PrimaryConfig{
		BaseURL: url,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
	})
}

func TestLastFMClient_TopAlbumsForTag(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2.0/" {
			t.Errorf("path = %q, want /2.0/", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("method") != "tag.gettopalbums" {
			t.Errorf("method = %q", q.Get("method"))
		}
		if q.Get("tag") != "jazz" || q.Get("limit") != "30" {
			t.Errorf("tag/limit = %q/%q", q.Get("tag"), q.Get("limit"))
		}
		if q.Get("api_key") != "test-api-key" || q.Get("format") != "json" {
			t.Errorf("api_key/format = %q/%q", q.Get("api_key"), q.Get("format"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(lastfmRockResponse))
	}))
	defer server.Close()

	items, err := newLastFMTestClient(server.URL).TopAlbumsForTag(context.Background(), "jazz", 30)
	if err != nil {
		t.Fatalf("TopAlbumsForTag() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	first := items[0]
	if first.Name != "Kind of Blue" || first.CreatorName != "Miles Davis" {
		t.Errorf("first item = %q by %q", first.Name, first.CreatorName)
	}
	if first.Rank != 1 || first.SourceTag != "jazz" || first.ExternalID != "mb-1" {
		t.Errorf("first item rank/tag/id = %d/%q/%q", first.Rank, first.SourceTag, first.ExternalID)
	}
	if len(first.Images) != 2 || first.Images[1].Size != "extralarge" {
		t.Errorf("first item images = %+v", first.Images)
	}

	second := items[1]
	if second.Rank != 2 {
		t.Errorf("numeric rank = %d, want 2", second.Rank)
	}
	if second.ExternalID != "https://www.last.fm/music/John+Coltrane/Blue+Train" {
		t.Errorf("ExternalID falls back to url, got %q", second.ExternalID)
	}
}

func TestLastFMClient_TruncatesToLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(lastfmRockResponse))
	}))
	defer server.Close()

	items, err := newLastFMTestClient(server.URL).TopAlbumsForTag(context.Background(), "jazz", 1)
	if err != nil {
		t.Fatalf("TopAlbumsForTag() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(items))
	}
}

func TestLastFMClient_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
	}{
		{"api error object", http.StatusOK, `{"error": 6, "message": "Tag not found"}`, KindAPIError},
		{"malformed body", http.StatusOK, `{"albums": [`, KindParse},
		{"missing albums", http.StatusOK, `{}`, KindParse},
		{"server error", http.StatusInternalServerError, `oops`, KindHTTPStatus},
		{"rate limited", http.StatusTooManyRequests, ``, KindRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			items, err := newLastFMTestClient(server.URL).TopAlbumsForTag(context.Background(), "rock", 30)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if items != nil {
				t.Errorf("items = %v, want nil", items)
			}
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf(err) = %q, want %q (err: %v)", got, tt.wantKind, err)
			}
		})
	}
}

func TestLastFMClient_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newLastFMTestClient(url).TopAlbumsForTag(context.Background(), "rock", 30)
	if got := KindOf(err); got != KindTransport {
		t.Errorf("KindOf(err) = %q, want transport", got)
	}
}
