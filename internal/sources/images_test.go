// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package sources

import (
	"testing"

	"github.com/tomtom215/albumatlas/internal/models"
)

const testPlaceholder = "/static/img/album-placeholder.png"

func TestSelectImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		variants []models.ImageVariant
		want     string
	}{
		{
			name: "extralarge preferred",
			variants: []models.ImageVariant{
				{Size: "small", URL: "s.png"},
				{Size: "large", URL: "l.png"},
				{Size: "extralarge", URL: "xl.png"},
			},
			want: "xl.png",
		},
		{
			name: "empty extralarge skipped",
			variants: []models.ImageVariant{
				{Size: "extralarge", URL: "  "},
				{Size: "medium", URL: "m.png"},
				{Size: "large", URL: "l.png"},
			},
			want: "l.png",
		},
		{
			name: "size label is case-insensitive",
			variants: []models.ImageVariant{
				{Size: "small", URL: "s.png"},
				{Size: "Medium", URL: "m.png"},
			},
			want: "m.png",
		},
		{
			name: "unknown labels fall back to first non-empty",
			variants: []models.ImageVariant{
				{Size: "mega", URL: ""},
				{Size: "huge", URL: " h.png "},
			},
			want: "h.png",
		},
		{
			name:     "all empty uses placeholder",
			variants: []models.ImageVariant{{Size: "large", URL: ""}},
			want:     testPlaceholder,
		},
		{
			name:     "no variants uses placeholder",
			variants: nil,
			want:     testPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectImage(tt.variants, testPlaceholder); got != tt.want {
				t.Errorf("SelectImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBestImageNoneUsable(t *testing.T) {
	t.Parallel()

	if u, ok := BestImage([]models.ImageVariant{{Size: "small"}}); ok || u != "" {
		t.Errorf("BestImage() = (%q, %v), want (\"\", false)", u, ok)
	}
}

func TestIsSpacerImage(t *testing.T) {
	t.Parallel()

	if !isSpacerImage("https://img.example.com/images/spacer.gif") {
		t.Error("spacer.gif not detected")
	}
	if isSpacerImage("https://img.example.com/R-123.jpg") {
		t.Error("regular cover detected as spacer")
	}
}
