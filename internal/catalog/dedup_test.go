// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package catalog

import (
	"fmt"
	"testing"

	"github.com/tomtom215/albumatlas/internal/models"
)

const placeholder = "/static/img/album-placeholder.png"

func raw(tag, creator, name string, images ...models.ImageVariant) models.RawTagItem {
	return models.RawTagItem{Name: name, CreatorName: creator, SourceTag: tag, Images: images}
}

func TestDeduplicate_FirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	items := []models.RawTagItem{
		raw("blues", "Miles Davis", "Kind of Blue", models.ImageVariant{Size: "large", URL: "blues.png"}),
		raw("jazz", "  miles davis ", "KIND OF BLUE", models.ImageVariant{Size: "extralarge", URL: "jazz.png"}),
		raw("jazz", "John Coltrane", "Blue Train"),
	}

	out := Deduplicate(items, 300, placeholder)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].SourceTag != "blues" || out[0].ChosenImageURL != "blues.png" {
		t.Errorf("first survivor = %+v, want the blues occurrence", out[0])
	}
	if out[1].ChosenImageURL != placeholder {
		t.Errorf("ChosenImageURL = %q, want placeholder", out[1].ChosenImageURL)
	}
	if out[0].NormalizedKey == "" || out[0].NormalizedKey == out[1].NormalizedKey {
		t.Errorf("keys = %q, %q", out[0].NormalizedKey, out[1].NormalizedKey)
	}
}

func TestDeduplicate_DropsBlankNames(t *testing.T) {
	t.Parallel()

	items := []models.RawTagItem{
		raw("rock", "", "Untitled"),
		raw("rock", "Nobody", "   "),
		raw("rock", " Radiohead ", " OK Computer "),
	}

	out := Deduplicate(items, 300, placeholder)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Name != "OK Computer" || out[0].CreatorName != "Radiohead" {
		t.Errorf("names not trimmed: %q by %q", out[0].Name, out[0].CreatorName)
	}
}

func TestDeduplicate_Cap(t *testing.T) {
	t.Parallel()

	var items []models.RawTagItem
	for i := 0; i < 400; i++ {
		items = append(items, raw("rock", fmt.Sprintf("Artist %d", i), "Album"))
	}

	if out := Deduplicate(items, 300, placeholder); len(out) != 300 {
		t.Errorf("len(out) = %d, want 300", len(out))
	}
	if out := Deduplicate(items, 0, placeholder); len(out) != 400 {
		t.Errorf("uncapped len(out) = %d, want 400", len(out))
	}
}

func TestDeduplicate_UniqueKeys(t *testing.T) {
	t.Parallel()

	items := []models.RawTagItem{
		raw("a", "X", "Y"), raw("b", "x", "y"), raw("c", "X ", " Y"),
		raw("a", "X", "Z"), raw("b", "W", "Y"),
	}
	out := Deduplicate(items, 300, placeholder)

	seen := map[string]bool{}
	for _, u := range out {
		if seen[u.NormalizedKey] {
			t.Errorf("duplicate key %q", u.NormalizedKey)
		}
		seen[u.NormalizedKey] = true
	}
	if len(out) != 3 {
		t.Errorf("len(out) = %d, want 3", len(out))
	}
}

func TestDeduplicate_Empty(t *testing.T) {
	t.Parallel()

	if out := Deduplicate(nil, 300, placeholder); len(out) != 0 {
		t.Errorf("Deduplicate(nil) = %v", out)
	}
}
