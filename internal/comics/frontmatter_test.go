// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package comics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumocomics/mumoweb/internal/comics"
	"github.com/mumocomics/mumoweb/internal/platform/apperr"
)

// validMeta returns a frontmatter map that passes every rule. Tests mutate
// a copy to probe single-field failures.
func validMeta() map[string]any {
	return map[string]any{
		"title":       "Mumo Meets World",
		"slug":        "mumo-meets-world",
		"publishDate": "2024-01-15T00:00:00Z",
		"synopsis":    "Mumo ventures beyond the garden wall for the first time.",
		"tags":        []any{"adventure", "debut"},
		"readingTime": 4,
		"coverImage":  "/images/comics/mumo-meets-world.png",
	}
}

/*
TestValidateFrontmatter_Valid checks the happy path, including normalization
of loosely typed YAML values.
*/
func TestValidateFrontmatter_Valid(t *testing.T) {
	comic, err := comics.ValidateFrontmatter(validMeta())

	require.NoError(t, err)
	require.NotNil(t, comic)
	assert.Equal(t, "Mumo Meets World", comic.Title)
	assert.Equal(t, "mumo-meets-world", comic.Slug)
	assert.Equal(t, []string{"adventure", "debut"}, comic.Tags)
	assert.Equal(t, 4, comic.ReadingTime)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), comic.PublishDate)
	assert.Empty(t, comic.Content, "body is attached by the source, not the validator")
}

/*
TestValidateFrontmatter_OptionalFields verifies author and featured handling.
*/
func TestValidateFrontmatter_OptionalFields(t *testing.T) {
	meta := validMeta()
	meta["author"] = "Guest Artist"
	meta["featured"] = true

	comic, err := comics.ValidateFrontmatter(meta)

	require.NoError(t, err)
	assert.Equal(t, "Guest Artist", comic.Author)
	assert.True(t, comic.Featured)

	// Absent optional fields stay at their zero values.
	comic, err = comics.ValidateFrontmatter(validMeta())
	require.NoError(t, err)
	assert.Empty(t, comic.Author)
	assert.False(t, comic.Featured)
}

/*
TestValidateFrontmatter_FieldRules probes each constraint in isolation.
*/
func TestValidateFrontmatter_FieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(meta map[string]any)
		wantField string
	}{
		{"missing_title", func(m map[string]any) { delete(m, "title") }, "title"},
		{"title_too_long", func(m map[string]any) { m["title"] = strings.Repeat("x", 101) }, "title"},
		{"bad_slug", func(m map[string]any) { m["slug"] = "Not A Slug!" }, "slug"},
		{"bad_date", func(m map[string]any) { m["publishDate"] = "15/01/2024" }, "publishDate"},
		{"synopsis_too_short", func(m map[string]any) { m["synopsis"] = "too short" }, "synopsis"},
		{"synopsis_too_long", func(m map[string]any) { m["synopsis"] = strings.Repeat("s", 301) }, "synopsis"},
		{"no_tags", func(m map[string]any) { m["tags"] = []any{} }, "tags"},
		{"too_many_tags", func(m map[string]any) {
			m["tags"] = []any{"aa", "bb", "cc", "dd", "ee", "ff"}
		}, "tags"},
		{"tag_too_short", func(m map[string]any) { m["tags"] = []any{"a"} }, "tags[0]"},
		{"tag_too_long", func(m map[string]any) { m["tags"] = []any{strings.Repeat("t", 21)} }, "tags[0]"},
		{"zero_reading_time", func(m map[string]any) { m["readingTime"] = 0 }, "readingTime"},
		{"negative_reading_time", func(m map[string]any) { m["readingTime"] = -3 }, "readingTime"},
		{"fractional_reading_time", func(m map[string]any) { m["readingTime"] = 2.5 }, "readingTime"},
		{"cover_outside_root", func(m map[string]any) {
			m["coverImage"] = "/other/path/cover.png"
		}, "coverImage"},
		{"author_too_long", func(m map[string]any) { m["author"] = strings.Repeat("a", 51) }, "author"},
		{"featured_not_bool", func(m map[string]any) { m["featured"] = "yes" }, "featured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := validMeta()
			tt.mutate(meta)

			comic, err := comics.ValidateFrontmatter(meta)

			require.Error(t, err)
			assert.Nil(t, comic)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			fields := make([]string, 0, len(ae.Details))
			for _, detail := range ae.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

/*
TestValidateFrontmatter_CollectsAllViolations verifies that one failed call
enumerates every broken field instead of stopping at the first.
*/
func TestValidateFrontmatter_CollectsAllViolations(t *testing.T) {
	meta := validMeta()
	delete(meta, "title")
	meta["slug"] = "BAD SLUG"
	meta["readingTime"] = -1

	_, err := comics.ValidateFrontmatter(meta)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.GreaterOrEqual(t, len(ae.Details), 3)

	violated := map[string]bool{}
	for _, detail := range ae.Details {
		violated[detail.Field] = true
	}
	assert.True(t, violated["title"])
	assert.True(t, violated["slug"])
	assert.True(t, violated["readingTime"])
}

/*
TestValidateFrontmatter_DateForms accepts both timestamp and date-only inputs,
plus native time values from YAML decoding.
*/
func TestValidateFrontmatter_DateForms(t *testing.T) {
	meta := validMeta()
	meta["publishDate"] = "2024-06-30"
	comic, err := comics.ValidateFrontmatter(meta)
	require.NoError(t, err)
	assert.Equal(t, 2024, comic.PublishDate.Year())

	meta = validMeta()
	meta["publishDate"] = time.Date(2023, 11, 2, 9, 30, 0, 0, time.UTC)
	comic, err = comics.ValidateFrontmatter(meta)
	require.NoError(t, err)
	assert.Equal(t, time.November, comic.PublishDate.Month())
}

/*
TestValidateFrontmatter_DuplicateTags confirms duplicates within one record
are preserved, not rejected.
*/
func TestValidateFrontmatter_DuplicateTags(t *testing.T) {
	meta := validMeta()
	meta["tags"] = []any{"adventure", "adventure"}

	comic, err := comics.ValidateFrontmatter(meta)

	require.NoError(t, err)
	assert.Equal(t, []string{"adventure", "adventure"}, comic.Tags)
}
