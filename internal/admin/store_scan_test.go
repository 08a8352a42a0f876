// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package admin

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumocomics/mumoweb/internal/platform/constants"
	"github.com/mumocomics/mumoweb/pkg/pointer"
)

// stubRow feeds canned column values into a scan, in the comics-row column
// order (slug, title, publish_date, synopsis, tags, reading_time,
// cover_image, author, featured, content).
type stubRow struct {
	assign func(dest []any)
	err    error
}

func (row stubRow) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}
	row.assign(dest)
	return nil
}

/*
TestScanComic_NullColumns loads a row whose nullable presentation columns are
all NULL; the record still loads, with the same defaults the read path uses.
*/
func TestScanComic_NullColumns(t *testing.T) {
	published := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	row := stubRow{assign: func(dest []any) {
		*(dest[0].(*string)) = "half-filled"
		*(dest[1].(*string)) = "Half-Filled Legacy Row"
		*(dest[2].(*time.Time)) = published
		*(dest[3].(*string)) = "A row written before the presentation columns existed."
		// tags and every nullable pointer stay nil.
	}}

	comic, err := scanComic(row)

	require.NoError(t, err)
	assert.Equal(t, "half-filled", comic.Slug)
	assert.Equal(t, []string{}, comic.Tags)
	assert.Equal(t, constants.DefaultReadingTime, comic.ReadingTime)
	assert.Equal(t, constants.DefaultAuthor, comic.Author)
	assert.False(t, comic.Featured)
	assert.Empty(t, comic.CoverImage)
	assert.Empty(t, comic.Content)
}

/*
TestScanComic_PopulatedColumns passes stored values through unchanged.
*/
func TestScanComic_PopulatedColumns(t *testing.T) {
	row := stubRow{assign: func(dest []any) {
		*(dest[0].(*string)) = "garden-wall"
		*(dest[1].(*string)) = "Garden Wall"
		*(dest[2].(*time.Time)) = time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
		*(dest[3].(*string)) = "Mumo stares past the garden wall."
		*(dest[4].(*[]string)) = []string{"adventure"}
		*(dest[5].(**int)) = pointer.To(4)
		*(dest[6].(**string)) = pointer.To("/images/comics/garden-wall.png")
		*(dest[7].(**string)) = pointer.To("Riko")
		*(dest[8].(**bool)) = pointer.To(true)
		*(dest[9].(**string)) = pointer.To("Panel one.")
	}}

	comic, err := scanComic(row)

	require.NoError(t, err)
	assert.Equal(t, 4, comic.ReadingTime)
	assert.Equal(t, "/images/comics/garden-wall.png", comic.CoverImage)
	assert.Equal(t, "Riko", comic.Author)
	assert.True(t, comic.Featured)
	assert.Equal(t, "Panel one.", comic.Content)
}

/*
TestScanComic_Error propagates the scan failure untouched.
*/
func TestScanComic_Error(t *testing.T) {
	cause := errors.New("connection reset")

	_, err := scanComic(stubRow{err: cause})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}
