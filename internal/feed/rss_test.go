// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package feed_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumocomics/mumoweb/internal/comics"
	"github.com/mumocomics/mumoweb/internal/feed"
)

const baseURL = "https://www.mumocomics.com"

func feedComic(slug string, published time.Time) *comics.Comic {
	return &comics.Comic{
		Title:       "Issue " + slug,
		Slug:        slug,
		PublishDate: published,
		Synopsis:    "Mumo does something mildly heroic in the garden again.",
		Tags:        []string{"adventure"},
		ReadingTime: 3,
		CoverImage:  "/images/comics/" + slug + ".png",
	}
}

/*
TestRSS_Generate checks the overall document shape for a small collection.
*/
func TestRSS_Generate(t *testing.T) {
	published := time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)
	collection := []*comics.Comic{
		feedComic("newest", published),
		feedComic("older", published.AddDate(0, -1, 0)),
	}

	document := feed.NewRSS(baseURL).Generate(collection)

	require.NoError(t, feed.Validate(document))
	assert.Contains(t, document, "<title>Issue newest</title>")
	assert.Contains(t, document, "<link>"+baseURL+"/comics/newest</link>")
	assert.Contains(t, document, `<guid isPermaLink="true">`+baseURL+"/comics/older</guid>")
	assert.Contains(t, document, "<category>adventure</category>")

	// lastBuildDate mirrors the newest entry.
	assert.Contains(t, document, "<lastBuildDate>"+published.Format(time.RFC1123Z)+"</lastBuildDate>")
}

/*
TestRSS_ItemBound truncates the feed to its fixed maximum.
*/
func TestRSS_ItemBound(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	collection := make([]*comics.Comic, 30)
	for i := range collection {
		collection[i] = feedComic(fmt.Sprintf("issue-%02d", i), base.AddDate(0, 0, 30-i))
	}

	document := feed.NewRSS(baseURL).Generate(collection)

	require.NoError(t, feed.Validate(document))
	assert.Equal(t, 20, strings.Count(document, "<item>"))
	assert.Contains(t, document, "issue-00")
	assert.Contains(t, document, "issue-19")
	assert.NotContains(t, document, "issue-20")
}

/*
TestRSS_Escaping verifies the five metacharacters never reach the document
raw when they come from record text.
*/
func TestRSS_Escaping(t *testing.T) {
	comic := feedComic("tricky", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	comic.Title = `Mumo & the <Wall> of "Doom" ain't scared`
	comic.Author = "O'Brien"

	document := feed.NewRSS(baseURL).Generate([]*comics.Comic{comic})

	require.NoError(t, feed.Validate(document))
	assert.Contains(t, document, "Mumo &amp; the &lt;Wall&gt; of &quot;Doom&quot; ain&apos;t scared")
	assert.Contains(t, document, "<author>O&apos;Brien</author>")
	assert.NotContains(t, document, "<Wall>")
}

/*
TestRSS_DescriptionAttributeEscaping verifies the cover path inside the
description fragment is entity-escaped like every other attribute; XML
readers do not understand backslash escapes.
*/
func TestRSS_DescriptionAttributeEscaping(t *testing.T) {
	comic := feedComic("odd-cover", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	comic.CoverImage = `/images/comics/odd "quoted" & spaced.png`

	document := feed.NewRSS(baseURL).Generate([]*comics.Comic{comic})

	require.NoError(t, feed.Validate(document))
	assert.NotContains(t, document, `\"`)

	// Once for the fragment, once for the description element around it.
	assert.Contains(t, document, "odd &amp;quot;quoted&amp;quot; &amp;amp; spaced.png")
}

/*
TestRSS_EmptyCollection produces a valid, item-free document whose build
timestamp falls back to the current time.
*/
func TestRSS_EmptyCollection(t *testing.T) {
	before := time.Now().UTC()
	document := feed.NewRSS(baseURL).Generate(nil)

	require.NoError(t, feed.Validate(document))
	assert.NotContains(t, document, "<item>")
	assert.Contains(t, document, "<lastBuildDate>")

	// The fallback timestamp is near "now"; parse it back out to check.
	start := strings.Index(document, "<lastBuildDate>") + len("<lastBuildDate>")
	end := strings.Index(document, "</lastBuildDate>")
	stamp, err := time.Parse(time.RFC1123Z, document[start:end])
	require.NoError(t, err)
	assert.WithinDuration(t, before, stamp, 5*time.Second)
}

/*
TestRSS_DefaultAuthor substitutes the studio default when a record has none.
*/
func TestRSS_DefaultAuthor(t *testing.T) {
	comic := feedComic("anonymous", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	comic.Author = ""

	document := feed.NewRSS(baseURL).Generate([]*comics.Comic{comic})

	assert.Contains(t, document, "<author>Mumo Studio</author>")
}

/*
TestValidate_RejectsBrokenDocuments exercises the smoke validator against
deliberately defective inputs.
*/
func TestValidate_RejectsBrokenDocuments(t *testing.T) {
	valid := feed.NewRSS(baseURL).Generate([]*comics.Comic{
		feedComic("one", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
	})

	tests := []struct {
		name     string
		document string
	}{
		{"no_declaration", strings.TrimPrefix(valid, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")},
		{"no_version_attr", strings.Replace(valid, `<rss version="2.0">`, "<rss>", 1)},
		{"missing_channel", strings.NewReplacer("<channel>", "", "</channel>", "").Replace(valid)},
		{"unbalanced_item", strings.Replace(valid, "</item>", "", 1)},
		{"unbalanced_title", strings.Replace(valid, "</title>", "", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, feed.Validate(tt.document))
		})
	}
}
