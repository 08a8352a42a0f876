// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

/*
Package feed renders syndication documents (RSS 2.0 and a sitemap) from the
comic collection.

The generator is a pure function of an already-ordered record list: it never
re-sorts and performs no I/O, so the caller's snapshot guarantees carry
through unchanged.

# Escaping

All record-derived text is escaped before interpolation. The five XML
metacharacters map to their named entities; this is a correctness rule, not
cosmetics — an author-entered title must never produce invalid markup.
*/
package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/mumocomics/mumoweb/internal/comics"
	"github.com/mumocomics/mumoweb/internal/platform/constants"
)

// Channel metadata for the site feed.
const (
	channelTitle       = "Mumo Comics"
	channelDescription = "New issues from the Mumo Comics studio"
	channelLanguage    = "en-us"
)

// xmlEscaper maps the five XML metacharacters to named entities.
// The ampersand must come first in any equivalent sequential scheme;
// NewReplacer applies all pairs in one pass, so ordering here is cosmetic.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escape sanitizes record-derived text for element content and attributes.
func escape(value string) string {
	return xmlEscaper.Replace(value)
}

// RSS generates the site's syndication feed.
type RSS struct {
	baseURL string
	now     func() time.Time
}

// NewRSS constructs an [RSS] generator rooted at the public site URL.
func NewRSS(baseURL string) *RSS {
	return &RSS{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

/*
Generate renders the collection head as an RSS 2.0 document.

Description: The input is trusted to be in canonical (newest-first) order and
is truncated to the feed item limit. The channel's lastBuildDate comes from
the first entry, or the current time when the collection is empty.

Parameters:
  - collection: []*comics.Comic (Canonically ordered records)

Returns:
  - string: A complete, well-formed UTF-8 XML document
*/
func (feed *RSS) Generate(collection []*comics.Comic) string {
	items := collection
	if len(items) > constants.FeedItemLimit {
		items = items[:constants.FeedItemLimit]
	}

	lastBuild := feed.now()
	if len(items) > 0 {
		lastBuild = items[0].PublishDate
	}

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	doc.WriteString(`<rss version="2.0">` + "\n")
	doc.WriteString("<channel>\n")
	doc.WriteString("<title>" + escape(channelTitle) + "</title>\n")
	doc.WriteString("<link>" + escape(feed.baseURL) + "</link>\n")
	doc.WriteString("<description>" + escape(channelDescription) + "</description>\n")
	doc.WriteString("<language>" + channelLanguage + "</language>\n")
	doc.WriteString("<lastBuildDate>" + lastBuild.UTC().Format(time.RFC1123Z) + "</lastBuildDate>\n")

	for _, comic := range items {
		feed.writeItem(&doc, comic)
	}

	doc.WriteString("</channel>\n")
	doc.WriteString("</rss>\n")

	return doc.String()
}

// writeItem emits one feed entry for a comic.
func (feed *RSS) writeItem(doc *strings.Builder, comic *comics.Comic) {
	link := feed.baseURL + "/comics/" + comic.Slug
	author := comic.Author
	if author == "" {
		author = constants.DefaultAuthor
	}

	doc.WriteString("<item>\n")
	doc.WriteString("<title>" + escape(comic.Title) + "</title>\n")
	doc.WriteString("<link>" + escape(link) + "</link>\n")
	doc.WriteString(`<guid isPermaLink="true">` + escape(link) + "</guid>\n")

	// The description carries an HTML fragment (synopsis plus cover image);
	// escaping turns it into inert text content the reader un-escapes.
	fragment := fmt.Sprintf(`<p>%s</p><img src="%s" alt="%s"/>`,
		escape(comic.Synopsis), escape(feed.baseURL+comic.CoverImage), escape(comic.Title))
	doc.WriteString("<description>" + escape(fragment) + "</description>\n")

	doc.WriteString("<pubDate>" + comic.PublishDate.UTC().Format(time.RFC1123Z) + "</pubDate>\n")
	doc.WriteString("<author>" + escape(author) + "</author>\n")

	for _, tag := range comic.Tags {
		doc.WriteString("<category>" + escape(tag) + "</category>\n")
	}

	doc.WriteString(`<enclosure url="` + escape(feed.baseURL+comic.CoverImage) + `" type="image/png"/>` + "\n")
	doc.WriteString("</item>\n")
}
