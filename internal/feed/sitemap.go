// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package feed

import (
	"strings"
	"time"

	"github.com/mumocomics/mumoweb/internal/comics"
)

// staticPages are the non-comic URLs every sitemap carries.
var staticPages = []string{"", "/comics", "/tags"}

// Sitemap generates the crawler sitemap for the site.
type Sitemap struct {
	baseURL string
}

// NewSitemap constructs a [Sitemap] generator rooted at the public site URL.
func NewSitemap(baseURL string) *Sitemap {
	return &Sitemap{baseURL: strings.TrimSuffix(baseURL, "/")}
}

/*
Generate renders the full collection as a sitemap urlset.

Description: Static pages first, then one url entry per comic with its
publish date as lastmod. Unlike the feed there is no item cap — crawlers
should see the whole archive.

Parameters:
  - collection: []*comics.Comic (Canonically ordered records)

Returns:
  - string: A complete, well-formed UTF-8 XML document
*/
func (sitemap *Sitemap) Generate(collection []*comics.Comic) string {
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	doc.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	for _, page := range staticPages {
		doc.WriteString("<url><loc>" + escape(sitemap.baseURL+page) + "</loc></url>\n")
	}

	for _, comic := range collection {
		doc.WriteString("<url>")
		doc.WriteString("<loc>" + escape(sitemap.baseURL+"/comics/"+comic.Slug) + "</loc>")
		doc.WriteString("<lastmod>" + comic.PublishDate.UTC().Format(time.DateOnly) + "</lastmod>")
		doc.WriteString("</url>\n")
	}

	doc.WriteString("</urlset>\n")

	return doc.String()
}
