// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

/*
Package comics implements the content retrieval and ordering engine for the
Mumo publishing site.

It manages the lifecycle of the comic collection — loading it from a backing
store (content files or PostgreSQL), sorting it into the canonical order, and
answering the lookups the site is built from (latest issue, archive, tag
filters, adjacent-issue navigation).

Core Responsibility:

  - Collection: One consistent, wholesale-replaced snapshot of all comics.
  - Ordering: Publish-date-descending with a deterministic slug tiebreak.
  - Discovery: Tag filtering, random picks, and reading-order adjacency.

This package acts as the source of truth for all content-related data models.
*/
package comics

import "time"

// # Field Constraints

// Limits enforced by the frontmatter validator and the admin write path.
const (
	TitleMaxLen    = 100
	SynopsisMinLen = 10
	SynopsisMaxLen = 300
	TagsMinCount   = 1
	TagsMaxCount   = 5
	TagMinLen      = 2
	TagMaxLen      = 20
	AuthorMaxLen   = 50
)

// # Core Entity

// Comic is the unit of publishable content: validated metadata plus an
// opaque markup body.
//
// All fields except Author and Featured are mandatory; absence is a
// validation failure at the content boundary, never a default here.
type Comic struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"` // URL-safe identifier, unique across the collection
	PublishDate time.Time `json:"publish_date"`
	Synopsis    string    `json:"synopsis"`
	Tags        []string  `json:"tags"` // Ordered; in-record duplicates are permitted and preserved
	ReadingTime int       `json:"reading_time"`
	CoverImage  string    `json:"cover_image"`
	Author      string    `json:"author,omitempty"`
	Featured    bool      `json:"featured"`

	// Content is the markup body with embedded media references.
	// The retrieval engine never interprets it.
	Content string `json:"content,omitempty"`
}

// HasTag reports whether the comic carries the given tag (exact,
// case-sensitive match).
func (c *Comic) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// # Canonical Ordering

// Compare is the canonical comparator over comics: publish date descending,
// slug ascending as the tiebreak. Because slugs are unique across the
// collection, the order is total and deterministic.
//
// Every operation in this package observes this single ordering.
func Compare(a, b *Comic) int {
	if a.PublishDate.After(b.PublishDate) {
		return -1
	}
	if b.PublishDate.After(a.PublishDate) {
		return 1
	}

	switch {
	case a.Slug < b.Slug:
		return -1
	case a.Slug > b.Slug:
		return 1
	default:
		return 0
	}
}

// # Field Identifiers

// Frontmatter/JSON field names used in validation errors and dynamic queries.
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldPublishDate = "publishDate"
	FieldSynopsis    = "synopsis"
	FieldTags        = "tags"
	FieldReadingTime = "readingTime"
	FieldCoverImage  = "coverImage"
	FieldAuthor      = "author"
	FieldFeatured    = "featured"
)
