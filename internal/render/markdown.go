// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

/*
Package render converts comic markup bodies into sanitized HTML for the site
API.

Rendered output is cached in a fixed-size LRU keyed by slug and a content
fingerprint, so republishing an issue invalidates its cache entry naturally
while unchanged issues render exactly once.
*/
package render

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// cacheSize bounds the rendered-HTML cache. The full archive of a long-running
// weekly comic fits comfortably.
const cacheSize = 512

// Markdown renders markup bodies to HTML with an internal result cache.
//
// # Concurrency
//
// Safe for concurrent use: goldmark converters are stateless across Convert
// calls and the LRU is internally locked.
type Markdown struct {
	converter goldmark.Markdown
	cache     *lru.Cache[string, string]
	logger    *slog.Logger
}

// NewMarkdown constructs a [Markdown] renderer with GitHub-flavored extensions.
func NewMarkdown(logger *slog.Logger) (*Markdown, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("render: init cache: %w", err)
	}

	converter := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		// Raw HTML in bodies stays escaped (goldmark default); content files
		// are authored in-house but still render on the public site.
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &Markdown{
		converter: converter,
		cache:     cache,
		logger:    logger,
	}, nil
}

/*
Render converts a comic body to HTML, serving repeated renders from cache.

Parameters:
  - slug: string (Cache identity of the comic)
  - content: string (The markup body)

Returns:
  - string: The rendered HTML
  - error: A conversion failure
*/
func (renderer *Markdown) Render(slug, content string) (string, error) {
	key := cacheKey(slug, content)

	if cached, hit := renderer.cache.Get(key); hit {
		return cached, nil
	}

	var buf bytes.Buffer
	if err := renderer.converter.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render: convert %s: %w", slug, err)
	}

	rendered := buf.String()
	renderer.cache.Add(key, rendered)

	renderer.logger.Debug("markup_rendered",
		slog.String("slug", slug),
		slog.Int("bytes", len(rendered)),
	)

	return rendered, nil
}

// cacheKey fingerprints the content so an edited body misses the old entry.
func cacheKey(slug, content string) string {
	hash := fnv.New64a()
	hash.Write([]byte(content))
	return fmt.Sprintf("%s:%x", slug, hash.Sum64())
}
