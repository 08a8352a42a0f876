// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package render_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumocomics/mumoweb/internal/render"
)

func newRenderer(t *testing.T) *render.Markdown {
	t.Helper()

	renderer, err := render.NewMarkdown(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return renderer
}

/*
TestMarkdown_Render converts basic markup constructs.
*/
func TestMarkdown_Render(t *testing.T) {
	renderer := newRenderer(t)

	html, err := renderer.Render("test-issue", "# Panel One\n\nMumo **waves**.")

	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Panel One")
	assert.Contains(t, html, "<strong>waves</strong>")
}

/*
TestMarkdown_RawHTMLEscaped keeps author-embedded HTML inert.
*/
func TestMarkdown_RawHTMLEscaped(t *testing.T) {
	renderer := newRenderer(t)

	html, err := renderer.Render("test-issue", `<script>alert("x")</script>`)

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

/*
TestMarkdown_CacheInvalidation serves identical bodies from cache but re-renders
when the content changes under the same slug.
*/
func TestMarkdown_CacheInvalidation(t *testing.T) {
	renderer := newRenderer(t)

	first, err := renderer.Render("issue", "original body")
	require.NoError(t, err)

	again, err := renderer.Render("issue", "original body")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	updated, err := renderer.Render("issue", "updated body")
	require.NoError(t, err)
	assert.NotEqual(t, first, updated)
	assert.Contains(t, updated, "updated body")
}
