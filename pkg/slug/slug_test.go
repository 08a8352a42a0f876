// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mumocomics/mumoweb/pkg/slug"
)

/*
TestFrom covers the slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Mumo Meets World", "mumo-meets-world"},
		{"accents", "Café Périple", "cafe-periple"},
		{"punctuation", "Mumo & the Wall: Part 2!", "mumo-the-wall-part-2"},
		{"multiple_spaces", "Mumo   Meets    World", "mumo-meets-world"},
		{"leading_trailing", "  --Mumo--  ", "mumo"},
		{"digits", "Issue 42", "issue-42"},
		{"already_slug", "garden-wall", "garden-wall"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
