// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package comics

import (
	"fmt"
	"time"

	"github.com/mumocomics/mumoweb/internal/platform/constants"
	"github.com/mumocomics/mumoweb/internal/platform/validate"
)

// # Frontmatter Validation

/*
ValidateFrontmatter converts an untyped metadata map into a typed [Comic],
enforcing every field constraint, or rejects it.

Description: This is the single validation boundary for file-backed content.
It normalizes loosely-typed YAML values (numbers, booleans, string lists) and
collects EVERY violated field into one VALIDATION_ERROR rather than stopping
at the first, so a broken content file is diagnosable in a single pass.

The returned comic has no Content or filename-derived Slug yet; the file
source fills those in after validation succeeds.

Parameters:
  - meta: map[string]any (Raw frontmatter key/value pairs)

Returns:
  - *Comic: The normalized record (nil when validation fails)
  - error: apperr.ValidationError enumerating all violated fields

It is a pure function: no I/O, no side effects.
*/
func ValidateFrontmatter(meta map[string]any) (*Comic, error) {
	validator := &validate.Validator{}
	comic := &Comic{}

	// Title: mandatory, 1-100 characters.
	if title, ok := stringValue(meta, FieldTitle, validator); ok {
		validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, TitleMaxLen)
		comic.Title = title
	}

	// Slug: mandatory, URL-safe pattern. The file source later overrides it
	// with the filename-derived identifier, but a malformed declared slug is
	// still an authoring error worth rejecting.
	if slug, ok := stringValue(meta, FieldSlug, validator); ok {
		validator.Slug(FieldSlug, slug)
		comic.Slug = slug
	}

	// PublishDate: mandatory, ISO 8601 instant (the ordering key).
	if publishDate, ok := timeValue(meta, FieldPublishDate, validator); ok {
		comic.PublishDate = publishDate
	}

	// Synopsis: mandatory, 10-300 characters.
	if synopsis, ok := stringValue(meta, FieldSynopsis, validator); ok {
		validator.MinLen(FieldSynopsis, synopsis, SynopsisMinLen).
			MaxLen(FieldSynopsis, synopsis, SynopsisMaxLen)
		comic.Synopsis = synopsis
	}

	// Tags: mandatory ordered list, 1-5 entries of 2-20 characters each.
	// In-record duplicates are permitted and preserved as-is.
	if tags, ok := stringListValue(meta, FieldTags, validator); ok {
		validator.Custom(FieldTags, len(tags) < TagsMinCount, "At least one tag is required").
			Custom(FieldTags, len(tags) > TagsMaxCount, fmt.Sprintf("Maximum %d tags", TagsMaxCount))
		for i, tag := range tags {
			field := fmt.Sprintf("%s[%d]", FieldTags, i)
			validator.MinLen(field, tag, TagMinLen).MaxLen(field, tag, TagMaxLen)
		}
		comic.Tags = tags
	}

	// ReadingTime: mandatory positive integer (minutes).
	if readingTime, ok := intValue(meta, FieldReadingTime, validator); ok {
		validator.Positive(FieldReadingTime, readingTime)
		comic.ReadingTime = readingTime
	}

	// CoverImage: mandatory path under the fixed content root.
	if coverImage, ok := stringValue(meta, FieldCoverImage, validator); ok {
		validator.Required(FieldCoverImage, coverImage).
			Prefix(FieldCoverImage, coverImage, constants.CoverImagePrefix)
		comic.CoverImage = coverImage
	}

	// Author: optional, at most 50 characters.
	if raw, present := meta[FieldAuthor]; present {
		author, ok := raw.(string)
		if !ok {
			validator.Custom(FieldAuthor, true, "Must be a string")
		} else {
			validator.MaxLen(FieldAuthor, author, AuthorMaxLen)
			comic.Author = author
		}
	}

	// Featured: optional boolean.
	if raw, present := meta[FieldFeatured]; present {
		featured, ok := raw.(bool)
		if !ok {
			validator.Custom(FieldFeatured, true, "Must be a boolean")
		} else {
			comic.Featured = featured
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return comic, nil
}

// # Normalization Helpers

// stringValue extracts a mandatory string field, recording a field error on
// absence or type mismatch. The boolean reports whether a value was obtained.
func stringValue(meta map[string]any, field string, validator *validate.Validator) (string, bool) {
	raw, present := meta[field]
	if !present || raw == nil {
		validator.Custom(field, true, "This field is required")
		return "", false
	}

	value, ok := raw.(string)
	if !ok {
		validator.Custom(field, true, "Must be a string")
		return "", false
	}

	return value, true
}

// intValue extracts a mandatory integer field. YAML decoders hand back int,
// int64, uint64, or float64 depending on the literal; all are accepted as
// long as the value is a whole number.
func intValue(meta map[string]any, field string, validator *validate.Validator) (int, bool) {
	raw, present := meta[field]
	if !present || raw == nil {
		validator.Custom(field, true, "This field is required")
		return 0, false
	}

	switch value := raw.(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case uint64:
		return int(value), true
	case float64:
		if value != float64(int(value)) {
			validator.Custom(field, true, "Must be a whole number")
			return 0, false
		}
		return int(value), true
	default:
		validator.Custom(field, true, "Must be a number")
		return 0, false
	}
}

// timeValue extracts a mandatory timestamp field. YAML decoders produce
// time.Time for unquoted ISO dates and string for quoted ones; both are
// accepted, strings in RFC 3339 or date-only form.
func timeValue(meta map[string]any, field string, validator *validate.Validator) (time.Time, bool) {
	raw, present := meta[field]
	if !present || raw == nil {
		validator.Custom(field, true, "This field is required")
		return time.Time{}, false
	}

	switch value := raw.(type) {
	case time.Time:
		return value, true
	case string:
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse("2006-01-02", value); err == nil {
			return parsed, true
		}
		validator.Custom(field, true, "Must be an ISO 8601 date")
		return time.Time{}, false
	default:
		validator.Custom(field, true, "Must be an ISO 8601 date")
		return time.Time{}, false
	}
}

// stringListValue extracts a mandatory ordered list of strings.
func stringListValue(meta map[string]any, field string, validator *validate.Validator) ([]string, bool) {
	raw, present := meta[field]
	if !present || raw == nil {
		validator.Custom(field, true, "This field is required")
		return nil, false
	}

	switch value := raw.(type) {
	case []string:
		return value, true
	case []any:
		list := make([]string, 0, len(value))
		for _, item := range value {
			entry, ok := item.(string)
			if !ok {
				validator.Custom(field, true, "Every entry must be a string")
				return nil, false
			}
			list = append(list, entry)
		}
		return list, true
	default:
		validator.Custom(field, true, "Must be a list of strings")
		return nil, false
	}
}
