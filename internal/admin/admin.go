// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

/*
Package admin implements the publishing panel: the authenticated write path
for the comic catalogue.

It owns comic creation, editing, deletion, and cover-image uploads. Reads go
through the public site API; this package never serves anonymous traffic.

Architecture:

  - Store: The comics-table write boundary (Postgres).
  - MediaStore: Cover-image uploads to S3-compatible object storage.
  - Service: Validation, slug generation, merge semantics for partial edits.
  - Handler: The /admin HTTP surface, role-guarded.
*/
package admin

import (
	"context"

	"github.com/mumocomics/mumoweb/internal/comics"
)

// # Persistence Boundaries

// Store is the write boundary for the comics table.
type Store interface {
	FindBySlug(ctx context.Context, slug string) (*comics.Comic, error)
	Insert(ctx context.Context, comic *comics.Comic) error
	Update(ctx context.Context, comic *comics.Comic) error
	Delete(ctx context.Context, slug string) error
}

// MediaStore is the upload boundary for cover images.
type MediaStore interface {
	// UploadCover stores the image bytes and returns the public path
	// (under the fixed cover-image prefix) the comic record should carry.
	UploadCover(ctx context.Context, slug, extension string, payload []byte) (string, error)
}

// Field identifier for the markup body, which only exists on the write path
// (the frontmatter identifiers cover everything else).
const FieldContent = "content"
