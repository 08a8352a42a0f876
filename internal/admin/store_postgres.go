// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package admin

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mumocomics/mumoweb/internal/comics"
	"github.com/mumocomics/mumoweb/internal/platform/apperr"
	"github.com/mumocomics/mumoweb/internal/platform/constants"
	"github.com/mumocomics/mumoweb/internal/platform/dberr"
	"github.com/mumocomics/mumoweb/pkg/pointer"
)

// PostgresStore implements [Store] over the comics table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a [PostgresStore].
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// FindBySlug loads one comic row for editing.
func (store *PostgresStore) FindBySlug(ctx context.Context, slug string) (*comics.Comic, error) {
	const query = `
		SELECT slug, title, publish_date, synopsis, tags,
		       reading_time, cover_image, author, featured, content
		FROM comics
		WHERE slug = $1`

	comic, err := scanComic(store.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "find comic by slug")
	}

	return comic, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanComic reads one comics row. The presentation columns are nullable, so
// they scan through pointers and fall back to the same defaults the read
// path applies; a half-filled legacy row must still load for editing.
func scanComic(row rowScanner) (*comics.Comic, error) {
	var (
		comic       comics.Comic
		tags        []string
		readingTime *int
		coverImage  *string
		author      *string
		featured    *bool
		content     *string
	)

	err := row.Scan(
		&comic.Slug, &comic.Title, &comic.PublishDate, &comic.Synopsis,
		&tags, &readingTime, &coverImage, &author, &featured, &content,
	)
	if err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []string{}
	}
	comic.Tags = tags
	comic.ReadingTime = pointer.Fallback(readingTime, constants.DefaultReadingTime)
	comic.CoverImage = pointer.Fallback(coverImage, "")
	comic.Author = pointer.Fallback(author, constants.DefaultAuthor)
	comic.Featured = pointer.Fallback(featured, false)
	comic.Content = pointer.Fallback(content, "")

	return &comic, nil
}

// Insert persists a new comic. A duplicate slug surfaces as a Conflict.
func (store *PostgresStore) Insert(ctx context.Context, comic *comics.Comic) error {
	const query = `
		INSERT INTO comics
			(slug, title, publish_date, synopsis, tags,
			 reading_time, cover_image, author, featured, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := store.pool.Exec(ctx, query,
		comic.Slug, comic.Title, comic.PublishDate, comic.Synopsis, comic.Tags,
		comic.ReadingTime, comic.CoverImage, comic.Author, comic.Featured, comic.Content,
	)
	if err != nil {
		return dberr.Wrap(err, "insert comic")
	}

	return nil
}

// Update overwrites every mutable column of an existing comic.
func (store *PostgresStore) Update(ctx context.Context, comic *comics.Comic) error {
	const query = `
		UPDATE comics
		SET title = $2, publish_date = $3, synopsis = $4, tags = $5,
		    reading_time = $6, cover_image = $7, author = $8, featured = $9,
		    content = $10, updated_at = now()
		WHERE slug = $1`

	tag, err := store.pool.Exec(ctx, query,
		comic.Slug, comic.Title, comic.PublishDate, comic.Synopsis, comic.Tags,
		comic.ReadingTime, comic.CoverImage, comic.Author, comic.Featured, comic.Content,
	)
	if err != nil {
		return dberr.Wrap(err, "update comic")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comic")
	}

	return nil
}

// Delete removes a comic row.
func (store *PostgresStore) Delete(ctx context.Context, slug string) error {
	tag, err := store.pool.Exec(ctx, `DELETE FROM comics WHERE slug = $1`, slug)
	if err != nil {
		return dberr.Wrap(err, "delete comic")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comic")
	}

	return nil
}
