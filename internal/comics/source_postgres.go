// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package comics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mumocomics/mumoweb/internal/platform/constants"
	"github.com/mumocomics/mumoweb/pkg/pointer"
)

// # Postgres Source

// PostgresSource loads the comic collection from the comics table.
//
// Unlike the file backend there is no per-record validation on read: the
// admin write path already validated everything on the way in. Nullable
// columns fall back to sensible defaults so a half-filled legacy row still
// renders.
type PostgresSource struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresSource constructs a [PostgresSource] over the shared pool.
func NewPostgresSource(pool *pgxpool.Pool, logger *slog.Logger) *PostgresSource {
	return &PostgresSource{pool: pool, logger: logger}
}

/*
Load fetches the full collection in one query.

Description: Rows come back publish-date descending, but callers must not
rely on that; the repository re-sorts into the canonical order regardless of
backend. An empty table is a valid, empty collection.

Returns:
  - []*Comic: Every stored comic
  - error: A query or scan failure (never partial results)
*/
func (source *PostgresSource) Load(ctx context.Context) ([]*Comic, error) {
	const query = `
		SELECT slug, title, publish_date, synopsis, tags,
		       reading_time, cover_image, author, featured, content
		FROM comics
		ORDER BY publish_date DESC, slug ASC`

	rows, err := source.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("comics: query collection: %w", err)
	}
	defer rows.Close()

	collection := []*Comic{}

	for rows.Next() {
		var (
			comic       Comic
			tags        []string
			readingTime *int
			coverImage  *string
			author      *string
			featured    *bool
			content     *string
		)

		err := rows.Scan(
			&comic.Slug, &comic.Title, &comic.PublishDate, &comic.Synopsis,
			&tags, &readingTime, &coverImage, &author, &featured, &content,
		)
		if err != nil {
			return nil, fmt.Errorf("comics: scan row: %w", err)
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

		collection = append(collection, &comic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("comics: read collection: %w", err)
	}

	source.logger.Debug("collection_loaded_from_db",
		slog.Int("comics", len(collection)),
	)

	return collection, nil
}
