// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package comics

import (
	"context"
	"log/slog"
	"math/rand"
	"slices"
	"sort"

	"github.com/mumocomics/mumoweb/internal/platform/apperr"
)

// # Repository

// Adjacency holds the reading-order neighbors of one comic.
//
// Previous is the next-older issue, Next the next-newer one, following the
// canonical publish-date-descending order. Either side is nil at the edges
// of the collection — and both are nil for an unknown slug, which is an
// answered question ("no neighbors"), not an error.
type Adjacency struct {
	Previous *Comic `json:"previous"`
	Next     *Comic `json:"next"`
}

// Repository answers every content lookup the site is built from.
//
// Each operation loads the collection through the per-request [SnapshotStore],
// sorts it into the canonical order, and derives its answer from that one
// consistent snapshot. Backing-store failures surface uniformly as
// RETRIEVAL_FAILED; defined absences as NOT_FOUND.
type Repository struct {
	source    Source
	snapshots *SnapshotStore
	logger    *slog.Logger
}

// NewRepository constructs a [Repository] over the given backing source.
func NewRepository(source Source, snapshots *SnapshotStore, logger *slog.Logger) *Repository {
	return &Repository{
		source:    source,
		snapshots: snapshots,
		logger:    logger,
	}
}

// collection loads the request-scoped snapshot and sorts it canonically.
//
// The sort is stable and total (slugs are unique), so two calls within one
// request observe byte-for-byte identical order.
func (repo *Repository) collection(ctx context.Context, operation, input string) ([]*Comic, error) {
	comics, err := repo.snapshots.Load(requestIDFrom(ctx), func() ([]*Comic, error) {
		return repo.source.Load(ctx)
	})
	if err != nil {
		repo.logger.Error("collection_load_failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return nil, apperr.Retrieval(operation, input, err)
	}

	sorted := slices.Clone(comics)
	slices.SortStableFunc(sorted, Compare)

	return sorted, nil
}

/*
All returns the entire collection in canonical order.

Returns:
  - []*Comic: Every comic, publish-date descending (may be empty)
  - error: RETRIEVAL_FAILED on a backing-store failure
*/
func (repo *Repository) All(ctx context.Context) ([]*Comic, error) {
	return repo.collection(ctx, "all_comics", "")
}

/*
BySlug returns the comic with the given slug.

Description: Slugs are unique by convention; should duplicates ever slip in,
the first match in canonical order wins deterministically.

Returns:
  - *Comic: The matching comic
  - error: NOT_FOUND when no comic carries the slug; RETRIEVAL_FAILED on failure
*/
func (repo *Repository) BySlug(ctx context.Context, slug string) (*Comic, error) {
	comics, err := repo.collection(ctx, "comic_by_slug", slug)
	if err != nil {
		return nil, err
	}

	for _, comic := range comics {
		if comic.Slug == slug {
			return comic, nil
		}
	}

	return nil, apperr.NotFound("Comic")
}

/*
Latest returns the most recently published comic.

Returns:
  - *Comic: The head of the canonical order
  - error: NOT_FOUND on an empty collection; RETRIEVAL_FAILED on failure
*/
func (repo *Repository) Latest(ctx context.Context) (*Comic, error) {
	comics, err := repo.collection(ctx, "latest_comic", "")
	if err != nil {
		return nil, err
	}

	if len(comics) == 0 {
		return nil, apperr.NotFound("Comic")
	}

	return comics[0], nil
}

/*
ByTag returns every comic carrying the given tag, in canonical order.

Description: Matching is exact and case-sensitive. An unknown tag yields an
empty slice, not an error — a tag filter with no hits is an ordinary answer.

Returns:
  - []*Comic: The matching comics (may be empty)
  - error: RETRIEVAL_FAILED on a backing-store failure
*/
func (repo *Repository) ByTag(ctx context.Context, tag string) ([]*Comic, error) {
	comics, err := repo.collection(ctx, "comics_by_tag", tag)
	if err != nil {
		return nil, err
	}

	matches := []*Comic{}
	for _, comic := range comics {
		if comic.HasTag(tag) {
			matches = append(matches, comic)
		}
	}

	return matches, nil
}

/*
Tags returns every distinct tag in the collection, alphabetically ascending.

Description: Duplicates across (and within) comics collapse to one entry.
The alphabetical order makes the tag index stable for navigation menus
regardless of publication activity.

Returns:
  - []string: The deduplicated tag set (may be empty)
  - error: RETRIEVAL_FAILED on a backing-store failure
*/
func (repo *Repository) Tags(ctx context.Context) ([]string, error) {
	comics, err := repo.collection(ctx, "all_tags", "")
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	tags := []string{}

	for _, comic := range comics {
		for _, tag := range comic.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	sort.Strings(tags)

	return tags, nil
}

/*
Random returns a uniformly random comic from the collection.

Returns:
  - *Comic: One comic, any of them equally likely
  - error: NOT_FOUND on an empty collection; RETRIEVAL_FAILED on failure
*/
func (repo *Repository) Random(ctx context.Context) (*Comic, error) {
	comics, err := repo.collection(ctx, "random_comic", "")
	if err != nil {
		return nil, err
	}

	if len(comics) == 0 {
		return nil, apperr.NotFound("Comic")
	}

	return comics[rand.Intn(len(comics))], nil
}

/*
Adjacent returns the reading-order neighbors of the comic with the given slug.

Description: In canonical (newest-first) order, Previous is the entry AFTER
the match (the older issue) and Next the entry BEFORE it (the newer issue).
An unknown slug yields an empty [Adjacency] with no error: the navigation
component simply renders no links.

Returns:
  - Adjacency: The neighboring comics, either side nil at the edges
  - error: RETRIEVAL_FAILED on a backing-store failure
*/
func (repo *Repository) Adjacent(ctx context.Context, slug string) (Adjacency, error) {
	comics, err := repo.collection(ctx, "adjacent_comics", slug)
	if err != nil {
		return Adjacency{}, err
	}

	for i, comic := range comics {
		if comic.Slug != slug {
			continue
		}

		var adjacency Adjacency
		if i+1 < len(comics) {
			adjacency.Previous = comics[i+1]
		}
		if i > 0 {
			adjacency.Next = comics[i-1]
		}
		return adjacency, nil
	}

	return Adjacency{}, nil
}
