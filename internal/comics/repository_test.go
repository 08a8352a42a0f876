// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package comics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumocomics/mumoweb/internal/comics"
	"github.com/mumocomics/mumoweb/internal/platform/apperr"
	"github.com/mumocomics/mumoweb/internal/platform/ctxutil"
)

// stubSource is an in-memory Source with a call counter and an optional
// forced failure.
type stubSource struct {
	comics []*comics.Comic
	err    error
	calls  int
}

func (s *stubSource) Load(ctx context.Context) ([]*comics.Comic, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.comics, nil
}

func newRepository(source comics.Source) (*comics.Repository, *comics.SnapshotStore) {
	snapshots := comics.NewSnapshotStore()
	return comics.NewRepository(source, snapshots, discardLogger()), snapshots
}

// sampleCollection is four issues spanning three publish dates, with a slug
// tie on the middle date and overlapping tags.
func sampleCollection() []*comics.Comic {
	return []*comics.Comic{
		{Slug: "oldest", PublishDate: date("2023-12-01"), Tags: []string{"origin"}},
		{Slug: "beta", PublishDate: date("2024-01-15"), Tags: []string{"adventure"}},
		{Slug: "alpha", PublishDate: date("2024-01-15"), Tags: []string{"adventure", "origin"}},
		{Slug: "newest", PublishDate: date("2024-02-20"), Tags: []string{"adventure"}},
	}
}

/*
TestRepository_All returns the canonical order regardless of source order.
*/
func TestRepository_All(t *testing.T) {
	repo, _ := newRepository(&stubSource{comics: sampleCollection()})

	all, err := repo.All(context.Background())

	require.NoError(t, err)
	require.Len(t, all, 4)

	got := []string{all[0].Slug, all[1].Slug, all[2].Slug, all[3].Slug}
	assert.Equal(t, []string{"newest", "alpha", "beta", "oldest"}, got)
}

/*
TestRepository_BySlug covers hit and miss.
*/
func TestRepository_BySlug(t *testing.T) {
	repo, _ := newRepository(&stubSource{comics: sampleCollection()})

	comic, err := repo.BySlug(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", comic.Slug)

	_, err = repo.BySlug(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestRepository_Latest picks the head of the canonical order; an empty
collection is a defined absence, not a failure.
*/
func TestRepository_Latest(t *testing.T) {
	repo, _ := newRepository(&stubSource{comics: sampleCollection()})

	latest, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "newest", latest.Slug)

	empty, _ := newRepository(&stubSource{comics: []*comics.Comic{}})
	_, err = empty.Latest(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestRepository_ByTag filters exactly and preserves canonical order; an
unknown tag is an empty answer, not an error.
*/
func TestRepository_ByTag(t *testing.T) {
	repo, _ := newRepository(&stubSource{comics: sampleCollection()})

	matches, err := repo.ByTag(context.Background(), "adventure")
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "newest", matches[0].Slug)
	assert.Equal(t, "alpha", matches[1].Slug)
	assert.Equal(t, "beta", matches[2].Slug)

	none, err := repo.ByTag(context.Background(), "horror")
	require.NoError(t, err)
	assert.Empty(t, none)

	// Case-sensitive: "Adventure" is a different tag.
	none, err = repo.ByTag(context.Background(), "Adventure")
	require.NoError(t, err)
	assert.Empty(t, none)
}

/*
TestRepository_Tags deduplicates across comics and sorts alphabetically.
*/
func TestRepository_Tags(t *testing.T) {
	repo, _ := newRepository(&stubSource{comics: sampleCollection()})

	tags, err := repo.Tags(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"adventure", "origin"}, tags)
}

/*
TestRepository_Random only ever returns members of the collection and fails
as a defined absence when the collection is empty.
*/
func TestRepository_Random(t *testing.T) {
	collection := sampleCollection()
	repo, _ := newRepository(&stubSource{comics: collection})

	valid := map[string]bool{}
	for _, comic := range collection {
		valid[comic.Slug] = true
	}

	for i := 0; i < 20; i++ {
		comic, err := repo.Random(context.Background())
		require.NoError(t, err)
		assert.True(t, valid[comic.Slug])
	}

	empty, _ := newRepository(&stubSource{comics: []*comics.Comic{}})
	_, err := empty.Random(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestRepository_Adjacent walks the neighbor links through the canonical order,
including both edges and the unknown-slug case.
*/
func TestRepository_Adjacent(t *testing.T) {
	repo, _ := newRepository(&stubSource{comics: sampleCollection()})
	ctx := context.Background()

	// Middle of the order: both neighbors present.
	adjacency, err := repo.Adjacent(ctx, "alpha")
	require.NoError(t, err)
	require.NotNil(t, adjacency.Previous)
	require.NotNil(t, adjacency.Next)
	assert.Equal(t, "beta", adjacency.Previous.Slug)
	assert.Equal(t, "newest", adjacency.Next.Slug)

	// Newest issue: nothing newer.
	adjacency, err = repo.Adjacent(ctx, "newest")
	require.NoError(t, err)
	assert.Nil(t, adjacency.Next)
	require.NotNil(t, adjacency.Previous)
	assert.Equal(t, "alpha", adjacency.Previous.Slug)

	// Oldest issue: nothing older.
	adjacency, err = repo.Adjacent(ctx, "oldest")
	require.NoError(t, err)
	assert.Nil(t, adjacency.Previous)
	require.NotNil(t, adjacency.Next)
	assert.Equal(t, "beta", adjacency.Next.Slug)

	// Unknown slug: both absent, no error.
	adjacency, err = repo.Adjacent(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, adjacency.Previous)
	assert.Nil(t, adjacency.Next)
}

/*
TestRepository_RetrievalFailure wraps every backing-store failure as
RETRIEVAL_FAILED with the operation named in the message.
*/
func TestRepository_RetrievalFailure(t *testing.T) {
	cause := errors.New("disk on fire")
	repo, _ := newRepository(&stubSource{err: cause})
	ctx := context.Background()

	_, err := repo.All(ctx)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RETRIEVAL_FAILED", ae.Code)
	assert.ErrorIs(t, err, cause)

	_, err = repo.BySlug(ctx, "some-slug")
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RETRIEVAL_FAILED", ae.Code)
	assert.Contains(t, ae.Message, "comic_by_slug")
	assert.Contains(t, ae.Message, "some-slug")
	assert.False(t, apperr.IsNotFound(err), "failure must stay distinct from absence")
}

/*
TestRepository_SnapshotMemoization verifies one source load per acquired
request, shared across operations, and released afterwards.
*/
func TestRepository_SnapshotMemoization(t *testing.T) {
	source := &stubSource{comics: sampleCollection()}
	repo, snapshots := newRepository(source)

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	snapshots.Acquire("req-42")

	_, err := repo.All(ctx)
	require.NoError(t, err)
	_, err = repo.Latest(ctx)
	require.NoError(t, err)
	_, err = repo.Tags(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls, "one load serves the whole request")

	snapshots.Release("req-42")

	// After release the next request loads afresh.
	_, err = repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

/*
TestRepository_SnapshotWithoutAcquire bypasses memoization when no request
was registered.
*/
func TestRepository_SnapshotWithoutAcquire(t *testing.T) {
	source := &stubSource{comics: sampleCollection()}
	repo, _ := newRepository(source)
	ctx := context.Background()

	_, err := repo.All(ctx)
	require.NoError(t, err)
	_, err = repo.All(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
}

/*
TestRepository_SnapshotMemoizesFailure verifies a failed load is not retried
within the same request.
*/
func TestRepository_SnapshotMemoizesFailure(t *testing.T) {
	source := &stubSource{err: errors.New("unavailable")}
	repo, snapshots := newRepository(source)

	ctx := ctxutil.WithRequestID(context.Background(), "req-err")
	snapshots.Acquire("req-err")
	defer snapshots.Release("req-err")

	_, err := repo.All(ctx)
	require.Error(t, err)
	_, err = repo.Latest(ctx)
	require.Error(t, err)

	assert.Equal(t, 1, source.calls)
}
