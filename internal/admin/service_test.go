// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package admin_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumocomics/mumoweb/internal/admin"
	"github.com/mumocomics/mumoweb/internal/comics"
	"github.com/mumocomics/mumoweb/internal/platform/apperr"
	"github.com/mumocomics/mumoweb/internal/platform/constants"
	"github.com/mumocomics/mumoweb/pkg/pointer"
)

// memoryStore is an in-memory Store for service tests.
type memoryStore struct {
	records map[string]*comics.Comic
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]*comics.Comic{}}
}

func (s *memoryStore) FindBySlug(ctx context.Context, slug string) (*comics.Comic, error) {
	comic, ok := s.records[slug]
	if !ok {
		return nil, apperr.NotFound("Comic")
	}
	clone := *comic
	return &clone, nil
}

func (s *memoryStore) Insert(ctx context.Context, comic *comics.Comic) error {
	if _, exists := s.records[comic.Slug]; exists {
		return apperr.Conflict("A record with the same identifier already exists")
	}
	clone := *comic
	s.records[comic.Slug] = &clone
	return nil
}

func (s *memoryStore) Update(ctx context.Context, comic *comics.Comic) error {
	if _, exists := s.records[comic.Slug]; !exists {
		return apperr.NotFound("Comic")
	}
	clone := *comic
	s.records[comic.Slug] = &clone
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, slug string) error {
	if _, exists := s.records[slug]; !exists {
		return apperr.NotFound("Comic")
	}
	delete(s.records, slug)
	return nil
}

// memoryMedia records uploads and returns deterministic public paths.
type memoryMedia struct {
	uploads map[string][]byte
}

func (m *memoryMedia) UploadCover(ctx context.Context, slug, extension string, payload []byte) (string, error) {
	if m.uploads == nil {
		m.uploads = map[string][]byte{}
	}
	path := constants.CoverImagePrefix + slug + extension
	m.uploads[path] = payload
	return path, nil
}

func newService() (*admin.Service, *memoryStore, *memoryMedia) {
	store := newMemoryStore()
	media := &memoryMedia{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return admin.NewService(store, media, logger), store, media
}

func validCreateInput() admin.CreateInput {
	return admin.CreateInput{
		Title:       "Mumo Meets World",
		PublishDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Synopsis:    "Mumo ventures beyond the garden wall for the first time.",
		Tags:        []string{"adventure"},
		ReadingTime: 4,
		CoverImage:  "/images/comics/mumo-meets-world.png",
		Content:     "# Panel one",
	}
}

/*
TestService_Create_GeneratesSlug derives the slug from the title when none
is supplied.
*/
func TestService_Create_GeneratesSlug(t *testing.T) {
	service, store, _ := newService()

	comic, err := service.Create(context.Background(), validCreateInput())

	require.NoError(t, err)
	assert.Equal(t, "mumo-meets-world", comic.Slug)
	assert.Contains(t, store.records, "mumo-meets-world")
}

/*
TestService_Create_ExplicitSlug keeps a supplied slug as-is.
*/
func TestService_Create_ExplicitSlug(t *testing.T) {
	service, _, _ := newService()

	input := validCreateInput()
	input.Slug = "custom-identifier"

	comic, err := service.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "custom-identifier", comic.Slug)
}

/*
TestService_Create_Validation rejects records violating the shared rules.
*/
func TestService_Create_Validation(t *testing.T) {
	service, _, _ := newService()

	input := validCreateInput()
	input.Synopsis = "too short"
	input.ReadingTime = 0
	input.CoverImage = "/elsewhere/cover.png"

	_, err := service.Create(context.Background(), input)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.GreaterOrEqual(t, len(ae.Details), 3)
}

/*
TestService_Create_DuplicateSlug surfaces as a Conflict.
*/
func TestService_Create_DuplicateSlug(t *testing.T) {
	service, _, _ := newService()

	_, err := service.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = service.Create(context.Background(), validCreateInput())
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Update_Merge overlays only the provided fields and re-validates
the merged record.
*/
func TestService_Update_Merge(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateInput())
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.Slug, admin.UpdateInput{
		Title:    pointer.To("Mumo Meets World, Revised"),
		Featured: pointer.To(true),
	})

	require.NoError(t, err)
	assert.Equal(t, "Mumo Meets World, Revised", updated.Title)
	assert.True(t, updated.Featured)

	// Untouched fields survive the merge.
	assert.Equal(t, created.Synopsis, updated.Synopsis)
	assert.Equal(t, created.Tags, updated.Tags)
}

/*
TestService_Update_InvalidMerge rejects an edit that would break the record.
*/
func TestService_Update_InvalidMerge(t *testing.T) {
	service, store, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateInput())
	require.NoError(t, err)

	_, err = service.Update(ctx, created.Slug, admin.UpdateInput{
		Synopsis: pointer.To("nope"),
	})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// The stored record is untouched.
	assert.Equal(t, created.Synopsis, store.records[created.Slug].Synopsis)
}

/*
TestService_Update_UnknownSlug is a defined absence.
*/
func TestService_Update_UnknownSlug(t *testing.T) {
	service, _, _ := newService()

	_, err := service.Update(context.Background(), "ghost", admin.UpdateInput{
		Featured: pointer.To(true),
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Delete removes the record; deleting again is NOT_FOUND.
*/
func TestService_Delete(t *testing.T) {
	service, store, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateInput())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.Slug))
	assert.NotContains(t, store.records, created.Slug)

	err = service.Delete(ctx, created.Slug)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_UploadCover stores the image and repoints the record.
*/
func TestService_UploadCover(t *testing.T) {
	service, store, media := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateInput())
	require.NoError(t, err)

	path, err := service.UploadCover(ctx, created.Slug, ".webp", []byte{0x52, 0x49, 0x46, 0x46})

	require.NoError(t, err)
	assert.Equal(t, "/images/comics/mumo-meets-world.webp", path)
	assert.Equal(t, path, store.records[created.Slug].CoverImage)
	assert.Contains(t, media.uploads, path)
}

/*
TestService_UploadCover_Rejections covers the empty payload and unsupported
extension cases.
*/
func TestService_UploadCover_Rejections(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateInput())
	require.NoError(t, err)

	_, err = service.UploadCover(ctx, created.Slug, ".png", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.UploadCover(ctx, created.Slug, ".exe", []byte{1})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.UploadCover(ctx, "ghost", ".png", []byte{1})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
