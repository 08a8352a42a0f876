// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mumocomics/mumoweb/internal/comics"
	"github.com/mumocomics/mumoweb/internal/platform/apperr"
	"github.com/mumocomics/mumoweb/internal/platform/constants"
	"github.com/mumocomics/mumoweb/internal/platform/validate"
	"github.com/mumocomics/mumoweb/pkg/pointer"
	"github.com/mumocomics/mumoweb/pkg/slug"
)

// # Service Implementation

// Service implements the catalogue write operations.
//
// Every mutation passes through the same field rules the file-backed content
// pipeline enforces, so a comic is equally valid no matter which door it
// entered through.
type Service struct {
	store  Store
	media  MediaStore
	logger *slog.Logger
}

// NewService constructs an admin [Service].
func NewService(store Store, media MediaStore, logger *slog.Logger) *Service {
	return &Service{store: store, media: media, logger: logger}
}

// CreateInput carries the fields for a new comic. Slug is optional; when
// absent it is generated from the title.
type CreateInput struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	PublishDate time.Time `json:"publish_date"`
	Synopsis    string    `json:"synopsis"`
	Tags        []string  `json:"tags"`
	ReadingTime int       `json:"reading_time"`
	CoverImage  string    `json:"cover_image"`
	Author      string    `json:"author"`
	Featured    bool      `json:"featured"`
	Content     string    `json:"content"`
}

// UpdateInput carries a partial edit: nil fields keep their current value.
type UpdateInput struct {
	Title       *string    `json:"title"`
	PublishDate *time.Time `json:"publish_date"`
	Synopsis    *string    `json:"synopsis"`
	Tags        *[]string  `json:"tags"`
	ReadingTime *int       `json:"reading_time"`
	CoverImage  *string    `json:"cover_image"`
	Author      *string    `json:"author"`
	Featured    *bool      `json:"featured"`
	Content     *string    `json:"content"`
}

/*
Create validates and persists a new comic.

Description: A missing slug is generated from the title. The full field-rule
set applies; a duplicate slug surfaces as a Conflict from the store.

Returns:
  - *comics.Comic: The persisted record
  - error: VALIDATION_ERROR, CONFLICT, or a storage failure
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*comics.Comic, error) {
	if input.Slug == "" {
		input.Slug = slug.From(input.Title)
	}

	comic := &comics.Comic{
		Title:       input.Title,
		Slug:        input.Slug,
		PublishDate: input.PublishDate,
		Synopsis:    input.Synopsis,
		Tags:        input.Tags,
		ReadingTime: input.ReadingTime,
		CoverImage:  input.CoverImage,
		Author:      input.Author,
		Featured:    input.Featured,
		Content:     input.Content,
	}

	if err := validateComic(comic); err != nil {
		return nil, err
	}

	if err := service.store.Insert(ctx, comic); err != nil {
		return nil, err
	}

	service.logger.Info("comic_created", slog.String("slug", comic.Slug))
	return comic, nil
}

/*
Update applies a partial edit to an existing comic.

Description: Merge-then-validate: the stored record is loaded, the provided
fields are overlaid, and the merged result must pass the full rule set. A
half-valid edit therefore cannot corrupt a valid record.

Returns:
  - *comics.Comic: The updated record
  - error: NOT_FOUND, VALIDATION_ERROR, or a storage failure
*/
func (service *Service) Update(ctx context.Context, comicSlug string, input UpdateInput) (*comics.Comic, error) {
	comic, err := service.store.FindBySlug(ctx, comicSlug)
	if err != nil {
		return nil, err
	}

	comic.Title = pointer.Fallback(input.Title, comic.Title)
	comic.PublishDate = pointer.Fallback(input.PublishDate, comic.PublishDate)
	comic.Synopsis = pointer.Fallback(input.Synopsis, comic.Synopsis)
	comic.Tags = pointer.Fallback(input.Tags, comic.Tags)
	comic.ReadingTime = pointer.Fallback(input.ReadingTime, comic.ReadingTime)
	comic.CoverImage = pointer.Fallback(input.CoverImage, comic.CoverImage)
	comic.Author = pointer.Fallback(input.Author, comic.Author)
	comic.Featured = pointer.Fallback(input.Featured, comic.Featured)
	comic.Content = pointer.Fallback(input.Content, comic.Content)

	if err := validateComic(comic); err != nil {
		return nil, err
	}

	if err := service.store.Update(ctx, comic); err != nil {
		return nil, err
	}

	service.logger.Info("comic_updated", slog.String("slug", comic.Slug))
	return comic, nil
}

// Delete removes a comic from the catalogue.
func (service *Service) Delete(ctx context.Context, comicSlug string) error {
	if err := service.store.Delete(ctx, comicSlug); err != nil {
		return err
	}

	service.logger.Info("comic_deleted", slog.String("slug", comicSlug))
	return nil
}

/*
UploadCover stores a cover image and points the comic at it.

Returns:
  - string: The public cover path now on the record
  - error: NOT_FOUND for an unknown comic, or an upload/storage failure
*/
func (service *Service) UploadCover(ctx context.Context, comicSlug, extension string, payload []byte) (string, error) {
	comic, err := service.store.FindBySlug(ctx, comicSlug)
	if err != nil {
		return "", err
	}

	if len(payload) == 0 {
		return "", apperr.ValidationError("Cover image payload is empty")
	}

	if _, ok := allowedCoverExtensions[strings.ToLower(extension)]; !ok {
		return "", apperr.ValidationError("Unsupported cover image extension")
	}

	publicPath, err := service.media.UploadCover(ctx, comicSlug, extension, payload)
	if err != nil {
		return "", apperr.Internal(err)
	}

	comic.CoverImage = publicPath
	if err := service.store.Update(ctx, comic); err != nil {
		return "", err
	}

	return publicPath, nil
}

// validateComic applies the shared field rules to a complete record.
func validateComic(comic *comics.Comic) error {
	validator := &validate.Validator{}

	validator.Required(comics.FieldTitle, comic.Title).
		MaxLen(comics.FieldTitle, comic.Title, comics.TitleMaxLen).
		Slug(comics.FieldSlug, comic.Slug).
		MinLen(comics.FieldSynopsis, comic.Synopsis, comics.SynopsisMinLen).
		MaxLen(comics.FieldSynopsis, comic.Synopsis, comics.SynopsisMaxLen).
		Positive(comics.FieldReadingTime, comic.ReadingTime).
		Required(comics.FieldCoverImage, comic.CoverImage).
		Prefix(comics.FieldCoverImage, comic.CoverImage, constants.CoverImagePrefix).
		MaxLen(comics.FieldAuthor, comic.Author, comics.AuthorMaxLen).
		Custom(comics.FieldPublishDate, comic.PublishDate.IsZero(), "This field is required").
		Custom(comics.FieldTags, len(comic.Tags) < comics.TagsMinCount, "At least one tag is required").
		Custom(comics.FieldTags, len(comic.Tags) > comics.TagsMaxCount, "Maximum 5 tags")

	for i, tag := range comic.Tags {
		field := fmt.Sprintf("%s[%d]", comics.FieldTags, i)
		validator.MinLen(field, tag, comics.TagMinLen).MaxLen(field, tag, comics.TagMaxLen)
	}

	return validator.Err()
}
