// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package admin

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/mumocomics/mumoweb/internal/platform/middleware"
	requestutil "github.com/mumocomics/mumoweb/internal/platform/request"
	"github.com/mumocomics/mumoweb/internal/platform/respond"
	"github.com/mumocomics/mumoweb/internal/platform/sec"
	"github.com/mumocomics/mumoweb/internal/platform/validate"
)

// maxCoverUploadBytes bounds a single cover-image upload.
const maxCoverUploadBytes = 8 << 20

// # Handler Implementation

// Handler implements the publishing-panel HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the catalogue write endpoints.
//
// # Access
//
// Creating and editing requires [sec.RoleEditor]; deleting requires
// [sec.RoleAdmin]. Everything assumes the Authenticate middleware already
// ran at the server level.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/comics", handler.createComic)
		editor.Patch("/comics/{slug}", handler.updateComic)
		editor.Post("/comics/{slug}/cover", handler.uploadCover)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Delete("/comics/{slug}", handler.deleteComic)
	})

	return router
}

/*
POST /api/v1/admin/comics

Description: Creates a new comic. The slug may be omitted, in which case it
is generated from the title.

Request:
  - Body: CreateInput

Response:
  - 201: Comic: The persisted record
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Slug already in use
*/
func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comic, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comic)
}

/*
PATCH /api/v1/admin/comics/{slug}

Description: Applies a partial edit; omitted fields keep their stored values.

Request:
  - Body: UpdateInput (all fields optional)

Response:
  - 200: Comic: The merged, persisted record
  - 404: ErrNotFound: Unknown slug
  - 400: ErrInvalidJSON: The merged record violates a field rule
*/
func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	comicSlug := requestutil.Param(request, "slug")

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comic, err := handler.service.Update(request.Context(), comicSlug, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

/*
DELETE /api/v1/admin/comics/{slug}

Response:
  - 204: No Content: Comic removed
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) deleteComic(writer http.ResponseWriter, request *http.Request) {
	comicSlug := requestutil.Param(request, "slug")

	if err := handler.service.Delete(request.Context(), comicSlug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/admin/comics/{slug}/cover

Description: Uploads a cover image (raw bytes, content type inferred from
the ?ext= query parameter) and points the comic record at the stored path.

Request:
  - ext: string (".png", ".jpg", ".jpeg", ".webp")
  - Body: The raw image bytes

Response:
  - 200: {cover_image}: The public path now on the record
  - 404: ErrNotFound: Unknown slug
  - 400: Empty payload or unsupported extension
*/
func (handler *Handler) uploadCover(writer http.ResponseWriter, request *http.Request) {
	comicSlug := requestutil.Param(request, "slug")

	extension := request.URL.Query().Get("ext")
	if extension == "" {
		extension = filepath.Ext(request.URL.Query().Get("filename"))
	}

	payload, err := io.ReadAll(io.LimitReader(request.Body, maxCoverUploadBytes))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	publicPath, err := handler.service.UploadCover(request.Context(), comicSlug, extension, payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"cover_image": publicPath})
}
