// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

/*
Package site provides the public HTTP interface of the comic website.

It exposes the read-only endpoints the frontend is built from: the archive,
the home-page hero (latest issue), the reading page with navigation links,
tag discovery, and the syndication documents.

# Routing Strategy

Everything here is public and cacheable; mutation lives in the admin package.
The handler translates between the web/JSON layer and the comic repository.
*/
package site

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mumocomics/mumoweb/internal/comics"
	"github.com/mumocomics/mumoweb/internal/feed"
	"github.com/mumocomics/mumoweb/internal/platform/respond"
	"github.com/mumocomics/mumoweb/internal/render"
	"github.com/mumocomics/mumoweb/pkg/pagination"
	"github.com/mumocomics/mumoweb/pkg/slice"
)

// # Handler Implementation

// Handler implements the public content endpoints.
type Handler struct {
	repo     *comics.Repository
	renderer *render.Markdown
	rss      *feed.RSS
	sitemap  *feed.Sitemap
}

// NewHandler constructs a site [Handler] with its dependencies.
func NewHandler(repo *comics.Repository, renderer *render.Markdown, rss *feed.RSS, sitemap *feed.Sitemap) *Handler {
	return &Handler{
		repo:     repo,
		renderer: renderer,
		rss:      rss,
		sitemap:  sitemap,
	}
}

// Routes returns a [chi.Router] with the comic discovery endpoints.
//
// The syndication endpoints ([Handler.Feed], [Handler.Sitemap]) and the tag
// index ([Handler.Tags]) are mounted separately at the server root because
// their paths live outside the /comics subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComics)
	router.Get("/latest", handler.latestComic)
	router.Get("/random", handler.randomComic)
	router.Get("/{slug}", handler.getComic)

	return router
}

// # Response Shapes

// summary is the list-view projection of a comic: everything except the body.
type summary struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	PublishDate string   `json:"publish_date"`
	Synopsis    string   `json:"synopsis"`
	Tags        []string `json:"tags"`
	ReadingTime int      `json:"reading_time"`
	CoverImage  string   `json:"cover_image"`
	Author      string   `json:"author,omitempty"`
	Featured    bool     `json:"featured"`
}

// neighborRef is the adjacency projection: just enough to build a nav link.
type neighborRef struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// detail is the reading-page payload: the full record plus rendered HTML and
// navigation links.
type detail struct {
	*comics.Comic
	HTML     string       `json:"html"`
	Previous *neighborRef `json:"previous"`
	Next     *neighborRef `json:"next"`
}

func toSummary(comic *comics.Comic) summary {
	return summary{
		Title:       comic.Title,
		Slug:        comic.Slug,
		PublishDate: comic.PublishDate.UTC().Format(time.RFC3339),
		Synopsis:    comic.Synopsis,
		Tags:        comic.Tags,
		ReadingTime: comic.ReadingTime,
		CoverImage:  comic.CoverImage,
		Author:      comic.Author,
		Featured:    comic.Featured,
	}
}

func toNeighborRef(comic *comics.Comic) *neighborRef {
	if comic == nil {
		return nil
	}
	return &neighborRef{Title: comic.Title, Slug: comic.Slug}
}

// # Discovery Endpoints

/*
GET /api/v1/comics

Description: Retrieves the archive in canonical (newest-first) order,
optionally filtered by tag, paginated.

Request:
  - tag: string (Optional exact tag filter)
  - page: int
  - limit: int

Response:
  - 200: []summary: Paginated archive page
*/
func (handler *Handler) listComics(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	var (
		collection []*comics.Comic
		err        error
	)

	if tag := request.URL.Query().Get("tag"); tag != "" {
		collection, err = handler.repo.ByTag(request.Context(), tag)
	} else {
		collection, err = handler.repo.All(request.Context())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	total := len(collection)
	offset := paginationParams.Offset()
	if offset > total {
		offset = total
	}
	end := offset + paginationParams.Limit
	if end > total {
		end = total
	}

	page := slice.Map(collection[offset:end], toSummary)

	respond.Paginated(writer, page,
		pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/comics/latest

Description: Retrieves the most recently published issue for the home hero.

Response:
  - 200: summary: The latest issue
  - 404: ErrNotFound: The collection is empty
*/
func (handler *Handler) latestComic(writer http.ResponseWriter, request *http.Request) {
	comic, err := handler.repo.Latest(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toSummary(comic))
}

/*
GET /api/v1/comics/random

Description: Retrieves one uniformly random issue (the "surprise me" button).

Response:
  - 200: summary: A random issue
  - 404: ErrNotFound: The collection is empty
*/
func (handler *Handler) randomComic(writer http.ResponseWriter, request *http.Request) {
	comic, err := handler.repo.Random(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toSummary(comic))
}

/*
GET /api/v1/comics/{slug}

Description: Retrieves the full reading page for one issue: the record, its
body rendered to HTML, and the previous/next navigation references. Both
repository calls run inside one request snapshot, so the adjacency always
matches the returned issue.

Response:
  - 200: detail: Record, rendered body, navigation links
  - 404: ErrNotFound: No issue carries this slug
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	slug := chi.URLParam(request, "slug")

	comic, err := handler.repo.BySlug(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	adjacency, err := handler.repo.Adjacent(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	html, err := handler.renderer.Render(comic.Slug, comic.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail{
		Comic:    comic,
		HTML:     html,
		Previous: toNeighborRef(adjacency.Previous),
		Next:     toNeighborRef(adjacency.Next),
	})
}

/*
Tags handles GET /api/v1/tags.

Description: Retrieves every distinct tag, alphabetically ascending, for the
tag navigation menu.

Response:
  - 200: []string: The deduplicated tag set
*/
func (handler *Handler) Tags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.repo.Tags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

// # Syndication Endpoints

/*
Feed handles GET /rss.xml.

Description: Renders the newest issues as an RSS 2.0 document.

Response:
  - 200: application/xml: The syndication feed
*/
func (handler *Handler) Feed(writer http.ResponseWriter, request *http.Request) {
	collection, err := handler.repo.All(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.XML(writer, http.StatusOK, handler.rss.Generate(collection))
}

/*
Sitemap handles GET /sitemap.xml.

Description: Renders the whole archive plus the static pages as a sitemap.

Response:
  - 200: application/xml: The crawler sitemap
*/
func (handler *Handler) Sitemap(writer http.ResponseWriter, request *http.Request) {
	collection, err := handler.repo.All(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.XML(writer, http.StatusOK, handler.sitemap.Generate(collection))
}
