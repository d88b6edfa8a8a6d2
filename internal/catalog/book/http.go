// Copyright (c) 2026 BookWise. All rights reserved.

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/middleware"
	requestutil "github.com/amitkr8158/bookwise/internal/platform/request"
	"github.com/amitkr8158/bookwise/internal/platform/respond"
	"github.com/amitkr8158/bookwise/internal/platform/sec"
	"github.com/amitkr8158/bookwise/pkg/pagination"
)

// maxMediaUploadBytes caps multipart uploads (covers sizable audio summaries).
const maxMediaUploadBytes = 200 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listBooks)
	router.Get("/trending", handler.trending)
	router.Get("/new-releases", handler.newReleases)
	router.Get("/free", handler.freeBooks)
	router.Get("/{idOrSlug}", handler.getBook)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createBook)
		adminRoute.Patch("/{id}", handler.updateBook)
		adminRoute.Delete("/{id}", handler.deleteBook)
		adminRoute.Post("/{id}/media", handler.uploadMedia)
	})
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	queryParams := request.URL.Query()
	filter := Filter{
		Language: queryParams.Get("language"),
		Category: queryParams.Get("category"),
		Query:    queryParams.Get("q"),
		Sort:     queryParams.Get("sort"),
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) trending(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.Trending(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) newReleases(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.NewReleases(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) freeBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.FreeBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetBook(request.Context(), requestutil.ID(request, "idOrSlug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBook(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input.Display())
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBook(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input.Display())
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBook(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// uploadMedia accepts a multipart form with a "file" part and a "kind" field
// (cover, pdf, audio, video) and responds with the stored public URL.
func (handler *Handler) uploadMedia(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxMediaUploadBytes)

	if err := request.ParseMultipartForm(32 << 20); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart form"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing file upload"))
		return
	}
	defer file.Close()

	kind := MediaKind(request.FormValue("kind"))

	url, err := handler.service.UploadMedia(
		request.Context(),
		requestutil.ID(request, "id"),
		kind,
		header.Filename,
		file,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"url": url})
}
