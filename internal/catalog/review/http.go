// Copyright (c) 2026 BookWise. All rights reserved.

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amitkr8158/bookwise/internal/platform/middleware"
	requestutil "github.com/amitkr8158/bookwise/internal/platform/request"
	"github.com/amitkr8158/bookwise/internal/platform/respond"
	"github.com/amitkr8158/bookwise/internal/platform/sec"
	"github.com/amitkr8158/bookwise/pkg/convert"
	"github.com/amitkr8158/bookwise/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterBookRoutes mounts the reader-facing routes under /books/{bookID}/reviews.
func (handler *Handler) RegisterBookRoutes(router chi.Router) {
	router.Get("/", handler.listForBook)
	router.Get("/summary", handler.summary)
	router.With(middleware.RequireAuth).Post("/", handler.submitReview)
}

// RegisterModerationRoutes mounts the controller routes under /reviews.
func (handler *Handler) RegisterModerationRoutes(router chi.Router) {
	router.Use(middleware.RequireRole(sec.RoleController))

	router.Get("/moderation", handler.listModeration)
	router.Patch("/{id}/visibility", handler.setVisibility)
	router.Patch("/{id}/top", handler.setTop)

	// Admin strict only
	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteReview)
}

func (handler *Handler) listForBook(writer http.ResponseWriter, request *http.Request) {
	reviews, err := handler.service.ListForBook(
		request.Context(),
		requestutil.ID(request, "bookID"),
		request.URL.Query().Get("tab"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.Summary(request.Context(), requestutil.ID(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

func (handler *Handler) submitReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Review
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.BookID = requestutil.ID(request, "bookID")

	if err := handler.service.SubmitReview(request.Context(), userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) listModeration(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := ModerationFilter{BookID: queryParams.Get("book_id")}
	if raw := queryParams.Get("visible"); raw != "" {
		visible := convert.ToBool(raw)
		filter.Visible = &visible
	}

	reviews, total, err := handler.service.ListModeration(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type visibilityInput struct {
	IsVisible bool `json:"is_visible"`
}

func (handler *Handler) setVisibility(writer http.ResponseWriter, request *http.Request) {
	var input visibilityInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.SetVisibility(request.Context(), requestutil.ID(request, "id"), input.IsVisible)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

type topInput struct {
	IsTop bool `json:"is_top"`
}

func (handler *Handler) setTop(writer http.ResponseWriter, request *http.Request) {
	var input topInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.SetTop(request.Context(), requestutil.ID(request, "id"), input.IsTop)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteReview(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
