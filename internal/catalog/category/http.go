// Copyright (c) 2026 BookWise. All rights reserved.

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amitkr8158/bookwise/internal/platform/middleware"
	requestutil "github.com/amitkr8158/bookwise/internal/platform/request"
	"github.com/amitkr8158/bookwise/internal/platform/respond"
	"github.com/amitkr8158/bookwise/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listCategories)
	router.Get("/{slug}", handler.getCategory)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createCategory)
		adminRoute.Patch("/{slug}", handler.updateCategory)
		adminRoute.Delete("/{slug}", handler.deleteCategory)
	})
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetCategory(request.Context(), requestutil.ID(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCategory(request.Context(), requestutil.ID(request, "slug"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCategory(request.Context(), requestutil.ID(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
