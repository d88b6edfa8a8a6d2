// Copyright (c) 2026 BookWise. All rights reserved.

package bundle

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
	// Public storefront
	router.Get("/", handler.listFeatured)

	// Reader custom bundles
	router.Group(func(userRoute chi.Router) {
		userRoute.Use(middleware.RequireAuth)

		userRoute.Get("/custom", handler.listCustom)
		userRoute.Post("/custom", handler.createCustom)
		userRoute.Put("/custom/{id}", handler.updateCustom)
		userRoute.Delete("/custom/{id}", handler.deleteCustom)
	})

	router.Get("/{id}", handler.getFeatured)

	// Admin curation
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/all", handler.listAllFeatured)
		adminRoute.Post("/", handler.createFeatured)
		adminRoute.Patch("/{id}", handler.updateFeatured)
		adminRoute.Delete("/{id}", handler.deleteFeatured)
	})
}

func (handler *Handler) listFeatured(writer http.ResponseWriter, request *http.Request) {
	bundles, err := handler.service.ListFeatured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bundles)
}

func (handler *Handler) listAllFeatured(writer http.ResponseWriter, request *http.Request) {
	bundles, err := handler.service.ListAllFeatured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bundles)
}

func (handler *Handler) getFeatured(writer http.ResponseWriter, request *http.Request) {
	bundle, err := handler.service.GetFeatured(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bundle)
}

func (handler *Handler) createFeatured(writer http.ResponseWriter, request *http.Request) {
	var input Bundle
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateFeatured(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateFeatured(writer http.ResponseWriter, request *http.Request) {
	var input Bundle
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateFeatured(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteFeatured(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteFeatured(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listCustom(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bundles, err := handler.service.ListCustom(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bundles)
}

func (handler *Handler) createCustom(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CustomInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateCustom(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateCustom(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CustomInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateCustom(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteCustom(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCustom(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
