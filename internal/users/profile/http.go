// Copyright (c) 2026 BookWise. All rights reserved.

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amitkr8158/bookwise/internal/platform/middleware"
	requestutil "github.com/amitkr8158/bookwise/internal/platform/request"
	"github.com/amitkr8158/bookwise/internal/platform/respond"
	"github.com/amitkr8158/bookwise/internal/platform/sec"
	"github.com/amitkr8158/bookwise/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterMeRoutes mounts the self-service profile endpoints at /me.
func (handler *Handler) RegisterMeRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)
	router.Get("/", handler.me)
	router.Patch("/", handler.updateMe)
}

// RegisterAdminRoutes mounts the user directory at /admin/users.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth, middleware.RequireRole(sec.RoleAdmin))
	router.Get("/", handler.listUsers)
	router.Patch("/{id}/role", handler.setRole)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.UpdateMe(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	profiles, total, err := handler.service.ListUsers(
		request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, profiles,
		pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type roleInput struct {
	Role string `json:"role"`
}

func (handler *Handler) setRole(writer http.ResponseWriter, request *http.Request) {
	var input roleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.SetRole(request.Context(), requestutil.ID(request, "id"), input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
