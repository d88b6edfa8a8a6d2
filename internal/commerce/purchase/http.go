// Copyright (c) 2026 BookWise. All rights reserved.

package purchase

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amitkr8158/bookwise/internal/platform/middleware"
	requestutil "github.com/amitkr8158/bookwise/internal/platform/request"
	"github.com/amitkr8158/bookwise/internal/platform/respond"
	"github.com/amitkr8158/bookwise/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.record)
	router.Get("/", handler.listMine)
}

func (handler *Handler) record(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recorded, err := handler.service.Record(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, recorded)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	purchases, total, err := handler.service.ListMine(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, purchases, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
