// Copyright (c) 2026 BookWise. All rights reserved.

package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amitkr8158/bookwise/internal/platform/middleware"
	requestutil "github.com/amitkr8158/bookwise/internal/platform/request"
	"github.com/amitkr8158/bookwise/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getCart)
	router.Post("/items", handler.addItem)
	router.Patch("/items/{id}", handler.updateQuantity)
	router.Delete("/items/{id}", handler.removeItem)
	router.Post("/promo", handler.applyPromo)
}

func (handler *Handler) getCart(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetCart(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) addItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AddItemInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.AddItem(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, view)
}

type quantityInput struct {
	Quantity int `json:"quantity"`
}

func (handler *Handler) updateQuantity(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input quantityInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.UpdateQuantity(request.Context(), userID, requestutil.ID(request, "id"), input.Quantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) removeItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.RemoveItem(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

type promoInput struct {
	Code string `json:"code"`
}

func (handler *Handler) applyPromo(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input promoInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.ApplyPromo(request.Context(), userID, input.Code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}
