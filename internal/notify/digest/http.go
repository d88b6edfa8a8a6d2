// Copyright (c) 2026 BookWise. All rights reserved.

package digest

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

// RegisterQuoteRoutes mounts the quote endpoints under /quotes.
func (handler *Handler) RegisterQuoteRoutes(router chi.Router) {
	router.Get("/daily", handler.dailyQuote)

	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/", handler.listQuotes)
		adminRoute.Post("/", handler.createQuote)
		adminRoute.Get("/{id}", handler.getQuote)
		adminRoute.Patch("/{id}", handler.updateQuote)
		adminRoute.Delete("/{id}", handler.deleteQuote)
	})
}

// RegisterAdminRoutes mounts the settings endpoints under /admin/digest.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/settings", handler.getSettings)
	router.Put("/settings", handler.putSettings)
	router.Post("/send", handler.sendNow)
}

func (handler *Handler) dailyQuote(writer http.ResponseWriter, request *http.Request) {
	quote, err := handler.service.DailyQuote(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, quote)
}

func (handler *Handler) listQuotes(writer http.ResponseWriter, request *http.Request) {
	quotes, err := handler.service.ListQuotes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, quotes)
}

func (handler *Handler) getQuote(writer http.ResponseWriter, request *http.Request) {
	quote, err := handler.service.GetQuote(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, quote)
}

func (handler *Handler) createQuote(writer http.ResponseWriter, request *http.Request) {
	var input Quote
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateQuote(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateQuote(writer http.ResponseWriter, request *http.Request) {
	var input Quote
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateQuote(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteQuote(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteQuote(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	settings, err := handler.service.GetSettings(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}

func (handler *Handler) putSettings(writer http.ResponseWriter, request *http.Request) {
	var input Settings
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SaveSettings(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) sendNow(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.SendNow(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
