// Copyright (c) 2026 BookWise. All rights reserved.

package sales

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/middleware"
	requestutil "github.com/amitkr8158/bookwise/internal/platform/request"
	"github.com/amitkr8158/bookwise/internal/platform/respond"
	"github.com/amitkr8158/bookwise/internal/platform/sec"
	"github.com/amitkr8158/bookwise/internal/platform/validate"
)

type Handler struct {
	generator *Generator
	settings  SettingsStore
}

func NewHandler(generator *Generator, settings SettingsStore) *Handler {
	return &Handler{generator: generator, settings: settings}
}

// RegisterStreamRoutes mounts the public SSE endpoint under /notifications.
func (handler *Handler) RegisterStreamRoutes(router chi.Router) {
	router.Get("/stream", handler.stream)
}

// RegisterAdminRoutes mounts the settings endpoints under /admin/notifications.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/settings", handler.getSettings)
	router.Put("/settings", handler.putSettings)
}

// stream pushes sales notifications as Server-Sent Events until the client
// disconnects.
func (handler *Handler) stream(writer http.ResponseWriter, request *http.Request) {
	flusher, ok := writer.(http.Flusher)
	if !ok {
		respond.Error(writer, request, apperr.Internal(fmt.Errorf("sales: response writer does not support flushing")))
		return
	}

	// Long-lived stream: lift the server's write deadline for this response.
	_ = http.NewResponseController(writer).SetWriteDeadline(time.Time{})

	writer.Header().Set("Content-Type", "text/event-stream")
	writer.Header().Set("Cache-Control", "no-cache")
	writer.Header().Set("Connection", "keep-alive")
	writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := handler.generator.Subscribe()
	defer cancel()

	for {
		select {
		case <-request.Context().Done():
			return
		case notification := <-events:
			payload, err := json.Marshal(notification)
			if err != nil {
				continue
			}
			fmt.Fprintf(writer, "event: sale\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	settings, err := handler.settings.Load(request.Context())
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
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

	validator := &validate.Validator{}
	validator.Range("frequency_seconds", input.FrequencySeconds, 1, 3600)
	validator.Range("duration_seconds", input.DurationSeconds, 1, 300)
	validator.OneOf("position", input.Position, PositionBottomLeft, PositionBottomRight, PositionTopLeft, PositionTopRight)
	validator.NonNegative("min_amount", input.MinAmount)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.settings.Save(request.Context(), input); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	respond.OK(writer, input)
}
