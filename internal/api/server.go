// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/amitkr8158/bookwise/internal/catalog/book"
	"github.com/amitkr8158/bookwise/internal/catalog/category"
	"github.com/amitkr8158/bookwise/internal/catalog/review"
	"github.com/amitkr8158/bookwise/internal/commerce/bundle"
	"github.com/amitkr8158/bookwise/internal/commerce/cart"
	"github.com/amitkr8158/bookwise/internal/commerce/purchase"
	"github.com/amitkr8158/bookwise/internal/notify/digest"
	"github.com/amitkr8158/bookwise/internal/notify/sales"
	"github.com/amitkr8158/bookwise/internal/platform/config"
	"github.com/amitkr8158/bookwise/internal/platform/constants"
	"github.com/amitkr8158/bookwise/internal/platform/middleware"
	"github.com/amitkr8158/bookwise/internal/users/auth"
	"github.com/amitkr8158/bookwise/internal/users/profile"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, and the session lifecycle.
	Auth *auth.Handler

	// Profile handles /me and the admin user directory.
	Profile *profile.Handler

	// Book handles the catalog and its curated views.
	Book *book.Handler

	// Category manages the browse taxonomy.
	Category *category.Handler

	// Review handles per-book reviews and the moderation queue.
	Review *review.Handler

	// Cart handles the shopping cart and promo codes.
	Cart *cart.Handler

	// Bundle handles featured and user-assembled bundles.
	Bundle *bundle.Handler

	// Purchase records purchases and lists a user's history.
	Purchase *purchase.Handler

	// Sales streams sale notifications and exposes their settings.
	Sales *sales.Handler

	// Digest manages quotes and the daily email digest.
	Digest *digest.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		// The SSE stream outlives the global request deadline, so it is the
		// only group mounted without the timeout middleware.
		api.Route("/notifications", h.Sales.RegisterStreamRoutes)

		api.Group(func(timed chi.Router) {
			timed.Use(chimw.Timeout(constants.GlobalRequestTimeout))

			timed.Route("/auth", h.Auth.RegisterRoutes)
			timed.Route("/me", h.Profile.RegisterMeRoutes)
			timed.Route("/admin/users", h.Profile.RegisterAdminRoutes)

			timed.Route("/books", func(books chi.Router) {
				h.Book.RegisterRoutes(books)
				books.Route("/{bookID}/reviews", h.Review.RegisterBookRoutes)
			})
			timed.Route("/categories", h.Category.RegisterRoutes)
			timed.Route("/reviews", h.Review.RegisterModerationRoutes)

			timed.Route("/cart", h.Cart.RegisterRoutes)
			timed.Route("/bundles", h.Bundle.RegisterRoutes)
			timed.Route("/purchases", h.Purchase.RegisterRoutes)

			timed.Route("/admin/notifications", h.Sales.RegisterAdminRoutes)
			timed.Route("/quotes", h.Digest.RegisterQuoteRoutes)
			timed.Route("/admin/digest", h.Digest.RegisterAdminRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
