// Copyright (c) 2026 BookWise. All rights reserved.

// Command api is the entry point for the BookWise HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers and background workers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/amitkr8158/bookwise/internal/api"
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
	"github.com/amitkr8158/bookwise/internal/platform/mailer"
	"github.com/amitkr8158/bookwise/internal/platform/migration"
	pgstore "github.com/amitkr8158/bookwise/internal/platform/postgres"
	redisstore "github.com/amitkr8158/bookwise/internal/platform/redis"
	"github.com/amitkr8158/bookwise/internal/platform/sec"
	"github.com/amitkr8158/bookwise/internal/platform/storage"
	"github.com/amitkr8158/bookwise/internal/users/auth"
	"github.com/amitkr8158/bookwise/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// .env is a development convenience; a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Platform Services ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// Optional S3-compatible media storage. Without a bucket the catalog
	// still works; media uploads return 503.
	var media book.MediaUploader
	if cfg.S3Bucket != "" {
		mediaService, err := storage.New(startupCtx, storage.Options{
			Bucket:      cfg.S3Bucket,
			Region:      cfg.S3Region,
			Endpoint:    cfg.S3Endpoint,
			AccessKeyID: cfg.S3AccessKeyID,
			SecretKey:   cfg.S3SecretKey,
		})
		must(log, err, "initialize media storage")
		media = mediaService
	}

	// Optional SMTP relay. Without it the digest scheduler skips sends.
	var sender mailer.Sender
	if cfg.SMTPConfigured() {
		sender = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────

	// Catalog
	bookService := book.NewService(book.NewPostgresRepository(pool), media, log)
	categoryService := category.NewService(category.NewPostgresRepository(pool), log)
	reviewService := review.NewService(review.NewPostgresRepository(pool), log)

	// Commerce
	bundleService := bundle.NewService(
		bundle.NewPostgresRepository(pool), bundle.NewRedisCustomStore(rdb), log)
	cartService := cart.NewService(
		cart.NewPostgresRepository(pool), bookService, bundleService,
		cart.Promo{Code: cfg.PromoCode, Percent: cfg.PromoPercent}, log)
	purchaseService := purchase.NewService(
		purchase.NewPostgresRepository(pool), bookService, bundleService, log)

	// Users
	profileService := profile.NewService(profile.NewPostgresRepository(pool), log)
	authService := auth.NewService(
		auth.NewPostgresUserRepository(pool),
		auth.NewPostgresSessionRepository(pool),
		auth.NewRedisResetTokenStore(rdb),
		jwtSvc, profileService, sender, log)

	// Notifications
	salesSettings := sales.NewRedisSettingsStore(rdb)
	salesGenerator := sales.NewGenerator(salesSettings, purchaseService, log)
	digestService := digest.NewService(
		digest.NewPostgresQuoteRepository(pool),
		digest.NewRedisSettingsStore(rdb),
		digest.NewRedisDailyCache(rdb),
		profileService, sender, log)

	// ── 9. Background Workers ─────────────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	go salesGenerator.Run(workerCtx)
	go digestService.RunScheduler(workerCtx)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.IsProduction()),
		Profile:   profile.NewHandler(profileService),
		Book:      book.NewHandler(bookService),
		Category:  category.NewHandler(categoryService),
		Review:    review.NewHandler(reviewService),
		Cart:      cart.NewHandler(cartService),
		Bundle:    bundle.NewHandler(bundleService),
		Purchase:  purchase.NewHandler(purchaseService),
		Sales:     sales.NewHandler(salesGenerator, salesSettings),
		Digest:    digest.NewHandler(digestService),
	}

	server := api.NewServer(workerCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Stop background workers, then give in-flight requests time to finish.
	workerCancel()

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
