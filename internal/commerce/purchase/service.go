// Copyright (c) 2026 BookWise. All rights reserved.

package purchase

import (
	"context"
	"log/slog"
	"time"

	"github.com/amitkr8158/bookwise/internal/platform/validate"
	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

// BookPricer resolves a book's title and current price.
type BookPricer interface {
	BookPrice(ctx context.Context, bookID string) (title string, price float64, err error)
}

// BundlePricer resolves a featured or per-user custom bundle.
type BundlePricer interface {
	BundlePrice(ctx context.Context, userID, bundleID string) (title string, price float64, err error)
}

type Service struct {
	repo    Repository
	books   BookPricer
	bundles BundlePricer
	logger  *slog.Logger
}

func NewService(repo Repository, books BookPricer, bundles BundlePricer, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		books:   books,
		bundles: bundles,
		logger:  logger,
	}
}

// Record captures a completed purchase at the current catalog price.
func (service *Service) Record(ctx context.Context, userID string, input Input) (*Purchase, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldBookID, (input.BookID == nil) == (input.BundleID == nil),
		"Exactly one of book_id or bundle_id is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	p := &Purchase{
		ID:       uuidv7.New(),
		UserID:   userID,
		BookID:   input.BookID,
		BundleID: input.BundleID,
	}

	var err error
	if input.BookID != nil {
		p.Title, p.Amount, err = service.books.BookPrice(ctx, *input.BookID)
		if err != nil {
			return nil, err
		}
		err = service.repo.RecordBook(ctx, p)
	} else {
		p.Title, p.Amount, err = service.bundles.BundlePrice(ctx, userID, *input.BundleID)
		if err != nil {
			return nil, err
		}
		err = service.repo.RecordBundle(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	service.logger.Info("purchase_recorded",
		slog.String("purchase_id", p.ID),
		slog.Float64("amount", p.Amount),
	)
	return p, nil
}

// ListMine returns the user's purchase history, newest first.
func (service *Service) ListMine(ctx context.Context, userID string, limit, offset int) ([]*Purchase, int, error) {
	return service.repo.ListByUser(ctx, userID, limit, offset)
}

// Recent exposes recent qualifying book purchases for the notification generator.
func (service *Service) Recent(ctx context.Context, minAmount float64, window time.Duration, limit int) ([]*Purchase, error) {
	return service.repo.Recent(ctx, minAmount, time.Now().Add(-window), limit)
}
