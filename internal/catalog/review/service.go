// Copyright (c) 2026 BookWise. All rights reserved.

package review

import (
	"context"
	"log/slog"

	"github.com/amitkr8158/bookwise/internal/platform/validate"
	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListForBook serves the public review tabs. Hidden reviews never appear,
// and the top tab is always a subset of the all tab.
func (service *Service) ListForBook(ctx context.Context, bookID, tab string) ([]*Review, error) {
	if tab == "" {
		tab = TabAll
	}

	validator := &validate.Validator{}
	validator.Required(FieldBookID, bookID)
	validator.OneOf(FieldTab, tab, TabAll, TabTop)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.ListVisible(ctx, bookID, tab == TabTop)
}

// Summary returns the visible-review rating aggregate for a book.
func (service *Service) Summary(ctx context.Context, bookID string) (*RatingSummary, error) {
	if bookID == "" {
		return nil, validate.RequiredError(FieldBookID, "This field is required")
	}
	return service.repo.Summary(ctx, bookID)
}

// ListModeration serves the controller dashboard: all reviews, hidden included.
func (service *Service) ListModeration(ctx context.Context, f ModerationFilter, limit, offset int) ([]*Review, int, error) {
	return service.repo.ListModeration(ctx, f, limit, offset)
}

// SubmitReview records a new reader review.
//
// Submissions always start visible and never top-flagged; only moderation
// can change either flag afterwards.
func (service *Service) SubmitReview(ctx context.Context, userID string, r *Review) error {
	validator := &validate.Validator{}
	validator.Required(FieldBookID, r.BookID).UUID(FieldBookID, r.BookID)
	validator.Required(FieldReviewerName, r.ReviewerName).MaxLen(FieldReviewerName, r.ReviewerName, 100)
	validator.Range(FieldRating, r.Rating, 1, 5)
	validator.Required(FieldComment, r.Comment).MaxLen(FieldComment, r.Comment, 2000)
	if err := validator.Err(); err != nil {
		return err
	}

	r.ID = uuidv7.New()
	r.UserID = userID
	r.IsVisible = true
	r.IsTop = false

	if err := service.repo.CreateReview(ctx, r); err != nil {
		return err
	}

	service.logger.Info("review_submitted",
		slog.String("review_id", r.ID),
		slog.String("book_id", r.BookID),
		slog.Int("rating", r.Rating),
	)
	return nil
}

// SetVisibility toggles a review's public visibility.
func (service *Service) SetVisibility(ctx context.Context, id string, visible bool) (*Review, error) {
	if err := service.repo.SetVisibility(ctx, id, visible); err != nil {
		return nil, err
	}

	service.logger.Info("review_visibility_changed",
		slog.String("review_id", id),
		slog.Bool("visible", visible),
	)
	return service.repo.GetReview(ctx, id)
}

// SetTop toggles a review's top flag. The flag only surfaces publicly while
// the review stays visible.
func (service *Service) SetTop(ctx context.Context, id string, top bool) (*Review, error) {
	if err := service.repo.SetTop(ctx, id, top); err != nil {
		return nil, err
	}

	service.logger.Info("review_top_changed",
		slog.String("review_id", id),
		slog.Bool("top", top),
	)
	return service.repo.GetReview(ctx, id)
}

// DeleteReview permanently removes a review.
func (service *Service) DeleteReview(ctx context.Context, id string) error {
	if err := service.repo.DeleteReview(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("review_deleted", slog.String("review_id", id))
	return nil
}
