// Copyright (c) 2026 BookWise. All rights reserved.

package review

import "context"

type Repository interface {
	// ListVisible returns visible reviews for a book, newest first.
	// When onlyTop is set the result is restricted to top-flagged reviews.
	ListVisible(ctx context.Context, bookID string, onlyTop bool) ([]*Review, error)

	// ListModeration returns all reviews matching the filter, hidden included.
	ListModeration(ctx context.Context, f ModerationFilter, limit, offset int) ([]*Review, int, error)

	GetReview(ctx context.Context, id string) (*Review, error)
	CreateReview(ctx context.Context, r *Review) error
	SetVisibility(ctx context.Context, id string, visible bool) error
	SetTop(ctx context.Context, id string, top bool) error
	DeleteReview(ctx context.Context, id string) error

	// Summary aggregates visible reviews only.
	Summary(ctx context.Context, bookID string) (*RatingSummary, error)
}
