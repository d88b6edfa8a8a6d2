// Copyright (c) 2026 BookWise. All rights reserved.

package purchase

import (
	"context"
	"time"
)

type Repository interface {
	RecordBook(ctx context.Context, p *Purchase) error
	RecordBundle(ctx context.Context, p *Purchase) error

	// ListByUser merges book and bundle purchases, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Purchase, int, error)

	// Recent returns book purchases at or above minAmount since the cutoff,
	// newest first. Used by the sales-notification generator.
	Recent(ctx context.Context, minAmount float64, since time.Time, limit int) ([]*Purchase, error)
}
