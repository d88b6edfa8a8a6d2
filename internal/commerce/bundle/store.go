// Copyright (c) 2026 BookWise. All rights reserved.

package bundle

import "context"

// FeaturedRepository persists curated bundles.
type FeaturedRepository interface {
	ListFeatured(ctx context.Context, activeOnly bool) ([]*Bundle, error)
	GetFeatured(ctx context.Context, id string) (*Bundle, error)
	CreateFeatured(ctx context.Context, b *Bundle) error
	UpdateFeatured(ctx context.Context, b *Bundle) error
	DeleteFeatured(ctx context.Context, id string) error
}

// CustomStore holds per-user custom bundle drafts.
//
// Implementations are expected to expire untouched drafts after [CustomTTL].
type CustomStore interface {
	Save(ctx context.Context, b *CustomBundle) error
	Get(ctx context.Context, userID, id string) (*CustomBundle, error)
	ListByUser(ctx context.Context, userID string) ([]*CustomBundle, error)
	Delete(ctx context.Context, userID, id string) error
}
