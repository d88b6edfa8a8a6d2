// Copyright (c) 2026 BookWise. All rights reserved.

package category

import "context"

type Repository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, slug string) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, slug string) error
}
