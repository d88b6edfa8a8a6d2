// Copyright (c) 2026 BookWise. All rights reserved.

package category

import (
	"context"
	"log/slog"

	"github.com/amitkr8158/bookwise/internal/platform/validate"
	"github.com/amitkr8158/bookwise/pkg/slug"
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

func (service *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return service.repo.ListCategories(ctx)
}

func (service *Service) GetCategory(ctx context.Context, slug string) (*Category, error) {
	return service.repo.GetCategory(ctx, slug)
}

func (service *Service) CreateCategory(ctx context.Context, c *Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}

	c.Slug = slug.From(c.Name)

	if err := service.repo.CreateCategory(ctx, c); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.String("slug", c.Slug))
	return nil
}

// UpdateCategory changes a category's display fields. The slug is immutable:
// books reference it, so renaming a category never rewrites book rows.
func (service *Service) UpdateCategory(ctx context.Context, slug string, c *Category) error {
	c.Slug = slug
	if err := validateCategory(c); err != nil {
		return err
	}

	if err := service.repo.UpdateCategory(ctx, c); err != nil {
		return err
	}

	service.logger.Info("category_updated", slog.String("slug", slug))
	return nil
}

func (service *Service) DeleteCategory(ctx context.Context, slug string) error {
	if err := service.repo.DeleteCategory(ctx, slug); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("slug", slug))
	return nil
}

func validateCategory(c *Category) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, c.Name).MaxLen(FieldName, c.Name, 100)
	validator.MaxLen(FieldDescription, c.Description, 500)
	validator.Custom(FieldSortOrder, c.SortOrder < 0, "Must not be negative")

	return validator.Err()
}
