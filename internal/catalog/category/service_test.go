// Copyright (c) 2026 BookWise. All rights reserved.

package category_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitkr8158/bookwise/internal/catalog/category"
	"github.com/amitkr8158/bookwise/internal/platform/apperr"
)

// memoryRepository is an in-memory Repository keyed by slug.
type memoryRepository struct {
	categories map[string]*category.Category
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{categories: make(map[string]*category.Category)}
}

func (m *memoryRepository) ListCategories(_ context.Context) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memoryRepository) GetCategory(_ context.Context, slug string) (*category.Category, error) {
	c, ok := m.categories[slug]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return c, nil
}

func (m *memoryRepository) CreateCategory(_ context.Context, c *category.Category) error {
	if _, ok := m.categories[c.Slug]; ok {
		return apperr.Conflict("Category already exists")
	}
	m.categories[c.Slug] = c
	return nil
}

func (m *memoryRepository) UpdateCategory(_ context.Context, c *category.Category) error {
	if _, ok := m.categories[c.Slug]; !ok {
		return apperr.NotFound("Category")
	}
	m.categories[c.Slug] = c
	return nil
}

func (m *memoryRepository) DeleteCategory(_ context.Context, slug string) error {
	if _, ok := m.categories[slug]; !ok {
		return apperr.NotFound("Category")
	}
	delete(m.categories, slug)
	return nil
}

func newTestService(repo *memoryRepository) *category.Service {
	return category.NewService(repo, slog.Default())
}

/*
TestService_CreateCategory verifies the slug is always derived from the name,
never taken from the client.
*/
func TestService_CreateCategory(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestService(repo)

	c := &category.Category{
		Name:        "Self Help",
		Description: "Habits, focus, and personal growth.",
		Slug:        "client-chosen", // ignored
	}
	require.NoError(t, service.CreateCategory(context.Background(), c))

	assert.Equal(t, "self-help", c.Slug)

	stored, err := service.GetCategory(context.Background(), "self-help")
	require.NoError(t, err)
	assert.Equal(t, "Self Help", stored.Name)
}

/*
TestService_CreateCategory_Validation covers the name and sort-order bounds.
*/
func TestService_CreateCategory_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*category.Category)
	}{
		{"missing_name", func(c *category.Category) { c.Name = "" }},
		{"name_too_long", func(c *category.Category) { c.Name = strings.Repeat("x", 101) }},
		{"description_too_long", func(c *category.Category) { c.Description = strings.Repeat("x", 501) }},
		{"negative_sort_order", func(c *category.Category) { c.SortOrder = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newMemoryRepository())

			c := &category.Category{Name: "Business", SortOrder: 1}
			tt.mutate(c)

			err := service.CreateCategory(context.Background(), c)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_UpdateCategory verifies renames keep the original slug so book
references stay valid.
*/
func TestService_UpdateCategory(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, service.CreateCategory(ctx, &category.Category{Name: "Self Help"}))

	updated := &category.Category{Name: "Personal Growth", SortOrder: 2}
	require.NoError(t, service.UpdateCategory(ctx, "self-help", updated))

	stored, err := service.GetCategory(ctx, "self-help")
	require.NoError(t, err)
	assert.Equal(t, "Personal Growth", stored.Name)
	assert.Equal(t, "self-help", stored.Slug)
}

/*
TestService_DeleteCategory checks removal and the not-found path.
*/
func TestService_DeleteCategory(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, service.CreateCategory(ctx, &category.Category{Name: "Business"}))
	require.NoError(t, service.DeleteCategory(ctx, "business"))

	_, err := service.GetCategory(ctx, "business")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	err = service.DeleteCategory(ctx, "business")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
