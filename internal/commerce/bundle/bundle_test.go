// Copyright (c) 2026 BookWise. All rights reserved.

package bundle_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitkr8158/bookwise/internal/commerce/bundle"
	"github.com/amitkr8158/bookwise/internal/platform/apperr"
)

/*
TestCustomDiscountPercent checks the discount curve: 2% per book, monotonic,
capped at 30% from fifteen books onward.
*/
func TestCustomDiscountPercent(t *testing.T) {
	tests := []struct {
		books    int
		expected float64
	}{
		{3, 6},
		{5, 10},
		{10, 20},
		{14, 28},
		{15, 30},
		{16, 30},
		{100, 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, bundle.CustomDiscountPercent(tt.books),
			"discount for %d books", tt.books)
	}

	// Monotonic: adding a book never lowers the discount.
	previous := 0.0
	for n := 1; n <= 40; n++ {
		current := bundle.CustomDiscountPercent(n)
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
}

/*
TestCustomPrice verifies the fixed-base pricing formula with half-up rounding.
*/
func TestCustomPrice(t *testing.T) {
	// 3 books: 12.99 * 3 = 38.97, 6% off → 36.6318 → 36.63
	assert.Equal(t, 36.63, bundle.CustomPrice(3))

	// 15 books: 12.99 * 15 = 194.85, 30% off → 136.395 → 136.40
	assert.Equal(t, 136.40, bundle.CustomPrice(15))
}

// memoryCustomStore records saves so tests can assert nothing was written.
type memoryCustomStore struct {
	saved map[string]*bundle.CustomBundle
}

func newMemoryCustomStore() *memoryCustomStore {
	return &memoryCustomStore{saved: map[string]*bundle.CustomBundle{}}
}

func (m *memoryCustomStore) Save(_ context.Context, b *bundle.CustomBundle) error {
	m.saved[b.ID] = b
	return nil
}

func (m *memoryCustomStore) Get(_ context.Context, _, id string) (*bundle.CustomBundle, error) {
	b, ok := m.saved[id]
	if !ok {
		return nil, apperr.NotFound("Custom bundle")
	}
	return b, nil
}

func (m *memoryCustomStore) ListByUser(_ context.Context, userID string) ([]*bundle.CustomBundle, error) {
	var out []*bundle.CustomBundle
	for _, b := range m.saved {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryCustomStore) Delete(_ context.Context, _, id string) error {
	if _, ok := m.saved[id]; !ok {
		return apperr.NotFound("Custom bundle")
	}
	delete(m.saved, id)
	return nil
}

// fakeFeatured serves a single featured bundle.
type fakeFeatured struct {
	bundles map[string]*bundle.Bundle
}

func (f *fakeFeatured) ListFeatured(_ context.Context, _ bool) ([]*bundle.Bundle, error) {
	return nil, nil
}

func (f *fakeFeatured) GetFeatured(_ context.Context, id string) (*bundle.Bundle, error) {
	b, ok := f.bundles[id]
	if !ok {
		return nil, apperr.NotFound("Bundle")
	}
	return b, nil
}

func (f *fakeFeatured) CreateFeatured(_ context.Context, _ *bundle.Bundle) error { return nil }
func (f *fakeFeatured) UpdateFeatured(_ context.Context, _ *bundle.Bundle) error { return nil }
func (f *fakeFeatured) DeleteFeatured(_ context.Context, _ string) error         { return nil }

func newTestService(store *memoryCustomStore) *bundle.Service {
	featured := &fakeFeatured{bundles: map[string]*bundle.Bundle{
		"feat-1": {ID: "feat-1", Title: "Starter Pack", Price: 29.99},
	}}
	return bundle.NewService(featured, store, slog.Default())
}

var threeBooks = []string{
	"0198a6a2-0000-7000-8000-000000000001",
	"0198a6a2-0000-7000-8000-000000000002",
	"0198a6a2-0000-7000-8000-000000000003",
}

/*
TestService_CreateCustom covers derivation of discount and price, plus the
reject-before-mutation rule for undersized bundles.
*/
func TestService_CreateCustom(t *testing.T) {
	ctx := context.Background()

	t.Run("three_books_get_six_percent", func(t *testing.T) {
		store := newMemoryCustomStore()
		service := newTestService(store)

		created, err := service.CreateCustom(ctx, "user-1", bundle.CustomInput{
			Name:    "My Picks",
			BookIDs: threeBooks,
		})
		require.NoError(t, err)

		assert.Equal(t, 6.0, created.DiscountPercent)
		assert.Equal(t, 36.63, created.Price)
		assert.Len(t, store.saved, 1)
	})

	t.Run("two_books_rejected_before_any_write", func(t *testing.T) {
		store := newMemoryCustomStore()
		service := newTestService(store)

		_, err := service.CreateCustom(ctx, "user-1", bundle.CustomInput{
			Name:    "Too Small",
			BookIDs: threeBooks[:2],
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		assert.Empty(t, store.saved)
	})

	t.Run("empty_name_rejected", func(t *testing.T) {
		store := newMemoryCustomStore()
		service := newTestService(store)

		_, err := service.CreateCustom(ctx, "user-1", bundle.CustomInput{BookIDs: threeBooks})
		require.Error(t, err)
		assert.Empty(t, store.saved)
	})
}

/*
TestService_UpdateCustom checks re-derivation on edit and the not-found path.
*/
func TestService_UpdateCustom(t *testing.T) {
	ctx := context.Background()
	store := newMemoryCustomStore()
	service := newTestService(store)

	created, err := service.CreateCustom(ctx, "user-1", bundle.CustomInput{
		Name:    "My Picks",
		BookIDs: threeBooks,
	})
	require.NoError(t, err)

	five := append(append([]string{}, threeBooks...),
		"0198a6a2-0000-7000-8000-000000000004",
		"0198a6a2-0000-7000-8000-000000000005",
	)

	updated, err := service.UpdateCustom(ctx, "user-1", created.ID, bundle.CustomInput{
		Name:    "Bigger Picks",
		BookIDs: five,
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, updated.DiscountPercent)
	assert.Equal(t, 58.46, updated.Price) // 64.95 * 0.9 = 58.455 → 58.46

	_, err = service.UpdateCustom(ctx, "user-1", "missing", bundle.CustomInput{
		Name:    "Ghost",
		BookIDs: threeBooks,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_BundlePrice resolves featured bundles first, then custom ones.
*/
func TestService_BundlePrice(t *testing.T) {
	ctx := context.Background()
	store := newMemoryCustomStore()
	service := newTestService(store)

	custom, err := service.CreateCustom(ctx, "user-1", bundle.CustomInput{
		Name:    "My Picks",
		BookIDs: threeBooks,
	})
	require.NoError(t, err)

	title, price, err := service.BundlePrice(ctx, "user-1", "feat-1")
	require.NoError(t, err)
	assert.Equal(t, "Starter Pack", title)
	assert.Equal(t, 29.99, price)

	title, price, err = service.BundlePrice(ctx, "user-1", custom.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Picks", title)
	assert.Equal(t, 36.63, price)

	_, _, err = service.BundlePrice(ctx, "user-1", "missing")
	require.Error(t, err)
}
