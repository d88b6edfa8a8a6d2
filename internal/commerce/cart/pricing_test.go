// Copyright (c) 2026 BookWise. All rights reserved.

package cart_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitkr8158/bookwise/internal/commerce/cart"
	"github.com/amitkr8158/bookwise/internal/platform/apperr"
)

/*
TestComputeTotals verifies the cart arithmetic: subtotal is the sum of line
totals, the discount is a live percentage, and rounding is half-up to cents.
*/
func TestComputeTotals(t *testing.T) {
	line := func(unit float64, qty int) cart.PricedItem {
		item := cart.PricedItem{UnitPrice: unit}
		item.Quantity = qty
		cart.PriceLine(&item)
		return item
	}

	t.Run("subtotal_is_sum_of_lines", func(t *testing.T) {
		items := []cart.PricedItem{line(12.99, 2), line(14.99, 1)}

		totals := cart.ComputeTotals(items, 0)

		assert.Equal(t, 40.97, totals.Subtotal)
		assert.Equal(t, 0.0, totals.Discount)
		assert.Equal(t, totals.Subtotal, totals.Total)
	})

	t.Run("twenty_percent_promo_rounds_half_up", func(t *testing.T) {
		items := []cart.PricedItem{line(12.99, 1), line(14.99, 1)}

		totals := cart.ComputeTotals(items, 20)

		// 27.98 * 0.8 = 22.384 → 22.38
		assert.Equal(t, 27.98, totals.Subtotal)
		assert.Equal(t, 5.60, totals.Discount)
		assert.Equal(t, 22.38, totals.Total)
	})

	t.Run("discount_never_compounds", func(t *testing.T) {
		items := []cart.PricedItem{line(12.99, 1), line(14.99, 1)}

		once := cart.ComputeTotals(items, 20)
		again := cart.ComputeTotals(items, 20)

		assert.Equal(t, once, again)
	})

	t.Run("empty_cart_is_all_zero", func(t *testing.T) {
		totals := cart.ComputeTotals(nil, 20)

		assert.Equal(t, 0.0, totals.Subtotal)
		assert.Equal(t, 0.0, totals.Discount)
		assert.Equal(t, 0.0, totals.Total)
	})
}

// memoryRepository implements cart.Repository in memory for service tests.
type memoryRepository struct {
	cart  *cart.Cart
	items []*cart.CartItem
}

func (m *memoryRepository) GetOrCreateCart(_ context.Context, userID string) (*cart.Cart, error) {
	if m.cart == nil {
		m.cart = &cart.Cart{ID: "cart-1", UserID: userID}
	}
	return m.cart, nil
}

func (m *memoryRepository) ListItems(_ context.Context, _ string) ([]*cart.CartItem, error) {
	return m.items, nil
}

func (m *memoryRepository) AddItem(_ context.Context, item *cart.CartItem) error {
	m.items = append(m.items, item)
	return nil
}

func (m *memoryRepository) UpdateQuantity(_ context.Context, _, itemID string, quantity int) error {
	for _, item := range m.items {
		if item.ID == itemID {
			item.Quantity = quantity
			return nil
		}
	}
	return apperr.NotFound("Cart item")
}

func (m *memoryRepository) RemoveItem(_ context.Context, _, itemID string) error {
	for i, item := range m.items {
		if item.ID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Cart item")
}

func (m *memoryRepository) SetPromoCode(_ context.Context, _ string, code *string) error {
	m.cart.PromoCode = code
	return nil
}

func (m *memoryRepository) ClearItems(_ context.Context, _ string) error {
	m.items = nil
	return nil
}

// fixedPricer prices every book and bundle from a static table.
type fixedPricer struct {
	prices map[string]float64
}

func (f fixedPricer) BookPrice(_ context.Context, bookID string) (string, float64, error) {
	return f.lookup(bookID)
}

func (f fixedPricer) BundlePrice(_ context.Context, _, bundleID string) (string, float64, error) {
	return f.lookup(bundleID)
}

func (f fixedPricer) lookup(id string) (string, float64, error) {
	price, ok := f.prices[id]
	if !ok {
		return "", 0, apperr.NotFound("Book")
	}
	return "Title " + id, price, nil
}

func newTestService(repo *memoryRepository) *cart.Service {
	pricer := fixedPricer{prices: map[string]float64{
		"book-a":   12.99,
		"book-b":   14.99,
		"bundle-x": 36.63,
	}}
	promo := cart.Promo{Code: "DISCOUNT20", Percent: 20}

	return cart.NewService(repo, pricer, pricer, promo, slog.Default())
}

func bookRef(id string) *string { return &id }

/*
TestService_PromoLifecycle walks the promo flow: apply, idempotent re-apply,
live recomputation after mutation, and clearing on an invalid code.
*/
func TestService_PromoLifecycle(t *testing.T) {
	repo := &memoryRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.AddItem(ctx, "user-1", cart.AddItemInput{BookID: bookRef("book-a")})
	require.NoError(t, err)
	_, err = service.AddItem(ctx, "user-1", cart.AddItemInput{BookID: bookRef("book-b")})
	require.NoError(t, err)

	view, err := service.ApplyPromo(ctx, "user-1", "discount20") // case-insensitive
	require.NoError(t, err)
	assert.Equal(t, 22.38, view.Total)
	assert.Equal(t, 5.60, view.Discount)

	// Applying the same code again recomputes rather than compounds.
	view, err = service.ApplyPromo(ctx, "user-1", "DISCOUNT20")
	require.NoError(t, err)
	assert.Equal(t, 22.38, view.Total)

	// Mutating the cart re-derives the discount from the new subtotal.
	view, err = service.AddItem(ctx, "user-1", cart.AddItemInput{BookID: bookRef("book-a"), Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 40.97, view.Subtotal)
	assert.Equal(t, 32.78, view.Total) // 40.97 * 0.8 = 32.776 → 32.78

	// An invalid code clears the applied promo and fails without touching items.
	_, err = service.ApplyPromo(ctx, "user-1", "SAVE50")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	view, err = service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, view.PromoCode)
	assert.Len(t, view.Items, 3)
	assert.Equal(t, view.Subtotal, view.Total)
}

/*
TestService_AddItem covers line creation rules: the book/bundle exclusivity,
duplicate lines, and the default quantity.
*/
func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults_quantity_to_one", func(t *testing.T) {
		service := newTestService(&memoryRepository{})

		view, err := service.AddItem(ctx, "user-1", cart.AddItemInput{BookID: bookRef("book-a")})
		require.NoError(t, err)

		require.Len(t, view.Items, 1)
		assert.Equal(t, 1, view.Items[0].Quantity)
	})

	t.Run("duplicate_adds_create_separate_lines", func(t *testing.T) {
		service := newTestService(&memoryRepository{})

		_, err := service.AddItem(ctx, "user-1", cart.AddItemInput{BookID: bookRef("book-a")})
		require.NoError(t, err)
		view, err := service.AddItem(ctx, "user-1", cart.AddItemInput{BookID: bookRef("book-a")})
		require.NoError(t, err)

		assert.Len(t, view.Items, 2)
	})

	t.Run("rejects_book_and_bundle_together", func(t *testing.T) {
		service := newTestService(&memoryRepository{})

		_, err := service.AddItem(ctx, "user-1", cart.AddItemInput{
			BookID:   bookRef("book-a"),
			BundleID: bookRef("bundle-x"),
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("rejects_neither_book_nor_bundle", func(t *testing.T) {
		service := newTestService(&memoryRepository{})

		_, err := service.AddItem(ctx, "user-1", cart.AddItemInput{})
		require.Error(t, err)
	})

	t.Run("rejects_unknown_book_before_writing", func(t *testing.T) {
		repo := &memoryRepository{}
		service := newTestService(repo)

		_, err := service.AddItem(ctx, "user-1", cart.AddItemInput{BookID: bookRef("missing")})
		require.Error(t, err)
		assert.Empty(t, repo.items)
	})
}

/*
TestService_UpdateQuantity verifies that quantities below one are rejected as
validation errors instead of silently removing the line.
*/
func TestService_UpdateQuantity(t *testing.T) {
	repo := &memoryRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	view, err := service.AddItem(ctx, "user-1", cart.AddItemInput{BookID: bookRef("book-a")})
	require.NoError(t, err)
	itemID := view.Items[0].ID

	_, err = service.UpdateQuantity(ctx, "user-1", itemID, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Len(t, repo.items, 1)

	view, err = service.UpdateQuantity(ctx, "user-1", itemID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, 38.97, view.Subtotal)
}
