// Copyright (c) 2026 BookWise. All rights reserved.

package cart

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/validate"
	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

// BookPricer resolves the display title and live unit price of a book.
type BookPricer interface {
	BookPrice(ctx context.Context, bookID string) (title string, price float64, err error)
}

// BundlePricer resolves a featured or custom bundle price. Custom bundles are
// per-user, so the owner's ID is part of the lookup.
type BundlePricer interface {
	BundlePrice(ctx context.Context, userID, bundleID string) (title string, price float64, err error)
}

// Promo is the single configured promotion code and its discount.
type Promo struct {
	Code    string
	Percent float64
}

type Service struct {
	repo    Repository
	books   BookPricer
	bundles BundlePricer
	promo   Promo
	logger  *slog.Logger
}

func NewService(repo Repository, books BookPricer, bundles BundlePricer, promo Promo, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		books:   books,
		bundles: bundles,
		promo:   promo,
		logger:  logger,
	}
}

// GetCart prices every line at current catalog prices and computes totals.
//
// The promo discount is derived from the applied code on every call; it is
// never stored as an amount.
func (service *Service) GetCart(ctx context.Context, userID string) (*View, error) {
	c, err := service.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := service.repo.ListItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	priced := make([]PricedItem, 0, len(items))
	for _, item := range items {
		line := PricedItem{CartItem: *item}

		line.Title, line.UnitPrice, err = service.priceLine(ctx, userID, item)
		if err != nil {
			return nil, err
		}

		PriceLine(&line)
		priced = append(priced, line)
	}

	percent := 0.0
	if c.PromoCode != nil && strings.EqualFold(*c.PromoCode, service.promo.Code) {
		percent = service.promo.Percent
	}

	totals := ComputeTotals(priced, percent)

	return &View{
		Items:           priced,
		PromoCode:       c.PromoCode,
		DiscountPercent: percent,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		Total:           totals.Total,
	}, nil
}

// AddItem appends a new line to the cart.
//
// Every add creates a fresh line, even for a book already in the cart;
// quantities are only merged by the client editing an existing line.
func (service *Service) AddItem(ctx context.Context, userID string, input AddItemInput) (*View, error) {
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	validator := &validate.Validator{}
	validator.Custom(FieldBookID, (input.BookID == nil) == (input.BundleID == nil),
		"Exactly one of book_id or bundle_id is required")
	validator.Custom(FieldQuantity, input.Quantity < 1, "Must be at least 1")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	c, err := service.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &CartItem{
		ID:       uuidv7.New(),
		CartID:   c.ID,
		BookID:   input.BookID,
		BundleID: input.BundleID,
		Quantity: input.Quantity,
	}

	// Price lookup doubles as the existence check before anything is written.
	if _, _, err := service.priceLine(ctx, userID, item); err != nil {
		return nil, err
	}

	if err := service.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	service.logger.Info("cart_item_added",
		slog.String("cart_id", c.ID),
		slog.String("item_id", item.ID),
	)
	return service.GetCart(ctx, userID)
}

// UpdateQuantity changes a line's quantity. Quantities below one are rejected;
// removal is an explicit, separate operation.
func (service *Service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, validate.RequiredError(FieldQuantity, "Must be at least 1")
	}

	c, err := service.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateQuantity(ctx, c.ID, itemID, quantity); err != nil {
		return nil, err
	}

	return service.GetCart(ctx, userID)
}

// RemoveItem deletes a line from the cart.
func (service *Service) RemoveItem(ctx context.Context, userID, itemID string) (*View, error) {
	c, err := service.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.RemoveItem(ctx, c.ID, itemID); err != nil {
		return nil, err
	}

	return service.GetCart(ctx, userID)
}

// ApplyPromo applies the configured promotion code to the cart.
//
// An unrecognized code clears any previously applied code before failing, so
// a typo never leaves a stale discount behind. Items are untouched either way.
func (service *Service) ApplyPromo(ctx context.Context, userID, code string) (*View, error) {
	c, err := service.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(strings.TrimSpace(code), service.promo.Code) {
		if err := service.repo.SetPromoCode(ctx, c.ID, nil); err != nil {
			return nil, err
		}
		return nil, apperr.ValidationError("Invalid promo code",
			apperr.FieldError{Field: FieldCode, Message: "This code is not recognized"})
	}

	canonical := service.promo.Code
	if err := service.repo.SetPromoCode(ctx, c.ID, &canonical); err != nil {
		return nil, err
	}

	service.logger.Info("promo_applied", slog.String("cart_id", c.ID))
	return service.GetCart(ctx, userID)
}

// Clear empties the cart after a completed purchase.
func (service *Service) Clear(ctx context.Context, userID string) error {
	c, err := service.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	if err := service.repo.ClearItems(ctx, c.ID); err != nil {
		return err
	}

	return service.repo.SetPromoCode(ctx, c.ID, nil)
}

func (service *Service) priceLine(ctx context.Context, userID string, item *CartItem) (string, float64, error) {
	if item.BookID != nil {
		return service.books.BookPrice(ctx, *item.BookID)
	}
	return service.bundles.BundlePrice(ctx, userID, *item.BundleID)
}
