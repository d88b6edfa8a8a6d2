// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package cart implements the per-user shopping cart and its pricing math.

Architecture:

  - Cart / CartItem: Stored state. A line references exactly one of a book
    or a bundle (enforced by a storage CHECK as well as validation).
  - Pricing: Pure functions over priced lines; the single rounding rule
    lives in pkg/money.
  - Service: Orchestrates storage, the price lookups, and the promo code.

The promo discount is recomputed from the current subtotal on every read,
so mutating the cart after applying a code never leaves a stale discount.
*/
package cart

import "time"

// Cart is a user's single active cart.
type Cart struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	// PromoCode is the applied code, nil when none is active.
	PromoCode *string   `json:"promo_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is one line in a cart. Exactly one of BookID/BundleID is set.
//
// Adding the same book twice creates two lines; lines are never merged.
type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"-"`
	BookID    *string   `json:"book_id"`
	BundleID  *string   `json:"bundle_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// PricedItem is a cart line with its live price attached.
type PricedItem struct {
	CartItem
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// View is the client-facing cart snapshot with all totals computed.
type View struct {
	Items           []PricedItem `json:"items"`
	PromoCode       *string      `json:"promo_code"`
	DiscountPercent float64      `json:"discount_percent"`
	Subtotal        float64      `json:"subtotal"`
	Discount        float64      `json:"discount"`
	Total           float64      `json:"total"`
}

// AddItemInput is the payload for adding a line to the cart.
type AddItemInput struct {
	BookID   *string `json:"book_id"`
	BundleID *string `json:"bundle_id"`
	Quantity int     `json:"quantity"`
}

// Global field names for validation
const (
	FieldBookID   = "book_id"
	FieldBundleID = "bundle_id"
	FieldQuantity = "quantity"
	FieldCode     = "code"
)
