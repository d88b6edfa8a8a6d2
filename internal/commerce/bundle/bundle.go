// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package bundle implements discounted book bundles.

Two kinds exist:

  - Featured bundles: Curated by admins, persisted in PostgreSQL with a
    pre-computed discounted price.
  - Custom bundles: Built by readers from any three or more books. They are
    ephemeral per-user drafts held in Redis with a TTL and priced by a fixed
    formula, never by the member books' individual prices.

Custom pricing formula:

	discount% = min(2 × bookCount, 30)
	price     = Round(12.99 × bookCount × (1 − discount/100))
*/
package bundle

import (
	"time"

	"github.com/amitkr8158/bookwise/pkg/money"
)

const (
	// CustomBasePrice is the flat per-book price used for custom bundles.
	CustomBasePrice = 12.99

	// CustomDiscountPerBook is the discount percent granted per member book.
	CustomDiscountPerBook = 2

	// CustomDiscountCap is the maximum custom-bundle discount percent.
	CustomDiscountCap = 30

	// MinCustomBooks is the smallest allowed custom bundle.
	MinCustomBooks = 3

	// CustomTTL is how long an untouched custom bundle survives in Redis.
	CustomTTL = 30 * 24 * time.Hour
)

// CustomDiscountPercent returns the discount for a custom bundle of n books.
//
// The discount grows 2% per book and caps at 30%, so it is monotonic in n
// and constant for n >= 15.
func CustomDiscountPercent(n int) float64 {
	d := CustomDiscountPerBook * n
	if d > CustomDiscountCap {
		d = CustomDiscountCap
	}
	return float64(d)
}

// CustomPrice returns the rounded price of a custom bundle of n books.
func CustomPrice(n int) float64 {
	gross := CustomBasePrice * float64(n)
	return money.ApplyDiscount(gross, CustomDiscountPercent(n))
}

// Bundle is an admin-curated featured bundle.
type Bundle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Price is the final discounted price, set by the curating admin.
	Price           float64   `json:"price"`
	DiscountPercent float64   `json:"discount_percent"`
	BookIDs         []string  `json:"book_ids"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CustomBundle is a reader-built bundle draft.
type CustomBundle struct {
	ID              string    `json:"id"`
	UserID          string    `json:"-"`
	Name            string    `json:"name"`
	BookIDs         []string  `json:"book_ids"`
	DiscountPercent float64   `json:"discount_percent"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CustomInput is the payload for creating or replacing a custom bundle.
type CustomInput struct {
	Name    string   `json:"name"`
	BookIDs []string `json:"book_ids"`
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldDiscount    = "discount_percent"
	FieldBookIDs     = "book_ids"
)
