// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package purchase records completed purchases.

Purchases are the system's demand signal: the catalog's "popular" sort counts
them per book, and the sales-notification generator can sample recent ones
when configured to use real data. Amounts are captured at purchase time at
the then-current price.
*/
package purchase

import "time"

// Purchase is a completed purchase of a book or a bundle.
type Purchase struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	// Exactly one of BookID/BundleID is set.
	BookID   *string `json:"book_id"`
	BundleID *string `json:"bundle_id"`
	// Title is denormalized at purchase time; custom bundles have no
	// catalog row to join against later.
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Input is the payload for recording a purchase.
type Input struct {
	BookID   *string `json:"book_id"`
	BundleID *string `json:"bundle_id"`
}

// Global field names for validation
const (
	FieldBookID   = "book_id"
	FieldBundleID = "bundle_id"
)
