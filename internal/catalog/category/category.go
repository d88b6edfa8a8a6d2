// Copyright (c) 2026 BookWise. All rights reserved.

// Package category manages the catalog's browse categories.
//
// Categories are slow-moving reference data: readers only ever list them,
// while admins own the full lifecycle. Books reference categories by slug.
package category

import "time"

// Category is a catalog browse category.
type Category struct {
	// Slug is the stable identifier books reference (e.g. "self-help").
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// SortOrder controls storefront display order; lower comes first.
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldSortOrder   = "sort_order"
)
