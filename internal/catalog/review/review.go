// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package review implements reader reviews and their moderation workflow.

Architecture:

  - Review: A reader's rating and comment on a book, with moderation flags.
  - Service: Submission rules and the moderation surface for controllers.
  - Repository: PostgreSQL persistence.

Visibility is the moderation boundary: public listings only ever see visible
reviews, and the "top" tab is a subset of those. Hiding a review therefore
removes it from both tabs in a single flip, even if its top flag stays set.
*/
package review

import "time"

// Tabs for the public review listing.
const (
	TabAll = "all"
	TabTop = "top"
)

// Review is a reader's review of a book.
type Review struct {
	ID     string `json:"id"`
	BookID string `json:"book_id"`
	UserID string `json:"user_id"`
	// ReviewerName is the display name shown alongside the review.
	ReviewerName string `json:"reviewer_name"`
	// Rating is a whole number of stars, 1 through 5.
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	// IsVisible gates all public listings. New reviews start visible.
	IsVisible bool `json:"is_visible"`
	// IsTop marks a review for the curated "top" tab. Only meaningful while
	// the review is visible; the flag itself is independent of visibility.
	IsTop     bool      `json:"is_top"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummary aggregates visible reviews for a book.
type RatingSummary struct {
	BookID  string  `json:"book_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ModerationFilter narrows the controller-facing listing.
type ModerationFilter struct {
	BookID  string
	Visible *bool // nil means both visible and hidden
}

// Global field names for validation
const (
	FieldBookID       = "book_id"
	FieldReviewerName = "reviewer_name"
	FieldRating       = "rating"
	FieldComment      = "comment"
	FieldTab          = "tab"
)
