// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package book implements the book-summary catalog: the storefront's core
browse/search surface and the admin-managed lifecycle behind it.

Architecture:

  - Book: The stored entity. Nullable media URLs and rating, soft-deleted.
  - DisplayBook: The read model served to clients, with every fallback applied.
  - Service: Validation, view policies (trending, new releases, free books).
  - Repository: Abstracted persistence, implemented on PostgreSQL.
*/
package book

import (
	"time"

	"github.com/amitkr8158/bookwise/internal/platform/constants"
	"github.com/amitkr8158/bookwise/pkg/pointer"
)

// Supported catalog languages.
const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
)

// Sort keys accepted by the catalog listing.
const (
	// SortNewest orders by publish timestamp, newest first.
	SortNewest = "newest"
	// SortPopular orders by recorded purchase count, then publish time.
	// Purchase count is the defined popularity metric; there is no hidden
	// tiebreak beyond (count, published_at, id).
	SortPopular = "popular"
	// SortPriceLow / SortPriceHigh order by price ascending / descending.
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
)

// Book represents a stored book summary.
type Book struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Language    string  `json:"language"`
	Price       float64 `json:"price"`
	// IsFree implies Price == 0; the service and a storage CHECK both enforce it.
	IsFree        bool       `json:"is_free"`
	CoverImageURL *string    `json:"cover_image_url"`
	PDFURL        *string    `json:"pdf_url,omitempty"`
	AudioURL      *string    `json:"audio_url,omitempty"`
	VideoURL      *string    `json:"video_url,omitempty"`
	Rating        *float64   `json:"rating"`
	PublishedAt   time.Time  `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"-"` // soft-delete tracker
}

// ContentFlags marks which media formats a book carries, derived purely
// from the presence of the corresponding URL fields.
type ContentFlags struct {
	HasPDF   bool `json:"has_pdf"`
	HasAudio bool `json:"has_audio"`
	HasVideo bool `json:"has_video"`
}

// DisplayBook is the client-facing read model with all defaults filled in.
type DisplayBook struct {
	ID            string       `json:"id"`
	Slug          string       `json:"slug"`
	Title         string       `json:"title"`
	Author        string       `json:"author"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Language      string       `json:"language"`
	Price         float64      `json:"price"`
	IsFree        bool         `json:"is_free"`
	CoverImageURL string       `json:"cover_image_url"`
	Content       ContentFlags `json:"content"`
	Rating        float64      `json:"rating"`
	PublishedAt   time.Time    `json:"published_at"`
}

// Display maps a stored [Book] into its [DisplayBook] read model.
//
// # Fallbacks
//
//   - Missing cover → fixed placeholder URL.
//   - Missing rating → 4.5. This is a static default, not a computed
//     aggregate; the review slice exposes the real average separately.
//   - Content flags derive from URL presence; empty strings count as absent.
func (b *Book) Display() DisplayBook {
	return DisplayBook{
		ID:            b.ID,
		Slug:          b.Slug,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		Category:      b.Category,
		Language:      b.Language,
		Price:         b.Price,
		IsFree:        b.IsFree,
		CoverImageURL: fallbackURL(b.CoverImageURL),
		Content: ContentFlags{
			HasPDF:   urlPresent(b.PDFURL),
			HasAudio: urlPresent(b.AudioURL),
			HasVideo: urlPresent(b.VideoURL),
		},
		Rating:      pointer.Fallback(b.Rating, constants.DefaultRating),
		PublishedAt: b.PublishedAt,
	}
}

// Filter holds the parameters for a paginated catalog search.
type Filter struct {
	Language string // exact match on the language code
	Category string // exact match on the category label
	Query    string // case-insensitive substring over title OR author OR description
	Sort     string // one of the Sort* keys; empty defaults to SortNewest
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldLanguage    = "language"
	FieldPrice       = "price"
	FieldIsFree      = "is_free"
	FieldRating      = "rating"
	FieldMediaKind   = "kind"
)

func urlPresent(u *string) bool {
	return u != nil && *u != ""
}

func fallbackURL(u *string) string {
	if urlPresent(u) {
		return *u
	}
	return constants.DefaultCoverImageURL
}
