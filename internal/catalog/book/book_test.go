// Copyright (c) 2026 BookWise. All rights reserved.

package book_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitkr8158/bookwise/internal/catalog/book"
	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/constants"
)

// fakeRepository records writes and serves canned reads for service tests.
type fakeRepository struct {
	books   []*book.Book
	created *book.Book
}

func (f *fakeRepository) ListBooks(_ context.Context, _ book.Filter, limit, _ int) ([]*book.Book, int, error) {
	if len(f.books) > limit {
		return f.books[:limit], len(f.books), nil
	}
	return f.books, len(f.books), nil
}

func (f *fakeRepository) GetBook(_ context.Context, idOrSlug string) (*book.Book, error) {
	for _, b := range f.books {
		if b.ID == idOrSlug || b.Slug == idOrSlug {
			return b, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (f *fakeRepository) CreateBook(_ context.Context, b *book.Book) error {
	f.created = b
	return nil
}

func (f *fakeRepository) UpdateBook(_ context.Context, _ *book.Book) error { return nil }
func (f *fakeRepository) DeleteBook(_ context.Context, _ string) error     { return nil }
func (f *fakeRepository) SetMediaURL(_ context.Context, _ string, _ book.MediaKind, _ string) error {
	return nil
}

func newTestService(repo *fakeRepository) *book.Service {
	return book.NewService(repo, nil, slog.Default())
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

/*
TestBook_Display verifies the display fallbacks: placeholder cover, default
rating, and media flags derived from URL presence.
*/
func TestBook_Display(t *testing.T) {
	t.Run("all_fields_present", func(t *testing.T) {
		b := &book.Book{
			ID:            "b1",
			Title:         "Atomic Habits",
			CoverImageURL: strPtr("https://cdn.example.com/cover.png"),
			PDFURL:        strPtr("https://cdn.example.com/summary.pdf"),
			AudioURL:      strPtr("https://cdn.example.com/summary.mp3"),
			Rating:        f64Ptr(4.8),
		}

		d := b.Display()

		assert.Equal(t, "https://cdn.example.com/cover.png", d.CoverImageURL)
		assert.Equal(t, 4.8, d.Rating)
		assert.True(t, d.Content.HasPDF)
		assert.True(t, d.Content.HasAudio)
		assert.False(t, d.Content.HasVideo)
	})

	t.Run("missing_fields_fall_back", func(t *testing.T) {
		b := &book.Book{ID: "b2", Title: "Deep Work"}

		d := b.Display()

		assert.Equal(t, constants.DefaultCoverImageURL, d.CoverImageURL)
		assert.Equal(t, constants.DefaultRating, d.Rating)
		assert.False(t, d.Content.HasPDF)
		assert.False(t, d.Content.HasAudio)
		assert.False(t, d.Content.HasVideo)
	})

	t.Run("empty_url_counts_as_missing", func(t *testing.T) {
		b := &book.Book{ID: "b3", Title: "Ikigai", CoverImageURL: strPtr(""), PDFURL: strPtr("")}

		d := b.Display()

		assert.Equal(t, constants.DefaultCoverImageURL, d.CoverImageURL)
		assert.False(t, d.Content.HasPDF)
	})
}

/*
TestService_CreateBook covers validation rules, including the free-book price
invariant and slug generation.
*/
func TestService_CreateBook(t *testing.T) {
	valid := func() *book.Book {
		return &book.Book{
			Title:    "The Psychology of Money",
			Author:   "Morgan Housel",
			Category: "finance",
			Language: book.LanguageEnglish,
			Price:    12.99,
		}
	}

	t.Run("valid_book_gets_id_and_slug", func(t *testing.T) {
		repo := &fakeRepository{}
		service := newTestService(repo)

		input := valid()
		require.NoError(t, service.CreateBook(context.Background(), input))

		require.NotNil(t, repo.created)
		assert.NotEmpty(t, repo.created.ID)
		assert.Equal(t, "the-psychology-of-money", repo.created.Slug)
	})

	t.Run("free_book_with_nonzero_price_rejected", func(t *testing.T) {
		service := newTestService(&fakeRepository{})

		input := valid()
		input.IsFree = true

		err := service.CreateBook(context.Background(), input)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("free_book_with_zero_price_accepted", func(t *testing.T) {
		repo := &fakeRepository{}
		service := newTestService(repo)

		input := valid()
		input.IsFree = true
		input.Price = 0

		require.NoError(t, service.CreateBook(context.Background(), input))
	})

	tests := []struct {
		name   string
		mutate func(*book.Book)
	}{
		{"missing_title", func(b *book.Book) { b.Title = "" }},
		{"missing_author", func(b *book.Book) { b.Author = "" }},
		{"missing_category", func(b *book.Book) { b.Category = "" }},
		{"unsupported_language", func(b *book.Book) { b.Language = "fr" }},
		{"negative_price", func(b *book.Book) { b.Price = -1 }},
		{"rating_out_of_range", func(b *book.Book) { b.Rating = f64Ptr(5.5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&fakeRepository{})

			input := valid()
			tt.mutate(input)

			err := service.CreateBook(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_FreeBooks checks that only free titles are returned and that the
shelf is capped at ten entries.
*/
func TestService_FreeBooks(t *testing.T) {
	repo := &fakeRepository{}
	for i := 0; i < 30; i++ {
		repo.books = append(repo.books, &book.Book{
			ID:     string(rune('a' + i)),
			Title:  "Book",
			IsFree: i%2 == 0,
		})
	}

	service := newTestService(repo)

	free, err := service.FreeBooks(context.Background())
	require.NoError(t, err)

	assert.Len(t, free, 10)
	for _, d := range free {
		assert.True(t, d.IsFree)
	}
}
