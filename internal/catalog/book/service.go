// Copyright (c) 2026 BookWise. All rights reserved.

package book

import (
	"context"
	"io"
	"log/slog"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/validate"
	"github.com/amitkr8158/bookwise/pkg/slice"
	"github.com/amitkr8158/bookwise/pkg/slug"
	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

const (
	// homeViewLimit caps the trending / new-releases / free-books shelves.
	homeViewLimit = 10

	// freeScanLimit bounds how many newest books are scanned for the free shelf.
	freeScanLimit = 100
)

// MediaUploader stores media bytes and returns their public URL.
//
// Satisfied by [storage.MediaService]; nil when object storage is not configured.
type MediaUploader interface {
	Upload(ctx context.Context, prefix, originalFilename string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo   Repository
	media  MediaUploader
	logger *slog.Logger
}

func NewService(repo Repository, media MediaUploader, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		media:  media,
		logger: logger,
	}
}

// ListBooks returns a filtered, paginated catalog page in display form.
func (service *Service) ListBooks(ctx context.Context, filter Filter, limit, offset int) ([]DisplayBook, int, error) {
	if filter.Sort == "" {
		filter.Sort = SortNewest
	}

	validator := &validate.Validator{}
	validator.OneOf("sort", filter.Sort, SortNewest, SortPopular, SortPriceLow, SortPriceHigh)
	if filter.Language != "" {
		validator.OneOf(FieldLanguage, filter.Language, LanguageEnglish, LanguageHindi)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	books, total, err := service.repo.ListBooks(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return displayAll(books), total, nil
}

// GetBook resolves a single book by UUID or slug.
func (service *Service) GetBook(ctx context.Context, idOrSlug string) (*DisplayBook, error) {
	if idOrSlug == "" {
		return nil, validate.RequiredError("id", "This field is required")
	}

	b, err := service.repo.GetBook(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	display := b.Display()
	return &display, nil
}

// Trending returns the most-purchased books for the storefront home view.
func (service *Service) Trending(ctx context.Context) ([]DisplayBook, error) {
	books, _, err := service.repo.ListBooks(ctx, Filter{Sort: SortPopular}, homeViewLimit, 0)
	if err != nil {
		return nil, err
	}
	return displayAll(books), nil
}

// NewReleases returns the most recently published books.
func (service *Service) NewReleases(ctx context.Context) ([]DisplayBook, error) {
	books, _, err := service.repo.ListBooks(ctx, Filter{Sort: SortNewest}, homeViewLimit, 0)
	if err != nil {
		return nil, err
	}
	return displayAll(books), nil
}

// FreeBooks returns up to ten free books, newest first.
//
// Free titles are a thin slice of the catalog, so we scan the newest page and
// filter in memory rather than carrying a dedicated flag filter in storage.
func (service *Service) FreeBooks(ctx context.Context) ([]DisplayBook, error) {
	books, _, err := service.repo.ListBooks(ctx, Filter{Sort: SortNewest}, freeScanLimit, 0)
	if err != nil {
		return nil, err
	}

	free := slice.Filter(books, func(b *Book) bool { return b.IsFree })
	if len(free) > homeViewLimit {
		free = free[:homeViewLimit]
	}

	return displayAll(free), nil
}

// BookPrice resolves a book's title and current price for the commerce slices.
func (service *Service) BookPrice(ctx context.Context, bookID string) (string, float64, error) {
	b, err := service.repo.GetBook(ctx, bookID)
	if err != nil {
		return "", 0, err
	}
	return b.Title, b.Price, nil
}

// CreateBook validates and persists a new catalog entry.
//
// The slug is derived from the title; the ID is generated server-side.
func (service *Service) CreateBook(ctx context.Context, b *Book) error {
	if err := service.validateBook(b); err != nil {
		return err
	}

	b.ID = uuidv7.New()
	b.Slug = slug.From(b.Title)

	if err := service.repo.CreateBook(ctx, b); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", b.ID),
		slog.String("slug", b.Slug),
	)
	return nil
}

// UpdateBook validates and persists changes to an existing book.
func (service *Service) UpdateBook(ctx context.Context, id string, b *Book) error {
	b.ID = id
	if err := service.validateBook(b); err != nil {
		return err
	}

	b.Slug = slug.From(b.Title)

	if err := service.repo.UpdateBook(ctx, b); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.String("book_id", id))
	return nil
}

// DeleteBook soft-deletes a book. Reviews and purchase history keep their rows.
func (service *Service) DeleteBook(ctx context.Context, id string) error {
	if err := service.repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", id))
	return nil
}

// UploadMedia stores a media file for the book and records its public URL.
func (service *Service) UploadMedia(ctx context.Context, id string, kind MediaKind, filename string, body io.Reader, contentType string) (string, error) {
	if service.media == nil {
		return "", apperr.ServiceUnavailable("Media storage is not configured")
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldMediaKind, string(kind),
		string(MediaCover), string(MediaPDF), string(MediaAudio), string(MediaVideo))
	if err := validator.Err(); err != nil {
		return "", err
	}

	// Existence check first so a bad ID does not leave an orphaned object.
	if _, err := service.repo.GetBook(ctx, id); err != nil {
		return "", err
	}

	url, err := service.media.Upload(ctx, string(kind)+"s/", filename, body, contentType)
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := service.repo.SetMediaURL(ctx, id, kind, url); err != nil {
		return "", err
	}

	service.logger.Info("book_media_uploaded",
		slog.String("book_id", id),
		slog.String("kind", string(kind)),
	)
	return url, nil
}

// validateBook enforces the catalog entry rules shared by create and update.
func (service *Service) validateBook(b *Book) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, b.Title).MaxLen(FieldTitle, b.Title, 300)
	validator.Required(FieldAuthor, b.Author).MaxLen(FieldAuthor, b.Author, 200)
	validator.MaxLen(FieldDescription, b.Description, 5000)
	validator.Required(FieldCategory, b.Category)
	validator.OneOf(FieldLanguage, b.Language, LanguageEnglish, LanguageHindi)
	validator.NonNegative(FieldPrice, b.Price)
	validator.Custom(FieldIsFree, b.IsFree && b.Price != 0, "Free books must have a price of 0")
	if b.Rating != nil {
		validator.Custom(FieldRating, *b.Rating < 0 || *b.Rating > 5, "Must be between 0 and 5")
	}

	return validator.Err()
}

func displayAll(books []*Book) []DisplayBook {
	return slice.Map(books, func(b *Book) DisplayBook { return b.Display() })
}
