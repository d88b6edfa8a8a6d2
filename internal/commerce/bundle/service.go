// Copyright (c) 2026 BookWise. All rights reserved.

package bundle

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/amitkr8158/bookwise/internal/platform/validate"
	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

type Service struct {
	featured FeaturedRepository
	custom   CustomStore
	logger   *slog.Logger
}

func NewService(featured FeaturedRepository, custom CustomStore, logger *slog.Logger) *Service {
	return &Service{
		featured: featured,
		custom:   custom,
		logger:   logger,
	}
}

// # Featured bundles

// ListFeatured returns the storefront's active curated bundles.
func (service *Service) ListFeatured(ctx context.Context) ([]*Bundle, error) {
	return service.featured.ListFeatured(ctx, true)
}

// ListAllFeatured returns every curated bundle, inactive included (admin view).
func (service *Service) ListAllFeatured(ctx context.Context) ([]*Bundle, error) {
	return service.featured.ListFeatured(ctx, false)
}

func (service *Service) GetFeatured(ctx context.Context, id string) (*Bundle, error) {
	return service.featured.GetFeatured(ctx, id)
}

func (service *Service) CreateFeatured(ctx context.Context, b *Bundle) error {
	if err := validateFeatured(b); err != nil {
		return err
	}

	b.ID = uuidv7.New()

	if err := service.featured.CreateFeatured(ctx, b); err != nil {
		return err
	}

	service.logger.Info("featured_bundle_created", slog.String("bundle_id", b.ID))
	return nil
}

func (service *Service) UpdateFeatured(ctx context.Context, id string, b *Bundle) error {
	b.ID = id
	if err := validateFeatured(b); err != nil {
		return err
	}

	if err := service.featured.UpdateFeatured(ctx, b); err != nil {
		return err
	}

	service.logger.Info("featured_bundle_updated", slog.String("bundle_id", id))
	return nil
}

func (service *Service) DeleteFeatured(ctx context.Context, id string) error {
	if err := service.featured.DeleteFeatured(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("featured_bundle_deleted", slog.String("bundle_id", id))
	return nil
}

// # Custom bundles

// CreateCustom builds a reader's custom bundle.
//
// Validation runs before anything is written: an undersized or unnamed
// bundle fails with no state change. Discount and price derive purely from
// the book count.
func (service *Service) CreateCustom(ctx context.Context, userID string, input CustomInput) (*CustomBundle, error) {
	if err := validateCustom(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &CustomBundle{
		ID:              uuidv7.New(),
		UserID:          userID,
		Name:            input.Name,
		BookIDs:         input.BookIDs,
		DiscountPercent: CustomDiscountPercent(len(input.BookIDs)),
		Price:           CustomPrice(len(input.BookIDs)),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := service.custom.Save(ctx, b); err != nil {
		return nil, err
	}

	service.logger.Info("custom_bundle_created",
		slog.String("bundle_id", b.ID),
		slog.Int("books", len(b.BookIDs)),
		slog.Float64("discount", b.DiscountPercent),
	)
	return b, nil
}

// UpdateCustom replaces an existing custom bundle's name and membership,
// re-deriving its discount and price.
func (service *Service) UpdateCustom(ctx context.Context, userID, id string, input CustomInput) (*CustomBundle, error) {
	if err := validateCustom(input); err != nil {
		return nil, err
	}

	existing, err := service.custom.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.BookIDs = input.BookIDs
	existing.DiscountPercent = CustomDiscountPercent(len(input.BookIDs))
	existing.Price = CustomPrice(len(input.BookIDs))
	existing.UpdatedAt = time.Now().UTC()

	if err := service.custom.Save(ctx, existing); err != nil {
		return nil, err
	}

	service.logger.Info("custom_bundle_updated", slog.String("bundle_id", id))
	return existing, nil
}

// ListCustom returns the user's custom bundles, newest first.
func (service *Service) ListCustom(ctx context.Context, userID string) ([]*CustomBundle, error) {
	bundles, err := service.custom.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Hash iteration order is undefined; make the listing stable.
	sort.Slice(bundles, func(i, j int) bool {
		return bundles[i].CreatedAt.After(bundles[j].CreatedAt)
	})

	return bundles, nil
}

func (service *Service) DeleteCustom(ctx context.Context, userID, id string) error {
	return service.custom.Delete(ctx, userID, id)
}

// BundlePrice resolves a bundle's title and price for cart pricing.
//
// Featured bundles are checked first; misses fall through to the user's
// custom bundles.
func (service *Service) BundlePrice(ctx context.Context, userID, bundleID string) (string, float64, error) {
	if featured, err := service.featured.GetFeatured(ctx, bundleID); err == nil {
		return featured.Title, featured.Price, nil
	}

	custom, err := service.custom.Get(ctx, userID, bundleID)
	if err != nil {
		return "", 0, err
	}

	return custom.Name, custom.Price, nil
}

func validateFeatured(b *Bundle) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, b.Title).MaxLen(FieldTitle, b.Title, 200)
	validator.MaxLen(FieldDescription, b.Description, 2000)
	validator.NonNegative(FieldPrice, b.Price)
	validator.Custom(FieldDiscount, b.DiscountPercent < 0 || b.DiscountPercent > 100,
		"Must be between 0 and 100")
	validator.Custom(FieldBookIDs, len(b.BookIDs) == 0, "At least one book is required")
	for _, bookID := range b.BookIDs {
		validator.UUID(FieldBookIDs, bookID)
	}

	return validator.Err()
}

func validateCustom(input CustomInput) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100)
	validator.Custom(FieldBookIDs, len(input.BookIDs) < MinCustomBooks,
		"A custom bundle needs at least 3 books")
	for _, bookID := range input.BookIDs {
		validator.UUID(FieldBookIDs, bookID)
	}

	return validator.Err()
}
