// Copyright (c) 2026 BookWise. All rights reserved.

package cart

import "context"

type Repository interface {
	// GetOrCreateCart returns the user's cart, creating an empty one on first use.
	GetOrCreateCart(ctx context.Context, userID string) (*Cart, error)

	ListItems(ctx context.Context, cartID string) ([]*CartItem, error)
	AddItem(ctx context.Context, item *CartItem) error

	// UpdateQuantity and RemoveItem are scoped by cartID so a user can never
	// touch another user's lines.
	UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error

	SetPromoCode(ctx context.Context, cartID string, code *string) error
	ClearItems(ctx context.Context, cartID string) error
}
