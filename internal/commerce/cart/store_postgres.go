// Copyright (c) 2026 BookWise. All rights reserved.

package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amitkr8158/bookwise/internal/platform/dberr"
	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) GetOrCreateCart(ctx context.Context, userID string) (*Cart, error) {
	query := `SELECT id, user_id, promo_code, created_at, updated_at
		FROM carts WHERE user_id = $1`

	c := &Cart{}
	err := repository.db.QueryRow(ctx, query, userID).
		Scan(&c.ID, &c.UserID, &c.PromoCode, &c.CreatedAt, &c.UpdatedAt)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, dberr.Wrap(err, "get_cart")
	}

	// First use: create the cart. ON CONFLICT covers a concurrent first add.
	insert := `INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, promo_code, created_at, updated_at`

	err = repository.db.QueryRow(ctx, insert, uuidv7.New(), userID).
		Scan(&c.ID, &c.UserID, &c.PromoCode, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "create_cart")
	}

	return c, nil
}

func (repository *PostgresRepository) ListItems(ctx context.Context, cartID string) ([]*CartItem, error) {
	query := `SELECT id, cart_id, book_id, bundle_id, quantity, created_at
		FROM cart_items WHERE cart_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := repository.db.Query(ctx, query, cartID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_cart_items")
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		item := &CartItem{}
		if err := rows.Scan(&item.ID, &item.CartID, &item.BookID, &item.BundleID, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_cart_item")
		}
		items = append(items, item)
	}

	return items, nil
}

func (repository *PostgresRepository) AddItem(ctx context.Context, item *CartItem) error {
	query := `INSERT INTO cart_items (id, cart_id, book_id, bundle_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`

	err := repository.db.QueryRow(ctx, query,
		item.ID, item.CartID, item.BookID, item.BundleID, item.Quantity,
	).Scan(&item.CreatedAt)

	return dberr.Wrap(err, "add_cart_item")
}

func (repository *PostgresRepository) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	query := `UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND id = $2`

	cmd, err := repository.db.Exec(ctx, query, cartID, itemID, quantity)
	if err != nil {
		return dberr.Wrap(err, "update_cart_quantity")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) RemoveItem(ctx context.Context, cartID, itemID string) error {
	cmd, err := repository.db.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	if err != nil {
		return dberr.Wrap(err, "remove_cart_item")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SetPromoCode(ctx context.Context, cartID string, code *string) error {
	query := `UPDATE carts SET promo_code = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := repository.db.Exec(ctx, query, cartID, code)
	if err != nil {
		return dberr.Wrap(err, "set_promo_code")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ClearItems(ctx context.Context, cartID string) error {
	_, err := repository.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return dberr.Wrap(err, "clear_cart_items")
}
