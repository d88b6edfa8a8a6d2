// Copyright (c) 2026 BookWise. All rights reserved.

package bundle

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amitkr8158/bookwise/internal/platform/dberr"
)

const featuredColumns = `b.id, b.title, b.description, b.price, b.discount_percent, b.is_active,
	b.created_at, b.updated_at,
	COALESCE(array_agg(bb.book_id ORDER BY bb.position) FILTER (WHERE bb.book_id IS NOT NULL), '{}')`

const featuredJoin = ` FROM bundles b
	LEFT JOIN bundle_books bb ON bb.bundle_id = b.id`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListFeatured(ctx context.Context, activeOnly bool) ([]*Bundle, error) {
	query := `SELECT ` + featuredColumns + featuredJoin
	if activeOnly {
		query += ` WHERE b.is_active = TRUE`
	}
	query += ` GROUP BY b.id ORDER BY b.created_at DESC, b.id ASC`

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_featured_bundles")
	}
	defer rows.Close()

	var bundles []*Bundle
	for rows.Next() {
		b := &Bundle{}
		err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Price, &b.DiscountPercent,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt, &b.BookIDs)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_bundle")
		}
		bundles = append(bundles, b)
	}

	return bundles, nil
}

func (repository *PostgresRepository) GetFeatured(ctx context.Context, id string) (*Bundle, error) {
	query := `SELECT ` + featuredColumns + featuredJoin + ` WHERE b.id = $1 GROUP BY b.id`

	b := &Bundle{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Description, &b.Price, &b.DiscountPercent,
		&b.IsActive, &b.CreatedAt, &b.UpdatedAt, &b.BookIDs,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_featured_bundle")
	}

	return b, nil
}

func (repository *PostgresRepository) CreateFeatured(ctx context.Context, b *Bundle) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_create_bundle")
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO bundles (id, title, description, price, discount_percent, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`

	err = tx.QueryRow(ctx, query,
		b.ID, b.Title, b.Description, b.Price, b.DiscountPercent, b.IsActive,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_bundle")
	}

	if err := insertMembers(ctx, tx, b.ID, b.BookIDs); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(ctx), "commit_create_bundle")
}

func (repository *PostgresRepository) UpdateFeatured(ctx context.Context, b *Bundle) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_update_bundle")
	}
	defer tx.Rollback(ctx)

	query := `UPDATE bundles
		SET title = $2, description = $3, price = $4, discount_percent = $5,
			is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err = tx.QueryRow(ctx, query,
		b.ID, b.Title, b.Description, b.Price, b.DiscountPercent, b.IsActive,
	).Scan(&b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_bundle")
	}

	// Membership is replaced wholesale.
	if _, err := tx.Exec(ctx, `DELETE FROM bundle_books WHERE bundle_id = $1`, b.ID); err != nil {
		return dberr.Wrap(err, "clear_bundle_books")
	}
	if err := insertMembers(ctx, tx, b.ID, b.BookIDs); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(ctx), "commit_update_bundle")
}

func (repository *PostgresRepository) DeleteFeatured(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM bundles WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_bundle")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func insertMembers(ctx context.Context, tx pgx.Tx, bundleID string, bookIDs []string) error {
	for position, bookID := range bookIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO bundle_books (bundle_id, book_id, position) VALUES ($1, $2, $3)`,
			bundleID, bookID, position)
		if err != nil {
			return dberr.Wrap(err, "insert_bundle_book")
		}
	}
	return nil
}
