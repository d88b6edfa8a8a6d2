// Copyright (c) 2026 BookWise. All rights reserved.

package purchase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amitkr8158/bookwise/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) RecordBook(ctx context.Context, p *Purchase) error {
	query := `INSERT INTO user_purchases (id, user_id, book_id, title, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`

	err := repository.db.QueryRow(ctx, query, p.ID, p.UserID, p.BookID, p.Title, p.Amount).
		Scan(&p.CreatedAt)

	return dberr.Wrap(err, "record_book_purchase")
}

func (repository *PostgresRepository) RecordBundle(ctx context.Context, p *Purchase) error {
	query := `INSERT INTO bundle_purchases (id, user_id, bundle_id, title, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`

	err := repository.db.QueryRow(ctx, query, p.ID, p.UserID, p.BundleID, p.Title, p.Amount).
		Scan(&p.CreatedAt)

	return dberr.Wrap(err, "record_bundle_purchase")
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Purchase, int, error) {
	// Book and bundle purchases live in separate tables; the history view
	// merges them.
	merged := `SELECT id, user_id, book_id, NULL::text AS bundle_id, title, amount, created_at
			FROM user_purchases WHERE user_id = $1
		UNION ALL
		SELECT id, user_id, NULL::text AS book_id, bundle_id, title, amount, created_at
			FROM bundle_purchases WHERE user_id = $1`

	var total int
	countQuery := `SELECT count(*) FROM (` + merged + `) AS merged`
	if err := repository.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_purchases")
	}

	query := `SELECT * FROM (` + merged + `) AS merged
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_purchases")
	}
	defer rows.Close()

	var purchases []*Purchase
	for rows.Next() {
		p := &Purchase{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.BookID, &p.BundleID, &p.Title, &p.Amount, &p.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_purchase")
		}
		purchases = append(purchases, p)
	}

	return purchases, total, nil
}

func (repository *PostgresRepository) Recent(ctx context.Context, minAmount float64, since time.Time, limit int) ([]*Purchase, error) {
	query := `SELECT id, user_id, book_id, title, amount, created_at
		FROM user_purchases
		WHERE amount >= $1 AND created_at >= $2
		ORDER BY created_at DESC, id ASC
		LIMIT $3`

	rows, err := repository.db.Query(ctx, query, minAmount, since, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "recent_purchases")
	}
	defer rows.Close()

	var purchases []*Purchase
	for rows.Next() {
		p := &Purchase{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.BookID, &p.Title, &p.Amount, &p.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_recent_purchase")
		}
		purchases = append(purchases, p)
	}

	return purchases, nil
}
