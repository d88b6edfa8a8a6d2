// Copyright (c) 2026 BookWise. All rights reserved.

package digest

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amitkr8158/bookwise/internal/platform/dberr"
)

const quoteColumns = `id, text, author, source, created_at, updated_at`

type PostgresQuoteRepository struct {
	db *pgxpool.Pool
}

func NewPostgresQuoteRepository(db *pgxpool.Pool) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{db: db}
}

func (repository *PostgresQuoteRepository) ListQuotes(ctx context.Context) ([]*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY created_at DESC, id ASC`

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_quotes")
	}
	defer rows.Close()

	var quotes []*Quote
	for rows.Next() {
		q := &Quote{}
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &q.Source, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_quote")
		}
		quotes = append(quotes, q)
	}

	return quotes, nil
}

func (repository *PostgresQuoteRepository) GetQuote(ctx context.Context, id string) (*Quote, error) {
	return repository.one(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, "get_quote", id)
}

func (repository *PostgresQuoteRepository) CreateQuote(ctx context.Context, q *Quote) error {
	query := `INSERT INTO quotes (id, text, author, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := repository.db.QueryRow(ctx, query, q.ID, q.Text, q.Author, q.Source).
		Scan(&q.CreatedAt, &q.UpdatedAt)

	return dberr.Wrap(err, "create_quote")
}

func (repository *PostgresQuoteRepository) UpdateQuote(ctx context.Context, q *Quote) error {
	query := `UPDATE quotes SET text = $2, author = $3, source = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := repository.db.QueryRow(ctx, query, q.ID, q.Text, q.Author, q.Source).
		Scan(&q.UpdatedAt)

	return dberr.Wrap(err, "update_quote")
}

func (repository *PostgresQuoteRepository) DeleteQuote(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_quote")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// RandomQuote samples one row. The quotes table stays small (hand-curated),
// so ORDER BY random() is acceptable here.
func (repository *PostgresQuoteRepository) RandomQuote(ctx context.Context) (*Quote, error) {
	return repository.one(ctx,
		`SELECT `+quoteColumns+` FROM quotes ORDER BY random() LIMIT 1`, "random_quote")
}

func (repository *PostgresQuoteRepository) one(ctx context.Context, query, action string, args ...any) (*Quote, error) {
	q := &Quote{}
	err := repository.db.QueryRow(ctx, query, args...).
		Scan(&q.ID, &q.Text, &q.Author, &q.Source, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return q, nil
}
