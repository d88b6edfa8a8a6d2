// Copyright (c) 2026 BookWise. All rights reserved.

package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amitkr8158/bookwise/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	query := `SELECT slug, name, description, sort_order, created_at, updated_at
		FROM categories ORDER BY sort_order ASC, name ASC`

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.Slug, &c.Name, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (repository *PostgresRepository) GetCategory(ctx context.Context, slug string) (*Category, error) {
	query := `SELECT slug, name, description, sort_order, created_at, updated_at
		FROM categories WHERE slug = $1`

	c := &Category{}
	err := repository.db.QueryRow(ctx, query, slug).
		Scan(&c.Slug, &c.Name, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}

	return c, nil
}

func (repository *PostgresRepository) CreateCategory(ctx context.Context, c *Category) error {
	query := `INSERT INTO categories (slug, name, description, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := repository.db.QueryRow(ctx, query, c.Slug, c.Name, c.Description, c.SortOrder).
		Scan(&c.CreatedAt, &c.UpdatedAt)

	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) UpdateCategory(ctx context.Context, c *Category) error {
	query := `UPDATE categories
		SET name = $2, description = $3, sort_order = $4, updated_at = NOW()
		WHERE slug = $1
		RETURNING updated_at`

	err := repository.db.QueryRow(ctx, query, c.Slug, c.Name, c.Description, c.SortOrder).
		Scan(&c.UpdatedAt)

	return dberr.Wrap(err, "update_category")
}

func (repository *PostgresRepository) DeleteCategory(ctx context.Context, slug string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM categories WHERE slug = $1`, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
