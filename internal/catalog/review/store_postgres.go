// Copyright (c) 2026 BookWise. All rights reserved.

package review

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amitkr8158/bookwise/internal/platform/dberr"
)

const reviewColumns = `id, book_id, user_id, reviewer_name, rating, comment,
	is_visible, is_top, created_at, updated_at`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListVisible(ctx context.Context, bookID string, onlyTop bool) ([]*Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM book_reviews
		WHERE book_id = $1 AND is_visible = TRUE`
	if onlyTop {
		query += ` AND is_top = TRUE`
	}
	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := repository.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_visible_reviews")
	}
	defer rows.Close()

	return collect(rows)
}

func (repository *PostgresRepository) ListModeration(ctx context.Context, f ModerationFilter, limit, offset int) ([]*Review, int, error) {
	where := ` WHERE TRUE`
	args := []any{}

	if f.BookID != "" {
		args = append(args, f.BookID)
		where += ` AND book_id = $` + strconv.Itoa(len(args))
	}
	if f.Visible != nil {
		args = append(args, *f.Visible)
		where += ` AND is_visible = $` + strconv.Itoa(len(args))
	}

	var total int
	if err := repository.db.QueryRow(ctx, `SELECT count(*) FROM book_reviews`+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	query := `SELECT ` + reviewColumns + ` FROM book_reviews` + where +
		` ORDER BY created_at DESC, id ASC`

	args = append(args, limit, offset)
	query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_moderation_reviews")
	}
	defer rows.Close()

	reviews, err := collect(rows)
	return reviews, total, err
}

func (repository *PostgresRepository) GetReview(ctx context.Context, id string) (*Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM book_reviews WHERE id = $1`

	r := &Review{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&r.ID, &r.BookID, &r.UserID, &r.ReviewerName, &r.Rating, &r.Comment,
		&r.IsVisible, &r.IsTop, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}

	return r, nil
}

func (repository *PostgresRepository) CreateReview(ctx context.Context, r *Review) error {
	query := `INSERT INTO book_reviews
		(id, book_id, user_id, reviewer_name, rating, comment, is_visible, is_top, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := repository.db.QueryRow(ctx, query,
		r.ID, r.BookID, r.UserID, r.ReviewerName, r.Rating, r.Comment, r.IsVisible, r.IsTop,
	).Scan(&r.CreatedAt, &r.UpdatedAt)

	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) SetVisibility(ctx context.Context, id string, visible bool) error {
	return repository.setFlag(ctx, id, "is_visible", visible, "set_review_visibility")
}

func (repository *PostgresRepository) SetTop(ctx context.Context, id string, top bool) error {
	return repository.setFlag(ctx, id, "is_top", top, "set_review_top")
}

func (repository *PostgresRepository) setFlag(ctx context.Context, id, column string, value bool, action string) error {
	// column is one of two fixed names chosen above, never user input.
	query := `UPDATE book_reviews SET ` + column + ` = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := repository.db.Exec(ctx, query, id, value)
	if err != nil {
		return dberr.Wrap(err, action)
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteReview(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM book_reviews WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Summary(ctx context.Context, bookID string) (*RatingSummary, error) {
	query := `SELECT COALESCE(AVG(rating), 0), count(*)
		FROM book_reviews WHERE book_id = $1 AND is_visible = TRUE`

	summary := &RatingSummary{BookID: bookID}
	err := repository.db.QueryRow(ctx, query, bookID).Scan(&summary.Average, &summary.Count)
	if err != nil {
		return nil, dberr.Wrap(err, "review_summary")
	}

	return summary, nil
}

type rowIter interface {
	Next() bool
	Scan(dest ...any) error
}

func collect(rows rowIter) ([]*Review, error) {
	var reviews []*Review
	for rows.Next() {
		r := &Review{}
		err := rows.Scan(
			&r.ID, &r.BookID, &r.UserID, &r.ReviewerName, &r.Rating, &r.Comment,
			&r.IsVisible, &r.IsTop, &r.CreatedAt, &r.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, nil
}
