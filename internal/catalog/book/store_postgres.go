// Copyright (c) 2026 BookWise. All rights reserved.

package book

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amitkr8158/bookwise/internal/platform/dberr"
)

const bookColumns = `id, slug, title, author, description, category, language,
	price, is_free, cover_image_url, pdf_url, audio_url, video_url, rating,
	published_at, created_at, updated_at`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListBooks(ctx context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	where := ` WHERE deleted_at IS NULL`
	args := []any{}

	if f.Language != "" {
		args = append(args, f.Language)
		where += ` AND language = $` + itos(len(args))
	}

	if f.Category != "" {
		args = append(args, f.Category)
		where += ` AND category = $` + itos(len(args))
	}

	// OR semantics across title/author/description, case-insensitive.
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := itos(len(args))
		where += ` AND (title ILIKE $` + n + ` OR author ILIKE $` + n + ` OR description ILIKE $` + n + `)`
	}

	countQuery := `SELECT count(*) FROM books` + where

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query := `SELECT ` + bookColumns + ` FROM books` + where + orderClause(f.Sort)
	args = append(args, limit, offset)
	query += ` LIMIT $` + itos(len(args)-1) + ` OFFSET $` + itos(len(args))

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b := &Book{}
		if err := scanBook(rows, b); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetBook(ctx context.Context, idOrSlug string) (*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books
		WHERE (id::text = $1 OR slug = $1) AND deleted_at IS NULL`

	b := &Book{}
	err := scanBook(repository.db.QueryRow(ctx, query, idOrSlug), b)
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}

	return b, nil
}

func (repository *PostgresRepository) CreateBook(ctx context.Context, b *Book) error {
	query := `INSERT INTO books
		(id, slug, title, author, description, category, language, price, is_free,
		 cover_image_url, pdf_url, audio_url, video_url, rating, published_at,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := repository.db.QueryRow(ctx, query,
		b.ID, b.Slug, b.Title, b.Author, b.Description, b.Category, b.Language,
		b.Price, b.IsFree, b.CoverImageURL, b.PDFURL, b.AudioURL, b.VideoURL,
		b.Rating, b.PublishedAt,
	).Scan(&b.CreatedAt, &b.UpdatedAt)

	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) UpdateBook(ctx context.Context, b *Book) error {
	query := `UPDATE books
		SET slug = $2, title = $3, author = $4, description = $5, category = $6,
			language = $7, price = $8, is_free = $9, rating = $10,
			published_at = $11, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := repository.db.QueryRow(ctx, query,
		b.ID, b.Slug, b.Title, b.Author, b.Description, b.Category,
		b.Language, b.Price, b.IsFree, b.Rating, b.PublishedAt,
	).Scan(&b.UpdatedAt)

	return dberr.Wrap(err, "update_book")
}

func (repository *PostgresRepository) DeleteBook(ctx context.Context, id string) error {
	query := `UPDATE books SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SetMediaURL(ctx context.Context, id string, kind MediaKind, url string) error {
	column, ok := mediaColumn(kind)
	if !ok {
		return fmt.Errorf("book: unknown media kind %q", kind)
	}

	query := fmt.Sprintf(`UPDATE books SET %s = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, column)

	cmd, err := repository.db.Exec(ctx, query, id, url)
	if err != nil {
		return dberr.Wrap(err, "set_book_media")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// mediaColumn maps a media kind to its column. Kinds are a closed set; the
// column name is never taken from user input.
func mediaColumn(kind MediaKind) (string, bool) {
	switch kind {
	case MediaCover:
		return "cover_image_url", true
	case MediaPDF:
		return "pdf_url", true
	case MediaAudio:
		return "audio_url", true
	case MediaVideo:
		return "video_url", true
	default:
		return "", false
	}
}

// orderClause maps a sort key to deterministic ordering SQL.
//
// "popular" counts completed purchases per book; ties fall back to publish
// recency, then primary key, so pagination never shuffles.
func orderClause(sort string) string {
	switch sort {
	case SortPopular:
		return ` ORDER BY (SELECT count(*) FROM user_purchases up WHERE up.book_id = books.id) DESC,
			published_at DESC, id ASC`
	case SortPriceLow:
		return ` ORDER BY price ASC, id ASC`
	case SortPriceHigh:
		return ` ORDER BY price DESC, id ASC`
	case SortNewest:
		fallthrough
	default:
		return ` ORDER BY published_at DESC, id ASC`
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner, b *Book) error {
	return row.Scan(
		&b.ID, &b.Slug, &b.Title, &b.Author, &b.Description, &b.Category,
		&b.Language, &b.Price, &b.IsFree, &b.CoverImageURL, &b.PDFURL,
		&b.AudioURL, &b.VideoURL, &b.Rating, &b.PublishedAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

func itos(i int) string {
	return strconv.Itoa(i)
}
