// Copyright (c) 2026 BookWise. All rights reserved.

package profile

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amitkr8158/bookwise/internal/platform/dberr"
)

const profileColumns = `p.user_id, u.email, u.role, p.display_name, p.avatar_url, p.bio,
	p.digest_subscribed, p.created_at, p.updated_at`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) EnsureExists(ctx context.Context, userID, displayName string) error {
	query := `INSERT INTO profiles (user_id, display_name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING`

	_, err := repository.db.Exec(ctx, query, userID, displayName)
	return dberr.Wrap(err, "ensure_profile")
}

func (repository *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`

	profile := &Profile{}
	err := repository.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.Email, &profile.Role, &profile.DisplayName,
		&profile.AvatarURL, &profile.Bio, &profile.DigestSubscribed,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_profile")
	}

	return profile, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, userID string, input UpdateInput) error {
	query := `UPDATE profiles SET
			display_name = COALESCE($2, display_name),
			avatar_url = COALESCE($3, avatar_url),
			bio = COALESCE($4, bio),
			digest_subscribed = COALESCE($5, digest_subscribed),
			updated_at = NOW()
		WHERE user_id = $1`

	cmd, err := repository.db.Exec(ctx, query, userID,
		input.DisplayName, input.AvatarURL, input.Bio, input.DigestSubscribed)
	if err != nil {
		return dberr.Wrap(err, "update_profile")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListUsers(ctx context.Context, limit, offset int) ([]Profile, int, error) {
	query := `SELECT ` + profileColumns + `, count(*) OVER() AS total
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.user_id ASC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	var profiles []Profile
	var total int
	for rows.Next() {
		var profile Profile
		err := rows.Scan(
			&profile.UserID, &profile.Email, &profile.Role, &profile.DisplayName,
			&profile.AvatarURL, &profile.Bio, &profile.DigestSubscribed,
			&profile.CreatedAt, &profile.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		profiles = append(profiles, profile)
	}

	return profiles, total, dberr.Wrap(rows.Err(), "list_users")
}

func (repository *PostgresRepository) SetRole(ctx context.Context, userID, role string) error {
	cmd, err := repository.db.Exec(ctx,
		`UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, userID, role)
	if err != nil {
		return dberr.Wrap(err, "set_role")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListSubscribedEmails(ctx context.Context) ([]string, error) {
	query := `SELECT u.email
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.digest_subscribed = TRUE
		ORDER BY u.email`

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_subscribed_emails")
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, dberr.Wrap(err, "scan_email")
		}
		emails = append(emails, email)
	}

	return emails, dberr.Wrap(rows.Err(), "list_subscribed_emails")
}
