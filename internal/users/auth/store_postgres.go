// Copyright (c) 2026 BookWise. All rights reserved.

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amitkr8158/bookwise/internal/platform/dberr"
)

const userColumns = `id, email, password_hash, display_name, role, created_at, updated_at`

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, email, password_hash, display_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := repository.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.one(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, "find_user_by_id", id)
}

func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.one(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, "find_user_by_email", email)
}

func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := repository.db.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_password")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresUserRepository) one(ctx context.Context, query, action string, args ...any) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return user, nil
}

// # Sessions

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (repository *PostgresSessionRepository) Create(ctx context.Context, session *Session) error {
	query := `INSERT INTO sessions (id, user_id, token_hash, user_agent, ip_address, expires_at, is_revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING created_at`

	err := repository.db.QueryRow(ctx, query,
		session.ID, session.UserID, session.TokenHash,
		session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.CreatedAt)

	return dberr.Wrap(err, "create_session")
}

func (repository *PostgresSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	query := `SELECT id, user_id, token_hash, user_agent, ip_address, expires_at, is_revoked, created_at
		FROM sessions
		WHERE token_hash = $1 AND is_revoked = FALSE AND expires_at > NOW()`

	session := &Session{}
	err := repository.db.QueryRow(ctx, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.UserAgent,
		&session.IPAddress, &session.ExpiresAt, &session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_session")
	}

	return session, nil
}

func (repository *PostgresSessionRepository) Revoke(ctx context.Context, sessionID string) error {
	_, err := repository.db.Exec(ctx,
		`UPDATE sessions SET is_revoked = TRUE WHERE id = $1`, sessionID)
	return dberr.Wrap(err, "revoke_session")
}

func (repository *PostgresSessionRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := repository.db.Exec(ctx,
		`UPDATE sessions SET is_revoked = TRUE WHERE user_id = $1 AND is_revoked = FALSE`, userID)
	return dberr.Wrap(err, "revoke_user_sessions")
}
