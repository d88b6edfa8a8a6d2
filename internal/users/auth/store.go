// Copyright (c) 2026 BookWise. All rights reserved.

package auth

import (
	"context"
	"time"
)

// UserRepository persists account credentials.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// SessionRepository persists refresh-token sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error

	// FindByTokenHash returns only live sessions: unrevoked and unexpired.
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	Revoke(ctx context.Context, sessionID string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

// ResetTokenStore holds short-lived password reset tokens.
type ResetTokenStore interface {
	Set(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	Get(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, tokenHash string) error
}
