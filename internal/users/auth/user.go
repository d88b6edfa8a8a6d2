// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package auth implements account registration, login, and session management.

Architecture:

  - User: The credentials-bearing account row. Display data lives in the
    profile slice; the two are linked by user ID.
  - Session: A stored refresh-token session. Access tokens are short-lived
    JWTs; revoking the session is what actually signs a user out.
  - Service: Registration, credential verification, token rotation, and the
    password reset flow.

On login the user's profile row is provisioned lazily. If provisioning is
denied by a storage policy, the freshly created session is revoked before the
error is returned, so no half-authenticated state survives.
*/
package auth

import (
	"time"

	"github.com/amitkr8158/bookwise/internal/platform/sec"
)

// User is a registered BookWise account.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session is an active refresh-token session.
//
// Only the SHA-256 hash of the refresh token is stored; the raw value exists
// solely in the client's cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// Global field names for validation
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldToken       = "token"
)
