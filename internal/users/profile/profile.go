// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package profile manages user display data and the admin user directory.

A profile row shares its primary key with the auth user it belongs to and is
provisioned lazily on login rather than at registration, so accounts imported
from earlier systems gain one on first use.
*/
package profile

import (
	"time"

	"github.com/amitkr8158/bookwise/internal/platform/sec"
)

// Profile is the display side of an account. Credentials live in the auth
// slice; Email and Role are joined in from there for reads.
type Profile struct {
	UserID           string       `json:"id"`
	Email            string       `json:"email"`
	Role             sec.UserRole `json:"role"`
	DisplayName      string       `json:"display_name"`
	AvatarURL        *string      `json:"avatar_url"`
	Bio              *string      `json:"bio"`
	DigestSubscribed bool         `json:"digest_subscribed"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// UpdateInput carries the self-service editable fields. Nil means unchanged.
type UpdateInput struct {
	DisplayName      *string `json:"display_name"`
	AvatarURL        *string `json:"avatar_url"`
	Bio              *string `json:"bio"`
	DigestSubscribed *bool   `json:"digest_subscribed"`
}

// Global field names for validation
const (
	FieldDisplayName = "display_name"
	FieldAvatarURL   = "avatar_url"
	FieldBio         = "bio"
	FieldRole        = "role"
)
