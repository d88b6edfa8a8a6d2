// Copyright (c) 2026 BookWise. All rights reserved.

package profile

import "context"

// Repository persists profiles and serves the admin user directory.
type Repository interface {
	// EnsureExists inserts the profile row if it is missing. It is a no-op
	// when the row is already there.
	EnsureExists(ctx context.Context, userID, displayName string) error

	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, input UpdateInput) error

	ListUsers(ctx context.Context, limit, offset int) ([]Profile, int, error)
	SetRole(ctx context.Context, userID, role string) error

	// ListSubscribedEmails returns the addresses of users who opted into the
	// daily digest.
	ListSubscribedEmails(ctx context.Context) ([]string, error)
}
