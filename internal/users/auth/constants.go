// Copyright (c) 2026 BookWise. All rights reserved.

package auth

import "time"

const (
	// AccessTokenTTL keeps the leak window of a stolen JWT small.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL bounds how long an idle session survives.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// ResetTokenTTL bounds the password reset window.
	ResetTokenTTL = 30 * time.Minute

	// RefreshTokenBytes is the entropy of a refresh or reset token.
	RefreshTokenBytes = 32

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
)
