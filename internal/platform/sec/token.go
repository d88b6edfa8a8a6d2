// Copyright (c) 2026 BookWise. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken produces a URL-safe random token of byteLength entropy bytes.
//
// Used for refresh tokens and password reset tokens. The raw value goes to the
// client; only its hash is ever persisted.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Lookup tables store this digest so that a database leak does not expose
// live refresh tokens.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
