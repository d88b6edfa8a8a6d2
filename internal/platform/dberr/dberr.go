// Copyright (c) 2026 BookWise. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action string is attached to the internal cause for log correlation only.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. SQLSTATE classification for constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.Unprocessable("Referenced resource does not exist")
		case pgerrcode.CheckViolation:
			return apperr.Unprocessable("Data violates a storage constraint")
		case pgerrcode.InsufficientPrivilege:
			// Row-level policy rejection surfaces as a permission error.
			return apperr.Forbidden("Operation denied by storage policy")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(wrapped{action: action, err: err})
}

// wrapped pairs the failed action with the raw driver error for server logs.
type wrapped struct {
	action string
	err    error
}

func (w wrapped) Error() string { return w.action + ": " + w.err.Error() }
func (w wrapped) Unwrap() error { return w.err }
