// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation (23505).
// When constraint is non-empty the violated index must match it.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsNoRows reports whether err is pgx's "no rows in result set".
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsInvalidInput reports whether PostgreSQL rejected a parameter's text form,
// such as a malformed uuid (22P02).
func IsInvalidInput(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

// Wrap inspects a database error and maps it onto an [apperr.AppError].
//
// Not-found rows and unparseable keys become NOT_FOUND for the named resource, unique violations
// become CONFLICT, and anything else becomes INTERNAL_ERROR tagged with action.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if IsNoRows(err) || IsInvalidInput(err) {
		return apperr.NotFound(resource)
	}

	if IsUniqueViolation(err, "") {
		return apperr.Conflict(resource + " already exists").WithCause(err)
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
