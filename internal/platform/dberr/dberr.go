// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/booknotes/internal/platform/apperr"
)

// NotFoundResource is the resource name used for a store-level "no row".
const NotFoundResource = "Resource"

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Both pgx and database/sql "no rows" sentinels map to a 404; anything else
// becomes a STORE_ERROR whose cause is prefixed with the action for the logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(NotFoundResource)
	}

	return apperr.Store(fmt.Errorf("%s: %w", action, err))
}
