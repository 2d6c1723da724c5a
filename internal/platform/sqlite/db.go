// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the embedded, pure-Go SQLite database used when the
// server runs without PostgreSQL (local development and tests).
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	driversqlite "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// FoldFunction is a SQL function lowering text with Unicode case rules.
// The built-in lower() and LIKE only fold ASCII letters.
const FoldFunction = "casefold"

func init() {
	driversqlite.MustRegisterDeterministicScalarFunction(FoldFunction, 1, fold)
}

func fold(_ *driversqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch value := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return value, nil
	}
}

// busyTimeoutMillis is how long a writer waits on a locked database file.
const busyTimeoutMillis = 5000

// pingTimeout is the maximum duration for a health check ping.
const pingTimeout = 2 * time.Second

// Options mirrors the PostgreSQL pool bounds for database/sql.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Open opens (creating if needed) the database at path and verifies it.
//
// An in-memory database lives only as long as its single connection, so
// [MemoryPath] pins the pool to one connection that is never recycled.
func Open(ctx context.Context, path string, options Options, logger *slog.Logger) (*sql.DB, error) {
	dsn := MemoryPath
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("sqlite: create dirs: %w", err)
		}
		dsn = fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
			path, busyTimeoutMillis)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	if path == MemoryPath {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(options.MaxOpenConns)
		db.SetMaxIdleConns(options.MaxIdleConns)
		db.SetConnMaxIdleTime(options.ConnMaxIdleTime)
		db.SetConnMaxLifetime(options.ConnMaxLifetime)
	}

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite database opened",
		slog.String("path", path),
		slog.Int("max_open_conns", db.Stats().MaxOpenConnections),
	)

	return db, nil
}

// Conn checks a connection out of the pool, failing once timeout elapses.
// The caller must Close the connection to return it.
func Conn(ctx context.Context, db *sql.DB, timeout time.Duration) (*sql.Conn, error) {
	if timeout <= 0 {
		return db.Conn(ctx)
	}

	acquireCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := db.Conn(acquireCtx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: acquire connection within %s: %w", timeout, err)
	}
	return conn, nil
}

// Ping verifies that the database answers.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}
