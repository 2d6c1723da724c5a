// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/booknotes/internal/platform/sqlite"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRepository opens a fresh in-memory store per test.
func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, sqlite.MemoryPath, sqlite.Options{}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repository, err := NewSQLiteRepository(ctx, db, time.Second)
	require.NoError(t, err)
	return repository
}

// spyRepository counts writes that reach the store.
type spyRepository struct {
	Repository
	inserts int
	updates int
}

func (spy *spyRepository) Insert(ctx context.Context, record *NewRecord) (bookRow, error) {
	spy.inserts++
	return spy.Repository.Insert(ctx, record)
}

func (spy *spyRepository) Update(ctx context.Context, id int, changes *UpdateRequest) (bookRow, error) {
	spy.updates++
	return spy.Repository.Update(ctx, id, changes)
}

// clock is a settable time source.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *spyRepository, *clock) {
	t.Helper()
	spy := &spyRepository{Repository: newTestRepository(t)}
	testClock := &clock{now: testNow}
	return NewService(spy, discardLogger()).WithClock(testClock.Now), spy, testClock
}
