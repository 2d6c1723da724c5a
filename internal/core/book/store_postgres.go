// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/booknotes/internal/platform/dberr"
	"github.com/taibuivan/booknotes/internal/platform/postgres"
)

// PostgresRepository stores books in PostgreSQL through a pgx pool.
// Every call checks out a connection within acquireTimeout.
type PostgresRepository struct {
	db             *pgxpool.Pool
	acquireTimeout time.Duration
}

func NewPostgresRepository(db *pgxpool.Pool, acquireTimeout time.Duration) *PostgresRepository {
	return &PostgresRepository{db: db, acquireTimeout: acquireTimeout}
}

func (repository *PostgresRepository) Insert(ctx context.Context, record *NewRecord) (bookRow, error) {
	conn, err := postgres.Acquire(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return bookRow{}, dberr.Wrap(err, "acquire_insert_book")
	}
	defer conn.Release()

	row, err := scanPostgresRow(conn.QueryRow(ctx, postgresSQL.insert,
		record.Title, record.Author, record.CoverURL, record.Tags, string(record.Status),
		record.DateAdded.Time, dateArg(record.DateFinished), record.Rating, record.Description,
	))
	return row, dberr.Wrap(err, "insert_book")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (bookRow, error) {
	conn, err := postgres.Acquire(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return bookRow{}, dberr.Wrap(err, "acquire_get_book")
	}
	defer conn.Release()

	row, err := scanPostgresRow(conn.QueryRow(ctx, postgresSQL.selectByID, id))
	return row, dberr.Wrap(err, "get_book")
}

func (repository *PostgresRepository) List(ctx context.Context, query ListQuery) ([]bookRow, error) {
	conn, err := postgres.Acquire(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return nil, dberr.Wrap(err, "acquire_list_books")
	}
	defer conn.Release()

	statement, args := postgresSQL.listQuery(query)
	rows, err := conn.Query(ctx, statement, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	result := make([]bookRow, 0, query.Limit)
	for rows.Next() {
		row, err := scanPostgresRow(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		result = append(result, row)
	}

	return result, dberr.Wrap(rows.Err(), "list_books")
}

func (repository *PostgresRepository) Update(ctx context.Context, id int, changes *UpdateRequest) (bookRow, error) {
	conn, err := postgres.Acquire(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return bookRow{}, dberr.Wrap(err, "acquire_update_book")
	}
	defer conn.Release()

	row, err := scanPostgresRow(conn.QueryRow(ctx, postgresSQL.update,
		id, changes.Title, changes.Author, changes.CoverURL, changes.Tags, statusArg(changes.Status),
		changes.Rating, changes.Description, dateArg(changes.DateFinished),
	))
	return row, dberr.Wrap(err, "update_book")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int) (int64, error) {
	conn, err := postgres.Acquire(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return 0, dberr.Wrap(err, "acquire_delete_book")
	}
	defer conn.Release()

	cmd, err := conn.Exec(ctx, postgresSQL.delete, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_book")
	}
	return cmd.RowsAffected(), nil
}

func (repository *PostgresRepository) Ping(ctx context.Context) error {
	return postgres.Ping(ctx, repository.db)
}

// scanPostgresRow reads one row in column order. date columns decode to
// time.Time at UTC midnight.
func scanPostgresRow(scanner pgx.Row) (bookRow, error) {
	var row bookRow
	err := scanner.Scan(
		&row.ID, &row.Title, &row.Author, &row.CoverURL, &row.Tags, &row.Status,
		&row.DateAdded, &row.DateFinished, &row.Rating, &row.Description, &row.NotesCount,
	)
	return row, err
}
