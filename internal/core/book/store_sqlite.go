// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/taibuivan/booknotes/internal/platform/dberr"
	"github.com/taibuivan/booknotes/internal/platform/sqlite"
	"github.com/taibuivan/booknotes/pkg/pointer"
)

// SQLiteRepository stores books in an embedded SQLite database.
//
// Tags are kept as a JSON array in a TEXT column and dates as YYYY-MM-DD text,
// so lexical order on date_added is chronological order.
type SQLiteRepository struct {
	db             *sql.DB
	acquireTimeout time.Duration
}

// NewSQLiteRepository creates the books table if it does not exist yet.
func NewSQLiteRepository(ctx context.Context, db *sql.DB, acquireTimeout time.Duration) (*SQLiteRepository, error) {
	if _, err := db.ExecContext(ctx, sqliteDDL); err != nil {
		return nil, fmt.Errorf("sqlite: create books table: %w", err)
	}
	return &SQLiteRepository{db: db, acquireTimeout: acquireTimeout}, nil
}

func (repository *SQLiteRepository) Insert(ctx context.Context, record *NewRecord) (bookRow, error) {
	tags, err := encodeTags(record.Tags)
	if err != nil {
		return bookRow{}, dberr.Wrap(err, "encode_tags")
	}

	conn, err := sqlite.Conn(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return bookRow{}, dberr.Wrap(err, "acquire_insert_book")
	}
	defer conn.Close()

	row, err := scanSQLiteRow(conn.QueryRowContext(ctx, sqliteSQL.insert,
		record.Title, record.Author, record.CoverURL, tags, string(record.Status),
		record.DateAdded.String(), dateText(record.DateFinished), record.Rating, record.Description,
	))
	return row, dberr.Wrap(err, "insert_book")
}

func (repository *SQLiteRepository) FindByID(ctx context.Context, id int) (bookRow, error) {
	conn, err := sqlite.Conn(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return bookRow{}, dberr.Wrap(err, "acquire_get_book")
	}
	defer conn.Close()

	row, err := scanSQLiteRow(conn.QueryRowContext(ctx, sqliteSQL.selectByID, id))
	return row, dberr.Wrap(err, "get_book")
}

func (repository *SQLiteRepository) List(ctx context.Context, query ListQuery) ([]bookRow, error) {
	conn, err := sqlite.Conn(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return nil, dberr.Wrap(err, "acquire_list_books")
	}
	defer conn.Close()

	statement, args := sqliteSQL.listQuery(query)
	rows, err := conn.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	result := make([]bookRow, 0, query.Limit)
	for rows.Next() {
		row, err := scanSQLiteRow(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		result = append(result, row)
	}

	return result, dberr.Wrap(rows.Err(), "list_books")
}

func (repository *SQLiteRepository) Update(ctx context.Context, id int, changes *UpdateRequest) (bookRow, error) {
	var tags *string
	if changes.Tags != nil {
		encoded, err := encodeTags(changes.Tags)
		if err != nil {
			return bookRow{}, dberr.Wrap(err, "encode_tags")
		}
		tags = pointer.To(encoded)
	}

	conn, err := sqlite.Conn(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return bookRow{}, dberr.Wrap(err, "acquire_update_book")
	}
	defer conn.Close()

	row, err := scanSQLiteRow(conn.QueryRowContext(ctx, sqliteSQL.update,
		changes.Title, changes.Author, changes.CoverURL, tags, statusArg(changes.Status),
		changes.Rating, changes.Description, dateText(changes.DateFinished), id,
	))
	return row, dberr.Wrap(err, "update_book")
}

func (repository *SQLiteRepository) Delete(ctx context.Context, id int) (int64, error) {
	conn, err := sqlite.Conn(ctx, repository.db, repository.acquireTimeout)
	if err != nil {
		return 0, dberr.Wrap(err, "acquire_delete_book")
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, sqliteSQL.delete, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_book")
	}

	affected, err := result.RowsAffected()
	return affected, dberr.Wrap(err, "delete_book")
}

func (repository *SQLiteRepository) Ping(ctx context.Context) error {
	return sqlite.Ping(ctx, repository.db)
}

// # Column Codecs

type sqlScanner interface {
	Scan(dest ...any) error
}

// scanSQLiteRow reads one row in column order and decodes the text-encoded
// tags and date columns.
func scanSQLiteRow(scanner sqlScanner) (bookRow, error) {
	var (
		row                           bookRow
		tags, status, added, finished sql.NullString
		coverURL, description         sql.NullString
		rating, notesCount            sql.NullInt64
	)

	if err := scanner.Scan(
		&row.ID, &row.Title, &row.Author, &coverURL, &tags, &status,
		&added, &finished, &rating, &description, &notesCount,
	); err != nil {
		return bookRow{}, err
	}

	row.CoverURL = nullString(coverURL)
	row.Status = nullString(status)
	row.Description = nullString(description)
	row.Rating = nullInt(rating)
	row.NotesCount = nullInt(notesCount)

	if tags.Valid {
		if err := json.UnmarshalFromString(tags.String, &row.Tags); err != nil {
			return bookRow{}, fmt.Errorf("decode tags of book %d: %w", row.ID, err)
		}
	}

	var err error
	if row.DateAdded, err = nullDate(added); err != nil {
		return bookRow{}, fmt.Errorf("decode date_added of book %d: %w", row.ID, err)
	}
	if row.DateFinished, err = nullDate(finished); err != nil {
		return bookRow{}, fmt.Errorf("decode date_finished of book %d: %w", row.ID, err)
	}

	return row, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.MarshalToString(tags)
}

func dateText(date *Date) *string {
	return pointer.Map(date, Date.String)
}

func nullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func nullInt(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	converted := int(value.Int64)
	return &converted
}

func nullDate(value sql.NullString) (*time.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, value.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
