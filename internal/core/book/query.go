// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"fmt"
	"strings"

	"github.com/taibuivan/booknotes/internal/platform/database/schema"
	"github.com/taibuivan/booknotes/internal/platform/sqlite"
)

// listShape identifies one of the four fixed list statements.
type listShape int

const (
	shapeAll listShape = iota
	shapeByStatus
	shapeBySearch
	shapeByStatusAndSearch
)

// selectShape picks the statement for the filters present in query.
func selectShape(query ListQuery) listShape {
	hasStatus := query.Status != ""
	hasSearch := query.Search != ""

	switch {
	case hasStatus && hasSearch:
		return shapeByStatusAndSearch
	case hasStatus:
		return shapeByStatus
	case hasSearch:
		return shapeBySearch
	default:
		return shapeAll
	}
}

// searchPattern wraps a lowered search term for a substring LIKE match.
func searchPattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}

// statements is the full SQL set for one store dialect, rendered once at
// package initialisation. User input only ever travels as bound arguments.
type statements struct {
	insert     string
	selectByID string
	update     string
	delete     string
	list       [4]string

	// searchBinds is how often the search pattern is bound per list statement.
	// Numbered placeholders reuse one argument; positional ones need a copy each.
	searchBinds int
}

// listQuery returns the statement and arguments for query.
func (s *statements) listQuery(query ListQuery) (string, []any) {
	shape := selectShape(query)

	args := make([]any, 0, 4)
	if shape == shapeByStatus || shape == shapeByStatusAndSearch {
		args = append(args, string(query.Status))
	}
	if shape == shapeBySearch || shape == shapeByStatusAndSearch {
		pattern := searchPattern(query.Search)
		for range s.searchBinds {
			args = append(args, pattern)
		}
	}
	args = append(args, query.Limit, query.Offset)

	return s.list[shape], args
}

var (
	postgresSQL = renderPostgres()
	sqliteSQL   = renderSQLite()
)

// # Postgres

func renderPostgres() *statements {
	b := schema.Books

	columns := strings.Join([]string{
		b.ID, b.Title, b.Author, b.CoverURL, b.Tags, b.Status + "::text",
		b.DateAdded, b.DateFinished, b.Rating, b.Description, b.NotesCount,
	}, ", ")
	statusParam := func(n int) string { return fmt.Sprintf("$%d::text::%s", n, schema.BookStatusType) }
	order := fmt.Sprintf("ORDER BY %s DESC, %s DESC", b.DateAdded, b.ID)
	searchClause := func(n int) string {
		return fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)", b.Title, n, b.Author, n)
	}

	return &statements{
		insert: fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, %s, $6, $7, $8, $9, 0)
		RETURNING %s
	`,
			b.Table, b.Title, b.Author, b.CoverURL, b.Tags, b.Status, b.DateAdded,
			b.DateFinished, b.Rating, b.Description, b.NotesCount,
			statusParam(5), columns,
		),

		selectByID: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, columns, b.Table, b.ID),

		update: fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE($2, %s),
			%s = COALESCE($3, %s),
			%s = COALESCE($4, %s),
			%s = COALESCE($5::text[], %s),
			%s = COALESCE(%s, %s),
			%s = COALESCE($7, %s),
			%s = COALESCE($8, %s),
			%s = COALESCE($9::date, %s)
		WHERE %s = $1
		RETURNING %s
	`,
			b.Table,
			b.Title, b.Title,
			b.Author, b.Author,
			b.CoverURL, b.CoverURL,
			b.Tags, b.Tags,
			b.Status, statusParam(6), b.Status,
			b.Rating, b.Rating,
			b.Description, b.Description,
			b.DateFinished, b.DateFinished,
			b.ID, columns,
		),

		delete: fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, b.Table, b.ID),

		list: [4]string{
			shapeAll: fmt.Sprintf(`SELECT %s FROM %s %s LIMIT $1 OFFSET $2`,
				columns, b.Table, order),
			shapeByStatus: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = %s %s LIMIT $2 OFFSET $3`,
				columns, b.Table, b.Status, statusParam(1), order),
			shapeBySearch: fmt.Sprintf(`SELECT %s FROM %s WHERE %s %s LIMIT $2 OFFSET $3`,
				columns, b.Table, searchClause(1), order),
			shapeByStatusAndSearch: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = %s AND %s %s LIMIT $3 OFFSET $4`,
				columns, b.Table, b.Status, statusParam(1), searchClause(2), order),
		},

		searchBinds: 1,
	}
}

// # SQLite

// SQLite LIKE folds ASCII only, so both sides are lowered with
// [sqlite.FoldFunction] to match ILIKE on accented letters.
func renderSQLite() *statements {
	b := schema.Books

	columns := strings.Join(b.Columns(), ", ")
	order := fmt.Sprintf("ORDER BY %s DESC, %s DESC", b.DateAdded, b.ID)
	searchClause := fmt.Sprintf("(%[1]s(%[2]s) LIKE ? OR %[1]s(%[3]s) LIKE ?)",
		sqlite.FoldFunction, b.Title, b.Author)

	return &statements{
		insert: fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		RETURNING %s
	`,
			b.Table, b.Title, b.Author, b.CoverURL, b.Tags, b.Status, b.DateAdded,
			b.DateFinished, b.Rating, b.Description, b.NotesCount,
			columns,
		),

		selectByID: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`, columns, b.Table, b.ID),

		update: fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE(?, %s),
			%s = COALESCE(?, %s),
			%s = COALESCE(?, %s),
			%s = COALESCE(?, %s),
			%s = COALESCE(?, %s),
			%s = COALESCE(?, %s),
			%s = COALESCE(?, %s),
			%s = COALESCE(?, %s)
		WHERE %s = ?
		RETURNING %s
	`,
			b.Table,
			b.Title, b.Title,
			b.Author, b.Author,
			b.CoverURL, b.CoverURL,
			b.Tags, b.Tags,
			b.Status, b.Status,
			b.Rating, b.Rating,
			b.Description, b.Description,
			b.DateFinished, b.DateFinished,
			b.ID, columns,
		),

		delete: fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, b.Table, b.ID),

		list: [4]string{
			shapeAll: fmt.Sprintf(`SELECT %s FROM %s %s LIMIT ? OFFSET ?`,
				columns, b.Table, order),
			shapeByStatus: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? %s LIMIT ? OFFSET ?`,
				columns, b.Table, b.Status, order),
			shapeBySearch: fmt.Sprintf(`SELECT %s FROM %s WHERE %s %s LIMIT ? OFFSET ?`,
				columns, b.Table, searchClause, order),
			shapeByStatusAndSearch: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? AND %s %s LIMIT ? OFFSET ?`,
				columns, b.Table, b.Status, searchClause, order),
		},

		searchBinds: 2,
	}
}

// sqliteDDL creates the embedded store's table on first open.
var sqliteDDL = fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %[1]s (
		%[2]s INTEGER PRIMARY KEY AUTOINCREMENT,
		%[3]s TEXT NOT NULL,
		%[4]s TEXT NOT NULL,
		%[5]s TEXT,
		%[6]s TEXT,
		%[7]s TEXT NOT NULL DEFAULT 'wishlist' CHECK (%[7]s IN ('reading', 'finished', 'wishlist')),
		%[8]s TEXT NOT NULL,
		%[9]s TEXT,
		%[10]s INTEGER CHECK (%[10]s BETWEEN 1 AND 5),
		%[11]s TEXT,
		%[12]s INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_%[1]s_%[8]s ON %[1]s (%[8]s DESC, %[2]s DESC);
`,
	schema.Books.Table, schema.Books.ID, schema.Books.Title, schema.Books.Author,
	schema.Books.CoverURL, schema.Books.Tags, schema.Books.Status, schema.Books.DateAdded,
	schema.Books.DateFinished, schema.Books.Rating, schema.Books.Description, schema.Books.NotesCount,
)
