// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectShape(t *testing.T) {
	assert.Equal(t, shapeAll, selectShape(ListQuery{}))
	assert.Equal(t, shapeByStatus, selectShape(ListQuery{Status: StatusReading}))
	assert.Equal(t, shapeBySearch, selectShape(ListQuery{Search: "dune"}))
	assert.Equal(t, shapeByStatusAndSearch, selectShape(ListQuery{Status: StatusReading, Search: "dune"}))
}

/*
TestListQuery_BindsSearch checks that the search term only ever travels as a
bound argument, wrapped for a substring match.
*/
func TestListQuery_BindsSearch(t *testing.T) {
	hostile := "x' OR '1'='1"

	for name, dialect := range map[string]*statements{"postgres": postgresSQL, "sqlite": sqliteSQL} {
		t.Run(name, func(t *testing.T) {
			statement, args := dialect.listQuery(ListQuery{Status: StatusFinished, Search: hostile, Limit: 10, Offset: 20})

			assert.NotContains(t, statement, hostile)
			assert.Contains(t, args, "%"+strings.ToLower(hostile)+"%")
			assert.Equal(t, string(StatusFinished), args[0])
			assert.Equal(t, []any{10, 20}, args[len(args)-2:])
			assert.Len(t, args, 3+dialect.searchBinds)
		})
	}
}

func TestListQuery_PlaceholderCounts(t *testing.T) {
	queries := []ListQuery{
		{Limit: 1},
		{Status: StatusReading, Limit: 1},
		{Search: "a", Limit: 1},
		{Status: StatusReading, Search: "a", Limit: 1},
	}

	for _, query := range queries {
		statement, args := sqliteSQL.listQuery(query)
		assert.Equal(t, len(args), strings.Count(statement, "?"), statement)

		statement, args = postgresSQL.listQuery(query)
		assert.Contains(t, statement, "$"+string(rune('0'+len(args))))
		assert.Contains(t, statement, "ORDER BY date_added DESC, id DESC")
	}
}

func TestListStatements_AreDistinct(t *testing.T) {
	for _, dialect := range []*statements{postgresSQL, sqliteSQL} {
		seen := map[string]bool{}
		for _, statement := range dialect.list {
			assert.NotEmpty(t, statement)
			assert.False(t, seen[statement])
			seen[statement] = true
		}
	}
}

func TestSQLiteSearch_FoldsBothSides(t *testing.T) {
	statement, args := sqliteSQL.listQuery(ListQuery{Search: "ÉMILE", Limit: 10})

	assert.Contains(t, statement, "(casefold(title) LIKE ? OR casefold(author) LIKE ?)")
	assert.Equal(t, []any{"%émile%", "%émile%", 10, 0}, args)
}

/*
TestPostgresStatements pins column and argument order of the write statements,
which the repository binds positionally.
*/
func TestPostgresStatements(t *testing.T) {
	columns := "id, title, author, cover_url, tags, status::text, date_added, date_finished, rating, description, notes_count"
	compact := func(statement string) string { return strings.Join(strings.Fields(statement), " ") }

	assert.Equal(t,
		"INSERT INTO books (title, author, cover_url, tags, status, date_added, date_finished, rating, description, notes_count) "+
			"VALUES ($1, $2, $3, $4, $5::text::book_status, $6, $7, $8, $9, 0) RETURNING "+columns,
		compact(postgresSQL.insert))

	assert.Equal(t,
		"UPDATE books SET title = COALESCE($2, title), author = COALESCE($3, author), "+
			"cover_url = COALESCE($4, cover_url), tags = COALESCE($5::text[], tags), "+
			"status = COALESCE($6::text::book_status, status), rating = COALESCE($7, rating), "+
			"description = COALESCE($8, description), date_finished = COALESCE($9::date, date_finished) "+
			"WHERE id = $1 RETURNING "+columns,
		compact(postgresSQL.update))

	assert.Equal(t, "SELECT "+columns+" FROM books WHERE id = $1", postgresSQL.selectByID)
	assert.Equal(t, "DELETE FROM books WHERE id = $1", postgresSQL.delete)
	assert.Equal(t,
		"SELECT "+columns+" FROM books WHERE status = $1::text::book_status AND (title ILIKE $2 OR author ILIKE $2) "+
			"ORDER BY date_added DESC, id DESC LIMIT $3 OFFSET $4",
		postgresSQL.list[shapeByStatusAndSearch])
}
