// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column identifiers used to render SQL.
package schema

// BooksTable represents the 'books' table
type BooksTable struct {
	Table        string
	ID           string
	Title        string
	Author       string
	CoverURL     string
	Tags         string
	Status       string
	DateAdded    string
	DateFinished string
	Rating       string
	Description  string
	NotesCount   string
}

// Books is the schema definition for books
var Books = BooksTable{
	Table:        "books",
	ID:           "id",
	Title:        "title",
	Author:       "author",
	CoverURL:     "cover_url",
	Tags:         "tags",
	Status:       "status",
	DateAdded:    "date_added",
	DateFinished: "date_finished",
	Rating:       "rating",
	Description:  "description",
	NotesCount:   "notes_count",
}

// Columns returns every column in read order.
func (t BooksTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.CoverURL, t.Tags, t.Status,
		t.DateAdded, t.DateFinished, t.Rating, t.Description, t.NotesCount,
	}
}

// BookStatusType is the Postgres enum backing the status column.
const BookStatusType = "book_status"
