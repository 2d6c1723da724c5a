// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "time"

// bookRow is a books row as read from any store, with every nullable
// column kept nullable. Repositories scan into it and convert with toBook.
type bookRow struct {
	ID           int
	Title        string
	Author       string
	CoverURL     *string
	Tags         []string
	Status       *string
	DateAdded    *time.Time
	DateFinished *time.Time
	Rating       *int
	Description  *string
	NotesCount   *int
}

// toBook is the single row-to-domain mapping. It fills defaults for columns
// that may be NULL in older rows: tags become empty, an unknown status reads as
// wishlist, a missing notes count is zero and a missing date_added is today.
func (row bookRow) toBook(today Date) *Book {
	book := &Book{
		ID:          row.ID,
		Title:       row.Title,
		Author:      row.Author,
		CoverURL:    row.CoverURL,
		Tags:        row.Tags,
		Status:      decodeStatus(row.Status),
		DateAdded:   today,
		Rating:      row.Rating,
		Description: row.Description,
	}

	if book.Tags == nil {
		book.Tags = []string{}
	}
	if row.DateAdded != nil {
		book.DateAdded = DateOf(*row.DateAdded)
	}
	if row.DateFinished != nil {
		finished := DateOf(*row.DateFinished)
		book.DateFinished = &finished
	}
	if row.NotesCount != nil {
		book.NotesCount = *row.NotesCount
	}

	return book
}
