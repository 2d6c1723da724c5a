// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements the book record service.

It covers the full lifecycle of a reading-list entry: validation of client
intent, persistence through a [Repository], filtered and paginated listing,
and the HTTP surface mounted at /books.

Layers:

  - Validation: pure checks over [CreateRequest], [UpdateRequest] and [Filter].
  - Service: orchestrates validation, store calls and logging.
  - Repository: Postgres (pgx) and embedded SQLite implementations that share
    the same four list statement shapes and one row mapping.
*/
package book

import (
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// # Status

// Status is the reading state of a book.
type Status string

const (
	StatusReading  Status = "reading"
	StatusFinished Status = "finished"
	StatusWishlist Status = "wishlist"
)

// Statuses lists every valid status in display order.
func Statuses() []string {
	return []string{string(StatusReading), string(StatusFinished), string(StatusWishlist)}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusReading, StatusFinished, StatusWishlist:
		return true
	}
	return false
}

// decodeStatus maps a stored value to a Status. Anything unrecognised,
// including NULL, reads as [StatusWishlist].
func decodeStatus(raw *string) Status {
	if raw == nil {
		return StatusWishlist
	}
	if status := Status(*raw); status.IsValid() {
		return status
	}
	return StatusWishlist
}

// # Calendar Date

// DateLayout is the wire and storage format of every date field.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time component, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) Date {
	year, month, day := t.UTC().Date()
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, err
	}
	return DateOf(parsed), nil
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// # Domain Model

// Book is a single entry in the reading list.
type Book struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	CoverURL     *string  `json:"cover_url"`
	Tags         []string `json:"tags"`
	Status       Status   `json:"status"`
	DateAdded    Date     `json:"date_added"`
	DateFinished *Date    `json:"date_finished"`
	Rating       *int     `json:"rating"`
	Description  *string  `json:"description"`
	NotesCount   int      `json:"notes_count"`
}

// CreateRequest is the client payload for a new book.
type CreateRequest struct {
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	CoverURL     *string  `json:"cover_url"`
	Tags         []string `json:"tags"`
	Status       *Status  `json:"status"`
	Rating       *int     `json:"rating"`
	Description  *string  `json:"description"`
	DateFinished *Date    `json:"date_finished"`
}

// UpdateRequest carries the fields to overwrite. A nil field is left unchanged.
type UpdateRequest struct {
	Title        *string  `json:"title"`
	Author       *string  `json:"author"`
	CoverURL     *string  `json:"cover_url"`
	Tags         []string `json:"tags"`
	Status       *Status  `json:"status"`
	Rating       *int     `json:"rating"`
	Description  *string  `json:"description"`
	DateFinished *Date    `json:"date_finished"`
}

// HasChanges reports whether at least one field is present.
func (r *UpdateRequest) HasChanges() bool {
	return r.Title != nil || r.Author != nil || r.CoverURL != nil || r.Tags != nil ||
		r.Status != nil || r.Rating != nil || r.Description != nil || r.DateFinished != nil
}

// Filter holds the list query parameters. Zero values mean "not given".
type Filter struct {
	Status Status
	Search string
	Page   int
	Limit  int
}

// Global field names for validation
const (
	FieldID           = "id"
	FieldTitle        = "title"
	FieldAuthor       = "author"
	FieldCoverURL     = "cover_url"
	FieldTags         = "tags"
	FieldStatus       = "status"
	FieldRating       = "rating"
	FieldDescription  = "description"
	FieldDateFinished = "date_finished"
)
