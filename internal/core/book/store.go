// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"time"

	"github.com/taibuivan/booknotes/pkg/pointer"
)

// ListQuery is a normalized list request as handed to a [Repository].
// Search is already trimmed; an empty Status or Search means no constraint.
type ListQuery struct {
	Status Status
	Search string
	Limit  int
	Offset int
}

// NewRecord is a fully defaulted book ready to be inserted.
type NewRecord struct {
	Title        string
	Author       string
	CoverURL     *string
	Tags         []string
	Status       Status
	DateAdded    Date
	DateFinished *Date
	Rating       *int
	Description  *string
}

// Repository is the persistence contract of the book service.
//
// Read paths return raw rows; the service owns the row-to-domain mapping.
// A missing row surfaces as a NOT_FOUND [apperr.AppError] from [dberr.Wrap].
type Repository interface {
	Insert(ctx context.Context, record *NewRecord) (bookRow, error)
	FindByID(ctx context.Context, id int) (bookRow, error)
	List(ctx context.Context, query ListQuery) ([]bookRow, error)
	Update(ctx context.Context, id int, changes *UpdateRequest) (bookRow, error)
	Delete(ctx context.Context, id int) (int64, error)
	Ping(ctx context.Context) error
}

// dateArg converts an optional date to the driver value for a date column.
func dateArg(date *Date) *time.Time {
	return pointer.Map(date, func(d Date) time.Time { return d.Time })
}

// statusArg converts an optional status to the text bound for the status column.
func statusArg(status *Status) *string {
	return pointer.Map(status, func(s Status) string { return string(s) })
}
