// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/booknotes/internal/platform/apperr"
	"github.com/taibuivan/booknotes/pkg/pagination"
	"github.com/taibuivan/booknotes/pkg/slice"
)

// Service is the book record service. It is safe for concurrent use; all
// shared state lives in the repository's connection pool.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for date_added. Intended for tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

func (service *Service) today() Date {
	return DateOf(service.now())
}

// Create validates and inserts a new book. Title and author are stored
// trimmed; status defaults to wishlist and tags to an empty list.
func (service *Service) Create(ctx context.Context, request *CreateRequest) (*Book, error) {
	if err := ValidateCreate(request); err != nil {
		return nil, err
	}

	record := &NewRecord{
		Title:        strings.TrimSpace(request.Title),
		Author:       strings.TrimSpace(request.Author),
		CoverURL:     request.CoverURL,
		Tags:         request.Tags,
		Status:       StatusWishlist,
		DateAdded:    service.today(),
		DateFinished: request.DateFinished,
		Rating:       request.Rating,
		Description:  request.Description,
	}
	if record.Tags == nil {
		record.Tags = []string{}
	}
	if request.Status != nil {
		record.Status = *request.Status
	}

	row, err := service.repo.Insert(ctx, record)
	if err != nil {
		return nil, err
	}

	book := row.toBook(service.today())
	service.logger.InfoContext(ctx, "book_created",
		slog.Int("book_id", book.ID),
		slog.String("title", book.Title),
	)
	return book, nil
}

// GetByID returns the book with the given id.
func (service *Service) GetByID(ctx context.Context, id int) (*Book, error) {
	row, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return row.toBook(service.today()), nil
}

// List returns one page of books, newest first. An empty page is not an error.
func (service *Service) List(ctx context.Context, filter Filter) ([]*Book, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}

	page := pagination.New(filter.Page, filter.Limit)
	rows, err := service.repo.List(ctx, ListQuery{
		Status: filter.Status,
		Search: strings.TrimSpace(filter.Search),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}

	today := service.today()
	return slice.Map(rows, func(row bookRow) *Book { return row.toBook(today) }), nil
}

// Update overwrites every field present in request and keeps the rest.
func (service *Service) Update(ctx context.Context, id int, request *UpdateRequest) (*Book, error) {
	if err := ValidateUpdate(request); err != nil {
		return nil, err
	}
	return service.apply(ctx, id, request)
}

// Patch applies a partial update. Validation runs only when the payload
// carries at least one field; an empty payload returns the stored book.
func (service *Service) Patch(ctx context.Context, id int, request *UpdateRequest) (*Book, error) {
	if request.HasChanges() {
		if err := ValidateUpdate(request); err != nil {
			return nil, err
		}
	}
	return service.apply(ctx, id, request)
}

// apply confirms the book exists, then issues one COALESCE update. The two
// steps are not atomic: a concurrent delete in between yields the store's
// generic not-found error.
func (service *Service) apply(ctx context.Context, id int, request *UpdateRequest) (*Book, error) {
	if _, err := service.GetByID(ctx, id); err != nil {
		return nil, err
	}

	changes := *request
	if changes.Title != nil {
		title := strings.TrimSpace(*changes.Title)
		changes.Title = &title
	}
	if changes.Author != nil {
		author := strings.TrimSpace(*changes.Author)
		changes.Author = &author
	}

	row, err := service.repo.Update(ctx, id, &changes)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "book_updated", slog.Int("book_id", id))
	return row.toBook(service.today()), nil
}

// Delete removes the book. Deleting a missing id is NOT_FOUND every time.
func (service *Service) Delete(ctx context.Context, id int) error {
	affected, err := service.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound(id)
	}

	service.logger.InfoContext(ctx, "book_deleted", slog.Int("book_id", id))
	return nil
}

// Ping reports whether the backing store answers.
func (service *Service) Ping(ctx context.Context) error {
	return service.repo.Ping(ctx)
}

func notFound(id int) *apperr.AppError {
	return apperr.NotFound(fmt.Sprintf("Book with id %d", id))
}
