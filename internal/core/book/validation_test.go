// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/taibuivan/booknotes/internal/core/book"
	"github.com/taibuivan/booknotes/internal/platform/apperr"
	"github.com/taibuivan/booknotes/pkg/pointer"
)

func validCreate() *book.CreateRequest {
	return &book.CreateRequest{Title: "Dune", Author: "Frank Herbert"}
}

/*
TestValidateCreate covers each field rule in isolation.
*/
func TestValidateCreate(t *testing.T) {
	status := func(s string) *book.Status { st := book.Status(s); return &st }

	tests := []struct {
		name    string
		mutate  func(r *book.CreateRequest)
		field   string
		message string
	}{
		{"valid_minimal", func(r *book.CreateRequest) {}, "", ""},
		{"valid_full", func(r *book.CreateRequest) {
			r.CoverURL = pointer.To("https://covers.example.com/dune.jpg")
			r.Tags = make([]string, book.MaxTags)
			r.Status = status("finished")
			r.Rating = pointer.To(5)
			r.Description = pointer.To(strings.Repeat("d", book.MaxDescriptionLength))
		}, "", ""},
		{"blank_title", func(r *book.CreateRequest) { r.Title = "   " }, "title", "Title cannot be empty"},
		{"blank_author", func(r *book.CreateRequest) { r.Author = "" }, "author", "Author cannot be empty"},
		{"long_title", func(r *book.CreateRequest) { r.Title = strings.Repeat("t", 256) }, "title", "Title must be at most 255 characters"},
		{"long_author", func(r *book.CreateRequest) { r.Author = strings.Repeat("a", 256) }, "author", "Author must be at most 255 characters"},
		{"bad_cover_url", func(r *book.CreateRequest) { r.CoverURL = pointer.To("not a url") }, "cover_url", "Cover URL must be a valid URL"},
		{"too_many_tags", func(r *book.CreateRequest) { r.Tags = make([]string, book.MaxTags+1) }, "tags", "Tags must contain at most 20 entries"},
		{"unknown_status", func(r *book.CreateRequest) { r.Status = status("paused") }, "status", "Status must be one of: reading, finished, wishlist"},
		{"rating_zero", func(r *book.CreateRequest) { r.Rating = pointer.To(0) }, "rating", "Rating must be between 1 and 5"},
		{"long_description", func(r *book.CreateRequest) {
			r.Description = pointer.To(strings.Repeat("d", book.MaxDescriptionLength+1))
		}, "description", "Description must be at most 2000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := validCreate()
			tt.mutate(request)

			err := book.ValidateCreate(request)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, tt.message, ae.Message)
			assert.Equal(t, map[string]string{tt.field: tt.message}, ae.Fields())
		})
	}
}

/*
TestValidateCreate_ReportsEveryViolation checks that failures are collected, not short-circuited.
*/
func TestValidateCreate_ReportsEveryViolation(t *testing.T) {
	err := book.ValidateCreate(&book.CreateRequest{Title: "", Author: " ", Rating: pointer.To(9)})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
	assert.Equal(t, "Title cannot be empty; Author cannot be empty; Rating must be between 1 and 5", ae.Message)
}

/*
TestValidateUpdate only checks the fields that are present.
*/
func TestValidateUpdate(t *testing.T) {
	assert.NoError(t, book.ValidateUpdate(&book.UpdateRequest{}))
	assert.NoError(t, book.ValidateUpdate(&book.UpdateRequest{Rating: pointer.To(1)}))

	err := book.ValidateUpdate(&book.UpdateRequest{Title: pointer.To("  ")})
	assert.Equal(t, "Title cannot be empty", apperr.As(err).Message)

	err = book.ValidateUpdate(&book.UpdateRequest{Rating: pointer.To(6)})
	assert.Equal(t, "Rating must be between 1 and 5", apperr.As(err).Message)

	err = book.ValidateUpdate(&book.UpdateRequest{Tags: make([]string, 21)})
	assert.Equal(t, "Tags must contain at most 20 entries", apperr.As(err).Message)
}

func TestValidateFilter(t *testing.T) {
	assert.NoError(t, book.ValidateFilter(book.Filter{}))
	assert.NoError(t, book.ValidateFilter(book.Filter{Status: book.StatusReading}))

	err := book.ValidateFilter(book.Filter{Status: "paused"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestValidateCreate_Properties runs the "for all" rules over generated input.
*/
func TestValidateCreate_Properties(t *testing.T) {
	blank := rapid.StringOfN(rapid.SampledFrom([]rune{' ', '\t', '\n', '\r'}), 0, 8, -1)

	t.Run("blank_title_always_rejected", rapid.MakeCheck(func(t *rapid.T) {
		request := validCreate()
		request.Title = blank.Draw(t, "title")

		err := book.ValidateCreate(request)
		if !apperr.HasCode(err, apperr.CodeValidation) {
			t.Fatalf("expected validation error for title %q, got %v", request.Title, err)
		}
	}))

	t.Run("blank_author_always_rejected", rapid.MakeCheck(func(t *rapid.T) {
		request := validCreate()
		request.Author = blank.Draw(t, "author")

		if err := book.ValidateCreate(request); !apperr.HasCode(err, apperr.CodeValidation) {
			t.Fatalf("expected validation error for author %q, got %v", request.Author, err)
		}
	}))

	t.Run("rating_range", rapid.MakeCheck(func(t *rapid.T) {
		rating := rapid.IntRange(-1000, 1000).Draw(t, "rating")
		request := validCreate()
		request.Rating = &rating

		err := book.ValidateCreate(request)
		inRange := rating >= book.MinRating && rating <= book.MaxRating
		if inRange && err != nil {
			t.Fatalf("rating %d rejected: %v", rating, err)
		}
		if !inRange && !apperr.HasCode(err, apperr.CodeValidation) {
			t.Fatalf("rating %d accepted", rating)
		}
	}))
}
