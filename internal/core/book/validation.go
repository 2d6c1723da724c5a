// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"strings"

	"github.com/taibuivan/booknotes/internal/platform/validate"
)

// Field limits.
const (
	MaxTitleLength       = 255
	MaxAuthorLength      = 255
	MaxTags              = 20
	MaxDescriptionLength = 2000
	MinRating            = 1
	MaxRating            = 5
)

// Display labels used as the start of every message.
const (
	labelTitle       = "Title"
	labelAuthor      = "Author"
	labelCoverURL    = "Cover URL"
	labelTags        = "Tags"
	labelStatus      = "Status"
	labelRating      = "Rating"
	labelDescription = "Description"
)

// ValidateCreate checks a create payload. Title and author are mandatory;
// every optional field is checked only when present.
func ValidateCreate(request *CreateRequest) error {
	validator := &validate.Validator{}

	checkTitle(validator, request.Title)
	checkAuthor(validator, request.Author)
	checkOptional(validator, request.CoverURL, request.Tags, request.Status, request.Rating, request.Description)

	return validator.Err()
}

// ValidateUpdate checks only the fields present in an update payload.
func ValidateUpdate(request *UpdateRequest) error {
	validator := &validate.Validator{}

	if request.Title != nil {
		checkTitle(validator, *request.Title)
	}
	if request.Author != nil {
		checkAuthor(validator, *request.Author)
	}
	checkOptional(validator, request.CoverURL, request.Tags, request.Status, request.Rating, request.Description)

	return validator.Err()
}

// ValidateFilter rejects an unknown status in a list query.
func ValidateFilter(filter Filter) error {
	validator := &validate.Validator{}
	if filter.Status != "" {
		validator.OneOf(FieldStatus, labelStatus, string(filter.Status), Statuses()...)
	}
	return validator.Err()
}

// Length limits apply to the trimmed value, which is what gets stored.
func checkTitle(validator *validate.Validator, title string) {
	validator.Required(FieldTitle, labelTitle, title).
		MaxLen(FieldTitle, labelTitle, strings.TrimSpace(title), MaxTitleLength)
}

func checkAuthor(validator *validate.Validator, author string) {
	validator.Required(FieldAuthor, labelAuthor, author).
		MaxLen(FieldAuthor, labelAuthor, strings.TrimSpace(author), MaxAuthorLength)
}

func checkOptional(validator *validate.Validator, coverURL *string, tags []string, status *Status, rating *int, description *string) {
	if coverURL != nil {
		validator.URL(FieldCoverURL, labelCoverURL, *coverURL)
	}
	if tags != nil {
		validator.MaxItems(FieldTags, labelTags, len(tags), MaxTags)
	}
	if status != nil {
		validator.OneOf(FieldStatus, labelStatus, string(*status), Statuses()...)
	}
	if rating != nil {
		validator.Range(FieldRating, labelRating, *rating, MinRating, MaxRating)
	}
	if description != nil {
		validator.MaxLen(FieldDescription, labelDescription, *description, MaxDescriptionLength)
	}
}
