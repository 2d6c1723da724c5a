// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/booknotes/pkg/pointer"
)

/*
TestToBook_Defaults checks the fallbacks for NULL and unknown column values.
*/
func TestToBook_Defaults(t *testing.T) {
	today := DateOf(time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC))

	got := bookRow{ID: 1, Title: "Dune", Author: "Herbert"}.toBook(today)

	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, StatusWishlist, got.Status)
	assert.Equal(t, today, got.DateAdded)
	assert.Nil(t, got.DateFinished)
	assert.Nil(t, got.Rating)
	assert.Zero(t, got.NotesCount)
}

func TestToBook_Status(t *testing.T) {
	today := DateOf(time.Now())

	tests := []struct {
		raw  *string
		want Status
	}{
		{pointer.To("reading"), StatusReading},
		{pointer.To("finished"), StatusFinished},
		{pointer.To("wishlist"), StatusWishlist},
		{pointer.To("abandoned"), StatusWishlist},
		{pointer.To(""), StatusWishlist},
		{nil, StatusWishlist},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bookRow{Status: tt.raw}.toBook(today).Status)
	}
}

func TestToBook_CopiesValues(t *testing.T) {
	added := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	finished := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	got := bookRow{
		ID:           7,
		Title:        "Dune",
		Author:       "Frank Herbert",
		CoverURL:     pointer.To("https://covers.example.com/dune.jpg"),
		Tags:         []string{"sci-fi", "classic"},
		Status:       pointer.To("finished"),
		DateAdded:    &added,
		DateFinished: &finished,
		Rating:       pointer.To(5),
		Description:  pointer.To("Spice"),
		NotesCount:   pointer.To(3),
	}.toBook(DateOf(time.Now()))

	assert.Equal(t, 7, got.ID)
	assert.Equal(t, []string{"sci-fi", "classic"}, got.Tags)
	assert.Equal(t, "2023-12-01", got.DateAdded.String())
	require.NotNil(t, got.DateFinished)
	assert.Equal(t, "2024-01-15", got.DateFinished.String())
	assert.Equal(t, 5, *got.Rating)
	assert.Equal(t, 3, got.NotesCount)
}

func TestDate_JSON(t *testing.T) {
	date, err := ParseDate("2024-02-29")
	require.NoError(t, err)

	encoded, err := json.Marshal(date)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-02-29"`, string(encoded))

	var decoded Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-02-29"`), &decoded))
	assert.Equal(t, date, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"29/02/2024"`), &decoded))
}

func TestBook_JSONShape(t *testing.T) {
	encoded, err := json.Marshal(bookRow{ID: 1, Title: "Dune", Author: "Herbert"}.toBook(DateOf(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 1,
		"title": "Dune",
		"author": "Herbert",
		"cover_url": null,
		"tags": [],
		"status": "wishlist",
		"date_added": "2024-05-01",
		"date_finished": null,
		"rating": null,
		"description": null,
		"notes_count": 0
	}`, string(encoded))
}
