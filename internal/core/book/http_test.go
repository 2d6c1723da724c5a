// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data    jsonRaw `json:"data"`
	Error   string  `json:"error"`
	Code    string  `json:"code"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

type jsonRaw []byte

func (r *jsonRaw) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	service, _, _ := newTestService(t)

	router := chi.NewRouter()
	router.Route("/books", NewHandler(service).RegisterRoutes)
	return router
}

func call(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded), recorder.Body.String())
	}
	return recorder, decoded
}

/*
TestHandler_CreateDune walks the canonical scenario through the HTTP surface.
*/
func TestHandler_CreateDune(t *testing.T) {
	router := newTestRouter(t)

	recorder, body := call(t, router, http.MethodPost, "/books", `{"title":"Dune","author":"Herbert"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created Book
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, StatusWishlist, created.Status)
	assert.Equal(t, []string{}, created.Tags)
	assert.Zero(t, created.NotesCount)
	assert.Nil(t, created.Rating)
	assert.Contains(t, string(body.Data), `"rating":null`)
	assert.Contains(t, string(body.Data), `"tags":[]`)
}

func TestHandler_StatusCodes(t *testing.T) {
	router := newTestRouter(t)
	call(t, router, http.MethodPost, "/books", `{"title":"Dune","author":"Frank Herbert"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"list", http.MethodGet, "/books?search=herb&page=1&limit=10", "", http.StatusOK, ""},
		{"list_bad_status", http.MethodGet, "/books?status=paused", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"get", http.MethodGet, "/books/1", "", http.StatusOK, ""},
		{"get_missing", http.MethodGet, "/books/99", "", http.StatusNotFound, "NOT_FOUND"},
		{"get_bad_id", http.MethodGet, "/books/abc", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"get_id_out_of_range", http.MethodGet, "/books/3000000000", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"put_id_out_of_range", http.MethodPut, "/books/3000000000", `{"status":"reading"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"delete_id_out_of_range", http.MethodDelete, "/books/3000000000", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"create_invalid", http.MethodPost, "/books", `{"title":" ","author":"x"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"create_bad_json", http.MethodPost, "/books", `{"title":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"create_bad_date", http.MethodPost, "/books", `{"title":"a","author":"b","date_finished":"yesterday"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"put", http.MethodPut, "/books/1", `{"status":"reading"}`, http.StatusOK, ""},
		{"put_missing", http.MethodPut, "/books/99", `{"status":"reading"}`, http.StatusNotFound, "NOT_FOUND"},
		{"patch_empty", http.MethodPatch, "/books/1", `{}`, http.StatusOK, ""},
		{"patch_rating", http.MethodPatch, "/books/1", `{"rating":6}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"delete", http.MethodDelete, "/books/1", "", http.StatusNoContent, ""},
		{"delete_again", http.MethodDelete, "/books/1", "", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := call(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandler_ValidationDetails(t *testing.T) {
	router := newTestRouter(t)
	call(t, router, http.MethodPost, "/books", `{"title":"Dune","author":"Herbert"}`)

	recorder, body := call(t, router, http.MethodPatch, "/books/1", `{"rating":6}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Rating must be between 1 and 5", body.Error)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "rating", body.Details[0].Field)
}

func TestHandler_ListEnvelope(t *testing.T) {
	router := newTestRouter(t)

	recorder, body := call(t, router, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, string(body.Data))
}
