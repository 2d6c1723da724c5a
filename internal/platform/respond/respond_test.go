// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/booknotes/internal/platform/apperr"
	"github.com/taibuivan/booknotes/internal/platform/ctxutil"
	"github.com/taibuivan/booknotes/internal/platform/respond"
)

/*
TestOK_Envelope verifies the success envelope and content type.
*/
func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Created(recorder, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":1}}`, recorder.Body.String())
}

/*
TestError_Validation exposes the message and per-field details.
*/
func TestError_Validation(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/books", nil)

	respond.Error(recorder, request, apperr.ValidationError("Rating must be between 1 and 5",
		apperr.FieldError{Field: "rating", Message: "Rating must be between 1 and 5"},
	))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{
		"error": "Rating must be between 1 and 5",
		"code": "VALIDATION_ERROR",
		"details": [{"field": "rating", "message": "Rating must be between 1 and 5"}]
	}`, recorder.Body.String())
}

/*
TestError_StoreCauseIsLoggedNotLeaked checks the 5xx path.
*/
func TestError_StoreCauseIsLoggedNotLeaked(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/books", nil)
	request = request.WithContext(ctxutil.WithLogger(request.Context(), logger))

	respond.Error(recorder, request, apperr.Store(errors.New(`pq: relation "books" does not exist`)))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "relation")
	assert.Contains(t, logs.String(), "relation")

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "STORE_ERROR", body["code"])
	assert.Equal(t, "Internal server error", body["error"])
}

/*
TestError_PlainErrorBecomesInternal covers unclassified errors.
*/
func TestError_PlainErrorBecomesInternal(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/books", nil)

	respond.Error(recorder, request, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error":"Internal server error","code":"INTERNAL_ERROR"}`, recorder.Body.String())
}
