// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/taibuivan/booknotes/internal/platform/validate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID parses a named URL parameter as a positive integer identifier.

Identifiers are 32-bit in storage, so anything above math.MaxInt32 is rejected
the same way as a malformed value.

Returns:
  - int: The identifier
  - error: A VALIDATION_ERROR naming the parameter if it is not a positive integer
*/
func ID(request *http.Request, name string) (int, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 32)
	if err != nil || id < 1 {
		return 0, validate.FieldError(name, "Id must be a positive integer")
	}
	return int(id), nil
}
