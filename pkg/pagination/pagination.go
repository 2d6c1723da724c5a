// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how a requested page is turned into SQL LIMIT/OFFSET values.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/booknotes/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 50
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds a normalized page and limit.
type Params struct {
	Page  int
	Limit int
}

// New normalizes a raw page and limit where zero means "not given".
//
// # Clamping
//
// A page below 1 becomes [DefaultPage]. A limit below 1 becomes
// [DefaultLimit]; a limit above [MaxLimit] is clamped to [MaxLimit].
// A page so large that its offset would overflow int is lowered to the last
// page whose offset still fits; that page is past any stored data.
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}

	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// Missing or malformed values read as "not given" and are later defaulted by [New].
func FromRequest(r *http.Request) (page, limit int) {
	query := r.URL.Query()
	return convert.ToIntD(query.Get("page"), 0), convert.ToIntD(query.Get("limit"), 0)
}
