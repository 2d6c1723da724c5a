// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer builds pointers for optional fields.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Map applies convert to the value behind p. A nil p stays nil.
func Map[T, U any](p *T, convert func(T) U) *U {
	if p == nil {
		return nil
	}
	return To(convert(*p))
}
