// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the identifiers used for request correlation.

Values are Version 7 UUIDs, so IDs in the logs sort by the time the request
arrived.
*/
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 string. If the time-based generator fails it
// falls back to a random Version 4 value, so callers always get an ID.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
