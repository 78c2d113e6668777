// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid issues and checks the identifiers used for accounts and addresses.

New returns Version 7 values, which sort by creation time and keep the
PostgreSQL primary key indexes append-mostly.
*/
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 in canonical text form.
//
// If the v7 generator fails (entropy exhaustion), it degrades to a random v4
// rather than panicking inside a request.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether value parses as a UUID in canonical 36-character form.
//
// Path parameters are checked with it before they reach a uuid column, so a
// malformed id is a plain miss instead of a driver error.
func Valid(value string) bool {
	if len(value) != 36 {
		return false
	}
	return uuid.Validate(value) == nil
}
