package model

import "errors"

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a store-level constraint rejection.
	ErrConflict = errors.New("record conflicts with existing data")
)
