package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a user record with the same email
	// already exists.
	ErrDuplicateEmail = errors.New("email already exists")
)
