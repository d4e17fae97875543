package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a uniqueness
// constraint on username or email.
var ErrDuplicate = errors.New("duplicate value")
