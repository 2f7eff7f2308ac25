package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when an insert collides with a unique constraint.
	ErrAlreadyExists = errors.New("record already exists")
)
