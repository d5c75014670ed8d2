package model

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input is missing a required field or
	// references an id that does not resolve. Nothing is mutated.
	ErrValidation = errors.New("validation failed")
)
