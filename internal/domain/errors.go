package domain

import "errors"

var (
	// ErrInvalidInput marks inputs the calculator cannot work with. Callers
	// should surface it as a validation message, never retry.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks lookups for analyses that were never stored.
	ErrNotFound = errors.New("not found")
)
