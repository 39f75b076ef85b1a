package domain

import "errors"

// Error taxonomy surfaced at the handler boundary. Everything else bubbling up
// from the database layer is treated as a persistence failure (HTTP 500).
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)
