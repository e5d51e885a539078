package models

import "errors"

var (
	// ErrNotFound is returned when a design does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidParameters is returned for unrecognised parameter values.
	ErrInvalidParameters = errors.New("invalid design parameters")
)
