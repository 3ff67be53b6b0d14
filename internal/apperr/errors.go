// Package apperr defines sentinel errors shared by the service and
// transport layers.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a record id resolves to nothing.
	ErrNotFound = errors.New("not found")
)
