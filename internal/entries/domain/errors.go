package domain

import "errors"

var (
	// ErrEntryNotFound is returned when no entry with the requested ID
	// exists in the project's record.
	ErrEntryNotFound = errors.New("entry not found")
)
