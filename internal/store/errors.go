package store

import "errors"

var (
	// ErrNotFound is returned by point lookups, updates and deletes when no
	// record with the given id exists. Callers match it with errors.Is; it is
	// a recoverable condition, not a fault.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when adding a record whose id already exists
	// in the table.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrInvalidSnapshot is returned by Import when the payload is not a
	// well-formed snapshot (missing tables, non-array table contents,
	// records without ids).
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
