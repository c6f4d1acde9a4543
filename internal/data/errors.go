package data

import "errors"

// Sentinel kinds for store errors. Callers match with errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	// ErrStale is returned by conditional updates whose precondition no
	// longer holds, e.g. a session that left the expected status.
	ErrStale = errors.New("stale write")
)
