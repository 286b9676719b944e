package persistence

import "errors"

// Errors shared by every repository implementation. Adapters wrap or mark their
// driver errors with these so callers can match on kind with errors.Is.
var (
	ErrNotFound          = errors.New("record not found")
	ErrConnectionFailure = errors.New("persistence connection failure")
)
