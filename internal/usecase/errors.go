package usecase

import "errors"

var (
	ErrNotFound = errors.New("resource not found")

	// ErrPasswordMismatch is returned as-is so its message reaches clients verbatim.
	ErrPasswordMismatch = errors.New("Incorrect password for user")
)
