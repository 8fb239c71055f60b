package storage

import "errors"

// Common storage errors
var (
	// ErrClosed is returned when an operation is issued against a closed
	// storage.
	ErrClosed = errors.New("storage: storage is closed")

	// ErrBadVersion is returned when version bytes cannot be decoded.
	ErrBadVersion = errors.New("storage: malformed version bytes")

	// ErrConflict is returned when a concurrent writer won the append slot
	// and no matching dedup record exists. The registry never retries;
	// retry policy belongs to the caller.
	ErrConflict = errors.New("storage: conditional append conflict")
)

// IsClosedError checks if the error is a "storage is closed" error.
func IsClosedError(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsConflictError checks if the error is a conditional append conflict.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}
