package store

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a key does not exist in the store.
	ErrNotFound = errors.New("store: key not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("store: closed")

	// ErrCorrupted is returned when the on-disk representation cannot be decoded.
	ErrCorrupted = errors.New("store: corrupted data")

	// ErrHealthcheckFailed is returned when the store backend is unreachable.
	ErrHealthcheckFailed = errors.New("store: healthcheck failed")
)
