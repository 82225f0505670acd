package health

import "errors"

var (
	// ErrCheckFailed heads the error returned by Response.Err; the failing
	// checks follow it.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is joined into a check error when the check ran past
	// the per-check deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)
