package redis

import "errors"

// Errors returned by Open and Healthcheck. Where a driver error exists it
// is joined in, so callers can match either.
var (
	// ErrEmptyConnectionURL means REDIS_URL was blank.
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")

	// ErrFailedToParseURL means the URL is not a valid redis:// or rediss:// URL.
	ErrFailedToParseURL = errors.New("redis: failed to parse connection URL")

	// ErrConnectionFailed means no PING succeeded within the retry budget.
	ErrConnectionFailed = errors.New("redis: failed to establish connection")

	// ErrHealthcheckFailed is returned by the check built by Healthcheck.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
