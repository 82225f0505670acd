package store

import (
	"context"
	"errors"
)

// Store is a durable string key-value store.
//
// Implementations must treat Remove of a missing key as success so that
// callers can clear state idempotently. Get returns ErrNotFound when the
// key is absent.
type Store interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear removes every key owned by this store.
	Clear(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthcheck returns a closure that reports whether the store is reachable.
// Stores without a remote backend are always healthy.
func Healthcheck(s Store) func(context.Context) error {
	return func(ctx context.Context) error {
		if s == nil {
			return ErrHealthcheckFailed
		}
		p, ok := s.(Pinger)
		if !ok {
			return nil
		}
		if err := p.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Lookup is Get with absence folded into the boolean result.
// Any backend error is returned as-is so callers can decide whether
// to treat it as absence.
func Lookup(ctx context.Context, s Store, key string) (string, bool, error) {
	v, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}
