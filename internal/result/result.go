// Package result holds the uniform success-or-failure value returned by
// every client operation.
package result

import "errors"

// Result is either a success carrying Data or a failure carrying a
// user-facing message. Operations never return a Go error alongside it.
type Result[T any] struct {
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
	cause   error
}

// Ok wraps a successful payload.
func Ok[T any](v T) Result[T] {
	return Result[T]{Success: true, Data: v}
}

// Fail builds a failure with msg. cause is kept for errors.Is/As through
// Err and may be nil.
func Fail[T any](msg string, cause error) Result[T] {
	return Result[T]{Error: msg, cause: cause}
}

// Get returns the payload and whether the operation succeeded.
func (r Result[T]) Get() (T, bool) {
	return r.Data, r.Success
}

// Err returns nil on success. On failure it returns a *Failure whose
// message is Error and which unwraps to the underlying cause.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &Failure{Message: r.Error, Cause: r.cause}
}

// Failure is the error form of a failed Result.
type Failure struct {
	Cause   error
	Message string
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Cause }

// Message returns the failure message carried by err, or err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
