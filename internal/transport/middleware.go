package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/classroom/pkg/logger"
)

// Middleware decorates a RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain wraps rt so that mws[0] runs first.
func Chain(rt http.RoundTripper, mws ...Middleware) http.RoundTripper {
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// HeaderRequestID carries the per-request correlation ID.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the ID set by the request ID middleware.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// RequestIDExtractor adds request_id to log records emitted under a
// request context.
func RequestIDExtractor() logger.ContextExtractor {
	return logger.FromContext(requestIDKey{}, "request_id")
}

// RequestID tags requests lacking X-Request-ID with a UUIDv7.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				v, err := uuid.NewV7()
				if err != nil {
					v = uuid.New()
				}
				id = v.String()
			}
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			r = r.Clone(ctx)
			r.Header.Set(HeaderRequestID, id)
			return next.RoundTrip(r)
		})
	}
}

func (c *Client) bearer(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		tok, err := TokenSource(r.Context(), c.store).Token()
		switch {
		case err == nil:
			r = r.Clone(r.Context())
			tok.SetAuthHeader(r)
		case !errors.Is(err, ErrNoToken):
			c.logger.WarnContext(r.Context(), "read persisted token", slog.String("error", err.Error()))
		}
		return next.RoundTrip(r)
	})
}

func (c *Client) classify(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		ctx := r.Context()
		resp, err := next.RoundTrip(r)
		if err != nil {
			c.logger.ErrorContext(ctx, "network error: no response from server",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			return nil, &Error{Category: CategoryNetwork, Method: r.Method, Path: r.URL.Path, Err: err}
		}
		if resp.StatusCode < http.StatusBadRequest {
			return resp, nil
		}

		body, rerr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if rerr != nil {
			c.logger.DebugContext(ctx, "read error body",
				slog.Int("status", resp.StatusCode),
				slog.String("error", rerr.Error()),
			)
		}
		_ = resp.Body.Close()

		e := &Error{
			Category: CategoryForStatus(resp.StatusCode),
			Method:   r.Method,
			Path:     r.URL.Path,
			Status:   resp.StatusCode,
			Message:  serverMessage(body),
		}
		attrs := []any{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", resp.StatusCode),
		}

		switch e.Category {
		case CategoryAuth:
			c.clearCredentials(ctx)
			c.logger.WarnContext(ctx, "unauthorized: persisted session cleared", attrs...)
		case CategoryPermission:
			c.logger.WarnContext(ctx, "permission denied", attrs...)
		case CategoryNotFound:
			c.logger.InfoContext(ctx, "resource not found", attrs...)
		case CategoryServer:
			c.logger.ErrorContext(ctx, "server error", attrs...)
		default:
			c.logger.WarnContext(ctx, "request rejected", attrs...)
		}
		return nil, e
	})
}

// clearCredentials removes the persisted token and user record, then runs
// the unauthorized hooks. Store failures are logged only.
func (c *Client) clearCredentials(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range []string{KeyToken, KeyUser} {
		if err := c.store.Remove(ctx, key); err != nil {
			c.logger.ErrorContext(ctx, "clear persisted credential",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	c.mu.RLock()
	hooks := append([]func(context.Context){}, c.hooks...)
	c.mu.RUnlock()
	for _, h := range hooks {
		h(ctx)
	}
}
