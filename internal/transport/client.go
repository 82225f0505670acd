package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrymomot/classroom/pkg/logger"
	"github.com/dmitrymomot/classroom/pkg/store"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "classroom-go"

	maxBodySize = 4 << 20
)

// Response is a successful exchange with its body fully read.
type Response struct {
	Header http.Header
	Body   []byte
	Status int
}

// Client sends JSON requests to the API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	store     store.Store
	logger    *slog.Logger
	base      http.RoundTripper
	userAgent string
	extra     []Middleware
	timeout   time.Duration

	mu    sync.RWMutex
	hooks []func(context.Context)
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the 10s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRoundTripper replaces the innermost transport.
// Default: http.DefaultTransport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.base = rt
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMiddleware adds decorators that run before the built-in ones.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) {
		c.extra = append(c.extra, mws...)
	}
}

// WithUnauthorizedHook registers fn to run after a 401 cleared the
// persisted credentials.
func WithUnauthorizedHook(fn func(context.Context)) Option {
	return func(c *Client) {
		if fn != nil {
			c.hooks = append(c.hooks, fn)
		}
	}
}

// New creates a client for baseURL that reads the bearer token from st.
// A nil st falls back to an in-memory store.
func New(baseURL string, st store.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if st == nil {
		st = store.NewMemory()
	}

	c := &Client{
		baseURL:   u,
		store:     st,
		logger:    logger.NewNope(),
		base:      http.DefaultTransport,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	mws := append(append([]Middleware{}, c.extra...), RequestID(), c.bearer, c.classify)
	c.http = &http.Client{
		Transport: Chain(c.base, mws...),
		Timeout:   c.timeout,
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Store returns the store the bearer token is read from.
func (c *Client) Store() store.Store { return c.store }

// OnUnauthorized registers fn to run after a 401 cleared the persisted
// credentials. Hooks run synchronously before the error is returned.
func (c *Client) OnUnauthorized(fn func(context.Context)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Do sends a request. body, when non-nil, is encoded as JSON. Every
// failure is returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		e := &Error{Category: CategorySetup, Method: method, Path: path, Err: err}
		c.logger.ErrorContext(ctx, "request setup failed", slog.String("error", err.Error()))
		return nil, e
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return nil, e
		}
		c.logger.ErrorContext(ctx, "network error: no response from server", slog.String("error", err.Error()))
		return nil, &Error{Category: CategoryNetwork, Method: method, Path: req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.logger.ErrorContext(ctx, "network error: read response", slog.String("error", err.Error()))
		return nil, &Error{Category: CategoryNetwork, Method: method, Path: req.URL.Path, Status: resp.StatusCode, Err: err}
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// Ping checks that the API host answers at all. It bypasses the
// middleware chain, so it never touches persisted credentials.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL.String(), nil)
	if err != nil {
		return &Error{Category: CategorySetup, Method: http.MethodHead, Path: "/", Err: err}
	}
	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return &Error{Category: CategoryNetwork, Method: http.MethodHead, Path: "/", Err: err}
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}
