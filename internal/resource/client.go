package resource

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/dmitrymomot/classroom/internal/messages"
	"github.com/dmitrymomot/classroom/internal/normalize"
	"github.com/dmitrymomot/classroom/internal/result"
	"github.com/dmitrymomot/classroom/internal/transport"
	"github.com/dmitrymomot/classroom/pkg/logger"
	"github.com/dmitrymomot/classroom/pkg/validator"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ErrSearchUnsupported is the cause of a search on a collection without a
// search endpoint.
var ErrSearchUnsupported = errors.New("resource: search not supported")

// Doer sends an API request. *transport.Client implements it.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body any) (*transport.Response, error)
}

// ListOptions selects a page or a search. Search wins over paging.
type ListOptions struct {
	Search string
	Page   int
	Limit  int
}

// Page is one listing result. Pagination is nil when the API sent none.
type Page[T any] struct {
	Pagination *normalize.Pagination `json:"pagination,omitempty"`
	Items      []T                   `json:"items"`
}

type config struct {
	msgs   *messages.Messages
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*config)

// WithMessages sets the language of failure messages.
func WithMessages(m *messages.Messages) Option {
	return func(c *config) {
		if m != nil {
			c.msgs = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client performs the operations of spec, decoding items into T.
type Client[T any] struct {
	api  Doer
	cfg  config
	spec Spec
}

// New creates a Client for spec.
func New[T any](spec Spec, api Doer, opts ...Option) *Client[T] {
	cfg := config{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.msgs == nil {
		cfg.msgs = messages.Default()
	}
	return &Client[T]{api: api, cfg: cfg, spec: spec}
}

// Spec returns the collection description.
func (c *Client[T]) Spec() Spec { return c.spec }

// List fetches one page of the collection, or the search results when
// opts.Search is set.
func (c *Client[T]) List(ctx context.Context, opts ListOptions) result.Result[Page[T]] {
	p, q := c.listRequest(opts)
	if p == "" {
		return result.Fail[Page[T]](c.cfg.msgs.T(c.key(OpList)), ErrSearchUnsupported)
	}

	resp, err := c.api.Do(ctx, http.MethodGet, p, q, nil)
	if err != nil {
		return failed[Page[T]](ctx, c, OpList, err, c.key(OpList))
	}

	raw, err := normalize.Unwrap(resp.Body)
	var items []T
	if err == nil && len(raw) > 0 {
		err = normalize.Decode(raw, &items)
	}
	var pg *normalize.Pagination
	if err == nil {
		pg, err = normalize.ParsePagination(resp.Body)
	}
	if err != nil {
		return undecodable[Page[T]](ctx, c, OpList, err, c.key(OpList))
	}
	if items == nil {
		items = []T{}
	}
	return result.Ok(Page[T]{Items: items, Pagination: pg})
}

func (c *Client[T]) listRequest(opts ListOptions) (string, url.Values) {
	if opts.Search != "" {
		if c.spec.SearchPath == "" {
			return "", nil
		}
		return c.spec.SearchPath, url.Values{"q": {opts.Search}}
	}

	q := url.Values{}
	page, limit := opts.Page, opts.Limit
	if c.spec.Paginated {
		if page <= 0 {
			page = DefaultPage
		}
		if limit <= 0 {
			limit = DefaultLimit
		}
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return c.spec.Path, q
}

// Get fetches one item.
func (c *Client[T]) Get(ctx context.Context, id string) result.Result[T] {
	if err := validator.Apply(validator.RequiredString("id", id)); err != nil {
		return result.Fail[T](c.cfg.msgs.Validation(err), err)
	}
	return c.item(ctx, OpGet, http.MethodGet, c.itemPath(id), nil)
}

// Create validates fields, maps them to the API's names and creates an item.
func (c *Client[T]) Create(ctx context.Context, fields map[string]any) result.Result[T] {
	if err := c.validate(OpCreate, fields); err != nil {
		return result.Fail[T](c.cfg.msgs.Validation(err), err)
	}
	return c.item(ctx, OpCreate, http.MethodPost, c.spec.Path, c.spec.CreateFields.Map(fields))
}

// Update validates fields and replaces the item. Fields outside the
// update map, such as passwords, are never sent.
func (c *Client[T]) Update(ctx context.Context, id string, fields map[string]any) result.Result[T] {
	err := validator.Apply(validator.RequiredString("id", id))
	if err == nil {
		err = c.validate(OpUpdate, fields)
	}
	if err != nil {
		return result.Fail[T](c.cfg.msgs.Validation(err), err)
	}
	return c.item(ctx, OpUpdate, http.MethodPut, c.itemPath(id), c.spec.UpdateFields.Map(fields))
}

// Delete removes an item.
func (c *Client[T]) Delete(ctx context.Context, id string) result.Result[struct{}] {
	if err := validator.Apply(validator.RequiredString("id", id)); err != nil {
		return result.Fail[struct{}](c.cfg.msgs.Validation(err), err)
	}
	if _, err := c.api.Do(ctx, http.MethodDelete, c.itemPath(id), nil, nil); err != nil {
		return failed[struct{}](ctx, c, OpDelete, err, c.key(OpDelete))
	}
	return result.Ok(struct{}{})
}

func (c *Client[T]) item(ctx context.Context, op Op, method, p string, body any) result.Result[T] {
	resp, err := c.api.Do(ctx, method, p, nil, body)
	if err != nil {
		return failed[T](ctx, c, op, err, c.key(op))
	}
	return decodeItem[T](ctx, c, op, resp.Body, c.key(op))
}

// Invoke sends an extra request under the item id, e.g. POST
// /posts/{id}/comments, and decodes the unwrapped response into R.
// key selects the fallback failure message.
func Invoke[R, T any](ctx context.Context, c *Client[T], method, id, sub string, body any, key string) result.Result[R] {
	if err := validator.Apply(validator.RequiredString("id", id)); err != nil {
		return result.Fail[R](c.cfg.msgs.Validation(err), err)
	}
	resp, err := c.api.Do(ctx, method, path.Join(c.itemPath(id), sub), nil, body)
	if err != nil {
		return failed[R](ctx, c, Op(sub), err, key)
	}
	return decodeItem[R](ctx, c, Op(sub), resp.Body, key)
}

func decodeItem[R, T any](ctx context.Context, c *Client[T], op Op, body []byte, key string) result.Result[R] {
	var out R
	raw, err := normalize.Unwrap(body)
	if err == nil && len(raw) > 0 {
		err = normalize.Decode(raw, &out)
	}
	if err != nil {
		return undecodable[R](ctx, c, op, err, key)
	}
	return result.Ok(out)
}

func (c *Client[T]) validate(op Op, fields map[string]any) error {
	if c.spec.Rules == nil {
		return nil
	}
	return validator.Apply(c.spec.Rules(op, fields)...)
}

func (c *Client[T]) itemPath(id string) string {
	return path.Join(c.spec.Path, url.PathEscape(id))
}

func (c *Client[T]) key(op Op) string {
	return messages.Operation(c.spec.Name, string(op))
}

func failed[R, T any](ctx context.Context, c *Client[T], op Op, err error, key string) result.Result[R] {
	c.cfg.logger.DebugContext(ctx, "resource call failed",
		slog.String("resource", c.spec.Name),
		slog.String("op", string(op)),
		slog.String("category", transport.CategoryOf(err).String()),
	)
	return result.Fail[R](c.cfg.msgs.Failure(err, key), err)
}

func undecodable[R, T any](ctx context.Context, c *Client[T], op Op, err error, key string) result.Result[R] {
	c.cfg.logger.WarnContext(ctx, "undecodable response",
		slog.String("resource", c.spec.Name),
		slog.String("op", string(op)),
		slog.String("error", err.Error()),
	)
	return result.Fail[R](c.cfg.msgs.T(key), err)
}
