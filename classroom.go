package classroom

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/classroom/internal/messages"
	"github.com/dmitrymomot/classroom/internal/resource"
	"github.com/dmitrymomot/classroom/internal/transport"
	"github.com/dmitrymomot/classroom/pkg/health"
	"github.com/dmitrymomot/classroom/pkg/logger"
	"github.com/dmitrymomot/classroom/pkg/session"
	"github.com/dmitrymomot/classroom/pkg/store"
)

// Client is the entry point to the platform API. It is safe for concurrent
// use; session-changing calls (Login, Logout, Restore) should still be
// serialized by the caller.
type Client struct {
	Posts    *Posts
	Teachers *Teachers
	Students *Students

	api     *transport.Client
	session *session.Manager
	store   store.Store
	msgs    *messages.Messages
	logger  *slog.Logger
}

// New builds a Client. The session starts signed out; call Restore to pick
// up a persisted one.
func New(opts ...Option) (*Client, error) {
	o := &options{
		baseURL: DefaultBaseURL,
		logger:  logger.NewNope(),
		timeout: transport.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		o.store = store.NewMemory()
	}

	msgs, err := messages.New(o.language)
	if err != nil {
		return nil, err
	}

	topts := []transport.Option{
		transport.WithTimeout(o.timeout),
		transport.WithLogger(o.logger),
		transport.WithRoundTripper(o.transport),
		transport.WithUserAgent(o.userAgent),
	}
	api, err := transport.New(o.baseURL, o.store, topts...)
	if err != nil {
		return nil, err
	}

	mgr := session.New(o.store, api,
		session.WithLogger(o.logger),
		session.WithMessages(msgs),
	)
	api.OnUnauthorized(func(context.Context) { mgr.Invalidate() })

	ropts := []resource.Option{resource.WithMessages(msgs), resource.WithLogger(o.logger)}
	return &Client{
		Posts:    &Posts{c: resource.New[Post](resource.Posts, api, ropts...)},
		Teachers: &Teachers{people[Teacher]{c: resource.New[Teacher](resource.Teachers, api, ropts...)}},
		Students: &Students{people[Student]{c: resource.New[Student](resource.Students, api, ropts...)}},
		api:      api,
		session:  mgr,
		store:    o.store,
		msgs:     msgs,
		logger:   o.logger,
	}, nil
}

// Session exposes the session manager.
func (c *Client) Session() *session.Manager { return c.session }

// Language returns the language failure messages are rendered in.
func (c *Client) Language() string { return c.msgs.Language() }

// BaseURL returns the API address.
func (c *Client) BaseURL() string { return c.api.BaseURL() }

// Login signs in and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) Result[Login] {
	return c.session.Login(ctx, Credentials{Email: email, Password: password})
}

// Logout clears the session. It never fails.
func (c *Client) Logout(ctx context.Context) { c.session.Logout(ctx) }

// Restore loads a persisted session.
func (c *Client) Restore(ctx context.Context) Session { return c.session.Restore(ctx) }

// Register creates an account without signing in.
func (c *Client) Register(ctx context.Context, u NewUser) Result[User] {
	return c.session.Register(ctx, u)
}

// Me fetches the signed-in user's record.
func (c *Client) Me(ctx context.Context) Result[User] {
	return c.session.CurrentUser(ctx)
}

// Healthchecks returns probes for the session store and the API host.
func (c *Client) Healthchecks() health.Checks {
	return health.Checks{
		"store": store.Healthcheck(c.store),
		"api":   c.api.Ping,
	}
}

// Close releases the session store.
func (c *Client) Close() error {
	if err := c.store.Close(); err != nil && !errors.Is(err, store.ErrClosed) {
		return err
	}
	return nil
}
