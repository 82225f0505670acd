package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrymomot/classroom/internal/messages"
	"github.com/dmitrymomot/classroom/internal/normalize"
	"github.com/dmitrymomot/classroom/internal/result"
	"github.com/dmitrymomot/classroom/internal/transport"
	"github.com/dmitrymomot/classroom/pkg/logger"
	"github.com/dmitrymomot/classroom/pkg/store"
	"github.com/dmitrymomot/classroom/pkg/validator"
)

// Persisted keys.
const (
	KeyToken = transport.KeyToken
	KeyUser  = transport.KeyUser
	KeyRole  = "user_type"
)

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	pathMe       = "/auth/me"

	minPasswordLen = 6
)

var (
	loginFields    = normalize.Fields(normalize.Email, normalize.Password)
	registerFields = normalize.Fields(normalize.Name, normalize.Email, normalize.Password)
)

// Doer sends an API request. *transport.Client implements it.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body any) (*transport.Response, error)
}

// Credentials identify a user at login.
type Credentials struct {
	Email    string
	Password string
}

// NewUser is the input of Register.
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// Login is the payload of a successful login.
type Login struct {
	User  User   `json:"user"`
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// Manager owns the authentication state and its persisted form.
//
// Reads are safe from any goroutine. Login, Logout and Restore are not
// serialized against each other; callers must not race them.
type Manager struct {
	store  store.Store
	api    Doer
	msgs   *messages.Messages
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	state Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMessages sets the language of failure messages. Default: English.
func WithMessages(msgs *messages.Messages) Option {
	return func(m *Manager) {
		if msgs != nil {
			m.msgs = msgs
		}
	}
}

// WithClock overrides time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates an unauthenticated Manager persisting to st and talking to
// the API through api.
func New(st store.Store, api Doer, opts ...Option) *Manager {
	m := &Manager{
		store:  st,
		api:    api,
		logger: logger.NewNope(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.msgs == nil {
		m.msgs = messages.Default()
	}
	return m
}

// Login authenticates against the API, persists the token, user record
// and role, and switches to the authenticated state. On any failure the
// state is left untouched and nothing new stays persisted.
func (m *Manager) Login(ctx context.Context, c Credentials) result.Result[Login] {
	if err := validateCredentials(c); err != nil {
		return result.Fail[Login](m.msgs.Validation(err), err)
	}

	payload := loginFields.Map(map[string]any{"email": c.Email, "password": c.Password})
	resp, err := m.api.Do(ctx, http.MethodPost, pathLogin, nil, payload)
	if err != nil {
		return result.Fail[Login](m.msgs.Failure(err, messages.AuthLogin), err)
	}

	login, err := decodeLogin(resp.Body)
	if err != nil {
		m.logger.WarnContext(ctx, "login response rejected", slog.String("error", err.Error()))
		return result.Fail[Login](m.msgs.T(messages.AuthInvalidResponse), err)
	}

	if err := m.persist(ctx, login); err != nil {
		m.logger.ErrorContext(ctx, "persist session", slog.String("error", err.Error()))
		return result.Fail[Login](m.msgs.T(messages.AuthSessionSave), err)
	}

	m.set(Session{User: login.User, Token: login.Token, Role: login.Role, Authenticated: true})
	m.logger.InfoContext(ctx, "logged in", slog.String("role", string(login.Role)))
	return result.Ok(login)
}

func validateCredentials(c Credentials) error {
	email := validator.Email("email", c.Email)
	if c.Email == "" {
		email = validator.RequiredString("email", c.Email)
	}
	password := validator.MinLenString("password", c.Password, minPasswordLen)
	if c.Password == "" {
		password = validator.RequiredString("password", c.Password)
	}
	return validator.Apply(email, password)
}

func decodeLogin(body []byte) (Login, error) {
	raw, err := normalize.Unwrap(body)
	if err != nil {
		return Login{}, err
	}
	var payload struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Login{}, err
	}
	if payload.Token == "" || payload.User == nil {
		return Login{}, ErrInvalidResponse
	}
	return Login{User: payload.User, Token: payload.Token, Role: payload.User.Role()}, nil
}

// persist writes the three keys, removing what it wrote if a later write
// fails.
func (m *Manager) persist(ctx context.Context, l Login) error {
	user, err := json.Marshal(l.User)
	if err != nil {
		return err
	}

	writes := []struct{ key, value string }{
		{KeyToken, l.Token},
		{KeyUser, string(user)},
		{KeyRole, string(l.Role)},
	}
	for i, w := range writes {
		if err := m.store.Set(ctx, w.key, w.value); err != nil {
			for _, done := range writes[:i] {
				if rerr := m.store.Remove(context.WithoutCancel(ctx), done.key); rerr != nil {
					m.logger.ErrorContext(ctx, "roll back persisted key",
						slog.String("key", done.key),
						slog.String("error", rerr.Error()),
					)
				}
			}
			return err
		}
	}
	return nil
}

// Logout removes every persisted key and resets the state. Store errors
// are logged and never returned; calling it twice is harmless.
func (m *Manager) Logout(ctx context.Context) {
	rmCtx := context.WithoutCancel(ctx)
	for _, key := range []string{KeyToken, KeyUser, KeyRole} {
		if err := m.store.Remove(rmCtx, key); err != nil {
			m.logger.WarnContext(ctx, "remove persisted key",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
	m.set(Session{})
}

// Restore rebuilds the state from the store. A session needs both a token
// and a decodable user record; a JWT whose exp has passed counts as no
// token. Anything missing or corrupt yields the unauthenticated state.
func (m *Manager) Restore(ctx context.Context) Session {
	token := m.read(ctx, KeyToken)
	rawUser := m.read(ctx, KeyUser)
	if token == "" || rawUser == "" {
		m.set(Session{})
		return Session{}
	}

	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user == nil {
		m.logger.WarnContext(ctx, "discard corrupt persisted user")
		m.set(Session{})
		return Session{}
	}

	if claims, err := ParseClaims(token); err == nil && claims.Expired(m.now()) {
		m.logger.InfoContext(ctx, "persisted token expired", slog.Time("expires_at", claims.ExpiresAt))
		m.set(Session{})
		return Session{}
	}

	s := Session{
		User:          user,
		Token:         token,
		Role:          ParseRole(m.read(ctx, KeyRole)),
		Authenticated: true,
	}
	m.set(s)
	return m.Snapshot()
}

func (m *Manager) read(ctx context.Context, key string) string {
	v, _, err := store.Lookup(ctx, m.store, key)
	if err != nil {
		m.logger.WarnContext(ctx, "read persisted key",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return v
}

// Invalidate drops the in-memory state without touching the store.
// It is registered as the transport's unauthorized hook.
func (m *Manager) Invalidate() {
	m.set(Session{})
}

// Register creates an account. It does not sign the user in.
func (m *Manager) Register(ctx context.Context, u NewUser) result.Result[User] {
	err := validator.Apply(
		validator.RequiredString("name", u.Name),
		validator.Email("email", u.Email),
		validator.MinLenString("password", u.Password, minPasswordLen),
	)
	if err != nil {
		return result.Fail[User](m.msgs.Validation(err), err)
	}

	payload := registerFields.Map(map[string]any{"name": u.Name, "email": u.Email, "password": u.Password})
	resp, err := m.api.Do(ctx, http.MethodPost, pathRegister, nil, payload)
	if err != nil {
		return result.Fail[User](m.msgs.Failure(err, messages.AuthRegister), err)
	}
	user, err := decodeUser(resp.Body)
	if err != nil {
		return result.Fail[User](m.msgs.T(messages.AuthRegister), err)
	}
	return result.Ok(user)
}

// CurrentUser fetches the signed-in user's record from the API.
func (m *Manager) CurrentUser(ctx context.Context) result.Result[User] {
	resp, err := m.api.Do(ctx, http.MethodGet, pathMe, nil, nil)
	if err != nil {
		return result.Fail[User](m.msgs.Failure(err, messages.AuthMe), err)
	}
	user, err := decodeUser(resp.Body)
	if err != nil {
		return result.Fail[User](m.msgs.T(messages.AuthMe), err)
	}
	return result.Ok(user)
}

func decodeUser(body []byte) (User, error) {
	raw, err := normalize.Unwrap(body)
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidResponse
	}
	return u, nil
}

// Claims decodes the current token.
func (m *Manager) Claims() (Claims, error) {
	token := m.Token()
	if token == "" {
		return Claims{}, ErrNotAuthenticated
	}
	return ParseClaims(token)
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	s.User = s.User.Clone()
	return s
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Authenticated
}

// Role returns the current role, or "" when unauthenticated.
func (m *Manager) Role() Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Role
}

// User returns a copy of the current user record, or nil.
func (m *Manager) User() User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.User.Clone()
}

// Token returns the current bearer token, or "".
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

func (m *Manager) set(s Session) {
	s.Authenticated = s.Token != ""
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
