package transport

import (
	"context"
	"errors"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/classroom/pkg/store"
)

// Persisted keys owned by the auth flow. A 401 clears the first two.
const (
	KeyToken = "auth_token"
	KeyUser  = "user_data"
)

// ErrNoToken is returned by the store token source when nothing is persisted.
var ErrNoToken = errors.New("transport: no persisted token")

type storeTokenSource struct {
	ctx   context.Context
	store store.Store
}

// TokenSource reads the persisted bearer token from st on every call.
// ctx bounds the store read.
func TokenSource(ctx context.Context, st store.Store) oauth2.TokenSource {
	return &storeTokenSource{ctx: ctx, store: st}
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	v, ok, err := store.Lookup(s.ctx, s.store, KeyToken)
	if err != nil {
		return nil, err
	}
	if !ok || v == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: v, TokenType: "Bearer"}, nil
}
