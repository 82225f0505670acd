package session

import "errors"

var (
	// ErrNotAuthenticated is returned by accessors that need a token.
	ErrNotAuthenticated = errors.New("session: not authenticated")

	// ErrInvalidResponse is the cause of a failed login whose response
	// carried no token or no user.
	ErrInvalidResponse = errors.New("session: invalid auth response")

	// ErrInvalidToken is returned by ParseClaims for tokens that are not JWTs.
	ErrInvalidToken = errors.New("session: token is not a jwt")

	// ErrTypeMismatch is returned by Value when the stored field has another type.
	ErrTypeMismatch = errors.New("session: type mismatch")

	// ErrFieldNotFound is returned by Value for absent fields.
	ErrFieldNotFound = errors.New("session: field not found")
)
