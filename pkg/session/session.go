package session

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/dmitrymomot/classroom/internal/normalize"
)

// Role is the category of the signed-in user.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole maps the API's role vocabulary onto Role. "professor" and
// "teacher" give RoleTeacher; anything else, including nil, gives
// RoleStudent.
func ParseRole(v any) Role {
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "professor", "teacher":
		return RoleTeacher
	}
	return RoleStudent
}

// IsTeacher reports whether r is RoleTeacher.
func (r Role) IsTeacher() bool { return r == RoleTeacher }

// User is the user record exactly as the API returned it. Accessors read
// both the localized and the canonical key names.
type User map[string]any

// ID returns the user id as a string, or "".
func (u User) ID() string {
	switch v := normalize.Canonicalize(u)["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Name returns the user's display name.
func (u User) Name() string { return normalize.LookupString(u, normalize.Name) }

// Email returns the user's email.
func (u User) Email() string { return normalize.LookupString(u, normalize.Email) }

// Role derives the role from the record's role field.
func (u User) Role() Role {
	v, _ := normalize.Lookup(u, normalize.Role)
	return ParseRole(v)
}

// Clone returns a shallow copy.
func (u User) Clone() User { return maps.Clone(u) }

// Value returns field key of u as T.
func Value[T any](u User, key string) (T, error) {
	var zero T
	v, ok := u[key]
	if !ok {
		return zero, ErrFieldNotFound
	}
	typed, ok := v.(T)
	if !ok {
		return zero, ErrTypeMismatch
	}
	return typed, nil
}

// ValueOr is Value with a default for absent or mistyped fields.
func ValueOr[T any](u User, key string, def T) T {
	v, err := Value[T](u, key)
	if err != nil {
		return def
	}
	return v
}

// Session is a point-in-time view of the authentication state.
// Authenticated is true exactly when Token is non-empty.
type Session struct {
	User          User   `json:"user,omitempty"`
	Token         string `json:"-"`
	Role          Role   `json:"role,omitempty"`
	Authenticated bool   `json:"authenticated"`
}
