package classroom

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/dmitrymomot/classroom/internal/normalize"
	"github.com/dmitrymomot/classroom/internal/resource"
	"github.com/dmitrymomot/classroom/internal/result"
	"github.com/dmitrymomot/classroom/pkg/sanitizer"
	"github.com/dmitrymomot/classroom/pkg/session"
)

type (
	// Result is the outcome of every client operation.
	Result[T any] = result.Result[T]
	// Page is one listing result.
	Page[T any] = resource.Page[T]
	// ListOptions selects a page or a search.
	ListOptions = resource.ListOptions
	// Pagination is the page cursor echoed from the API.
	Pagination = normalize.Pagination

	Session     = session.Session
	User        = session.User
	Role        = session.Role
	Credentials = session.Credentials
	NewUser     = session.NewUser
	Login       = session.Login
)

const (
	RoleTeacher = session.RoleTeacher
	RoleStudent = session.RoleStudent
)

// ID is an opaque entity identifier. The API may send it as a number or a
// string; both decode to the same text.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Timestamp accepts the date formats the API has been seen to send and
// decodes anything else to the zero time.
type Timestamp struct{ time.Time }

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if v, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			t.Time = v
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Post is a blog post.
type Post struct {
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
}

// Excerpt returns a plain-text preview of the content of at most n runes.
// Markdown is rendered first so that markup does not leak into the text.
func (p Post) Excerpt(n int) string {
	html, err := sanitizer.RenderMarkdown(p.Content)
	if err != nil {
		return sanitizer.Excerpt(p.Content, n)
	}
	return sanitizer.Excerpt(html, n)
}

// HTML renders the markdown content to sanitized HTML.
func (p Post) HTML() (string, error) {
	return sanitizer.RenderMarkdown(p.Content)
}

// PostInput is the writable part of a Post.
type PostInput struct {
	Title   string
	Content string
	Author  string
}

func (in PostInput) fields() map[string]any {
	return map[string]any{"title": in.Title, "content": in.Content, "author": in.Author}
}

// Comment is a reader comment on a post.
type Comment struct {
	CreatedAt Timestamp `json:"createdAt"`
	ID        ID        `json:"id,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
}

// Person holds the fields shared by teacher and student accounts.
type Person struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile returns p. It lets generic code read either account type.
func (p Person) Profile() Person { return p }

// Teacher is a teacher account.
type Teacher struct{ Person }

// Student is a student account.
type Student struct{ Person }

// PersonInput is the writable part of a Teacher or Student. Password is
// sent on create only.
type PersonInput struct {
	Name     string
	Email    string
	Password string
}

func (in PersonInput) fields() map[string]any {
	return map[string]any{"name": in.Name, "email": in.Email, "password": in.Password}
}
