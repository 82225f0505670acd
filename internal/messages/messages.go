// Package messages holds the user-facing strings of the client: fallback
// failure messages and validation messages, in English and Portuguese.
package messages

import (
	"embed"
	"io/fs"
	"strings"
	"sync"

	"github.com/dmitrymomot/classroom/internal/transport"
	"github.com/dmitrymomot/classroom/pkg/i18n"
	"github.com/dmitrymomot/classroom/pkg/validator"
)

//go:embed locales
var locales embed.FS

const namespace = "messages"

// Keys of the fallback failure messages.
const (
	AuthLogin            = "errors.auth.login"
	AuthRegister         = "errors.auth.register"
	AuthMe               = "errors.auth.me"
	AuthLogout           = "errors.auth.logout"
	AuthSessionSave      = "errors.auth.session_save"
	AuthInvalidResponse  = "errors.auth.invalid_response"
	AuthNotAuthenticated = "errors.auth.not_authenticated"
	PostsComment         = "errors.posts.comment"
)

// Operation returns the fallback key for op on resource, e.g.
// Operation("posts", "list") == "errors.posts.list".
func Operation(resource, op string) string {
	return "errors." + resource + "." + op
}

// Catalog returns the embedded catalog. It is parsed once.
var Catalog = sync.OnceValues(func() (*i18n.Catalog, error) {
	sub, err := fs.Sub(locales, "locales")
	if err != nil {
		return nil, err
	}
	return i18n.New(i18n.WithDefaultLanguage("en"), i18n.WithYAMLDir(sub))
})

// Messages renders strings in one language.
type Messages struct {
	tr *i18n.Translator
}

// New returns Messages for the loaded language closest to lang.
func New(lang string) (*Messages, error) {
	c, err := Catalog()
	if err != nil {
		return nil, err
	}
	return &Messages{tr: i18n.NewTranslator(c, c.Match(lang), namespace)}, nil
}

// Default returns English messages. It panics if the embedded catalog is
// broken, which only a bad build can cause.
func Default() *Messages {
	m, err := New("en")
	if err != nil {
		panic(err)
	}
	return m
}

// Language returns the selected language.
func (m *Messages) Language() string { return m.tr.Language() }

// T renders key.
func (m *Messages) T(key string, ph ...i18n.M) string {
	return m.tr.T(key, ph...)
}

// Failure picks the message for a failed call: the server-supplied message
// when err carries one, otherwise the translated fallback key.
func (m *Messages) Failure(err error, key string) string {
	if msg := transport.ServerMessage(err); msg != "" {
		return msg
	}
	return m.tr.T(key)
}

// Validation renders every validation error in err, joined by "; ".
// It returns "" when err holds no validation errors.
func (m *Messages) Validation(err error) string {
	ve := validator.ExtractValidationErrors(err)
	if len(ve) == 0 {
		return ""
	}
	translated := make(validator.ValidationErrors, len(ve))
	copy(translated, ve)
	translated.Translate(m.tr.TranslateMessage)

	parts := make([]string, 0, len(translated))
	for _, e := range translated {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}
