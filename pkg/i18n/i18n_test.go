package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/classroom/pkg/i18n"
	"github.com/dmitrymomot/classroom/pkg/validator"
)

func newCatalog(t *testing.T, opts ...i18n.Option) *i18n.Catalog {
	t.Helper()
	base := []i18n.Option{
		i18n.WithDefaultLanguage("en"),
		i18n.WithTranslations("en", "errors", map[string]any{
			"posts": map[string]any{
				"list": "Failed to fetch posts",
				"get":  "Failed to fetch post {{id}}",
			},
			"login": "Login failed",
		}),
		i18n.WithTranslations("pt", "errors", map[string]any{
			"posts": map[string]any{
				"list": "Erro ao buscar posts",
			},
		}),
	}
	c, err := i18n.New(append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestCatalog_T(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	t.Run("exact language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Erro ao buscar posts", c.T("pt", "errors", "posts.list"))
	})

	t.Run("region falls back to base", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Erro ao buscar posts", c.T("pt-BR", "errors", "posts.list"))
	})

	t.Run("missing key falls back to default language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Login failed", c.T("pt", "errors", "login"))
	})

	t.Run("placeholders", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Failed to fetch post 42", c.T("en", "errors", "posts.get", i18n.M{"id": 42}))
	})

	t.Run("unknown key returns key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "nope", c.T("en", "errors", "nope"))
		assert.False(t, c.Has("en", "errors", "nope"))
		assert.True(t, c.Has("pt", "errors", "login"))
	})
}

func TestCatalog_MissingKeyHandler(t *testing.T) {
	t.Parallel()

	var got []string
	c := newCatalog(t, i18n.WithMissingKeyHandler(func(lang, ns, key string) {
		got = append(got, lang+"/"+ns+"/"+key)
	}))
	c.T("pt", "errors", "absent")
	assert.Equal(t, []string{"pt/errors/absent"}, got)
}

func TestCatalog_LanguagesAndMatch(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	assert.Equal(t, []string{"en", "pt"}, c.Languages())
	assert.Equal(t, "en", c.DefaultLanguage())

	assert.Equal(t, "pt", c.Match("pt-BR"))
	assert.Equal(t, "pt", c.Match("fr;q=0.9, pt-BR;q=0.8"))
	assert.Equal(t, "en", c.Match("de"))
	assert.Equal(t, "en", c.Match(""))
	assert.Equal(t, "en", c.Match())
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := i18n.New(i18n.WithDefaultLanguage(""))
	require.ErrorIs(t, err, i18n.ErrEmptyLanguage)

	_, err = i18n.New(i18n.WithTranslations("en", "", map[string]any{"a": "b"}))
	require.ErrorIs(t, err, i18n.ErrEmptyNamespace)
}

func TestWithYAMLDir(t *testing.T) {
	t.Parallel()

	t.Run("loads nested yaml by lang and namespace", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en/cli.yaml": {Data: []byte("auth:\n  logged_in: \"Signed in as {{name}}\"\n")},
			"pt/cli.yml":  {Data: []byte("auth:\n  logged_in: \"Conectado como {{name}}\"\n")},
			"README.md":   {Data: []byte("ignored")},
		}
		c, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.NoError(t, err)
		assert.Equal(t, "Conectado como Ana", c.T("pt", "cli", "auth.logged_in", i18n.M{"name": "Ana"}))
		assert.Equal(t, "Signed in as Ana", c.T("en", "cli", "auth.logged_in", i18n.M{"name": "Ana"}))
	})

	t.Run("rejects files outside a language directory", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"cli.yaml": {Data: []byte("a: b\n")}}
		_, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"en/cli.yaml": {Data: []byte("a: [\n")}}
		_, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	c, err := i18n.New(
		i18n.WithTranslations("en", "validation", map[string]any{
			"required":   "{{field}} is required",
			"min_length": "{{field}} must be at least {{min}} characters",
		}),
		i18n.WithTranslations("pt", "validation", map[string]any{
			"required": "{{field}} é obrigatório",
		}),
	)
	require.NoError(t, err)

	tr := i18n.NewTranslator(c, "pt", "validation")
	assert.Equal(t, "pt", tr.Language())
	assert.Equal(t, "validation", tr.Namespace())

	verr := validator.Apply(
		validator.RequiredString("email", ""),
		validator.MinLenString("password", "abc", 6),
	)
	ve := validator.ExtractValidationErrors(verr)
	require.Len(t, ve, 2)

	ve.Translate(func(key string, values map[string]any) string {
		return tr.TranslateMessage(key[len("validation."):], values)
	})
	assert.Equal(t, "email é obrigatório", ve[0].Message)
	assert.Equal(t, "password must be at least 6 characters", ve[1].Message)

	assert.Equal(t, "en", i18n.NewTranslator(c, "", "validation").Language())
	assert.Panics(t, func() { i18n.NewTranslator(nil, "en", "x") })
}

func TestReplacePlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hi Ana, {{unknown}}", i18n.ReplacePlaceholders("Hi {{name}}, {{unknown}}", i18n.M{"name": "Ana"}))
	assert.Equal(t, "plain", i18n.ReplacePlaceholders("plain", nil))
}
