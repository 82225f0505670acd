package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/classroom/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"script injection", `<p>Hello</p><script>alert('xss')</script>`, "Hello"},
		{"formatting tags", `<p>Hello <strong>world</strong></p>`, "Hello world"},
		{"event handlers", `<img src="x" onerror="alert('xss')">`, ""},
		{"javascript url", `<a href="javascript:alert('xss')">click</a>`, "click"},
		{"plain text", "normal text", "normal text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("keeps formatting", func(t *testing.T) {
		t.Parallel()
		in := `<h2>Week 1</h2><p>Read <em>chapter</em> <code>1</code></p>`
		assert.Equal(t, in, sanitizer.SanitizeHTML(in))
	})

	t.Run("drops scripts and handlers", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.SanitizeHTML(`<p onclick="x()">hi</p><script>alert(1)</script>`)
		assert.Equal(t, "<p>hi</p>", out)
	})

	t.Run("links get nofollow", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.SanitizeHTML(`<a href="https://school.edu">site</a>`)
		assert.Contains(t, out, `rel="nofollow"`)
		assert.Contains(t, out, `href="https://school.edu"`)
	})

	t.Run("javascript links lose href", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.SanitizeHTML(`<a href="javascript:alert(1)">x</a>`)
		assert.NotContains(t, out, "javascript")
	})
}

func TestSanitizeHTMLCustom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<b>x</b>", sanitizer.SanitizeHTMLCustom("<b>x</b>", nil))

	p := bluemonday.NewPolicy()
	p.AllowElements("b")
	assert.Equal(t, "<b>x</b>y", sanitizer.SanitizeHTMLCustom("<b>x</b><i>y</i>", p))
}

func TestPlainTextAndExcerpt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Tom & Jerry go home", sanitizer.PlainText("<p>Tom &amp; Jerry</p>\n\n  <p>go   home</p>"))

	body := "<p>Photosynthesis converts light energy into chemical energy.</p>"
	assert.Equal(t, "Photosynthesis converts light…", sanitizer.Excerpt(body, 32))
	assert.Equal(t, "Photosynthesis converts light energy into chemical energy.", sanitizer.Excerpt(body, 0))
	assert.Equal(t, "short", sanitizer.Excerpt("short", 10))
	assert.Equal(t, "Fotossíntese…", sanitizer.Excerpt("Fotossíntese converte luz", 14))
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	out, err := sanitizer.RenderMarkdown("# Aula 1\n\nLeia o **capítulo** 2.\n\n<script>alert(1)</script>\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Aula 1</h1>")
	assert.Contains(t, out, "<strong>capítulo</strong>")
	assert.NotContains(t, out, "<script>")
}
