package normalize_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/classroom/internal/normalize"
)

func TestUnwrap(t *testing.T) {
	t.Parallel()

	t.Run("enveloped and bare bodies unwrap identically", func(t *testing.T) {
		t.Parallel()
		a, err := normalize.Unwrap([]byte(`{"data": {"id": 1}}`))
		require.NoError(t, err)
		b, err := normalize.Unwrap([]byte(`{"id": 1}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1}`, string(a))
		assert.JSONEq(t, string(a), string(b))
	})

	t.Run("array payloads", func(t *testing.T) {
		t.Parallel()
		got, err := normalize.Unwrap([]byte(`{"data":[{"id":1},{"id":2}],"pagination":{"currentPage":1}}`))
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(got))

		got, err = normalize.Unwrap([]byte(` [1,2] `))
		require.NoError(t, err)
		assert.JSONEq(t, `[1,2]`, string(got))
	})

	t.Run("null data falls back to the body", func(t *testing.T) {
		t.Parallel()
		got, err := normalize.Unwrap([]byte(`{"data":null,"message":"ok"}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":null,"message":"ok"}`, string(got))
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		got, err := normalize.Unwrap([]byte("  "))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		_, err := normalize.Unwrap([]byte(`<html>`))
		require.ErrorIs(t, err, normalize.ErrMalformed)
	})
}

func TestParsePagination(t *testing.T) {
	t.Parallel()

	body := []byte(`{"data":[],"pagination":{"currentPage":2,"totalPages":3,"totalItems":25,"limit":10,"extra":"kept"}}`)
	p, err := normalize.ParsePagination(body)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 25, p.TotalItems)
	assert.Equal(t, 10, p.Limit)
	assert.True(t, p.HasNext())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currentPage":2,"totalPages":3,"totalItems":25,"limit":10,"extra":"kept"}`, string(out))

	p, err = normalize.ParsePagination([]byte(`[{"id":1}]`))
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = normalize.ParsePagination([]byte(`{"data":[]}`))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFieldMap_Map(t *testing.T) {
	t.Parallel()

	post := normalize.Fields(normalize.Title, normalize.Content, normalize.Author)

	t.Run("canonical to localized", func(t *testing.T) {
		t.Parallel()
		got := post.Map(map[string]any{"title": "T", "content": "C", "author": "A"})
		assert.Equal(t, map[string]any{"titulo": "T", "conteudo": "C", "autor": "A"}, got)
	})

	t.Run("localized value wins", func(t *testing.T) {
		t.Parallel()
		got := post.Map(map[string]any{"title": "canonical", "titulo": "localized"})
		assert.Equal(t, map[string]any{"titulo": "localized"}, got)
	})

	t.Run("empty localized falls back to canonical", func(t *testing.T) {
		t.Parallel()
		got := post.Map(map[string]any{"title": "canonical", "titulo": ""})
		assert.Equal(t, map[string]any{"titulo": "canonical"}, got)
	})

	t.Run("unknown and absent fields are dropped", func(t *testing.T) {
		t.Parallel()
		update := normalize.Fields(normalize.Name, normalize.Email)
		got := update.Map(map[string]any{"name": "Ana", "password": "secret", "senha": "secret"})
		assert.Equal(t, map[string]any{"nome": "Ana"}, got)
		assert.Equal(t, []string{"nome", "email"}, update.Localized())
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"nome": "Ana", "name": "Ann", "email": nil}
	assert.Equal(t, "Ana", normalize.LookupString(payload, normalize.Name))
	_, ok := normalize.Lookup(payload, normalize.Email)
	assert.False(t, ok)
	assert.Equal(t, "", normalize.LookupString(map[string]any{"nome": 7}, normalize.Name))
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	got := normalize.Canonicalize(map[string]any{"nome": "Ana", "tipo": "professor", "_id": "x1", "name": ""})
	assert.Equal(t, "Ana", got["name"])
	assert.Equal(t, "Ana", got["nome"])
	assert.Equal(t, "professor", got["role"])
	assert.Equal(t, "x1", got["id"])

	kept := normalize.Canonicalize(map[string]any{"name": "Canonical", "nome": "Localized"})
	assert.Equal(t, "Canonical", kept["name"])

	assert.Nil(t, normalize.Canonicalize(nil))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	type post struct {
		ID        json.Number `json:"id"`
		Title     string      `json:"title"`
		Content   string      `json:"content"`
		Author    string      `json:"author"`
		CreatedAt string      `json:"createdAt"`
	}

	raw := json.RawMessage(`[
		{"id": 12345678901234567, "titulo": "Aula", "conteudo": "Texto", "autor": "Ana", "data_criacao": "2024-03-01T10:00:00Z"},
		{"id": 2, "title": "Class", "content": "Body", "author": "Bob"}
	]`)
	var got []post
	require.NoError(t, normalize.Decode(raw, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "12345678901234567", got[0].ID.String())
	assert.Equal(t, "Aula", got[0].Title)
	assert.Equal(t, "Ana", got[0].Author)
	assert.Equal(t, "2024-03-01T10:00:00Z", got[0].CreatedAt)
	assert.Equal(t, "Class", got[1].Title)

	require.Error(t, normalize.Decode(json.RawMessage(`{`), &got))
}
