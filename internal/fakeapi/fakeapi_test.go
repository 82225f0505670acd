package fakeapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/classroom/internal/fakeapi"
)

type harness struct {
	srv *fakeapi.Server
	ts  *httptest.Server
}

func newHarness(t *testing.T, opts ...fakeapi.Option) *harness {
	t.Helper()
	srv := fakeapi.New(opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &harness{srv: srv, ts: ts}
}

func (h *harness) do(t *testing.T, method, path, token string, body any) (int, map[string]any, http.Header) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(bytes.TrimSpace(raw)) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out, resp.Header
}

func (h *harness) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body, _ := h.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": email, "senha": password})
	require.Equal(t, http.StatusOK, status)
	if data, ok := body["data"].(map[string]any); ok {
		body = data
	}
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("bare body", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		_, err := h.srv.AddUser("Ana", "ana@example.com", "secret1", fakeapi.RoleProfessor)
		require.NoError(t, err)

		status, body, _ := h.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "ana@example.com", "senha": "secret1"})
		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["token"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "Ana", user["nome"])
		assert.Equal(t, fakeapi.RoleProfessor, user["tipo"])
		assert.NotContains(t, user, "senha")
	})

	t.Run("enveloped body", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, fakeapi.WithEnvelope(true))
		_, err := h.srv.AddUser("Bia", "bia@example.com", "secret1", fakeapi.RoleAluno)
		require.NoError(t, err)

		status, body, _ := h.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "BIA@example.com", "senha": "secret1"})
		require.Equal(t, http.StatusOK, status)
		data := body["data"].(map[string]any)
		assert.NotEmpty(t, data["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		_, err := h.srv.AddUser("Ana", "ana@example.com", "secret1", fakeapi.RoleProfessor)
		require.NoError(t, err)

		status, body, _ := h.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "ana@example.com", "senha": "nope"})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Email ou senha inválidos", body["mensagem"])
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()
	h := newHarness(t, fakeapi.WithEnvelope(true))

	status, body, _ := h.do(t, http.MethodPost, "/auth/register", "", map[string]any{"nome": "Caio", "email": "caio@example.com", "senha": "secret1"})
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, fakeapi.RoleAluno, data["tipo"])

	status, body, _ = h.do(t, http.MethodPost, "/auth/register", "", map[string]any{"nome": "Caio", "email": "caio@example.com", "senha": "secret1"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Email já cadastrado", body["message"])

	status, _, _ = h.do(t, http.MethodPost, "/auth/register", "", map[string]any{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuthentication(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	id, err := h.srv.AddUser("Ana", "ana@example.com", "secret1", fakeapi.RoleProfessor)
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		status, _, _ := h.do(t, http.MethodGet, "/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		token, err := h.srv.IssueToken(id, fakeapi.RoleProfessor, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		status, _, _ := h.do(t, http.MethodGet, "/alunos", token, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()
		token := h.login(t, "ana@example.com", "secret1")
		status, body, _ := h.do(t, http.MethodGet, "/auth/me", token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, id, body["id"])
	})
}

func TestPosts(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	_, err := h.srv.AddUser("Ana", "ana@example.com", "secret1", fakeapi.RoleProfessor)
	require.NoError(t, err)
	_, err = h.srv.AddUser("Bia", "bia@example.com", "secret1", fakeapi.RoleAluno)
	require.NoError(t, err)
	h.srv.AddPost("History of Rome", "Long ago", "Ana")
	h.srv.AddPost("Algebra", "x + y", "Ana")

	t.Run("public listing is a bare array", func(t *testing.T) {
		resp, err := http.Get(h.ts.URL + "/posts")
		require.NoError(t, err)
		defer resp.Body.Close()
		var items []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
		assert.Len(t, items, 2)
		assert.Equal(t, "History of Rome", items[0]["titulo"])
	})

	t.Run("search", func(t *testing.T) {
		resp, err := http.Get(h.ts.URL + "/posts/search?q=history")
		require.NoError(t, err)
		defer resp.Body.Close()
		var items []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
		require.Len(t, items, 1)
		assert.Equal(t, "History of Rome", items[0]["titulo"])
	})

	t.Run("students cannot write", func(t *testing.T) {
		token := h.login(t, "bia@example.com", "secret1")
		status, _, _ := h.do(t, http.MethodPost, "/posts", token, map[string]any{"titulo": "T", "conteudo": "C", "autor": "A"})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("create update delete", func(t *testing.T) {
		token := h.login(t, "ana@example.com", "secret1")
		status, body, _ := h.do(t, http.MethodPost, "/posts", token, map[string]any{"titulo": "T", "conteudo": "C", "autor": "A"})
		require.Equal(t, http.StatusCreated, status)
		id := body["id"].(string)
		assert.NotEmpty(t, body["data_criacao"])

		status, body, _ = h.do(t, http.MethodPut, "/posts/"+id, token, map[string]any{"titulo": "T2", "conteudo": "C", "autor": "A"})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "T2", body["titulo"])

		status, _, _ = h.do(t, http.MethodPost, "/posts/"+id+"/comments", token, map[string]any{"text": "nice"})
		require.Equal(t, http.StatusCreated, status)
		require.Len(t, h.srv.Comments(id), 1)
		assert.Equal(t, "Ana", h.srv.Comments(id)[0]["author"])

		status, _, _ = h.do(t, http.MethodDelete, "/posts/"+id, token, nil)
		assert.Equal(t, http.StatusNoContent, status)
		status, _, _ = h.do(t, http.MethodGet, "/posts/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("missing fields", func(t *testing.T) {
		token := h.login(t, "ana@example.com", "secret1")
		status, _, _ := h.do(t, http.MethodPost, "/posts", token, map[string]any{"titulo": "T"})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestPeoplePagination(t *testing.T) {
	t.Parallel()
	h := newHarness(t, fakeapi.WithEnvelope(true))
	_, err := h.srv.AddUser("Ana", "ana@example.com", "secret1", fakeapi.RoleProfessor)
	require.NoError(t, err)
	for i := range 25 {
		_, err := h.srv.AddUser("Aluno", "aluno"+string(rune('a'+i))+"@example.com", "secret1", fakeapi.RoleAluno)
		require.NoError(t, err)
	}
	token := h.login(t, "ana@example.com", "secret1")

	status, body, _ := h.do(t, http.MethodGet, "/alunos?page=2&limit=10", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 10)
	pg := body["pagination"].(map[string]any)
	assert.EqualValues(t, 2, pg["currentPage"])
	assert.EqualValues(t, 3, pg["totalPages"])
	assert.EqualValues(t, 25, pg["totalItems"])

	status, body, _ = h.do(t, http.MethodGet, "/professores", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)
	assert.EqualValues(t, 1, body["pagination"].(map[string]any)["currentPage"])
}

func TestPeopleWrites(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	_, err := h.srv.AddUser("Ana", "ana@example.com", "secret1", fakeapi.RoleProfessor)
	require.NoError(t, err)
	token := h.login(t, "ana@example.com", "secret1")

	status, body, _ := h.do(t, http.MethodPost, "/alunos", token, map[string]any{"nome": "Dan", "email": "dan@example.com", "senha": "secret1"})
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)

	status, _, _ = h.do(t, http.MethodGet, "/professores/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, status, "a student is not reachable as a teacher")

	status, _, _ = h.do(t, http.MethodPut, "/alunos/"+id, token, map[string]any{"nome": "Dan", "email": "ana@example.com"})
	assert.Equal(t, http.StatusConflict, status)

	status, body, _ = h.do(t, http.MethodPut, "/alunos/"+id, token, map[string]any{"nome": "Daniel", "email": "dan@example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Daniel", body["nome"])

	status, _, _ = h.do(t, http.MethodDelete, "/alunos/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestInfrastructure(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	status, _, header := h.do(t, http.MethodHead, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, header.Get(fakeapi.HeaderRequestID))

	req, err := http.NewRequest(http.MethodGet, h.ts.URL+"/health/live", nil)
	require.NoError(t, err)
	req.Header.Set(fakeapi.HeaderRequestID, "req-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Header.Get(fakeapi.HeaderRequestID))

	status, body, _ := h.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Rota não encontrada", body["mensagem"])
}
