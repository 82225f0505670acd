package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/classroom"
	"github.com/dmitrymomot/classroom/internal/fakeapi"
	"github.com/dmitrymomot/classroom/pkg/health"
	"github.com/dmitrymomot/classroom/pkg/store"
)

func setup(t *testing.T) *fakeapi.Server {
	t.Helper()
	api := fakeapi.New(fakeapi.WithEnvelope(true))
	require.NoError(t, api.Seed())
	ts := httptest.NewServer(api.Handler())
	t.Cleanup(ts.Close)

	t.Setenv("CLASSROOM_API_URL", ts.URL)
	t.Setenv("CLASSROOM_STORE", "file")
	t.Setenv("CLASSROOM_STORE_PATH", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("CLASSROOM_LANG", "en")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SENTRY_DSN", "")
	return api
}

func exec(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	setup(t)

	code, _, stderr := exec(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: classroom")

	code, _, stderr = exec(t, "nope")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "nope"`)

	code, _, stderr = exec(t, "login", "-email", fakeapi.DemoProfessorEmail)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "-password is required")

	code, _, stderr = exec(t, "whoami")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not signed in")

	code, stdout, _ := exec(t, "login", "-email", fakeapi.DemoProfessorEmail, "-password", fakeapi.DemoPassword)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "signed in as Professora Demo")
	assert.Contains(t, stdout, "(teacher)")

	// The session survives across invocations through the file store.
	code, stdout, _ = exec(t, "whoami")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, fakeapi.DemoProfessorEmail)
	assert.Contains(t, stdout, "role:  teacher")

	code, stdout, _ = exec(t, "posts", "search", "-q", "história")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "História do Brasil")
	assert.Contains(t, stdout, "1 item(s)")

	code, stdout, _ = exec(t, "students", "list", "-limit", "1")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Aluno Demo")
	assert.Contains(t, stdout, "page 1 of 1")

	code, _, stderr = exec(t, "posts", "create", "-title", "T")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "content is required")

	code, stdout, _ = exec(t, "-json", "dashboard", "-limit", "2")
	require.Equal(t, 0, code)
	var d struct {
		Posts struct {
			Success bool `json:"success"`
			Data    struct {
				Items []map[string]any `json:"Items"`
			} `json:"data"`
		} `json:"Posts"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &d))
	assert.True(t, d.Posts.Success)
	assert.Len(t, d.Posts.Data.Items, 2)

	code, stdout, _ = exec(t, "doctor")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "api")
	assert.Contains(t, stdout, "store")

	code, stdout, _ = exec(t, "logout")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "signed out")

	code, _, _ = exec(t, "whoami")
	assert.Equal(t, 1, code)
}

func TestStudentIsForbidden(t *testing.T) {
	setup(t)

	code, _, _ := exec(t, "login", "-email", fakeapi.DemoAlunoEmail, "-password", fakeapi.DemoPassword)
	require.Equal(t, 0, code)

	code, _, stderr := exec(t, "teachers", "create", "-name", "X", "-email", "x@example.com", "-password", "secret1")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Acesso restrito a professores")
}

func TestUnknownStore(t *testing.T) {
	setup(t)
	t.Setenv("CLASSROOM_STORE", "etcd")

	code, _, stderr := exec(t, "whoami")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown store backend")
}

func TestDoctorBackend(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(fakeapi.New().Handler())
	t.Cleanup(ts.Close)
	client, err := classroom.New(classroom.WithBaseURL(ts.URL), classroom.WithStore(store.NewMemory()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	t.Run("failing backend fails the run", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		a := &app{client: client, out: &out, backend: health.Checks{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		}}

		err := cmdDoctor(context.Background(), a, nil)
		require.Error(t, err)
		assert.Contains(t, out.String(), "FAIL")
		assert.Contains(t, out.String(), "connection refused")
		assert.Contains(t, out.String(), "store")
	})

	t.Run("healthy backend", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		a := &app{client: client, out: &out, backend: health.Checks{
			"postgres": func(context.Context) error { return nil },
		}}

		require.NoError(t, cmdDoctor(context.Background(), a, nil))
		assert.Contains(t, out.String(), "postgres")
		assert.NotContains(t, out.String(), "FAIL")
	})
}

func TestOpenStoreLocal(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{storeFile, storeMemory} {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()
			cfg := Config{Store: kind, StorePath: filepath.Join(t.TempDir(), "session.json")}
			be, err := openStore(context.Background(), cfg, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = be.release(context.Background()) })

			assert.NotNil(t, be.store)
			assert.Nil(t, be.check)
			assert.Empty(t, be.checks())
		})
	}
}
