package store_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/classroom/pkg/store"
)

// backends returns a fresh instance of every local backend.
func backends(t *testing.T) map[string]store.Store {
	t.Helper()
	return map[string]store.Store{
		"memory": store.NewMemory(),
		"file":   store.NewFile(filepath.Join(t.TempDir(), "nested", "session.json")),
	}
}

func TestStore_Contract(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			_, err := s.Get(ctx, "missing")
			require.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, s.Set(ctx, "auth_token", "abc"))
			v, err := s.Get(ctx, "auth_token")
			require.NoError(t, err)
			require.Equal(t, "abc", v)

			require.NoError(t, s.Set(ctx, "auth_token", "def"))
			v, err = s.Get(ctx, "auth_token")
			require.NoError(t, err)
			require.Equal(t, "def", v)

			require.NoError(t, s.Remove(ctx, "auth_token"))
			_, err = s.Get(ctx, "auth_token")
			require.ErrorIs(t, err, store.ErrNotFound)

			// Removing twice is not an error.
			require.NoError(t, s.Remove(ctx, "auth_token"))

			require.NoError(t, s.Set(ctx, "a", "1"))
			require.NoError(t, s.Set(ctx, "b", "2"))
			require.NoError(t, s.Clear(ctx))
			_, err = s.Get(ctx, "a")
			require.ErrorIs(t, err, store.ErrNotFound)
			_, err = s.Get(ctx, "b")
			require.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, s.Close())
			require.NoError(t, s.Close())
			require.ErrorIs(t, s.Set(ctx, "a", "1"), store.ErrClosed)
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()

	v, ok, err := store.Lookup(ctx, s, "k")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, ok, err = store.Lookup(ctx, s, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)

	require.NoError(t, s.Close())
	_, _, err = store.Lookup(ctx, s, "k")
	require.ErrorIs(t, err, store.ErrClosed)
}

func TestFile_SurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	first := store.NewFile(path)
	require.NoError(t, first.Set(ctx, "user_type", "teacher"))
	require.NoError(t, first.Close())

	second := store.NewFile(path)
	v, err := second.Get(ctx, "user_type")
	require.NoError(t, err)
	require.Equal(t, "teacher", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFile_Corrupted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := store.NewFile(path)

	_, err := s.Get(ctx, "auth_token")
	require.ErrorIs(t, err, store.ErrCorrupted)

	// Writes replace the broken document.
	require.NoError(t, s.Set(ctx, "auth_token", "fresh"))
	v, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Equal(t, "fresh", v)
}

func TestFile_ClearMissingFile(t *testing.T) {
	t.Parallel()

	s := store.NewFile(filepath.Join(t.TempDir(), "never-written.json"))
	require.NoError(t, s.Clear(context.Background()))
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			_ = s.Set(ctx, key, "v")
			_, _ = s.Get(ctx, key)
			_ = s.Remove(ctx, key)
		}(i)
	}
	wg.Wait()
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	require.NoError(t, store.Healthcheck(store.NewMemory())(ctx))
	require.ErrorIs(t, store.Healthcheck(nil)(ctx), store.ErrHealthcheckFailed)
}
