package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File persists all keys as a single JSON object on disk.
//
// Every operation re-reads the file, so several processes sharing the
// same path observe each other's writes. Writes go to a temporary file
// in the same directory and are renamed over the target.
type File struct {
	path   string
	perm   fs.FileMode
	mu     sync.Mutex
	closed bool
}

// FileOption configures the file store.
type FileOption func(*File)

// WithFileMode sets the permissions of the data file.
// Default: 0600.
func WithFileMode(perm fs.FileMode) FileOption {
	return func(f *File) {
		if perm != 0 {
			f.perm = perm
		}
	}
}

// NewFile creates a file-backed store at path. Parent directories are
// created on first write.
//
// Example:
//
//	dir, _ := os.UserConfigDir()
//	s := store.NewFile(filepath.Join(dir, "classroom", "session.json"))
func NewFile(path string, opts ...FileOption) *File {
	f := &File{path: path, perm: 0o600}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the location of the data file.
func (f *File) Path() string {
	return f.path
}

// Get retrieves a value by key.
func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", ErrClosed
	}

	items, err := f.load()
	if err != nil {
		return "", err
	}

	v, ok := items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores a value.
func (f *File) Set(_ context.Context, key, value string) error {
	return f.update(func(items map[string]string) bool {
		items[key] = value
		return true
	})
}

// Remove deletes a key.
func (f *File) Remove(_ context.Context, key string) error {
	return f.update(func(items map[string]string) bool {
		if _, ok := items[key]; !ok {
			return false
		}
		delete(items, key)
		return true
	})
}

// Clear deletes the data file.
func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Close marks the store as closed. Close is idempotent.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *File) update(fn func(items map[string]string) bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	items, err := f.load()
	if err != nil && !errors.Is(err, ErrCorrupted) {
		return err
	}
	if items == nil {
		// A corrupted file is replaced rather than blocking every write.
		items = make(map[string]string)
	}

	if !fn(items) {
		return nil
	}
	return f.save(items)
}

// load reads the data file. A missing file is an empty store.
// Caller must hold the mutex.
func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	items := make(map[string]string)
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Join(ErrCorrupted, err)
	}
	return items, nil
}

// save writes items atomically. Caller must hold the mutex.
func (f *File) save(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".store-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(f.perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, f.path)
}

var _ Store = (*File)(nil)
