package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// CorruptSuffix is appended to a store file that failed to decode when the
// next write replaces it.
const CorruptSuffix = ".corrupt"

// FileStore persists every key in a single JSON object file. Each write
// re-reads the file so changes made by another process are not lost for
// unrelated keys.
type FileStore struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// OpenFile returns a store backed by path, creating its directory.
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("open store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	return f.update(func(values map[string]string) { values[key] = value })
}

func (f *FileStore) Delete(key string) error {
	return f.update(func(values map[string]string) { delete(values, key) })
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *FileStore) update(fn func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	values, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		// Keep the unreadable file for inspection and start over.
		if err := os.Rename(f.path, f.path+CorruptSuffix); err != nil {
			return fmt.Errorf("set aside corrupt store: %w", err)
		}
		values, err = make(map[string]string), nil
	}
	if err != nil {
		return err
	}
	fn(values)
	return f.write(values)
}

func (f *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode store %s: %w: %w", f.path, ErrCorrupt, err)
	}
	return values, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (f *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".notesnav-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(name, f.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
