// Package kv is the local persisted key-value store that holds reader state
// between runs: theme, bookmarks, progress and visited tabs.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("kv: store closed")
	// ErrCorrupt marks a stored value that does not decode.
	ErrCorrupt = errors.New("kv: corrupt value")
)

// Store is a string key-value store. Values written by one process are
// visible to the next; concurrent writers across processes are last-writer
// wins.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the store for backend at path. An empty backend picks one
// from the file extension.
func Open(backend, path string) (Store, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".db", ".sqlite", ".sqlite3":
			backend = BackendSQLite
		default:
			backend = BackendFile
		}
	}
	switch backend {
	case BackendFile:
		s, err := OpenFile(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// GetJSON decodes the value under key into v. It reports false when the key
// is absent.
func GetJSON(s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %s: %w: %w", key, ErrCorrupt, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(key, string(data))
}
