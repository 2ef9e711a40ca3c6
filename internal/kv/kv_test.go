package kv

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func backends(t *testing.T) map[string]func() Store {
	t.Helper()
	dir := t.TempDir()
	return map[string]func() Store{
		"memory": func() Store { return NewMemory() },
		"file": func() Store {
			s, err := OpenFile(filepath.Join(dir, "state", "store.json"))
			if err != nil {
				t.Fatalf("OpenFile returned error: %v", err)
			}
			return s
		},
		"sqlite": func() Store {
			s, err := OpenSQLite(filepath.Join(dir, "state", "store.db"))
			if err != nil {
				t.Fatalf("OpenSQLite returned error: %v", err)
			}
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			if _, ok, err := s.Get("theme"); err != nil || ok {
				t.Fatalf("Get on empty store = ok %v err %v", ok, err)
			}
			if err := s.Set("theme", "dark"); err != nil {
				t.Fatalf("Set returned error: %v", err)
			}
			if err := s.Set("theme", "light"); err != nil {
				t.Fatalf("Set overwrite returned error: %v", err)
			}
			v, ok, err := s.Get("theme")
			if err != nil || !ok || v != "light" {
				t.Fatalf("Get = %q %v %v, want light", v, ok, err)
			}
			if err := s.Delete("theme"); err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}
			if _, ok, _ := s.Get("theme"); ok {
				t.Fatalf("key still present after Delete")
			}
			if err := s.Close(); err != nil {
				t.Fatalf("Close returned error: %v", err)
			}
			if err := s.Set("theme", "dark"); !errors.Is(err, ErrClosed) {
				t.Fatalf("Set after Close = %v, want ErrClosed", err)
			}
		})
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"store.json", "store.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			s, err := Open("", path)
			if err != nil {
				t.Fatalf("Open returned error: %v", err)
			}
			if err := SetJSON(s, "visitedTabs", []string{"current-affairs", "group1"}); err != nil {
				t.Fatalf("SetJSON returned error: %v", err)
			}
			s.Close()

			reopened, err := Open("", path)
			if err != nil {
				t.Fatalf("reopen returned error: %v", err)
			}
			defer reopened.Close()
			var got []string
			ok, err := GetJSON(reopened, "visitedTabs", &got)
			if err != nil || !ok {
				t.Fatalf("GetJSON = %v %v", ok, err)
			}
			if !reflect.DeepEqual(got, []string{"current-affairs", "group1"}) {
				t.Fatalf("visitedTabs = %v", got)
			}
		})
	}
}

func TestOpenBackendSelection(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		backend string
		path    string
		want    string
	}{
		{"", filepath.Join(dir, "a.json"), "*kv.FileStore"},
		{"", filepath.Join(dir, "a.sqlite3"), "*kv.SQLiteStore"},
		{"memory", "", "*kv.MemoryStore"},
		{"SQLite", filepath.Join(dir, "b.bin"), "*kv.SQLiteStore"},
	}
	for _, tc := range cases {
		s, err := Open(tc.backend, tc.path)
		if err != nil {
			t.Fatalf("Open(%q, %q) returned error: %v", tc.backend, tc.path, err)
		}
		if got := reflect.TypeOf(s).String(); got != tc.want {
			t.Fatalf("Open(%q, %q) = %s, want %s", tc.backend, tc.path, got, tc.want)
		}
		s.Close()
	}
	if _, err := Open("redis", "x"); err == nil || !strings.Contains(err.Error(), "unknown store backend") {
		t.Fatalf("Open(redis) error = %v", err)
	}
}

func TestGetJSON_Corrupt(t *testing.T) {
	s := NewMemory()
	s.Set("bookmarks", "{not json")
	var v []string
	ok, err := GetJSON(s, "bookmarks", &v)
	if !ok || !errors.Is(err, ErrCorrupt) || !strings.Contains(err.Error(), "decode bookmarks") {
		t.Fatalf("GetJSON corrupt = %v %v", ok, err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "garbage"},
		{"truncated", "{\n  \"theme\": \"dark\",\n  \"bookm"},
		{"wrong shape", "[1, 2, 3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "store.json")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			s, err := OpenFile(path)
			if err != nil {
				t.Fatalf("OpenFile returned error: %v", err)
			}
			if _, _, err := s.Get("theme"); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("Get on corrupt file error = %v, want ErrCorrupt", err)
			}

			// A write starts a fresh file and keeps the old one aside.
			if err := s.Set("theme", "light"); err != nil {
				t.Fatalf("Set returned error: %v", err)
			}
			if v, ok, err := s.Get("theme"); err != nil || !ok || v != "light" {
				t.Fatalf("Get after Set = %q %v %v", v, ok, err)
			}
			kept, err := os.ReadFile(path + CorruptSuffix)
			if err != nil || string(kept) != tt.data {
				t.Fatalf("corrupt file not kept: %q %v", kept, err)
			}
		})
	}
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFile(filepath.Join(dir, "store.json"))
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	for _, v := range []string{"a", "b", "c"} {
		if err := s.Set("k", v); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "store.json" {
		t.Fatalf("directory contents = %v", entries)
	}
}
