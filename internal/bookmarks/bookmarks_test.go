package bookmarks

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/notesnav/internal/kv"
	"github.com/five82/notesnav/internal/nav"
)

func newManager(t *testing.T) (*Manager, kv.Store) {
	t.Helper()
	store := kv.NewMemory()
	m := New(store, zerolog.Nop())
	m.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	return m, store
}

func TestToggle_AddsAndPrepends(t *testing.T) {
	m, _ := newManager(t)

	added, err := m.Toggle("group1/group1-scheme", "Group I › Exam Scheme")
	if err != nil || !added {
		t.Fatalf("Toggle = %v %v, want added", added, err)
	}
	if _, err := m.Toggle("combined", ""); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	list, err := m.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].Path != "combined" || list[1].Path != "group1/group1-scheme" {
		t.Fatalf("list = %+v", list)
	}
	if list[0].Title != "combined" {
		t.Fatalf("empty title should default to path, got %q", list[0].Title)
	}
	if list[1].ID == "" || list[0].ID == list[1].ID {
		t.Fatalf("ids not unique: %q %q", list[0].ID, list[1].ID)
	}
	if !list[1].Timestamp.Equal(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("timestamp = %v", list[1].Timestamp)
	}
	if got := list[1].Selection(); got != (nav.Selection{Tab: "group1", SubTab: "group1-scheme"}) {
		t.Fatalf("Selection = %+v", got)
	}
}

func TestToggle_TwiceRestoresList(t *testing.T) {
	m, store := newManager(t)
	m.Toggle("group2", "Group II")
	m.Toggle("group4/group4-syllabus", "Group IV › Syllabus")
	before, _, _ := store.Get(Key)

	added, err := m.Toggle("combined", "Combined")
	if err != nil || !added {
		t.Fatalf("first toggle = %v %v", added, err)
	}
	added, err = m.Toggle("combined", "Combined")
	if err != nil || added {
		t.Fatalf("second toggle = %v %v", added, err)
	}
	after, _, _ := store.Get(Key)
	if before != after {
		t.Fatalf("persisted list changed:\nbefore %s\nafter  %s", before, after)
	}
}

func TestHasAndRemove(t *testing.T) {
	m, _ := newManager(t)
	m.Toggle("group3", "Group III")
	if ok, _ := m.Has("group3"); !ok {
		t.Fatalf("Has(group3) = false")
	}
	list, _ := m.List()
	removed, err := m.Remove(list[0].ID)
	if err != nil || !removed {
		t.Fatalf("Remove = %v %v", removed, err)
	}
	if ok, _ := m.Has("group3"); ok {
		t.Fatalf("Has(group3) after Remove = true")
	}
	if removed, _ := m.Remove("missing"); removed {
		t.Fatalf("Remove(missing) = true")
	}
}

func TestList_CorruptValueReadsEmpty(t *testing.T) {
	m, store := newManager(t)
	store.Set(Key, "[{")
	list, err := m.List()
	if err != nil || len(list) != 0 {
		t.Fatalf("List = %v %v, want empty", list, err)
	}
	if added, err := m.Toggle("group1", "Group I"); err != nil || !added {
		t.Fatalf("Toggle after corruption = %v %v", added, err)
	}
}

func TestToggle_EmptyPath(t *testing.T) {
	m, _ := newManager(t)
	if _, err := m.Toggle("", "x"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestTitle(t *testing.T) {
	crumbs := []nav.Crumb{
		{Label: "Home", Link: "#"},
		{Label: "Group I", Link: "#group1"},
		{Label: "Mains", Link: "#group1-group1-mains"},
	}
	if got := Title(crumbs); got != "Group I › Mains" {
		t.Fatalf("Title = %q", got)
	}
	if got := Title(nil); got != "" {
		t.Fatalf("Title(nil) = %q", got)
	}
	if got := Title(crumbs[:1]); got != "" {
		t.Fatalf("Title(home only) not empty")
	}
}
