// Package bookmarks keeps the ordered list of bookmarked selection paths.
package bookmarks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/five82/notesnav/internal/kv"
	"github.com/five82/notesnav/internal/nav"
)

// Key is the store key holding the JSON array of bookmarks.
const Key = "bookmarks"

// TitleSeparator joins breadcrumb labels into a bookmark title.
const TitleSeparator = " › "

// Bookmark is one saved selection path.
type Bookmark struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// Selection returns the selection the bookmark points at.
func (b Bookmark) Selection() nav.Selection {
	return nav.ParsePath(b.Path)
}

// Manager reads and writes bookmarks in a kv.Store.
type Manager struct {
	store kv.Store
	log   zerolog.Logger
	now   func() time.Time
}

// New returns a manager over store.
func New(store kv.Store, log zerolog.Logger) *Manager {
	return &Manager{store: store, log: log, now: time.Now}
}

// Title builds the default bookmark title from a breadcrumb, skipping Home.
func Title(crumbs []nav.Crumb) string {
	labels := make([]string, 0, len(crumbs))
	for i, c := range crumbs {
		if i == 0 && c.Link == "#" {
			continue
		}
		labels = append(labels, c.Label)
	}
	return strings.Join(labels, TitleSeparator)
}

// List returns bookmarks newest first. A corrupt stored value reads as empty.
func (m *Manager) List() ([]Bookmark, error) {
	var list []Bookmark
	if _, err := kv.GetJSON(m.store, Key, &list); err != nil {
		if errors.Is(err, kv.ErrCorrupt) {
			m.log.Warn().Err(err).Msg("discarding unreadable bookmarks")
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// Has reports whether path is bookmarked.
func (m *Manager) Has(path string) (bool, error) {
	list, err := m.List()
	if err != nil {
		return false, err
	}
	return indexOfPath(list, path) >= 0, nil
}

// Toggle removes the bookmark for path if present, otherwise prepends one.
// It reports whether a bookmark was added.
func (m *Manager) Toggle(path, title string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("toggle bookmark: empty path")
	}
	list, err := m.List()
	if err != nil {
		return false, err
	}
	if i := indexOfPath(list, path); i >= 0 {
		list = append(list[:i], list[i+1:]...)
		return false, m.save(list)
	}
	if title == "" {
		title = path
	}
	b := Bookmark{
		ID:        uuid.NewString(),
		Path:      path,
		Title:     title,
		Timestamp: m.now().UTC().Truncate(time.Second),
	}
	list = append([]Bookmark{b}, list...)
	m.log.Debug().Str("path", path).Str("id", b.ID).Msg("bookmark added")
	return true, m.save(list)
}

// Remove deletes the bookmark with id. It reports whether one was removed.
func (m *Manager) Remove(id string) (bool, error) {
	list, err := m.List()
	if err != nil {
		return false, err
	}
	for i, b := range list {
		if b.ID == id {
			list = append(list[:i], list[i+1:]...)
			return true, m.save(list)
		}
	}
	return false, nil
}

func (m *Manager) save(list []Bookmark) error {
	if list == nil {
		list = []Bookmark{}
	}
	if err := kv.SetJSON(m.store, Key, list); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}

func indexOfPath(list []Bookmark, path string) int {
	for i, b := range list {
		if b.Path == path {
			return i
		}
	}
	return -1
}
