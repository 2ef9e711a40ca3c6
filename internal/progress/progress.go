// Package progress records what the reader has seen: the elements viewed
// under each selection path and the set of tabs and sub-tabs visited.
package progress

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/kv"
	"github.com/five82/notesnav/internal/nav"
)

// Store keys.
const (
	KeyProgress = "progress"
	KeyVisited  = "visitedTabs"
)

// Tracker is not safe for concurrent use.
type Tracker struct {
	store   kv.Store
	log     zerolog.Logger
	viewed  map[string]map[string]struct{}
	visited map[string]struct{}
}

// New loads the persisted progress. alwaysVisited (the default tab) counts
// as visited from the start. Corrupt values are discarded with a warning.
func New(store kv.Store, log zerolog.Logger, alwaysVisited string) (*Tracker, error) {
	t := &Tracker{
		store:   store,
		log:     log,
		viewed:  make(map[string]map[string]struct{}),
		visited: make(map[string]struct{}),
	}
	var raw map[string][]string
	if err := t.load(KeyProgress, &raw); err != nil {
		return nil, err
	}
	for path, ids := range raw {
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		t.viewed[path] = set
	}
	var visited []string
	if err := t.load(KeyVisited, &visited); err != nil {
		return nil, err
	}
	for _, id := range visited {
		t.visited[id] = struct{}{}
	}
	if alwaysVisited != "" {
		t.visited[alwaysVisited] = struct{}{}
	}
	return t, nil
}

func (t *Tracker) load(key string, v any) error {
	if _, err := kv.GetJSON(t.store, key, v); err != nil {
		if errors.Is(err, kv.ErrCorrupt) {
			t.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable progress")
			return nil
		}
		return fmt.Errorf("load %s: %w", key, err)
	}
	return nil
}

// Attach marks every tab and sub-tab the controller selects as visited.
func (t *Tracker) Attach(c *nav.Controller) {
	c.OnChange(func(sel nav.Selection) {
		if sel.Placeholder {
			return
		}
		for _, id := range []string{sel.Tab, sel.SubTab} {
			if id == "" {
				continue
			}
			if err := t.MarkVisited(id); err != nil {
				t.log.Warn().Err(err).Str("id", id).Msg("record visit")
			}
		}
	})
}

// MarkViewed adds element ids to the set for path and persists the log when
// it grew. It returns the number of new ids.
func (t *Tracker) MarkViewed(path string, ids ...string) (int, error) {
	if path == "" {
		return 0, nil
	}
	set := t.viewed[path]
	if set == nil {
		set = make(map[string]struct{})
	}
	added := 0
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := set[id]; !ok {
			set[id] = struct{}{}
			added++
		}
	}
	if added == 0 {
		return 0, nil
	}
	t.viewed[path] = set
	out := make(map[string][]string, len(t.viewed))
	for p, s := range t.viewed {
		out[p] = sorted(s)
	}
	if err := kv.SetJSON(t.store, KeyProgress, out); err != nil {
		return added, fmt.Errorf("save progress: %w", err)
	}
	return added, nil
}

// Viewed returns the sorted element ids viewed under path.
func (t *Tracker) Viewed(path string) []string {
	return sorted(t.viewed[path])
}

// Paths returns every path with recorded views, sorted.
func (t *Tracker) Paths() []string {
	paths := make([]string, 0, len(t.viewed))
	for p := range t.viewed {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// MarkVisited records a tab or sub-tab id.
func (t *Tracker) MarkVisited(id string) error {
	if _, ok := t.visited[id]; ok {
		return nil
	}
	t.visited[id] = struct{}{}
	if err := kv.SetJSON(t.store, KeyVisited, sorted(t.visited)); err != nil {
		return fmt.Errorf("save visited tabs: %w", err)
	}
	return nil
}

// Visited returns the visited ids, sorted.
func (t *Tracker) Visited() []string {
	return sorted(t.visited)
}

// Percent is the share of total navigable items visited, capped at 100.
func (t *Tracker) Percent(total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Min(float64(len(t.visited))/float64(total)*100, 100)
}

// Total counts the tab and sub-tab controls in doc.
func Total(doc *dom.Document) int {
	return len(dom.FindAll(doc.Root(), dom.Any(dom.HasAttr(nav.AttrTab), dom.HasAttr(nav.AttrSubTab))))
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
