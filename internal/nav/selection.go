package nav

import (
	"strings"
)

// Selection is the active position in the tab hierarchy. Paper implies
// SubTab implies Tab.
type Selection struct {
	Tab    string
	SubTab string
	Paper  string
	// Placeholder is set when Tab is not a known tab id; nothing is active in
	// the document and the reader shows a "coming soon" notice.
	Placeholder bool
}

// WithTab selects a tab and clears the levels below it.
func (s Selection) WithTab(id string, known bool) Selection {
	return Selection{Tab: id, Placeholder: !known}
}

// WithSubTab selects a sub-tab under the current tab and clears the paper.
// The selection is returned unchanged when there is no real tab.
func (s Selection) WithSubTab(id string) Selection {
	if s.Tab == "" || s.Placeholder || id == "" {
		return s
	}
	return Selection{Tab: s.Tab, SubTab: id}
}

// WithPaper selects a paper under the current sub-tab.
func (s Selection) WithPaper(id string) Selection {
	if s.SubTab == "" || id == "" {
		return s
	}
	s.Paper = id
	return s
}

// Valid reports whether the hierarchy holds.
func (s Selection) Valid() bool {
	if s.Paper != "" && s.SubTab == "" {
		return false
	}
	if s.SubTab != "" && (s.Tab == "" || s.Placeholder) {
		return false
	}
	return true
}

// Hash is the address form of the selection without the leading '#'. Papers
// never appear in the hash.
func (s Selection) Hash() string {
	if s.SubTab == "" {
		return s.Tab
	}
	return s.Tab + "-" + s.SubTab
}

// Path keys bookmarks, progress and search results.
func (s Selection) Path() string {
	parts := []string{s.Tab}
	if s.SubTab != "" {
		parts = append(parts, s.SubTab)
		if s.Paper != "" {
			parts = append(parts, s.Paper)
		}
	}
	return strings.Join(parts, "/")
}

// ParsePath is the inverse of Path.
func ParsePath(path string) Selection {
	parts := strings.SplitN(strings.Trim(path, "/"), "/", 3)
	sel := Selection{Tab: parts[0]}
	if len(parts) > 1 {
		sel.SubTab = parts[1]
	}
	if len(parts) > 2 {
		sel.Paper = parts[2]
	}
	return sel
}

// ParseHash splits "tab" or "tab-subTab" (leading '#' optional). Tab ids may
// contain '-', so the longest known tab id that prefixes the hash wins. When
// no known id matches, the whole hash is returned as the tab.
func ParseHash(hash string, tabs []string) (tab, subTab string) {
	hash = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(hash), "#"))
	if hash == "" {
		return "", ""
	}
	best := ""
	for _, id := range tabs {
		if len(id) <= len(best) {
			continue
		}
		if hash == id || strings.HasPrefix(hash, id+"-") {
			best = id
		}
	}
	if best == "" {
		return hash, ""
	}
	return best, strings.TrimPrefix(strings.TrimPrefix(hash, best), "-")
}
