// Package site describes the layout of a notes site: which tabs exist, where
// their fragments live, and how identifiers are displayed.
package site

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file name of the manifest at the root of a site.
const ManifestName = "site.yaml"

//go:embed sample
var sampleFS embed.FS

// Tab is a top-level navigation entry.
type Tab struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Icon     string `yaml:"icon"`
	Fragment string `yaml:"fragment"`
}

// Section injects a fragment into an existing element of a tab fragment.
type Section struct {
	Target   string `yaml:"target"`
	Fragment string `yaml:"fragment"`
}

// Label is the display name and icon class of a sub-tab or paper.
type Label struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

// Layout names the shared fragments injected around the content.
type Layout struct {
	Header     string `yaml:"header"`
	Navigation string `yaml:"navigation"`
	Footer     string `yaml:"footer"`
}

// Manifest is the parsed site.yaml.
type Manifest struct {
	Title      string           `yaml:"title"`
	DefaultTab string           `yaml:"default_tab"`
	Shell      string           `yaml:"shell"`
	Layout     Layout           `yaml:"layout"`
	Tabs       []Tab            `yaml:"tabs"`
	Sections   []Section        `yaml:"sections"`
	Names      map[string]Label `yaml:"names"`
}

const (
	defaultShell = "index.html"
	defaultTitle = "Notes"
	homeIcon     = "fas fa-home"
)

// Parse decodes a manifest and fills defaults.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Tabs) == 0 {
		return Manifest{}, fmt.Errorf("parse manifest: no tabs declared")
	}
	seen := make(map[string]struct{}, len(m.Tabs))
	for i, tab := range m.Tabs {
		id := strings.TrimSpace(tab.ID)
		if id == "" {
			return Manifest{}, fmt.Errorf("parse manifest: tab %d has no id", i)
		}
		if _, dup := seen[id]; dup {
			return Manifest{}, fmt.Errorf("parse manifest: duplicate tab id %q", id)
		}
		seen[id] = struct{}{}
		m.Tabs[i].ID = id
		if strings.TrimSpace(tab.Name) == "" {
			m.Tabs[i].Name = Humanize(id)
		}
	}
	if strings.TrimSpace(m.Title) == "" {
		m.Title = defaultTitle
	}
	if strings.TrimSpace(m.Shell) == "" {
		m.Shell = defaultShell
	}
	if _, ok := seen[m.DefaultTab]; !ok {
		m.DefaultTab = m.Tabs[0].ID
	}
	if m.Names == nil {
		m.Names = make(map[string]Label)
	}
	return m, nil
}

// Load reads the manifest from the root of fsys.
func Load(fsys fs.FS) (Manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestName)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Sample returns the embedded example site.
func Sample() fs.FS {
	sub, err := fs.Sub(sampleFS, "sample")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}

// TabIDs returns the known tab ids in declaration order.
func (m Manifest) TabIDs() []string {
	ids := make([]string, len(m.Tabs))
	for i, tab := range m.Tabs {
		ids[i] = tab.ID
	}
	return ids
}

// IsTab reports whether id is a known tab.
func (m Manifest) IsTab(id string) bool {
	_, ok := m.tab(id)
	return ok
}

func (m Manifest) tab(id string) (Tab, bool) {
	for _, tab := range m.Tabs {
		if tab.ID == id {
			return tab, true
		}
	}
	return Tab{}, false
}

// HomeLabel is the first breadcrumb entry.
func (m Manifest) HomeLabel() Label {
	return Label{Name: "Home", Icon: homeIcon}
}

// Label resolves the display name and icon for any identifier. Unknown ids
// are humanized with the parent prefix stripped.
func (m Manifest) Label(id, parent string) Label {
	if tab, ok := m.tab(id); ok {
		return Label{Name: tab.Name, Icon: tab.Icon}
	}
	if label, ok := m.Names[id]; ok && label.Name != "" {
		return label
	}
	return Label{Name: Humanize(strings.TrimPrefix(id, parent+"-"))}
}

// Humanize turns "current-affairs" into "Current Affairs".
func Humanize(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
