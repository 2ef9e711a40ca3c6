// Package prefs persists the palette picked for each colour mode in
// ~/.config/notesnav/prefs.toml. The mode itself lives in the kv store with
// the rest of the reading state; palettes are per user, not per site.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/notesnav/internal/theme"
)

// Prefs holds the palette chosen for each theme mode.
type Prefs struct {
	DarkPalette  string `toml:"dark_palette"`
	LightPalette string `toml:"light_palette"`
}

const (
	defaultPrefsPath    = "~/.config/notesnav/prefs.toml"
	DefaultDarkPalette  = "Dracula"
	DefaultLightPalette = "Paper"
)

// Default returns the preferences used when no file exists.
func Default() Prefs {
	return Prefs{DarkPalette: DefaultDarkPalette, LightPalette: DefaultLightPalette}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Palette returns the palette name for mode.
func (p Prefs) Palette(mode theme.Mode) string {
	if mode == theme.Dark {
		return p.DarkPalette
	}
	return p.LightPalette
}

// WithPalette returns p with mode's palette set to name. A blank name
// restores the default.
func (p Prefs) WithPalette(mode theme.Mode, name string) Prefs {
	if mode == theme.Dark {
		p.DarkPalette = name
	} else {
		p.LightPalette = name
	}
	return p.normalized()
}

func (p Prefs) normalized() Prefs {
	p.DarkPalette = strings.TrimSpace(p.DarkPalette)
	if p.DarkPalette == "" {
		p.DarkPalette = DefaultDarkPalette
	}
	p.LightPalette = strings.TrimSpace(p.LightPalette)
	if p.LightPalette == "" {
		p.LightPalette = DefaultLightPalette
	}
	return p
}

// Load reads preferences from path (empty means DefaultPath). Preferences
// are cosmetic: a missing, unreadable or malformed file yields defaults and
// a nil error.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p.normalized(), nil
}

// Save writes p to path through a temporary file so a crash never leaves a
// half-written file behind.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
