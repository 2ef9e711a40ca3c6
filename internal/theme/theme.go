// Package theme persists the dark/light mode flag.
package theme

import (
	"fmt"
	"strings"

	"github.com/five82/notesnav/internal/kv"
)

// Key is the store key holding the mode.
const Key = "theme"

// Mode is the reader colour mode.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Parse normalises s; anything other than "dark" is light.
func Parse(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(Dark)) {
		return Dark
	}
	return Light
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Load reads the mode. Missing, invalid or unreadable values read as light.
func Load(store kv.Store) Mode {
	v, ok, err := store.Get(Key)
	if err != nil || !ok {
		return Light
	}
	return Parse(v)
}

// Set stores m.
func Set(store kv.Store, m Mode) error {
	if err := store.Set(Key, string(Parse(string(m)))); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips and stores the mode.
func Toggle(store kv.Store) (Mode, error) {
	next := Load(store).Opposite()
	return next, Set(store, next)
}
