package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens a string to the given cell width, adding an ellipsis if
// needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	return runewidth.Truncate(value, limit, "…")
}
