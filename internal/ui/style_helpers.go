package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// band paints the header, bars and status line on one background colour.
// Lipgloss resets between styled segments would otherwise leave unpainted
// gaps, so every segment and every space carries the background itself.
type band struct {
	bg    lipgloss.Color
	space string
}

func newBand(color string) band {
	bg := lipgloss.Color(color)
	return band{bg: bg, space: lipgloss.NewStyle().Background(bg).Render(" ")}
}

// text renders s word by word so the spaces between words stay painted.
func (b band) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// pad returns n painted spaces.
func (b band) pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(b.space, n)
}

// fill pads rendered content to width.
func (b band) fill(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}
