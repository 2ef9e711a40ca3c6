package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/notesnav/internal/bookmarks"
	"github.com/five82/notesnav/internal/theme"
)

// bookmarkState is the bookmarks overlay.
type bookmarkState struct {
	items  []bookmarks.Bookmark
	cursor int
	now    func() time.Time
}

func (m Model) openBookmarks() (tea.Model, tea.Cmd) {
	if m.marks == nil {
		return m, nil
	}
	items, err := m.marks.List()
	if err != nil {
		return m, m.notifyErr("Bookmarks", err)
	}
	m.overlay = overlayBookmarks
	m.bookmarks.items = items
	m.bookmarks.cursor = 0
	return m, nil
}

// handleBookmarksKey handles input while the bookmarks overlay is open.
func (m Model) handleBookmarksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := &m.bookmarks
	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.Bookmarks, m.keys.Quit):
		m.overlay = overlayNone
	case key.Matches(msg, m.keys.ListDown, m.keys.Down):
		if st.cursor < len(st.items)-1 {
			st.cursor++
		}
	case key.Matches(msg, m.keys.ListUp, m.keys.Up):
		if st.cursor > 0 {
			st.cursor--
		}
	case key.Matches(msg, m.keys.Confirm):
		if len(st.items) == 0 {
			return m, nil
		}
		b := st.items[st.cursor]
		m.overlay = overlayNone
		return m, m.jumpTo(b.Selection(), "")
	case key.Matches(msg, m.keys.Delete):
		if len(st.items) == 0 {
			return m, nil
		}
		b := st.items[st.cursor]
		if _, err := m.marks.Remove(b.ID); err != nil {
			return m, m.notifyErr("Remove bookmark", err)
		}
		m.syncBookmarked(true)
		st.items = slices.Delete(st.items, st.cursor, st.cursor+1)
		if st.cursor >= len(st.items) && st.cursor > 0 {
			st.cursor--
		}
		return m, m.notify("Bookmark removed", noticeInfo)
	}
	return m, nil
}

// bookmarksMarkdown lists bookmarks as a markdown document, marking the
// selected entry.
func bookmarksMarkdown(items []bookmarks.Bookmark, cursor int, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Bookmarks\n\n")
	if len(items) == 0 {
		b.WriteString("_No bookmarks yet. Press **b** on any section to add one._\n")
		return b.String()
	}
	for i, item := range items {
		title := item.Title
		if title == "" {
			title = item.Path
		}
		if i == cursor {
			fmt.Fprintf(&b, "- **▸ %s**  \n", title)
		} else {
			fmt.Fprintf(&b, "- %s  \n", title)
		}
		fmt.Fprintf(&b, "  `#%s` · %s\n", item.Selection().Hash(), humanize.RelTime(item.Timestamp, now, "ago", "from now"))
	}
	return b.String()
}

// renderBookmarks renders the bookmarks overlay.
func (m Model) renderBookmarks() string {
	styles := m.theme.Styles()
	width := min(m.width-4, OverlayMaxWidth)

	now := time.Now()
	if m.bookmarks.now != nil {
		now = m.bookmarks.now()
	}
	md := bookmarksMarkdown(m.bookmarks.items, m.bookmarks.cursor, now)

	style := "light"
	if m.mode == theme.Dark {
		style = "dark"
	}
	body := md
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-6, 20)),
	)
	if err == nil {
		if out, err := r.Render(md); err == nil {
			body = strings.Trim(out, "\n")
		}
	}

	content := body + "\n\n" + styles.FaintText.Render("↑/↓ select · enter open · d delete · esc close")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(width).
		Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
