package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/search"
)

// searchState is the search overlay.
type searchState struct {
	input   textinput.Model
	query   string
	results []search.Result
	cursor  int
}

func newSearchState() searchState {
	ti := textinput.New()
	ti.Placeholder = "Search notes..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	return searchState{input: ti}
}

func (m Model) openSearch() (tea.Model, tea.Cmd) {
	m.overlay = overlaySearch
	m.search.input.SetValue("")
	m.search.query = ""
	m.search.results = nil
	m.search.cursor = 0
	return m, m.search.input.Focus()
}

// handleSearchKey handles input while the search overlay is open. Results
// update as the query changes.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.overlay = overlayNone
		m.search.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if len(m.search.results) == 0 {
			return m, nil
		}
		r := m.search.results[m.search.cursor]
		m.overlay = overlayNone
		m.search.input.Blur()
		return m, m.jumpTo(r.Target, dom.Key(r.Node))
	case key.Matches(msg, m.keys.ListDown):
		if m.search.cursor < len(m.search.results)-1 {
			m.search.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.ListUp):
		if m.search.cursor > 0 {
			m.search.cursor--
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	m.runSearch()
	return m, cmd
}

// runSearch re-runs the query when the input changed.
func (m *Model) runSearch() {
	q := strings.TrimSpace(m.search.input.Value())
	if q == m.search.query {
		return
	}
	m.search.query = q
	m.search.cursor = 0
	if !m.searcher.Accepts(q) || m.ctl == nil {
		m.search.results = nil
		return
	}
	m.search.results = m.searcher.Search(m.ctl.Document(), q)
	m.log.Debug().Str("query", q).Int("results", len(m.search.results)).Msg("search")
}

// renderSearch renders the search overlay.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	width := min(m.width-4, OverlayMaxWidth)
	inner := width - 6

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Search"))
	b.WriteString("\n")
	b.WriteString(m.search.input.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(inner, 1))))
	b.WriteString("\n")

	q := m.search.query
	switch {
	case q == "":
		b.WriteString(styles.MutedText.Render("Type to search all sections"))
	case !m.searcher.Accepts(q):
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Type at least %d characters", m.searcher.MinQuery())))
	case len(m.search.results) == 0:
		b.WriteString(styles.MutedText.Render("No results found"))
	default:
		mark := func(s string) string { return styles.Mark.Render(s) }
		for i, r := range m.search.results {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.zones.Mark(zoneID(zoneResult, strconv.Itoa(i)), m.renderResult(r, i == m.search.cursor, inner, mark, styles)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("↑/↓ select · enter open · esc close"))

	box := styles.Overlay.Width(width).Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Top,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func (m Model) renderResult(r search.Result, selected bool, width int, mark func(string) string, styles Styles) string {
	cursor := "  "
	titleStyle := styles.Text.Bold(true)
	if selected {
		cursor = styles.AccentText.Render("▸ ")
		titleStyle = styles.AccentText.Bold(true)
	}
	title := search.Highlight(truncate(r.Title, width-2), m.search.query, mark)
	lines := []string{
		cursor + titleStyle.Render(title),
		"  " + styles.FaintText.Render(truncate(r.Path, width-2)),
	}
	if r.Excerpt != "" {
		excerpt := search.Highlight(truncate(r.Excerpt, width-2), m.search.query, mark)
		lines = append(lines, "  "+styles.MutedText.Render(excerpt))
	}
	return strings.Join(lines, "\n")
}
