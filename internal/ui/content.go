package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/notesnav/internal/nav"
)

// placeholderText fills the content area for a tab with no panel.
const placeholderText = "Content Coming Soon"

// layout sizes the viewport to the space left by the chrome.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	chrome := 3 + len(m.renderBars()) // header, breadcrumb, status
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

// refresh renders the active panel into the viewport, reusing cached layouts.
func (m *Model) refresh() {
	if !m.ready || m.ctl == nil {
		return
	}
	m.layout()
	sel := m.ctl.Selection()
	mark, _ := m.flash.Active()
	key := fmt.Sprintf("%d|%s|%t|%d|%s|%s|%s", m.generation, sel.Path(), sel.Placeholder, m.width, m.theme.Name, m.mode, mark)

	view, ok := m.cache.Get(key)
	if !ok {
		if sel.Placeholder || m.ctl.ActivePanel() == nil {
			view = m.placeholder()
		} else {
			view = renderPanel(m.ctl.ActivePanel(), m.width-2, m.theme.Styles(), mark)
		}
		m.cache.Add(key, view)
	}
	m.view = view

	lines := make([]string, len(view.lines))
	for i, line := range view.lines {
		lines[i] = " " + line
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.syncBookmarked(false)
}

// syncBookmarked reloads the breadcrumb star when the selection moved, or
// always when force is set after a bookmark edit.
func (m *Model) syncBookmarked(force bool) {
	if m.ctl == nil {
		return
	}
	path := ""
	if sel := m.ctl.Selection(); !sel.Placeholder && sel.Tab != "" {
		path = sel.Path()
	}
	if !force && path == m.markedPath {
		return
	}
	m.markedPath = path
	m.bookmarked = false
	if m.marks == nil || path == "" {
		return
	}
	has, err := m.marks.Has(path)
	if err != nil {
		m.log.Warn().Err(err).Str("path", path).Msg("read bookmarks")
		return
	}
	m.bookmarked = has
}

func (m Model) placeholder() rendered {
	styles := m.theme.Styles()
	block := lipgloss.NewStyle().
		Width(m.width - 2).
		Align(lipgloss.Center).
		Render(styles.MutedText.Bold(true).Render(placeholderText))
	return rendered{lines: append([]string{"", ""}, strings.Split(block, "\n")...)}
}

// navigated resets scrolling after a selection change and records progress.
func (m *Model) navigated() tea.Cmd {
	m.refresh()
	m.viewport.GotoTop()
	m.markVisible()
	return m.settleCmd()
}

// jumpTo selects target, scrolls its card into view and flashes it.
func (m *Model) jumpTo(target nav.Selection, cardKey string) tea.Cmd {
	if !m.ctl.Select(target) {
		return m.notify("Section not found: "+target.Path(), noticeWarning)
	}
	cmds := []tea.Cmd{m.settleCmd()}
	if cardKey != "" {
		token := m.flash.Begin(cardKey)
		cmds = append(cmds, m.flashCmd(token))
	}
	m.refresh()
	m.viewport.GotoTop()
	if a, ok := m.view.anchorFor(cardKey); ok {
		m.viewport.SetYOffset(a.start)
	}
	m.markVisible()
	return tea.Batch(cmds...)
}

// markVisible records the cards on screen as viewed.
func (m *Model) markVisible() {
	if m.tracker == nil || m.ctl == nil {
		return
	}
	sel := m.ctl.Selection()
	if sel.Placeholder {
		return
	}
	keys := m.view.visible(m.viewport.YOffset, m.viewport.Height)
	if len(keys) == 0 {
		return
	}
	if _, err := m.tracker.MarkViewed(sel.Path(), keys...); err != nil {
		m.log.Warn().Err(err).Str("path", sel.Path()).Msg("record progress")
	}
}
