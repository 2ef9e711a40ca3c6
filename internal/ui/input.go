package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/notesnav/internal/bookmarks"
	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/nav"
	"github.com/five82/notesnav/internal/printer"
	"github.com/five82/notesnav/internal/theme"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even inside an overlay.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.overlay = overlayNone
		}
		return m, nil
	case overlaySearch:
		return m.handleSearchKey(msg)
	case overlayBookmarks:
		return m.handleBookmarksKey(msg)
	}

	if m.ctl == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	// Navigation levels
	case key.Matches(msg, m.keys.NextTab):
		return m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		return m.cycleTab(-1)
	case key.Matches(msg, m.keys.NextSubTab):
		return m.cycleSubTab(1)
	case key.Matches(msg, m.keys.PrevSubTab):
		return m.cycleSubTab(-1)
	case key.Matches(msg, m.keys.NextPaper):
		return m.cyclePaper(1)
	case key.Matches(msg, m.keys.PrevPaper):
		return m.cyclePaper(-1)
	case key.Matches(msg, m.keys.TabByNumber):
		n, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		tabs := m.ctl.QuickNav().Tabs
		if n < 1 || n > len(tabs) {
			return m, nil
		}
		return m.selectTab(tabs[n-1].ID)
	case key.Matches(msg, m.keys.HistoryBack):
		if !m.ctl.Back() {
			return m, m.notify("No earlier page", noticeInfo)
		}
		return m, m.navigated()
	case key.Matches(msg, m.keys.HistoryFwd):
		if !m.ctl.Forward() {
			return m, m.notify("No later page", noticeInfo)
		}
		return m, m.navigated()

	// Scrolling
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()

	// Actions
	case key.Matches(msg, m.keys.Search):
		return m.openSearch()
	case key.Matches(msg, m.keys.Bookmarks):
		return m.openBookmarks()
	case key.Matches(msg, m.keys.ToggleBookmark):
		return m, m.toggleBookmark()
	case key.Matches(msg, m.keys.Print):
		return m, m.printPanel()
	case key.Matches(msg, m.keys.ExportPDF):
		return m, m.notifyErr("Export PDF", printer.ExportPDF())
	case key.Matches(msg, m.keys.ToggleDark):
		return m, m.toggleDark()
	case key.Matches(msg, m.keys.CyclePalette):
		return m, m.cyclePalette()
	case key.Matches(msg, m.keys.CopyLink):
		return m, m.copyLink()
	default:
		return m, nil
	}

	m.markVisible()
	return m, nil
}

// cycleTab moves to the neighbouring top-level tab.
func (m Model) cycleTab(delta int) (tea.Model, tea.Cmd) {
	q := m.ctl.QuickNav()
	id, ok := neighbour(q.Tabs, q.TabIndex(), delta)
	if !ok {
		return m, nil
	}
	return m.selectTab(id)
}

func (m Model) selectTab(id string) (tea.Model, tea.Cmd) {
	if !m.ctl.SelectTab(id) {
		return m, nil
	}
	return m, m.navigated()
}

func (m Model) cycleSubTab(delta int) (tea.Model, tea.Cmd) {
	q := m.ctl.QuickNav()
	id, ok := neighbour(q.SubTabs, q.SubTabIndex(), delta)
	if !ok {
		return m, nil
	}
	if !m.ctl.SelectSubTab(id) {
		return m, nil
	}
	return m, m.navigated()
}

func (m Model) cyclePaper(delta int) (tea.Model, tea.Cmd) {
	q := m.ctl.QuickNav()
	id, ok := neighbour(q.Papers, q.PaperIndex(), delta)
	if !ok {
		return m, nil
	}
	if !m.ctl.SelectPaperTab(id) {
		return m, nil
	}
	return m, m.navigated()
}

// neighbour returns the id delta steps from current, wrapping around. With no
// active item it starts at the first (or last, going backwards).
func neighbour(items []nav.NavItem, current, delta int) (string, bool) {
	n := len(items)
	if n == 0 {
		return "", false
	}
	var i int
	switch {
	case current < 0 && delta < 0:
		i = n - 1
	case current < 0:
		i = 0
	default:
		i = ((current+delta)%n + n) % n
	}
	if i == current {
		return "", false
	}
	return items[i].ID, true
}

func (m *Model) toggleBookmark() tea.Cmd {
	if m.marks == nil {
		return nil
	}
	sel := m.ctl.Selection()
	if sel.Placeholder || sel.Tab == "" {
		return m.notify("Nothing to bookmark here", noticeWarning)
	}
	title := bookmarks.Title(m.ctl.Breadcrumb())
	added, err := m.marks.Toggle(sel.Path(), title)
	if err != nil {
		return m.notifyErr("Bookmark", err)
	}
	m.syncBookmarked(true)
	if added {
		return m.notify("Bookmarked: "+title, noticeSuccess)
	}
	return m.notify("Bookmark removed", noticeInfo)
}

// printPanel snapshots the active panel and spools it in the background.
func (m *Model) printPanel() tea.Cmd {
	if m.printer == nil {
		return nil
	}
	doc, err := m.printer.Snapshot(m.ctl.ActivePanel())
	if err != nil {
		return m.notifyErr("Print", err)
	}
	ctx, p := m.ctx, m.printer
	return tea.Batch(
		m.notify("Printing...", noticeInfo),
		func() tea.Msg {
			return printDoneMsg{err: p.Print(ctx, doc)}
		},
	)
}

func (m *Model) toggleDark() tea.Cmd {
	m.mode = m.mode.Opposite()
	m.applyTheme()
	m.refresh()
	if m.kv == nil {
		return nil
	}
	if err := theme.Set(m.kv, m.mode); err != nil {
		return m.notifyErr("Save theme", err)
	}
	return nil
}

func (m *Model) cyclePalette() tea.Cmd {
	name := NextPalette(m.mode, m.theme.Name)
	m.prefs = m.prefs.WithPalette(m.mode, name)
	m.applyTheme()
	m.refresh()
	if err := savePrefs(m.prefsPath, m.prefs); err != nil {
		return m.notifyErr("Save palette", err)
	}
	return m.notify("Palette: "+name, noticeInfo)
}

func (m *Model) copyLink() tea.Cmd {
	hash := m.ctl.Hash()
	if err := writeClipboard(hash); err != nil {
		return m.notifyErr("Copy link", err)
	}
	return m.notify("Copied "+hash, noticeSuccess)
}

// handleMouse handles clicks on navigation zones and wheel scrolling.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ctl == nil {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		if m.overlay == overlayNone {
			m.viewport.ScrollDown(3)
			m.markVisible()
		}
		return m, nil
	case tea.MouseButtonWheelUp:
		if m.overlay == overlayNone {
			m.viewport.ScrollUp(3)
			m.markVisible()
		}
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch m.overlay {
	case overlayNone:
		q := m.ctl.QuickNav()
		for _, item := range q.Tabs {
			if m.clicked(zoneID(zoneTab, item.ID), msg) {
				return m.selectTab(item.ID)
			}
		}
		for _, item := range q.SubTabs {
			if m.clicked(zoneID(zoneSubTab, item.ID), msg) && m.ctl.SelectSubTab(item.ID) {
				return m, m.navigated()
			}
		}
		for _, item := range q.Papers {
			if m.clicked(zoneID(zonePaper, item.ID), msg) && m.ctl.SelectPaperTab(item.ID) {
				return m, m.navigated()
			}
		}
		for i, crumb := range m.ctl.Breadcrumb() {
			if !m.clicked(zoneID(zoneCrumb, strconv.Itoa(i)), msg) {
				continue
			}
			return m.followCrumb(crumb)
		}
	case overlaySearch:
		for i, r := range m.search.results {
			if m.clicked(zoneID(zoneResult, strconv.Itoa(i)), msg) {
				m.overlay = overlayNone
				return m, m.jumpTo(r.Target, dom.Key(r.Node))
			}
		}
	}
	return m, nil
}

// followCrumb navigates to a breadcrumb link. Home returns to the default tab.
func (m Model) followCrumb(c nav.Crumb) (tea.Model, tea.Cmd) {
	hash := strings.TrimPrefix(c.Link, "#")
	if hash == "" {
		hash = m.ctl.Manifest().DefaultTab
	}
	if "#"+hash == m.ctl.Hash() {
		return m, nil
	}
	if !m.ctl.HandleHistoryNavigation("#" + hash) {
		return m, nil
	}
	m.ctl.History().Push(m.ctl.Hash())
	return m, m.navigated()
}

func (m Model) clicked(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

// Zone id prefixes for clickable regions.
const (
	zoneTab    = "tab"
	zoneSubTab = "sub"
	zonePaper  = "paper"
	zoneCrumb  = "crumb"
	zoneResult = "result"
)

func zoneID(kind, id string) string {
	return fmt.Sprintf("%s:%s", kind, id)
}
