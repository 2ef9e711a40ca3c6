package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/notesnav/internal/nav"
)

// renderHeader renders the title bar: site title, progress, transition
// spinner and theme.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBand(m.theme.Surface)
	sep := bg.pad(2)

	title := "notesnav"
	if m.ctl != nil {
		if t := strings.TrimSpace(m.ctl.Manifest().Title); t != "" {
			title = t
		}
	}
	parts := []string{bg.text(title, styles.Logo)}

	if m.tracker != nil && m.ctl != nil {
		pct := m.tracker.Percent(m.total)
		parts = append(parts,
			bg.text("Progress:", styles.MutedText)+bg.pad(1)+
				bg.text(fmt.Sprintf("%.0f%%", pct), progressStyle(pct, styles)))
	}

	if m.ctl != nil && m.ctl.Indicator().State() == nav.Transitioning {
		parts = append(parts, bg.text(m.spinner.View(), styles.AccentText))
	}

	if m.width >= LayoutCompactWidth {
		parts = append(parts,
			bg.text(string(m.mode), styles.FaintText)+bg.pad(1)+
				bg.text(m.theme.Name, styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func progressStyle(pct float64, styles Styles) lipgloss.Style {
	switch {
	case pct >= 100:
		return styles.SuccessText.Bold(true)
	case pct >= 50:
		return styles.InfoText
	default:
		return styles.WarningText
	}
}

// renderBars renders one row per active navigation level.
func (m Model) renderBars() []string {
	if m.ctl == nil {
		return nil
	}
	q := m.ctl.QuickNav()
	bars := []string{m.renderBar(q.Tabs, zoneTab, true)}
	if len(q.SubTabs) > 0 {
		bars = append(bars, m.renderBar(q.SubTabs, zoneSubTab, false))
	}
	if len(q.Papers) > 0 {
		bars = append(bars, m.renderBar(q.Papers, zonePaper, false))
	}
	return bars
}

// renderBar lays items out left to right, numbering top-level tabs, and
// drops items that do not fit while keeping the active one visible.
func (m Model) renderBar(items []nav.NavItem, kind string, numbered bool) string {
	styles := m.theme.Styles()
	bg := newBand(m.theme.Background)

	labels := make([]string, len(items))
	for i, item := range items {
		label := item.Label
		if numbered && i < 9 {
			label = strconv.Itoa(i+1) + " " + label
		}
		labels[i] = " " + label + " "
	}

	first := visibleFrom(labels, activeIndex(items), m.width)
	var b strings.Builder
	used := 0
	if first > 0 {
		b.WriteString(bg.text("‹", styles.FaintText))
		used++
	}
	for i := first; i < len(items); i++ {
		w := runewidth.StringWidth(labels[i]) + 1
		if used+w > m.width {
			b.WriteString(bg.text("›", styles.FaintText))
			break
		}
		style := styles.Tab
		if items[i].Active {
			style = styles.ActiveTab
		}
		b.WriteString(m.zones.Mark(zoneID(kind, items[i].ID), style.Render(labels[i])))
		b.WriteString(bg.pad(1))
		used += w
	}
	return bg.fill(b.String(), m.width)
}

func activeIndex(items []nav.NavItem) int {
	for i, item := range items {
		if item.Active {
			return i
		}
	}
	return -1
}

// visibleFrom returns the first label to draw so the active one fits.
func visibleFrom(labels []string, active, width int) int {
	if active <= 0 {
		return 0
	}
	first := 0
	for first < active {
		total := 1
		for i := first; i <= active; i++ {
			total += runewidth.StringWidth(labels[i]) + 1
		}
		if total <= width-1 {
			break
		}
		first++
	}
	return first
}

// renderBreadcrumb renders Home › Tab › Section › Paper.
func (m Model) renderBreadcrumb() string {
	styles := m.theme.Styles()
	bg := newBand(m.theme.Background)
	if m.ctl == nil {
		return bg.fill("", m.width)
	}
	crumbs := m.ctl.Breadcrumb()
	parts := make([]string, 0, len(crumbs))
	for i, c := range crumbs {
		style := styles.MutedText
		if i == len(crumbs)-1 {
			style = styles.Text.Bold(true)
		}
		parts = append(parts, m.zones.Mark(zoneID(zoneCrumb, strconv.Itoa(i)), bg.text(c.Label, style)))
	}
	line := bg.pad(1) + strings.Join(parts, bg.text(" › ", styles.FaintText))
	if m.bookmarked {
		line += bg.pad(2) + bg.text("★", styles.WarningText)
	}
	return bg.fill(line, m.width)
}

// renderStatus renders the notice or key hints, and the scroll position.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBand(m.theme.Surface)

	var left string
	if m.notice != "" {
		style := styles.Text
		switch m.noticeKind {
		case noticeSuccess:
			style = styles.SuccessText
		case noticeWarning:
			style = styles.WarningText
		case noticeError:
			style = styles.DangerText
		}
		left = bg.pad(1) + bg.text(truncate(m.notice, m.width-8), style)
	} else {
		left = m.renderHints(styles, bg)
	}

	right := ""
	if m.viewport.TotalLineCount() > m.viewport.Height {
		right = bg.text(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100), styles.FaintText) + bg.pad(1)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return styles.Footer.Width(m.width).Render(left)
	}
	return styles.Footer.Width(m.width).Render(left + bg.pad(gap) + right)
}

func (m Model) renderHints(styles Styles, bg band) string {
	type hint struct{ key, desc string }
	hints := []hint{
		{"h/l", "Tabs"},
		{"tab", "Sections"},
		{"/", "Search"},
		{"b", "Bookmark"},
		{"B", "Bookmarks"},
		{"D", "Dark"},
		{"?", "Help"},
	}
	if m.width < LayoutCompactWidth {
		hints = hints[:4]
	}
	colon := bg.text(":", styles.FaintText)
	segments := make([]string, 0, len(hints))
	for _, h := range hints {
		segments = append(segments, bg.text(h.key, styles.AccentText)+colon+bg.text(h.desc, styles.MutedText))
	}
	return bg.pad(1) + strings.Join(segments, bg.pad(2))
}
