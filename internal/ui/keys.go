package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the reader.
type keyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding

	// Navigation levels
	NextTab     key.Binding
	PrevTab     key.Binding
	NextSubTab  key.Binding
	PrevSubTab  key.Binding
	NextPaper   key.Binding
	PrevPaper   key.Binding
	TabByNumber key.Binding
	HistoryBack key.Binding
	HistoryFwd  key.Binding

	// Scrolling
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Actions
	Search         key.Binding
	ToggleBookmark key.Binding
	Bookmarks      key.Binding
	Print          key.Binding
	ExportPDF      key.Binding
	ToggleDark     key.Binding
	CyclePalette   key.Binding
	CopyLink       key.Binding

	// Overlays
	Confirm  key.Binding
	Delete   key.Binding
	ListUp   key.Binding
	ListDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "Previous tab"),
		),
		NextSubTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next section"),
		),
		PrevSubTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous section"),
		),
		NextPaper: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Next paper"),
		),
		PrevPaper: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "Previous paper"),
		),
		TabByNumber: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Jump to tab"),
		),
		HistoryBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Back"),
		),
		HistoryFwd: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Forward"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdown", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Search: key.NewBinding(
			key.WithKeys("/", "ctrl+f"),
			key.WithHelp("/", "Search"),
		),
		ToggleBookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Toggle bookmark"),
		),
		Bookmarks: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Bookmarks"),
		),
		Print: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "Print section"),
		),
		ExportPDF: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Export PDF"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Dark/light mode"),
		),
		CyclePalette: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle palette"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy link"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Remove"),
		),
		ListUp: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("up", "Previous"),
		),
		ListDown: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("down", "Next"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.NextSubTab, k.PrevSubTab, k.NextPaper, k.PrevPaper, k.TabByNumber, k.HistoryBack, k.HistoryFwd},
		{k.Down, k.Up, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.Search, k.ToggleBookmark, k.Bookmarks, k.CopyLink},
		{k.Print, k.ExportPDF},
		{k.ToggleDark, k.CyclePalette, k.Help, k.Quit},
	}
}
