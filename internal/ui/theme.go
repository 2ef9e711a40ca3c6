package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/notesnav/internal/theme"
)

// Theme defines colors for one palette.
type Theme struct {
	Name string
	Mode theme.Mode

	// Base colors
	Background string // Outermost background
	Surface    string // Header and bars
	SurfaceAlt string // Overlays
	FocusBg    string // Active tab background

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Mark is the background of search matches and flashed cards.
	Mark string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		ActiveTab: lipgloss.NewStyle().
			Background(lipgloss.Color(t.FocusBg)).
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Heading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Subheading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Bold(true),

		Mark: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Mark)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Logo      lipgloss.Style
	Selected  lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
	Overlay   lipgloss.Style

	// Content
	Heading    lipgloss.Style
	Subheading lipgloss.Style
	Mark       lipgloss.Style
}

// WithBackground returns a copy of Styles with all text styles having the specified background.
// This ensures styled text has explicit backgrounds instead of transparent/inherit.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Background = s.Background.Background(bg)
	out.Surface = s.Surface.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Footer = s.Footer.Background(bg)
	out.Logo = s.Logo.Background(bg)
	out.Tab = s.Tab.Background(bg)
	return out
}

// Theme definitions

var palettes = map[theme.Mode]map[string]Theme{
	theme.Dark: {
		"Dracula": draculaTheme(),
		"Slate":   slateTheme(),
	},
	theme.Light: {
		"Paper": paperTheme(),
		"Latte": latteTheme(),
	},
}

var paletteOrder = map[theme.Mode][]string{
	theme.Dark:  {"Dracula", "Slate"},
	theme.Light: {"Paper", "Latte"},
}

// GetTheme returns the named palette for mode, or the mode's first palette.
func GetTheme(mode theme.Mode, name string) Theme {
	mode = theme.Parse(string(mode))
	if t, ok := palettes[mode][name]; ok {
		return t
	}
	return palettes[mode][paletteOrder[mode][0]]
}

// NextPalette returns the next palette name in the cycle for mode.
func NextPalette(mode theme.Mode, current string) string {
	order := paletteOrder[theme.Parse(string(mode))]
	for i, name := range order {
		if name == current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// PaletteNames returns the palettes available in mode.
func PaletteNames(mode theme.Mode) []string {
	return paletteOrder[theme.Parse(string(mode))]
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",
		Mode: theme.Dark,

		Background: "#191A21", // BGDarker
		Surface:    "#282A36", // Background
		SurfaceAlt: "#21222C", // BGDark
		FocusBg:    "#343746", // BGLight

		SelectionBg:   "#44475A", // Selection
		SelectionText: "#F8F8F2", // Foreground

		Border:      "#44475A",
		BorderFocus: "#BD93F9", // Purple

		Text:    "#F8F8F2",
		Muted:   "#6272A4", // Comment
		Faint:   "#44475A",
		Accent:  "#BD93F9",
		Success: "#50FA7B",
		Warning: "#FFB86C",
		Danger:  "#FF5555",
		Info:    "#8BE9FD",

		Mark: "#6D4C8F",
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",
		Mode: theme.Dark,

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
		Info:    "#06b6d4",

		Mark: "#0369a1", // sky-700
	}
}

func paperTheme() Theme {
	// The site's light stylesheet colours.
	return Theme{
		Name: "Paper",
		Mode: theme.Light,

		Background: "#f5f7fa",
		Surface:    "#ffffff",
		SurfaceAlt: "#eef1f5",
		FocusBg:    "#e3e8f0",

		SelectionBg:   "#667eea",
		SelectionText: "#ffffff",

		Border:      "#d1d9e6",
		BorderFocus: "#667eea",

		Text:    "#2d3748",
		Muted:   "#4a5568",
		Faint:   "#a0aec0",
		Accent:  "#5a67d8",
		Success: "#2f855a",
		Warning: "#c05621",
		Danger:  "#c53030",
		Info:    "#2b6cb0",

		Mark: "#764ba2",
	}
}

func latteTheme() Theme {
	// Catppuccin Latte: https://catppuccin.com/palette
	return Theme{
		Name: "Latte",
		Mode: theme.Light,

		Background: "#dce0e8", // crust
		Surface:    "#eff1f5", // base
		SurfaceAlt: "#e6e9ef", // mantle
		FocusBg:    "#ccd0da", // surface0

		SelectionBg:   "#1e66f5", // blue
		SelectionText: "#eff1f5",

		Border:      "#bcc0cc", // surface1
		BorderFocus: "#8839ef", // mauve

		Text:    "#4c4f69",
		Muted:   "#6c6f85", // subtext0
		Faint:   "#9ca0b0", // overlay0
		Accent:  "#8839ef",
		Success: "#40a02b",
		Warning: "#fe640b",
		Danger:  "#d20f39",
		Info:    "#04a5e5",

		Mark: "#7287fd", // lavender
	}
}
