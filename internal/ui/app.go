package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"

	"github.com/five82/notesnav/internal/bookmarks"
	"github.com/five82/notesnav/internal/kv"
	"github.com/five82/notesnav/internal/nav"
	"github.com/five82/notesnav/internal/prefs"
	"github.com/five82/notesnav/internal/printer"
	"github.com/five82/notesnav/internal/progress"
	"github.com/five82/notesnav/internal/search"
	"github.com/five82/notesnav/internal/state"
	"github.com/five82/notesnav/internal/theme"
)

// overlay is the modal layer drawn over the reader, if any.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlaySearch
	overlayBookmarks
)

// noticeKind colours the status line.
type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarning
	noticeError
)

// Replaced in tests.
var (
	writeClipboard = clipboard.WriteAll
	savePrefs      = prefs.Save
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *nav.Controller
	// Store publishes reloaded sites; Generation is the one the controller
	// currently shows.
	Store      *state.Store
	Generation int

	KV        kv.Store
	Bookmarks *bookmarks.Manager
	Progress  *progress.Tracker
	Printer   *printer.Printer
	Searcher  *search.Searcher

	Prefs     prefs.Prefs
	PrefsPath string

	Highlight    time.Duration
	Notification time.Duration
	PollTick     time.Duration
	Logger       zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctl       *nav.Controller
	store     *state.Store
	kv        kv.Store
	marks     *bookmarks.Manager
	tracker   *progress.Tracker
	printer   *printer.Printer
	searcher  *search.Searcher
	prefs     prefs.Prefs
	prefsPath string
	noticeFor time.Duration
	pollTick  time.Duration
	log       zerolog.Logger
	keys      keyMap

	// UI state
	mode    theme.Mode
	theme   Theme
	width   int
	height  int
	ready   bool
	overlay overlay

	// Content state
	generation int
	viewport   viewport.Model
	spinner    spinner.Model
	cache      *lru.Cache[string, rendered]
	view       rendered
	flash      *search.Flash
	zones      *zone.Manager

	// Header state, refreshed on navigation, bookmark edits and reloads.
	total      int
	markedPath string
	bookmarked bool

	// Status line
	notice      string
	noticeKind  noticeKind
	noticeToken uint64
	lastFailure time.Time

	search    searchState
	bookmarks bookmarkState
}

const renderCacheSize = 64

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	noticeFor := opts.Notification
	if noticeFor <= 0 {
		noticeFor = DefaultNotification
	}
	searcher := opts.Searcher
	if searcher == nil {
		searcher = search.New(search.Options{})
	}
	p := opts.Prefs
	if p.DarkPalette == "" || p.LightPalette == "" {
		p = prefs.Default()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	mode := theme.Light
	if opts.KV != nil {
		mode = theme.Load(opts.KV)
	}

	cache, err := lru.New[string, rendered](renderCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:        ctx,
		ctl:        opts.Controller,
		store:      opts.Store,
		kv:         opts.KV,
		marks:      opts.Bookmarks,
		tracker:    opts.Progress,
		printer:    opts.Printer,
		searcher:   searcher,
		prefs:      p,
		prefsPath:  prefsPath,
		noticeFor:  noticeFor,
		pollTick:   pollTick,
		log:        opts.Logger,
		keys:       DefaultKeyMap(),
		mode:       mode,
		generation: opts.Generation,
		viewport:   viewport.New(0, 0),
		spinner:    sp,
		cache:      cache,
		flash:      search.NewFlash(opts.Highlight),
		zones:      zone.New(),
		search:     newSearchState(),
	}
	m.applyTheme()
	if m.ctl != nil {
		m.total = progress.Total(m.ctl.Document())
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
	if m.ctl != nil {
		cmds = append(cmds, m.settleCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refresh()
		m.markVisible()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case settleMsg:
		if m.ctl != nil {
			m.ctl.Indicator().Settle(msg.token)
		}
		return m, nil

	case flashClearMsg:
		if m.flash.Clear(msg.token) {
			m.refresh()
		}
		return m, nil

	case noticeClearMsg:
		if msg.token == m.noticeToken {
			m.notice = ""
		}
		return m, nil

	case printDoneMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("print failed")
			return m, m.notify(msg.err.Error(), noticeError)
		}
		return m, m.notify("Sent to printer", noticeSuccess)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlaySearch:
		return m.zones.Scan(m.renderSearch())
	case overlayBookmarks:
		return m.renderBookmarks()
	}

	return m.zones.Scan(m.renderMain())
}

// renderMain renders the reader: header, navigation bars, breadcrumb,
// content and status line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	for _, bar := range m.renderBars() {
		b.WriteString(bar)
		b.WriteString("\n")
	}
	b.WriteString(m.renderBreadcrumb())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// handleTick adopts a reloaded site when the store generation moves.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store == nil || m.ctl == nil {
		return m, tea.Batch(cmds...)
	}

	if m.store.Generation() != m.generation {
		snap := m.store.Snapshot()
		if snap.Site != nil && snap.Site.Doc != nil {
			m.ctl.Reset(snap.Site.Doc.Clone())
			m.generation = snap.Generation
			m.total = progress.Total(m.ctl.Document())
			m.cache.Purge()
			m.layout()
			m.refresh()
			m.log.Info().Int("generation", snap.Generation).Msg("adopted reloaded content")
			msg := "Content reloaded"
			if n := len(snap.Site.Failed); n > 0 {
				msg = fmt.Sprintf("Content reloaded, %d section(s) failed", n)
			}
			cmds = append(cmds, m.notify(msg, noticeInfo))
		}
		return m, tea.Batch(cmds...)
	}

	snap := m.store.Snapshot()
	if snap.LastError != nil && snap.LastUpdated.After(m.lastFailure) {
		m.lastFailure = snap.LastUpdated
		cmds = append(cmds, m.notify("Reload failed: "+snap.LastError.Error(), noticeError))
	}
	return m, tea.Batch(cmds...)
}

// applyTheme resolves the palette for the current mode.
func (m *Model) applyTheme() {
	m.theme = GetTheme(m.mode, m.prefs.Palette(m.mode))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.search.input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
}

// notify shows text on the status line until the notification expires.
func (m *Model) notify(text string, kind noticeKind) tea.Cmd {
	m.noticeToken++
	m.notice = text
	m.noticeKind = kind
	token := m.noticeToken
	return tea.Tick(m.noticeFor, func(time.Time) tea.Msg {
		return noticeClearMsg{token: token}
	})
}

// notifyErr logs err and shows it.
func (m *Model) notifyErr(action string, err error) tea.Cmd {
	m.log.Error().Err(err).Str("action", action).Msg("ui action failed")
	var msg string
	switch {
	case errors.Is(err, printer.ErrPDFUnsupported):
		return m.notify(printer.PDFNotice, noticeWarning)
	case errors.Is(err, kv.ErrClosed):
		msg = action + ": storage is closed"
	default:
		msg = action + ": " + err.Error()
	}
	return m.notify(msg, noticeError)
}

// Messages

type tickMsg time.Time

type settleMsg struct{ token uint64 }

type flashClearMsg struct{ token uint64 }

type noticeClearMsg struct{ token uint64 }

type printDoneMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// settleCmd settles the indicator's latest transition after its duration.
func (m Model) settleCmd() tea.Cmd {
	ind := m.ctl.Indicator()
	token := ind.Token()
	return tea.Tick(ind.Duration(), func(time.Time) tea.Msg {
		return settleMsg{token: token}
	})
}

func (m Model) flashCmd(token uint64) tea.Cmd {
	return tea.Tick(m.flash.Duration(), func(time.Time) tea.Msg {
		return flashClearMsg{token: token}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("ui requires a navigation controller")
	}
	m := New(opts)
	defer m.zones.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
