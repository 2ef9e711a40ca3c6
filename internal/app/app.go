package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/notesnav/internal/bookmarks"
	"github.com/five82/notesnav/internal/config"
	"github.com/five82/notesnav/internal/content"
	"github.com/five82/notesnav/internal/kv"
	"github.com/five82/notesnav/internal/logging"
	"github.com/five82/notesnav/internal/nav"
	"github.com/five82/notesnav/internal/prefs"
	"github.com/five82/notesnav/internal/printer"
	"github.com/five82/notesnav/internal/progress"
	"github.com/five82/notesnav/internal/search"
	"github.com/five82/notesnav/internal/state"
	"github.com/five82/notesnav/internal/ui"
)

// Options configure a notesnav session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/notesnav/prefs.toml
	Content    string // overrides the configured content location
	Verbose    bool
	// AutoSettle settles the loading indicator on a timer. Set by hosts
	// that do not run the reader UI.
	AutoSettle bool
}

// Session holds the loaded site and the components built around it. The CLI
// commands and the reader UI share it.
type Session struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Log       zerolog.Logger

	Source     content.Source
	Loader     *content.Loader
	Site       *content.Site
	Store      *state.Store
	KV         kv.Store
	Controller *nav.Controller
	Bookmarks  *bookmarks.Manager
	Progress   *progress.Tracker
	Printer    *printer.Printer
	Searcher   *search.Searcher

	closers []io.Closer
}

// Open loads configuration, opens storage and loads the site. The controller
// is built but not started; call Start.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.Content); v != "" {
		cfg.Content = v
	}

	s := &Session{Config: cfg}
	ok := false
	defer func() {
		if !ok {
			_ = s.Close()
		}
	}()

	log, closer, err := logging.New(logging.Options{
		Path:    cfg.Log.Path,
		Level:   cfg.Log.Level,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	s.Log = log
	s.closers = append(s.closers, closer)

	s.PrefsPath = opts.PrefsPath
	if s.PrefsPath == "" {
		s.PrefsPath = prefs.DefaultPath()
	}
	s.Prefs, err = prefs.Load(s.PrefsPath)
	if err != nil {
		// Preferences are cosmetic; keep going with defaults.
		log.Warn().Err(err).Str("path", s.PrefsPath).Msg("load prefs")
	}

	store, err := kv.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s.KV = store
	s.closers = append(s.closers, store)

	s.Source, err = content.NewSource(cfg.Content)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	s.Loader = content.NewLoader(s.Source, log)
	s.Site, err = s.Loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load site from %s: %w", s.Source.Location(), err)
	}
	s.Store = &state.Store{}
	s.Store.Update(s.Site, nil)

	m := s.Site.Manifest
	// The store keeps the pristine document; the controller mutates its own copy.
	navOpts := []nav.Option{
		nav.WithLogger(log),
		nav.WithTransition(cfg.UI.Transition),
	}
	if opts.AutoSettle {
		navOpts = append(navOpts, nav.WithAutoSettle())
	}
	s.Controller = nav.NewController(s.Site.Doc.Clone(), m, navOpts...)
	s.Progress, err = progress.New(store, log, m.DefaultTab)
	if err != nil {
		return nil, err
	}
	s.Progress.Attach(s.Controller)
	s.Bookmarks = bookmarks.New(store, log)
	s.Printer = printer.New(printer.Options{
		Title:   m.Title,
		Command: cfg.Print.Command,
		Args:    cfg.Print.Args,
		Logger:  log,
	})
	s.Searcher = search.New(search.Options{
		MinQuery:   cfg.Search.MinQuery,
		MaxResults: cfg.Search.MaxResults,
	})

	ok = true
	return s, nil
}

// Start selects hash, or the configured default hash when hash is empty.
func (s *Session) Start(hash string) {
	if strings.TrimSpace(hash) == "" {
		hash = s.Config.DefaultHash
	}
	s.Controller.Start(hash)
}

// Close stops the indicator timer and releases the store and log file.
func (s *Session) Close() error {
	if s.Controller != nil {
		s.Controller.Indicator().Stop()
	}
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Run opens a session at hash and runs the reader until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options, hash string) error {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	s.Start(hash)
	s.StartReloading(ctx)

	return ui.Run(ui.Options{
		Context:      ctx,
		Controller:   s.Controller,
		Store:        s.Store,
		Generation:   s.Store.Generation(),
		KV:           s.KV,
		Bookmarks:    s.Bookmarks,
		Progress:     s.Progress,
		Printer:      s.Printer,
		Searcher:     s.Searcher,
		Prefs:        s.Prefs,
		PrefsPath:    s.PrefsPath,
		Highlight:    s.Config.UI.Highlight,
		Notification: s.Config.UI.Notification,
		Logger:       s.Log,
	})
}

// StartReloading keeps the store current: local directories are watched for
// changes and remote sites are polled when an interval is configured.
func (s *Session) StartReloading(ctx context.Context) {
	switch src := s.Source.(type) {
	case *content.DirSource:
		if dir := src.Dir(); dir != "" && s.Config.UI.Watch {
			StartWatcher(ctx, s.Store, s.Loader, dir, s.Log)
		}
	case *content.HTTPSource:
		if s.Config.UI.Poll > 0 {
			StartPoller(ctx, s.Store, s.Loader, s.Config.UI.Poll, s.Log)
		}
	}
}
