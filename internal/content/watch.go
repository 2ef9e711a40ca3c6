package content

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces bursts of file events (editors often write a
// file in several steps).
const DefaultDebounce = 250 * time.Millisecond

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	debounce time.Duration
	log      zerolog.Logger
	onError  func(error)
}

// WithDebounce sets the quiet period before fn runs.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) { c.debounce = d }
}

// WithWatchLogger sets the watcher's logger.
func WithWatchLogger(l zerolog.Logger) WatchOption {
	return func(c *watchConfig) { c.log = l }
}

// WithOnError receives watcher errors.
func WithOnError(fn func(error)) WatchOption {
	return func(c *watchConfig) { c.onError = fn }
}

// Watch calls fn after files under dir change, once per burst of events. It
// blocks until ctx is done. Directories created later are watched too.
func Watch(ctx context.Context, dir string, fn func(), opts ...WatchOption) error {
	cfg := watchConfig{debounce: DefaultDebounce, log: zerolog.Nop(), onError: func(error) {}}
	for _, opt := range opts {
		opt(&cfg)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := addTree(w, dir); err != nil {
		return err
	}
	cfg.log.Debug().Str("dir", dir).Msg("watching content")

	d := newDebouncer(cfg.debounce)
	defer d.cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ignored(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				// A new directory needs its own watch.
				_ = addTree(w, ev.Name)
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				cfg.log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("content changed")
				d.trigger(fn)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cfg.onError(err)
		}
	}
}

// addTree watches root and every directory beneath it.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// ignored filters editor swap and backup files.
func ignored(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp")
}

// debouncer runs the latest triggered function once the quiet period passes.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
