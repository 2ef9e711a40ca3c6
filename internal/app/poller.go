package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/notesnav/internal/content"
	"github.com/five82/notesnav/internal/state"
)

const (
	defaultPollInterval = time.Minute
	maxBackoff          = 10 * time.Minute
)

// StartPoller launches a background goroutine that reloads the site at a
// fixed cadence, backing off while reloads fail. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, loader *content.Loader, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			reload(ctx, store, loader, log)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// StartWatcher reloads the site whenever files under dir change. It returns
// immediately; the watcher stops with ctx.
func StartWatcher(ctx context.Context, store *state.Store, loader *content.Loader, dir string, log zerolog.Logger, opts ...content.WatchOption) {
	opts = append([]content.WatchOption{
		content.WithWatchLogger(log),
		content.WithOnError(func(err error) {
			log.Warn().Err(err).Str("dir", dir).Msg("content watcher error")
		}),
	}, opts...)
	go func() {
		err := content.Watch(ctx, dir, func() { reload(ctx, store, loader, log) }, opts...)
		if err != nil {
			log.Error().Err(err).Str("dir", dir).Msg("content watcher stopped")
		}
	}()
}

// calculateBackoff doubles base for each consecutive failure, up to
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func reload(ctx context.Context, store *state.Store, loader *content.Loader, log zerolog.Logger) {
	if ctx.Err() != nil {
		return
	}
	site, err := loader.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Str("source", loader.Source().Location()).Msg("reload failed")
	}
	store.Update(site, err)
}
