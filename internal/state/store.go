package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/notesnav/internal/content"
)

// Snapshot represents the latest loaded site available to the UI.
type Snapshot struct {
	Site *content.Site
	// Generation increments on every successful load; zero means nothing
	// has loaded yet.
	Generation          int
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed reloads
}

// HasSite reports whether a site has loaded at least once.
func (s Snapshot) HasSite() bool { return s.Site != nil }

// IsFailing returns true when reloads have failed repeatedly.
func (s Snapshot) IsFailing() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent reloads of the site.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored site. When err is non-nil the previous site is
// kept but the error is recorded for visibility.
func (s *Store) Update(site *content.Site, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil || site == nil {
		if err == nil {
			err = errors.New("load returned no site")
		}
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Site = cloneSite(site)
	s.snapshot.Generation++
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot. The document is shared:
// callers that mutate it must Clone it first.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Site = cloneSite(s.snapshot.Site)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Generation returns the current generation without copying the snapshot.
func (s *Store) Generation() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Generation
}

func cloneSite(site *content.Site) *content.Site {
	if site == nil {
		return nil
	}
	dup := *site
	if len(site.Failed) > 0 {
		dup.Failed = make([]string, len(site.Failed))
		copy(dup.Failed, site.Failed)
	} else {
		dup.Failed = nil
	}
	return &dup
}
