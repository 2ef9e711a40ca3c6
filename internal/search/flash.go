package search

import "time"

// DefaultFlash is how long a jumped-to result stays highlighted.
const DefaultFlash = 2 * time.Second

// Flash is the transient highlight on a search result. A newer Begin
// replaces the previous highlight; only its token clears it.
type Flash struct {
	key      string
	token    uint64
	duration time.Duration
}

// NewFlash returns a Flash; non-positive durations use DefaultFlash.
func NewFlash(d time.Duration) *Flash {
	if d <= 0 {
		d = DefaultFlash
	}
	return &Flash{duration: d}
}

// Begin highlights key and returns the token that clears it.
func (f *Flash) Begin(key string) uint64 {
	f.token++
	f.key = key
	return f.token
}

// Clear removes the highlight if token is current.
func (f *Flash) Clear(token uint64) bool {
	if token != f.token || f.key == "" {
		return false
	}
	f.key = ""
	return true
}

// Active returns the highlighted key.
func (f *Flash) Active() (string, bool) {
	return f.key, f.key != ""
}

// Duration returns the highlight lifetime.
func (f *Flash) Duration() time.Duration { return f.duration }
