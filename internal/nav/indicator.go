package nav

import (
	"sync"
	"time"
)

// DefaultTransition is how long the loading indicator stays up after a
// transition.
const DefaultTransition = 300 * time.Millisecond

// IndicatorState is the loading affordance.
type IndicatorState int

const (
	Idle IndicatorState = iota
	Transitioning
)

func (s IndicatorState) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// Indicator tracks the loading affordance shown during transitions. Each
// Begin supersedes the previous one; only the latest token settles it.
type Indicator struct {
	mu       sync.Mutex
	state    IndicatorState
	token    uint64
	duration time.Duration
	timer    *time.Timer
}

// NewIndicator returns an idle indicator. Non-positive durations use
// DefaultTransition.
func NewIndicator(d time.Duration) *Indicator {
	if d <= 0 {
		d = DefaultTransition
	}
	return &Indicator{duration: d}
}

// Begin enters the transitioning state and returns the token that settles it.
func (i *Indicator) Begin() uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.token++
	i.state = Transitioning
	return i.token
}

// Settle returns to idle when token is the latest one.
func (i *Indicator) Settle(token uint64) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if token != i.token {
		return false
	}
	i.state = Idle
	return true
}

// AutoSettle settles token after the configured duration.
func (i *Indicator) AutoSettle(token uint64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.timer != nil {
		i.timer.Stop()
	}
	i.timer = time.AfterFunc(i.duration, func() { i.Settle(token) })
}

// Stop cancels a pending AutoSettle.
func (i *Indicator) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
}

// State returns the current state.
func (i *Indicator) State() IndicatorState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Token returns the most recent token handed out by Begin.
func (i *Indicator) Token() uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.token
}

// Duration returns the settle delay.
func (i *Indicator) Duration() time.Duration {
	return i.duration
}
