package preview

import (
	"time"

	"github.com/tabflow/tabflow/internal/config"
)

// FocusTracker raises windows and reports which one holds focus.
type FocusTracker interface {
	Focused() string
	FocusWindow(id string) error
}

// SpringLoader raises the drop candidate after the pointer dwells on it,
// so a drag can land in a window that was buried when it started. A
// candidate that already holds focus never re-fires, and switching
// candidates restarts the dwell.
type SpringLoader struct {
	tracker FocusTracker
	dwell   time.Duration

	candidate string
	since     time.Time
	fired     bool
}

// NewSpringLoader builds a spring loader. A non-positive dwell falls back
// to the configured default.
func NewSpringLoader(tracker FocusTracker, dwell time.Duration) *SpringLoader {
	if dwell <= 0 {
		dwell = config.SpringLoadDwell
	}
	return &SpringLoader{tracker: tracker, dwell: dwell}
}

// Observe feeds the current drop candidate on every tick. It returns true
// on the tick the dwell elapses and the candidate gets raised.
func (s *SpringLoader) Observe(target string, now time.Time) bool {
	if target == "" {
		s.candidate = ""
		return false
	}
	if target != s.candidate {
		s.candidate = target
		s.since = now
		s.fired = false
		return false
	}
	if s.fired || now.Sub(s.since) < s.dwell {
		return false
	}
	s.fired = true
	if s.tracker.Focused() == target {
		return false
	}
	if err := s.tracker.FocusWindow(target); err != nil {
		return false
	}
	return true
}

// Reset clears dwell state when the drag ends.
func (s *SpringLoader) Reset() {
	s.candidate = ""
	s.fired = false
}
