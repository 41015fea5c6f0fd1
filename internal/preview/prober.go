// Package preview resolves the live drop target while a tab is dragged
// outside its strip, broadcasts highlight events for it, and spring-loads
// the window under a dwelling pointer.
package preview

import (
	"time"

	"github.com/tabflow/tabflow/internal/config"
	"github.com/tabflow/tabflow/internal/host"
)

// Finder resolves which window sits under a screen point.
type Finder interface {
	FindWindowUnderPoint(x, y int, excludeID string) (id string, ok bool)
}

// Prober tracks the drop candidate for one drag-out. Probing is debounced
// so a fast pointer does not hammer the window manager, and every change
// of candidate is published as a drop-preview event so the target window
// can paint its highlight. Time comes in through the caller, never from
// the wall clock.
type Prober struct {
	finder   Finder
	broker   *host.Broker
	sourceID string
	debounce time.Duration

	probed    bool
	lastProbe time.Time
	target    string
}

// NewProber builds a prober for a drag that started in the source window.
// A non-positive debounce falls back to the configured default.
func NewProber(finder Finder, broker *host.Broker, sourceID string, debounce time.Duration) *Prober {
	if debounce <= 0 {
		debounce = config.ProbeDebounce
	}
	return &Prober{finder: finder, broker: broker, sourceID: sourceID, debounce: debounce}
}

// Probe resolves the window under the screen point, at most once per
// debounce interval. Between probes it reports the last known candidate.
// The source window never becomes its own target.
func (p *Prober) Probe(x, y int, now time.Time) string {
	if p.probed && now.Sub(p.lastProbe) < p.debounce {
		return p.target
	}
	p.probed = true
	p.lastProbe = now

	id, ok := p.finder.FindWindowUnderPoint(x, y, p.sourceID)
	if !ok {
		id = ""
	}
	if id != p.target {
		p.target = id
		p.publish()
	}
	return p.target
}

// Target returns the current drop candidate, empty when the pointer is
// over no other window.
func (p *Prober) Target() string {
	return p.target
}

// End clears the candidate when the drag finishes or is cancelled. The
// clearing event goes out even when no candidate was ever highlighted, so
// every window can drop stale highlight state.
func (p *Prober) End() {
	p.target = ""
	p.publish()
}

func (p *Prober) publish() {
	if p.broker == nil {
		return
	}
	p.broker.Publish(host.Event{
		Type:   host.EventDropPreview,
		Source: p.sourceID,
		Target: p.target,
	})
}
