// Package host abstracts the windowing environment: window geometry,
// focus, tab injection and removal, and the event broker that carries
// cross-window notifications. Everything crosses window boundaries as a
// message, never as a shared pointer into another window's state.
package host

import (
	"errors"

	"github.com/tabflow/tabflow/internal/tab"
)

var (
	// ErrNoWindow means the referenced window was never registered.
	ErrNoWindow = errors.New("host: no such window")
	// ErrWindowClosed means the referenced window was closed before the
	// operation reached it.
	ErrWindowClosed = errors.New("host: window closed")
	// ErrPrimaryWindow means the operation is not allowed on the primary
	// window.
	ErrPrimaryWindow = errors.New("host: primary window cannot be closed")
)

// Rect is a window's bounds in screen coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Contains reports whether the screen point lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// WindowManager is the surface the transfer coordinator drives. The
// in-process Shell implements it; a real desktop shell would too.
type WindowManager interface {
	// FindWindowUnderPoint resolves the topmost window containing the
	// screen point, excluding the window the drag started from. ok is
	// false when no other window is under the point.
	FindWindowUnderPoint(x, y int, excludeID string) (id string, ok bool)

	// InjectTabIntoWindow appends the tab and its document to the target
	// window. Fails when the target was closed after being resolved.
	InjectTabIntoWindow(id string, t *tab.Tab, doc *tab.Document) error

	// RemoveTabFromWindow detaches the tab from its window and returns
	// the tab together with its document.
	RemoveTabFromWindow(id, tabID string) (*tab.Tab, *tab.Document, error)

	// SpawnWindowWithTab creates a new window at the given bounds seeded
	// with one tab, and returns the new window's ID.
	SpawnWindowWithTab(r Rect, t *tab.Tab, doc *tab.Document) (string, error)

	// FocusWindow raises the window and gives it keyboard focus.
	FocusWindow(id string) error

	// CloseWindow destroys the window. The primary window refuses.
	CloseWindow(id string) error

	// MoveTabWithinWindow places a tab at an exact strip index, clamped
	// to the strip bounds.
	MoveTabWithinWindow(id, tabID string, index int) error

	// TabInWindow looks a tab up in a window without detaching it,
	// returning the tab and its strip index.
	TabInWindow(id, tabID string) (t *tab.Tab, index int, err error)

	// WindowTabCount reports how many tabs a window holds and whether it
	// is the primary window.
	WindowTabCount(id string) (count int, primary bool, err error)
}
