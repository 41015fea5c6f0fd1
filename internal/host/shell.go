package host

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tabflow/tabflow/internal/tab"
)

// ShellWindow is one window managed by the in-process Shell. Each window
// owns its tab collection and document store outright; other windows reach
// it only through Shell operations and broker events.
type ShellWindow struct {
	ID      string
	Rect    Rect
	Tabs    *tab.Collection
	Docs    *tab.DocumentStore
	primary bool
	closed  bool
}

// Primary reports whether this is the primary window.
func (w *ShellWindow) Primary() bool {
	return w.primary
}

// Shell is an in-process window manager. All state lives behind one mutex
// and every mutation publishes a broker event, so the demo app and the
// tests exercise the same message choreography a desktop shell would.
type Shell struct {
	mu      sync.Mutex
	broker  *Broker
	windows map[string]*ShellWindow
	zorder  []string // front first
	focused string
}

// NewShell builds a shell publishing to the given broker.
func NewShell(broker *Broker) *Shell {
	return &Shell{
		broker:  broker,
		windows: make(map[string]*ShellWindow),
	}
}

// NewWindow registers a window at the given bounds and focuses it. The
// first window registered becomes the primary window and can never be
// closed.
func (s *Shell) NewWindow(r Rect) *ShellWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newWindowLocked(r)
}

func (s *Shell) newWindowLocked(r Rect) *ShellWindow {
	w := &ShellWindow{
		ID:      uuid.New().String(),
		Rect:    r,
		Tabs:    tab.NewCollection(),
		Docs:    tab.NewDocumentStore(),
		primary: len(s.windows) == 0,
	}
	s.windows[w.ID] = w
	s.zorder = append([]string{w.ID}, s.zorder...)
	s.focused = w.ID
	return w
}

// Window returns the window by ID, or nil when unknown or closed.
func (s *Shell) Window(id string) *ShellWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[id]
	if w == nil || w.closed {
		return nil
	}
	return w
}

// Windows returns the live windows front to back.
func (s *Shell) Windows() []*ShellWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*ShellWindow, 0, len(s.zorder))
	for _, id := range s.zorder {
		if w := s.windows[id]; w != nil && !w.closed {
			out = append(out, w)
		}
	}
	return out
}

// Focused returns the ID of the focused window.
func (s *Shell) Focused() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// FindWindowUnderPoint resolves the topmost window under the screen point,
// skipping the excluded window.
func (s *Shell) FindWindowUnderPoint(x, y int, excludeID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.zorder {
		if id == excludeID {
			continue
		}
		w := s.windows[id]
		if w == nil || w.closed {
			continue
		}
		if w.Rect.Contains(x, y) {
			return id, true
		}
	}
	return "", false
}

// InjectTabIntoWindow appends the tab and document to the target window.
func (s *Shell) InjectTabIntoWindow(id string, t *tab.Tab, doc *tab.Document) error {
	s.mu.Lock()
	w := s.windows[id]
	if w == nil {
		s.mu.Unlock()
		return ErrNoWindow
	}
	if w.closed {
		s.mu.Unlock()
		return ErrWindowClosed
	}
	w.Tabs.Add(t)
	if doc != nil {
		w.Docs.Init(t.ID, doc)
	}
	s.mu.Unlock()
	s.broker.Publish(Event{Type: EventTabInjected, Target: id, TabID: t.ID})
	return nil
}

// RemoveTabFromWindow detaches the tab and its document from the window.
func (s *Shell) RemoveTabFromWindow(id, tabID string) (*tab.Tab, *tab.Document, error) {
	s.mu.Lock()
	w := s.windows[id]
	if w == nil || w.closed {
		s.mu.Unlock()
		return nil, nil, ErrNoWindow
	}
	t, err := w.Tabs.Remove(tabID)
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}
	doc, _ := w.Docs.Remove(tabID)
	s.mu.Unlock()
	s.broker.Publish(Event{Type: EventTabRemoved, Source: id, TabID: tabID})
	return t, doc, nil
}

// SpawnWindowWithTab creates a focused window seeded with one tab.
func (s *Shell) SpawnWindowWithTab(r Rect, t *tab.Tab, doc *tab.Document) (string, error) {
	s.mu.Lock()
	w := s.newWindowLocked(r)
	w.Tabs.Add(t)
	if doc != nil {
		w.Docs.Init(t.ID, doc)
	}
	s.mu.Unlock()
	s.broker.Publish(Event{Type: EventWindowSpawned, Target: w.ID, TabID: t.ID})
	return w.ID, nil
}

// FocusWindow raises the window and gives it focus.
func (s *Shell) FocusWindow(id string) error {
	s.mu.Lock()
	w := s.windows[id]
	if w == nil || w.closed {
		s.mu.Unlock()
		return ErrNoWindow
	}
	for i, zid := range s.zorder {
		if zid == id {
			s.zorder = append(s.zorder[:i], s.zorder[i+1:]...)
			break
		}
	}
	s.zorder = append([]string{id}, s.zorder...)
	s.focused = id
	s.mu.Unlock()
	s.broker.Publish(Event{Type: EventWindowFocused, Target: id})
	return nil
}

// CloseWindow destroys the window. The primary window refuses so the app
// always has at least one live window.
func (s *Shell) CloseWindow(id string) error {
	s.mu.Lock()
	w := s.windows[id]
	if w == nil || w.closed {
		s.mu.Unlock()
		return ErrNoWindow
	}
	if w.primary {
		s.mu.Unlock()
		return ErrPrimaryWindow
	}
	w.closed = true
	for i, zid := range s.zorder {
		if zid == id {
			s.zorder = append(s.zorder[:i], s.zorder[i+1:]...)
			break
		}
	}
	if s.focused == id && len(s.zorder) > 0 {
		s.focused = s.zorder[0]
	}
	s.mu.Unlock()
	s.broker.Publish(Event{Type: EventWindowClosed, Source: id})
	return nil
}

// MoveTabWithinWindow places a tab at an exact strip index.
func (s *Shell) MoveTabWithinWindow(id, tabID string, index int) error {
	s.mu.Lock()
	w := s.windows[id]
	if w == nil || w.closed {
		s.mu.Unlock()
		return ErrNoWindow
	}
	err := w.Tabs.MoveTo(tabID, index)
	s.mu.Unlock()
	return err
}

// TabInWindow looks a tab up without detaching it.
func (s *Shell) TabInWindow(id, tabID string) (*tab.Tab, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[id]
	if w == nil || w.closed {
		return nil, -1, ErrNoWindow
	}
	i := w.Tabs.IndexOf(tabID)
	if i < 0 {
		return nil, -1, tab.ErrNotFound
	}
	return w.Tabs.At(i), i, nil
}

// WindowTabCount reports the window's tab count and primary status.
func (s *Shell) WindowTabCount(id string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[id]
	if w == nil || w.closed {
		return 0, false, ErrNoWindow
	}
	return w.Tabs.Len(), w.primary, nil
}

// CloseIfEmpty closes the window when its last tab is gone. The primary
// window stays open empty.
func (s *Shell) CloseIfEmpty(id string) bool {
	s.mu.Lock()
	w := s.windows[id]
	if w == nil || w.closed || w.primary || w.Tabs.Len() > 0 {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()
	return s.CloseWindow(id) == nil
}

var _ WindowManager = (*Shell)(nil)
