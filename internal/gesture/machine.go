package gesture

import (
	"time"

	"github.com/tabflow/tabflow/internal/config"
)

// Mode is the current phase of a drag session.
type Mode int

const (
	// ModeIdle means no session is active.
	ModeIdle Mode = iota
	// ModeHold is the touch/pen arming dwell before a drag may begin.
	ModeHold
	// ModePending means a press is down but no direction has been locked.
	ModePending
	// ModeReorder means the drag is locked to in-strip reordering.
	ModeReorder
	// ModeDragOut means the pointer escaped the strip band and the tab
	// would be torn out on release.
	ModeDragOut
)

// String returns the mode name for logs and the status line.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeHold:
		return "hold"
	case ModePending:
		return "pending"
	case ModeReorder:
		return "reorder"
	case ModeDragOut:
		return "dragout"
	default:
		return "unknown"
	}
}

// PointerKind distinguishes input devices. Mouse presses arm immediately,
// touch and pen presses go through a hold dwell first.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
	PointerPen
)

// Point is a pointer position in window coordinates.
type Point struct {
	X int
	Y int
}

// StripGeometry is a snapshot of the tab strip layout, queried fresh from
// the LayoutProvider on every transition decision because the strip can be
// scrolling or reflowing underneath the pointer.
type StripGeometry struct {
	// BandTop and BandBottom delimit the strip's vertical band in window
	// coordinates. BandBottom is inclusive.
	BandTop    int
	BandBottom int
	// VisibleMin and VisibleMax delimit the visible horizontal extent of
	// the strip, for edge auto-scroll.
	VisibleMin int
	VisibleMax int
	// Tabs holds the horizontal extent of each sibling tab, in order.
	Tabs []Extent
}

// LayoutProvider supplies strip geometry on demand. ok is false when the
// layout cannot be measured right now, in which case the machine stays in
// its current mode rather than guessing.
type LayoutProvider interface {
	StripGeometry() (geo StripGeometry, ok bool)
}

// Capturer routes all pointer events to the drag session until release.
// Capture is best effort: a failed acquire does not abort the session.
type Capturer interface {
	CapturePointer(pointerID int) error
	ReleasePointer(pointerID int) error
}

// Action is what the caller must do after a pointer-up or cancel.
type Action int

const (
	// ActionNone means nothing to do (no session, or mid-session event).
	ActionNone Action = iota
	// ActionSelect means the press ended without locking a direction and
	// should be treated as a plain tab click.
	ActionSelect
	// ActionCommitReorder means the tab should move to the session's
	// insertion boundary.
	ActionCommitReorder
	// ActionCommitDragOut means the tab should be torn out at the release
	// point.
	ActionCommitDragOut
	// ActionCancelled means the session ended with no mutation and the
	// tab snaps back.
	ActionCancelled
)

// Result reports the outcome of ending a session.
type Result struct {
	Action   Action
	TabID    string
	Boundary int
	Point    Point
}

// View is a read-only snapshot of the session for rendering.
type View struct {
	Mode         Mode
	DraggedTabID string
	DropIndex    int
	LivePoint    Point
}

// Options tune the machine thresholds. Zero values fall back to the
// defaults in the config package.
type Options struct {
	HoldDelay            time.Duration
	HoldCancelRadius     int
	ReorderLockThreshold int
	DragOutMargin        int
	AutoScrollEdgeMargin int
	AutoScrollMaxStep    int
}

func (o *Options) fill() {
	if o.HoldDelay <= 0 {
		o.HoldDelay = config.HoldDelay
	}
	if o.HoldCancelRadius <= 0 {
		o.HoldCancelRadius = config.HoldCancelRadius
	}
	if o.ReorderLockThreshold <= 0 {
		o.ReorderLockThreshold = config.ReorderLockThreshold
	}
	if o.DragOutMargin <= 0 {
		o.DragOutMargin = config.DragOutMargin
	}
	if o.AutoScrollEdgeMargin <= 0 {
		o.AutoScrollEdgeMargin = config.AutoScrollEdgeMargin
	}
	if o.AutoScrollMaxStep <= 0 {
		o.AutoScrollMaxStep = config.AutoScrollMaxStep
	}
}

type session struct {
	tabID     string
	kind      PointerKind
	pointerID int
	mode      Mode
	anchor    Point
	live      Point
	boundary  int
	holdStart time.Time
	captured  bool
}

// Machine runs one drag session at a time for one window's tab strip.
// It never reads the wall clock: callers feed time through PointerDown
// and Tick, which keeps every transition deterministic under test.
type Machine struct {
	layout   LayoutProvider
	capturer Capturer
	opts     Options
	sess     *session
}

// NewMachine builds a machine over the given layout provider. capturer may
// be nil when the host has no pointer capture facility.
func NewMachine(layout LayoutProvider, capturer Capturer, opts Options) *Machine {
	opts.fill()
	return &Machine{layout: layout, capturer: capturer, opts: opts}
}

// Active reports whether a drag session is in progress.
func (m *Machine) Active() bool {
	return m.sess != nil
}

// View snapshots the session for rendering. Mode is ModeIdle and DropIndex
// is -1 when no session is active.
func (m *Machine) View() View {
	if m.sess == nil {
		return View{Mode: ModeIdle, DropIndex: -1}
	}
	v := View{
		Mode:         m.sess.mode,
		DraggedTabID: m.sess.tabID,
		LivePoint:    m.sess.live,
		DropIndex:    -1,
	}
	if m.sess.mode == ModeReorder {
		v.DropIndex = m.sess.boundary
	}
	return v
}

// PointerDown starts a session on the given tab. Pinned tabs never start a
// session, and a press while another session is live is ignored because the
// active pointer still holds the capture. Returns whether a session began.
func (m *Machine) PointerDown(tabID string, pinned bool, kind PointerKind, pointerID int, p Point, now time.Time) bool {
	if m.sess != nil || pinned || tabID == "" {
		return false
	}
	s := &session{
		tabID:     tabID,
		kind:      kind,
		pointerID: pointerID,
		anchor:    p,
		live:      p,
		boundary:  -1,
	}
	if kind == PointerMouse {
		s.mode = ModePending
	} else {
		s.mode = ModeHold
		s.holdStart = now
	}
	if m.capturer != nil {
		if err := m.capturer.CapturePointer(pointerID); err == nil {
			s.captured = true
		}
	}
	m.sess = s
	return true
}

// Tick advances time-based transitions. A hold that has dwelled past the
// hold delay without drifting arms into pending.
func (m *Machine) Tick(now time.Time) {
	s := m.sess
	if s == nil || s.mode != ModeHold {
		return
	}
	if now.Sub(s.holdStart) >= m.opts.HoldDelay {
		s.mode = ModePending
	}
}

// PointerMove feeds a pointer position into the session. Transitions:
// hold drifting past the cancel radius aborts, pending locks to reorder on
// horizontal travel past the lock threshold or to dragout on escaping the
// strip band, reorder retargets its boundary every move and can still
// escape to dragout, dragout resumes reorder when the pointer re-enters
// the band.
func (m *Machine) PointerMove(p Point) {
	s := m.sess
	if s == nil {
		return
	}
	s.live = p

	switch s.mode {
	case ModeHold:
		if exceedsRadius(s.anchor, p, m.opts.HoldCancelRadius) {
			m.end()
		}
	case ModePending:
		geo, ok := m.layout.StripGeometry()
		if !ok {
			return
		}
		if m.outsideBand(geo, p) {
			s.mode = ModeDragOut
			return
		}
		dx := p.X - s.anchor.X
		if dx < 0 {
			dx = -dx
		}
		if dx > m.opts.ReorderLockThreshold {
			s.mode = ModeReorder
			s.boundary = InsertionIndex(geo.Tabs, p.X)
		}
	case ModeReorder:
		geo, ok := m.layout.StripGeometry()
		if !ok {
			return
		}
		if m.outsideBand(geo, p) {
			s.mode = ModeDragOut
			s.boundary = -1
			return
		}
		s.boundary = InsertionIndex(geo.Tabs, p.X)
	case ModeDragOut:
		geo, ok := m.layout.StripGeometry()
		if !ok {
			return
		}
		if !m.outsideBand(geo, p) {
			s.mode = ModeReorder
			s.boundary = InsertionIndex(geo.Tabs, p.X)
		}
	}
}

// PointerUp ends the session and reports what to commit. A release in hold
// or pending is a plain click on the pressed tab.
func (m *Machine) PointerUp(p Point) Result {
	s := m.sess
	if s == nil {
		return Result{Action: ActionNone}
	}
	s.live = p
	res := Result{TabID: s.tabID, Point: p}
	switch s.mode {
	case ModeHold, ModePending:
		res.Action = ActionSelect
	case ModeReorder:
		res.Action = ActionCommitReorder
		res.Boundary = s.boundary
	case ModeDragOut:
		res.Action = ActionCommitDragOut
	}
	m.end()
	return res
}

// Cancel aborts the session with no mutation: Escape, focus loss, or a
// revoked pointer capture all land here. The dragged tab snaps back.
func (m *Machine) Cancel() Result {
	if m.sess == nil {
		return Result{Action: ActionNone}
	}
	res := Result{Action: ActionCancelled, TabID: m.sess.tabID}
	m.end()
	return res
}

// AutoScroll returns the strip scroll delta for the current pointer
// position, or zero when no reorder is in progress.
func (m *Machine) AutoScroll() int {
	s := m.sess
	if s == nil || s.mode != ModeReorder {
		return 0
	}
	geo, ok := m.layout.StripGeometry()
	if !ok {
		return 0
	}
	return AutoScrollDelta(s.live.X, geo.VisibleMin, geo.VisibleMax, m.opts.AutoScrollEdgeMargin, m.opts.AutoScrollMaxStep)
}

func (m *Machine) end() {
	if m.sess != nil && m.sess.captured && m.capturer != nil {
		// Release is best effort, same as acquire.
		_ = m.capturer.ReleasePointer(m.sess.pointerID)
	}
	m.sess = nil
}

func (m *Machine) outsideBand(geo StripGeometry, p Point) bool {
	return p.Y < geo.BandTop-m.opts.DragOutMargin || p.Y > geo.BandBottom+m.opts.DragOutMargin
}

func exceedsRadius(a, b Point, r int) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy > r*r
}
