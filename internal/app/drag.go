package app

import (
	"errors"

	"charm.land/lipgloss/v2"

	"github.com/tabflow/tabflow/internal/config"
	"github.com/tabflow/tabflow/internal/gesture"
	"github.com/tabflow/tabflow/internal/host"
	"github.com/tabflow/tabflow/internal/preview"
	"github.com/tabflow/tabflow/internal/tab"
	"github.com/tabflow/tabflow/internal/transfer"
)

// stripLayout adapts one editor window to the gesture machine's layout
// interface. Geometry is computed fresh on every call so auto-scroll and
// window moves are reflected mid-drag.
type stripLayout struct {
	m   *Workspace
	win *EditorWindow
}

func (l stripLayout) StripGeometry() (gesture.StripGeometry, bool) {
	w := l.m.WindowByID(l.win.Win.ID)
	if w == nil {
		return gesture.StripGeometry{}, false
	}
	r := w.Win.Rect
	if r.W < 4 || r.H < 3 {
		return gesture.StripGeometry{}, false
	}
	stripY := r.Y + 1
	if config.StripPosition == "bottom" {
		stripY = r.Y + r.H - 2
	}

	geo := gesture.StripGeometry{
		BandTop:    stripY,
		BandBottom: stripY,
		VisibleMin: r.X + 1,
		VisibleMax: r.X + r.W - 1,
	}
	x := geo.VisibleMin - w.StripScroll
	for _, t := range w.Win.Tabs.Tabs() {
		tw := tabCellWidth(t, w.Win.Docs.Get(t.ID))
		geo.Tabs = append(geo.Tabs, gesture.Extent{Min: x, Max: x + tw})
		x += tw
	}
	return geo, true
}

// tabCellWidth is the rendered width of a tab in cells. The hit test and
// the renderer must agree on this.
func tabCellWidth(t *tab.Tab, doc *tab.Document) int {
	w := lipgloss.Width(tabLabel(t, doc)) + 2 // padding cell each side
	if w < config.MinTabCellWidth {
		w = config.MinTabCellWidth
	}
	if w > config.MaxTabCellWidth {
		w = config.MaxTabCellWidth
	}
	return w
}

// TabAt resolves which tab sits under a screen point in a window's strip,
// or nil when the point misses every tab.
func (m *Workspace) TabAt(w *EditorWindow, x, y int) *tab.Tab {
	geo, ok := (stripLayout{m: m, win: w}).StripGeometry()
	if !ok || y < geo.BandTop || y > geo.BandBottom {
		return nil
	}
	for i, e := range geo.Tabs {
		if x >= e.Min && x < e.Max {
			return w.Win.Tabs.At(i)
		}
	}
	return nil
}

// BeginDrag starts a gesture on a tab. Pinned tabs refuse and say why.
func (m *Workspace) BeginDrag(w *EditorWindow, t *tab.Tab, kind gesture.PointerKind, p gesture.Point) {
	if m.Machine != nil && m.Machine.Active() {
		return
	}
	if t.Pinned {
		m.Announce("%s is pinned and cannot be dragged", t.Title)
		m.ShowNotification("Pinned tabs stay put", "warning", config.NotificationDuration)
		return
	}
	m.Machine = gesture.NewMachine(stripLayout{m: m, win: w}, nil, m.gestureOpts)
	if m.Machine.PointerDown(t.ID, t.Pinned, kind, 0, p, m.Now) {
		m.DragSource = w.Win.ID
		m.Prober = preview.NewProber(m.Shell, m.Broker, w.Win.ID, m.probeDebounce)
		w.ActiveTabID = t.ID
		w.Dirty = true
	} else {
		m.Machine = nil
	}
}

// DragMove feeds pointer motion into the live gesture and, during
// drag-out, keeps the drop candidate fresh.
func (m *Workspace) DragMove(p gesture.Point) {
	if m.Machine == nil {
		return
	}
	m.Machine.PointerMove(p)
	v := m.Machine.View()
	if v.Mode == gesture.ModeDragOut && m.Prober != nil {
		target := m.Prober.Probe(p.X, p.Y, m.Now)
		m.SpringLoad.Observe(target, m.Now)
	}
	if w := m.WindowByID(m.DragSource); w != nil {
		w.Dirty = true
	}
}

// DragTick advances time-based gesture behavior: hold arming, strip
// auto-scroll, and spring-load dwell.
func (m *Workspace) DragTick() {
	if m.Machine == nil {
		return
	}
	m.Machine.Tick(m.Now)
	w := m.WindowByID(m.DragSource)
	if w == nil {
		m.DragCancel()
		return
	}
	if delta := m.Machine.AutoScroll(); delta != 0 {
		m.ScrollStripBy(w, delta)
	}
	v := m.Machine.View()
	if v.Mode == gesture.ModeDragOut && m.Prober != nil {
		m.SpringLoad.Observe(m.Prober.Target(), m.Now)
	}
}

// ScrollStripBy shifts a window's strip, clamped so the last tab stays
// reachable.
func (m *Workspace) ScrollStripBy(w *EditorWindow, delta int) {
	total := 0
	for _, t := range w.Win.Tabs.Tabs() {
		total += tabCellWidth(t, w.Win.Docs.Get(t.ID))
	}
	visible := w.Win.Rect.W - 2
	maxScroll := total - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	w.StripScroll += delta
	if w.StripScroll < 0 {
		w.StripScroll = 0
	}
	if w.StripScroll > maxScroll {
		w.StripScroll = maxScroll
	}
	w.Dirty = true
}

// DragRelease ends the gesture and commits whatever it locked into.
func (m *Workspace) DragRelease(p gesture.Point) {
	if m.Machine == nil {
		return
	}
	res := m.Machine.PointerUp(p)
	src := m.WindowByID(m.DragSource)
	m.finishDrag()
	if src == nil {
		return
	}
	src.Dirty = true

	switch res.Action {
	case gesture.ActionSelect:
		src.ActiveTabID = res.TabID
		if t := src.Win.Tabs.Get(res.TabID); t != nil {
			m.Announce("%s selected", t.Title)
		}
	case gesture.ActionCommitReorder:
		m.commitReorder(src, res.TabID, res.Boundary)
	case gesture.ActionCommitDragOut:
		m.commitDragOut(src, res.TabID, p)
	}
}

// DragCancel aborts the gesture with no mutation.
func (m *Workspace) DragCancel() {
	if m.Machine == nil {
		return
	}
	res := m.Machine.Cancel()
	if w := m.WindowByID(m.DragSource); w != nil {
		w.Dirty = true
	}
	m.finishDrag()
	if res.Action == gesture.ActionCancelled {
		m.Announce("Drag cancelled")
	}
}

func (m *Workspace) finishDrag() {
	if m.Prober != nil {
		m.Prober.End()
		m.Prober = nil
	}
	m.SpringLoad.Reset()
	m.Machine = nil
	m.DragSource = ""
}

func (m *Workspace) commitReorder(w *EditorWindow, tabID string, boundary int) {
	from := w.Win.Tabs.IndexOf(tabID)
	if from < 0 {
		return
	}
	err := w.Win.Tabs.Reorder(from, boundary)
	switch {
	case err == nil:
		t := w.Win.Tabs.Get(tabID)
		m.Announce("%s moved to position %d of %d", t.Title, w.Win.Tabs.IndexOf(tabID)+1, w.Win.Tabs.Len())
		m.LogInfo("reorder %s: %d -> %d", t.Title, from, w.Win.Tabs.IndexOf(tabID))
	case errors.Is(err, tab.ErrPinnedZone):
		m.Announce("Reorder blocked by pinned tabs, tab snapped back")
		m.ShowNotification("Cannot move past pinned tabs", "warning", config.SnapbackNotificationDuration)
	default:
		m.LogError("reorder: %v", err)
	}
}

func (m *Workspace) commitDragOut(w *EditorWindow, tabID string, p gesture.Point) {
	t := w.Win.Tabs.Get(tabID)
	title := tabID
	if t != nil {
		title = t.Title
	}

	if targetID, ok := m.Shell.FindWindowUnderPoint(p.X, p.Y, w.Win.ID); ok {
		err := m.Coordinator.CommitToWindow(w.Win.ID, tabID, targetID)
		switch {
		case err == nil:
			if tw := m.WindowByID(targetID); tw != nil {
				tw.ActiveTabID = tabID
				tw.Dirty = true
			}
			m.afterDetach(w)
			m.Announce("%s moved to another window", title)
			m.ShowNotification("Tab moved (press u to undo)", "success", config.NotificationDuration)
		case errors.Is(err, transfer.ErrPinnedTab), errors.Is(err, transfer.ErrLastPrimaryTab):
			m.Announce("Transfer blocked, tab snapped back")
			m.ShowNotification(err.Error(), "warning", config.SnapbackNotificationDuration)
		default:
			m.Announce("Transfer failed, tab snapped back")
			m.ShowNotification("Transfer failed: "+err.Error(), "error", config.SnapbackNotificationDuration)
			m.LogError("transfer: %v", err)
		}
		return
	}

	r := m.spawnRectAt(p)
	id, err := m.Coordinator.CommitToNewWindow(w.Win.ID, tabID, r)
	switch {
	case err == nil:
		ew := &EditorWindow{Win: m.Shell.Window(id), ActiveTabID: tabID, Dirty: true}
		m.Windows = append(m.Windows, ew)
		m.afterDetach(w)
		m.Announce("%s opened in a new window", title)
		m.ShowNotification("Tab torn out (press u to undo)", "success", config.NotificationDuration)
	case errors.Is(err, transfer.ErrPinnedTab), errors.Is(err, transfer.ErrLastPrimaryTab):
		m.Announce("Transfer blocked, tab snapped back")
		m.ShowNotification(err.Error(), "warning", config.SnapbackNotificationDuration)
	default:
		m.Announce("Tear out failed, tab snapped back")
		m.ShowNotification("Tear out failed: "+err.Error(), "error", config.SnapbackNotificationDuration)
		m.LogError("tear out: %v", err)
	}
}

// afterDetach fixes up a source window after one of its tabs left: pick a
// new active tab, and close the window when it emptied out.
func (m *Workspace) afterDetach(w *EditorWindow) {
	if w.Win.Tabs.Get(w.ActiveTabID) == nil {
		if first := w.Win.Tabs.At(0); first != nil {
			w.ActiveTabID = first.ID
		} else {
			w.ActiveTabID = ""
		}
	}
	w.Dirty = true
	if m.Shell.CloseIfEmpty(w.Win.ID) {
		m.removeWindow(w.Win.ID)
		m.LogInfo("window %s closed after its last tab left", w.Win.ID[:8])
	}
}

func (m *Workspace) removeWindow(id string) {
	for i, w := range m.Windows {
		if w.Win.ID == id {
			m.Windows = append(m.Windows[:i], m.Windows[i+1:]...)
			return
		}
	}
}

// spawnRectAt picks bounds for a torn-out window, centered on the release
// point and clamped to the screen.
func (m *Workspace) spawnRectAt(p gesture.Point) host.Rect {
	w, h := 36, 12
	if m.Width > 0 && w > m.Width {
		w = m.Width
	}
	if m.Height > 0 && h > m.Height-config.StatusBarHeight {
		h = m.Height - config.StatusBarHeight
	}
	r := host.Rect{X: p.X - w/2, Y: p.Y - 1, W: w, H: h}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if m.Width > 0 && r.X+r.W > m.Width {
		r.X = m.Width - r.W
	}
	if m.Height > 0 && r.Y+r.H > m.Height-config.StatusBarHeight {
		r.Y = m.Height - config.StatusBarHeight - r.H
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}

// Undo reverses the most recent cross-window transfer.
func (m *Workspace) Undo() {
	err := m.Coordinator.Undo()
	switch {
	case err == nil:
		for _, w := range m.Windows {
			w.Dirty = true
		}
		m.pruneClosedWindows()
		m.Announce("Transfer undone")
		m.ShowNotification("Transfer undone", "info", config.NotificationDuration)
	case errors.Is(err, transfer.ErrNothingToUndo):
		m.ShowNotification("Nothing to undo", "info", config.NotificationDuration)
	default:
		m.ShowNotification("Undo failed: "+err.Error(), "error", config.SnapbackNotificationDuration)
		m.LogError("undo: %v", err)
	}
}

// pruneClosedWindows drops demo state for windows the shell no longer has.
func (m *Workspace) pruneClosedWindows() {
	kept := m.Windows[:0]
	for _, w := range m.Windows {
		if m.Shell.Window(w.Win.ID) != nil {
			kept = append(kept, w)
		}
	}
	m.Windows = kept
}
