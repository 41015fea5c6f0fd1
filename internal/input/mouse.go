package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tabflow/tabflow/internal/app"
	"github.com/tabflow/tabflow/internal/gesture"
)

// handleMouseClick handles mouse press events.
func handleMouseClick(msg tea.MouseClickMsg, m *app.Workspace) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}
	p := gesture.Point{X: mouse.X, Y: mouse.Y}

	w := m.WindowAt(p.X, p.Y)
	if w == nil {
		return m, nil
	}
	if m.Shell.Focused() != w.Win.ID {
		_ = m.Shell.FocusWindow(w.Win.ID)
	}
	if t := m.TabAt(w, p.X, p.Y); t != nil {
		m.BeginDrag(w, t, gesture.PointerMouse, p)
	}
	return m, nil
}

// handleMouseMotion feeds pointer movement into the live gesture.
func handleMouseMotion(msg tea.MouseMotionMsg, m *app.Workspace) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	m.DragMove(gesture.Point{X: mouse.X, Y: mouse.Y})
	return m, nil
}

// handleMouseRelease ends the live gesture and commits its outcome.
func handleMouseRelease(msg tea.MouseReleaseMsg, m *app.Workspace) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	m.DragRelease(gesture.Point{X: mouse.X, Y: mouse.Y})
	return m, nil
}

// handleMouseWheel scrolls the strip of the window under the pointer.
func handleMouseWheel(msg tea.MouseWheelMsg, m *app.Workspace) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	w := m.WindowAt(mouse.X, mouse.Y)
	if w == nil {
		return m, nil
	}
	switch mouse.Button {
	case tea.MouseWheelUp, tea.MouseWheelLeft:
		m.ScrollStripBy(w, -2)
	case tea.MouseWheelDown, tea.MouseWheelRight:
		m.ScrollStripBy(w, 2)
	}
	return m, nil
}
