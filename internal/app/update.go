package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tabflow/tabflow/internal/config"
	"github.com/tabflow/tabflow/internal/host"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without
// creating a circular dependency.
type InputHandler func(msg tea.Msg, m *Workspace) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input package's message handler.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// TickCmd creates a command that generates tick messages at the normal
// refresh rate.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// SlowTickCmd creates a command that generates tick messages at the
// interaction refresh rate, used while a gesture is live.
func SlowTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.InteractionFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init starts the tick loop.
func (m *Workspace) Init() tea.Cmd {
	m.LogInfo("tabflow demo started")
	return TickCmd()
}

// Update handles all incoming messages and updates the application state.
func (m *Workspace) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.Now = time.Time(msg)
		m.DragTick()
		m.drainEvents()
		m.expireNotifications(m.Now)
		m.updateStats(m.Now)
		if m.Machine != nil {
			return m, SlowTickCmd()
		}
		return m, TickCmd()

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if inputHandler != nil {
			return inputHandler(msg, m)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if m.AutoSeed && len(m.Windows) == 0 {
			m.SeedDemo(msg.Width, msg.Height)
		}
		for _, w := range m.Windows {
			w.Dirty = true
		}
		return m, nil

	case tea.BlurMsg:
		// Losing terminal focus is the demo's capture-revoked path: the
		// drag cannot be trusted to see its release, so it snaps back.
		m.DragCancel()
		return m, nil

	case tea.FocusMsg:
		return m, nil
	}

	return m, nil
}

// drainEvents applies pending broker notifications to the demo-side state.
func (m *Workspace) drainEvents() {
	for {
		select {
		case e, ok := <-m.events.Events():
			if !ok {
				return
			}
			m.applyEvent(e)
		default:
			return
		}
	}
}

func (m *Workspace) applyEvent(e host.Event) {
	switch e.Type {
	case host.EventDropPreview:
		for _, w := range m.Windows {
			was := w.DropHighlight
			w.DropHighlight = e.Target != "" && w.Win.ID == e.Target
			if was != w.DropHighlight {
				w.Dirty = true
			}
		}
	case host.EventTabInjected:
		if w := m.WindowByID(e.Target); w != nil {
			if w.ActiveTabID == "" {
				w.ActiveTabID = e.TabID
			}
			w.Dirty = true
		}
	case host.EventTabRemoved:
		if w := m.WindowByID(e.Source); w != nil {
			w.Dirty = true
		}
	case host.EventWindowClosed:
		m.pruneClosedWindows()
	case host.EventWindowFocused, host.EventWindowSpawned:
		for _, w := range m.Windows {
			w.Dirty = true
		}
	}
}
