// Package app provides the tabflow demo application: several editor
// windows in one terminal, each with a draggable tab strip, wired through
// the same gesture machine and transfer protocol a desktop build would
// use.
package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/tabflow/tabflow/internal/config"
	"github.com/tabflow/tabflow/internal/gesture"
	"github.com/tabflow/tabflow/internal/host"
	"github.com/tabflow/tabflow/internal/preview"
	"github.com/tabflow/tabflow/internal/transfer"
)

// EditorWindow is the demo-side view of one shell window: the shared tab
// and document state plus the UI state that never crosses the window
// boundary.
type EditorWindow struct {
	Win           *host.ShellWindow
	ActiveTabID   string
	StripScroll   int  // horizontal scroll offset of the strip, in cells
	DropHighlight bool // true while this window is the live drop candidate
	Dirty         bool // true when the cached layer must be rebuilt
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Workspace is the demo application model. One gesture machine runs at a
// time because one pointer exists; the machine is rebound to whichever
// window the press landed in.
type Workspace struct {
	Shell  *host.Shell
	Broker *host.Broker

	Coordinator *transfer.Coordinator
	Registry    *transfer.Registry

	Windows []*EditorWindow

	// Live drag state. Machine and Prober are nil when no press is down.
	Machine       *gesture.Machine
	Prober        *preview.Prober
	SpringLoad    *preview.SpringLoader
	DragSource    string // window ID the active drag started in
	gestureOpts   gesture.Options
	probeDebounce time.Duration

	events *host.Subscription

	Width  int
	Height int

	// AutoSeed builds the demo layout on the first resize when no windows
	// have been added yet.
	AutoSeed bool

	Notifications []Notification
	LogMessages   []LogMessage
	Announcement  string // last assistive announcement, shown in the status line
	ShowLogs      bool
	ShowHelp      bool

	CPUPercent    float64
	RAMPercent    float64
	lastStatsPoll time.Time

	Now time.Time // last tick, drives all gesture timing
}

// NewWorkspace builds the demo model with the standard three-window layout
// seeded from the user's gesture config.
func NewWorkspace(cfg *config.UserConfig) *Workspace {
	broker := host.NewBroker()
	shell := host.NewShell(broker)
	reg := transfer.NewRegistry()

	var gc config.GestureConfig
	if cfg != nil {
		gc = cfg.Gesture
	}

	w := &Workspace{
		Shell:         shell,
		Broker:        broker,
		Registry:      reg,
		Coordinator:   transfer.NewCoordinator(shell, reg),
		events:        broker.Subscribe(64),
		Now:           time.Now(),
		probeDebounce: gc.ProbeDebounceOrDefault(),
		gestureOpts: gesture.Options{
			HoldDelay:            gc.HoldDelayOrDefault(),
			HoldCancelRadius:     config.DemoHoldCancelRadius,
			ReorderLockThreshold: config.DemoReorderLockThreshold,
			DragOutMargin:        gc.DragOutMarginOrDefault(),
			AutoScrollEdgeMargin: config.DemoAutoScrollEdgeMargin,
			AutoScrollMaxStep:    config.DemoAutoScrollMaxStep,
		},
	}
	w.SpringLoad = preview.NewSpringLoader(shell, gc.SpringLoadDwellOrDefault())
	return w
}

// AddWindow registers a shell window and its demo-side state.
func (m *Workspace) AddWindow(r host.Rect) *EditorWindow {
	sw := m.Shell.NewWindow(r)
	ew := &EditorWindow{Win: sw, Dirty: true}
	m.Windows = append(m.Windows, ew)
	return ew
}

// WindowByID returns the demo window for a shell window ID.
func (m *Workspace) WindowByID(id string) *EditorWindow {
	for _, w := range m.Windows {
		if w.Win.ID == id {
			return w
		}
	}
	return nil
}

// FocusedWindow returns the demo window holding focus, or nil.
func (m *Workspace) FocusedWindow() *EditorWindow {
	return m.WindowByID(m.Shell.Focused())
}

// WindowAt returns the topmost demo window under a screen point.
func (m *Workspace) WindowAt(x, y int) *EditorWindow {
	if id, ok := m.Shell.FindWindowUnderPoint(x, y, ""); ok {
		return m.WindowByID(id)
	}
	return nil
}

// FocusNextWindow cycles focus through the live windows. The shell keeps
// them front to back, so raising the backmost walks the whole set.
func (m *Workspace) FocusNextWindow() {
	wins := m.Shell.Windows()
	if len(wins) < 2 {
		return
	}
	_ = m.Shell.FocusWindow(wins[len(wins)-1].ID)
}

func createID() string {
	return uuid.New().String()
}

// Log adds a new log message to the log buffer.
func (m *Workspace) Log(level, format string, args ...any) {
	m.LogMessages = append(m.LogMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
	if len(m.LogMessages) > config.MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-config.MaxLogMessages:]
	}
}

// LogInfo logs an informational message.
func (m *Workspace) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *Workspace) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *Workspace) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification.
func (m *Workspace) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(m.Notifications) > config.MaxVisibleNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-config.MaxVisibleNotifications:]
	}
}

// Announce records a message for assistive technology. The demo surfaces
// it in the status line; a desktop build would post it to a live region.
func (m *Workspace) Announce(format string, args ...any) {
	m.Announcement = fmt.Sprintf(format, args...)
	m.LogInfo("announce: %s", m.Announcement)
}

// expireNotifications drops notifications whose duration has elapsed.
func (m *Workspace) expireNotifications(now time.Time) {
	kept := m.Notifications[:0]
	for _, n := range m.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			kept = append(kept, n)
		}
	}
	m.Notifications = kept
}

// updateStats refreshes the status line's CPU and RAM readings.
func (m *Workspace) updateStats(now time.Time) {
	if now.Sub(m.lastStatsPoll) < config.StatsUpdateInterval {
		return
	}
	m.lastStatsPoll = now
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		m.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		m.RAMPercent = vm.UsedPercent
	}
}
