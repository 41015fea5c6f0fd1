package input

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/tabflow/tabflow/internal/app"
	"github.com/tabflow/tabflow/internal/tab"
)

var untitledCounter int

// handleKeyPress handles workspace keyboard commands.
func handleKeyPress(msg tea.KeyPressMsg, m *app.Workspace) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		switch {
		case m.ShowHelp:
			m.ShowHelp = false
		case m.ShowLogs:
			m.ShowLogs = false
		default:
			m.DragCancel()
		}

	case "u":
		m.Undo()

	case "n":
		w := m.FocusedWindow()
		if w == nil {
			return m, nil
		}
		untitledCounter++
		t := tab.NewTab(fmt.Sprintf("untitled-%d.md", untitledCounter), "")
		doc := &tab.Document{Content: fmt.Sprintf("# untitled-%d\n", untitledCounter), Dirty: true}
		if err := m.Shell.InjectTabIntoWindow(w.Win.ID, t, doc); err == nil {
			w.ActiveTabID = t.ID
			w.Dirty = true
		}

	case "p":
		w := m.FocusedWindow()
		if w == nil || w.ActiveTabID == "" {
			return m, nil
		}
		t := w.Win.Tabs.Get(w.ActiveTabID)
		if t == nil {
			return m, nil
		}
		var err error
		if t.Pinned {
			err = w.Win.Tabs.Unpin(t.ID)
			m.Announce("%s unpinned", t.Title)
		} else {
			err = w.Win.Tabs.Pin(t.ID)
			m.Announce("%s pinned", t.Title)
		}
		if err != nil {
			m.LogError("pin toggle: %v", err)
		}
		w.Dirty = true

	case "tab":
		m.FocusNextWindow()

	case "l":
		m.ShowLogs = !m.ShowLogs

	case "?":
		m.ShowHelp = !m.ShowHelp
	}
	return m, nil
}
