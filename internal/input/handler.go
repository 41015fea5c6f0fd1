// Package input routes terminal input to the demo workspace: pointer
// events into the gesture machine, keys into workspace commands.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tabflow/tabflow/internal/app"
)

// HandleInput is the main input coordinator that routes messages to the
// appropriate handlers.
func HandleInput(msg tea.Msg, m *app.Workspace) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return handleKeyPress(msg, m)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, m)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, m)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, m)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, m)
	}
	return m, nil
}
