// Package theme provides color themes and styling for the tabflow demo.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and standard terminal colors are used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	ok := tint.SetTintID(themeName)
	if !ok {
		// Theme not found, set to default
		tint.SetTintID("default")
	}

	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// WindowBg returns the background color for editor window bodies.
func WindowBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

// WindowFg returns the foreground color for editor text.
func WindowFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// BorderUnfocused returns the color for unfocused window borders.
func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#7f7f7f")
	}
	return t.BrightBlack
}

// BorderFocused returns the color for the focused window border.
func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

// BorderDropCandidate returns the border color for the window highlighted
// as the live drop target.
func BorderDropCandidate() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AAFFAA")
	}
	return t.BrightGreen
}

// TabActive returns background and foreground colors for the active tab.
func TabActive() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff"), lipgloss.Color("#ffffff")
	}
	return t.BrightBlue, t.BrightWhite
}

// TabInactive returns background and foreground colors for inactive tabs.
func TabInactive() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#1a1a2e"), lipgloss.Color("#a0a0b0")
	}
	return t.Bg, t.White
}

// TabDragged returns background and foreground colors for the tab being
// dragged in-strip.
func TabDragged() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd00cd"), lipgloss.Color("#ffffff")
	}
	return t.Purple, t.BrightWhite
}

// PinBadge returns the color for the pinned-tab marker.
func PinBadge() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffff00")
	}
	return t.Yellow
}

// DirtyBadge returns the color for the unsaved-changes marker.
func DirtyBadge() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ff0000")
	}
	return t.BrightRed
}

// DropIndicator returns the color of the insertion caret drawn between
// tabs during a reorder.
func DropIndicator() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ffff")
	}
	return t.BrightCyan
}

// DragGhost returns background and foreground colors for the floating tab
// ghost that follows the pointer during drag-out.
func DragGhost() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd00cd"), lipgloss.Color("#ffffff")
	}
	return t.Purple, t.BrightWhite
}

// StatusBarBg returns the background color for the status line.
func StatusBarBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

// StatusBarFg returns the foreground color for the status line.
func StatusBarFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

// NotificationColors returns border colors for notification types.
func NotificationColors(kind string) color.Color {
	t := Current()
	switch kind {
	case "error":
		if t == nil {
			return lipgloss.Color("#ff0000")
		}
		return t.BrightRed
	case "warning":
		if t == nil {
			return lipgloss.Color("#ffff00")
		}
		return t.Yellow
	default:
		if t == nil {
			return lipgloss.Color("#00ff00")
		}
		return t.BrightGreen
	}
}
