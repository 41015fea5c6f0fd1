package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/tabflow/tabflow/internal/config"
	"github.com/tabflow/tabflow/internal/gesture"
	"github.com/tabflow/tabflow/internal/tab"
	"github.com/tabflow/tabflow/internal/theme"
)

func getBorder() lipgloss.Border {
	if config.UseASCIIOnly {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}

func pinGlyph() string {
	if config.UseASCIIOnly {
		return "*"
	}
	return "●" // ●... kept single-width
}

func dirtyGlyph() string {
	if config.UseASCIIOnly {
		return "+"
	}
	return "•" // •
}

// tabLabel builds the text shown inside a tab. Width math in the hit test
// depends on this exact string, so truncation is width-aware rather than
// byte-based.
func tabLabel(t *tab.Tab, doc *tab.Document) string {
	title := ansi.Truncate(t.Title, config.MaxTitleLength, "~")
	var b strings.Builder
	if t.Pinned {
		b.WriteString(pinGlyph())
		b.WriteString(" ")
	}
	b.WriteString(title)
	if doc != nil && doc.Dirty {
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.DirtyBadge()).Render(dirtyGlyph()))
	}
	return b.String()
}

// renderStrip renders one window's tab strip, scrolled and clipped to the
// window's inner width.
func (m *Workspace) renderStrip(w *EditorWindow) string {
	innerW := w.Win.Rect.W - 2
	if innerW < 1 {
		return ""
	}

	var v gesture.View
	dragHere := false
	if m.Machine != nil && m.DragSource == w.Win.ID {
		v = m.Machine.View()
		dragHere = true
	}

	var b strings.Builder
	tabs := w.Win.Tabs.Tabs()
	for i, t := range tabs {
		if dragHere && v.Mode == gesture.ModeReorder && v.DropIndex == i {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.DropIndicator()).Render("┃"))
		}

		doc := w.Win.Docs.Get(t.ID)
		label := tabLabel(t, doc)
		width := tabCellWidth(t, doc)

		style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).MaxWidth(width)
		switch {
		case dragHere && v.DraggedTabID == t.ID && v.Mode != gesture.ModeIdle:
			bg, fg := theme.TabDragged()
			style = style.Background(bg).Foreground(fg)
		case t.ID == w.ActiveTabID:
			bg, fg := theme.TabActive()
			style = style.Background(bg).Foreground(fg)
		default:
			bg, fg := theme.TabInactive()
			style = style.Background(bg).Foreground(fg)
		}
		if t.Pinned {
			style = style.Foreground(theme.PinBadge())
		}
		b.WriteString(style.Render(label))
	}
	if dragHere && v.Mode == gesture.ModeReorder && v.DropIndex == len(tabs) {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.DropIndicator()).Render("┃"))
	}

	strip := b.String()
	clipped := ansi.Cut(strip, w.StripScroll, w.StripScroll+innerW)
	if pad := innerW - lipgloss.Width(clipped); pad > 0 {
		clipped += strings.Repeat(" ", pad)
	}
	return clipped
}

// renderBody renders the active document's visible lines.
func (m *Workspace) renderBody(w *EditorWindow, rows int) string {
	innerW := w.Win.Rect.W - 2
	if rows < 1 || innerW < 1 {
		return ""
	}
	doc := w.Win.Docs.Get(w.ActiveTabID)
	var lines []string
	if doc == nil {
		lines = []string{"", "  no open tabs"}
	} else {
		lines = strings.Split(doc.Content, "\n")
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	style := lipgloss.NewStyle().Width(innerW).MaxWidth(innerW).Foreground(theme.WindowFg())
	if theme.IsEnabled() {
		style = style.Background(theme.WindowBg())
	}
	var b strings.Builder
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString("\n")
		}
		if i < len(lines) {
			b.WriteString(style.Render(ansi.Truncate(lines[i], innerW, "")))
		} else {
			b.WriteString(style.Render(""))
		}
	}
	return b.String()
}

// renderWindow renders one editor window into its bordered box.
func (m *Workspace) renderWindow(w *EditorWindow, focused bool) string {
	r := w.Win.Rect
	bodyRows := r.H - 2 - config.TabStripHeight
	strip := m.renderStrip(w)
	body := m.renderBody(w, bodyRows)

	var content string
	if config.StripPosition == "bottom" {
		content = body + "\n" + strip
	} else {
		content = strip + "\n" + body
	}

	borderColor := theme.BorderUnfocused()
	switch {
	case w.DropHighlight:
		borderColor = theme.BorderDropCandidate()
	case focused:
		borderColor = theme.BorderFocused()
	}

	return lipgloss.NewStyle().
		Width(r.W - 2).
		Height(r.H - 2).
		Border(getBorder()).
		BorderForeground(borderColor).
		Render(content)
}

// renderGhost renders the floating tab that follows the pointer during
// drag-out.
func (m *Workspace) renderGhost(v gesture.View) *lipgloss.Layer {
	src := m.WindowByID(m.DragSource)
	if src == nil {
		return nil
	}
	t := src.Win.Tabs.Get(v.DraggedTabID)
	if t == nil {
		return nil
	}
	bg, fg := theme.DragGhost()
	ghost := lipgloss.NewStyle().Background(bg).Foreground(fg).
		Render(" " + tabLabel(t, src.Win.Docs.Get(t.ID)) + " ")
	x := v.LivePoint.X - lipgloss.Width(ghost)/2
	if x < 0 {
		x = 0
	}
	y := v.LivePoint.Y - 1
	if y < 0 {
		y = 0
	}
	return lipgloss.NewLayer(ghost).X(x).Y(y).Z(1000).ID("drag-ghost")
}

// dragGhostLayer returns the floating tab layer for a live drag-out, or
// nil when nothing is torn out or animations are disabled.
func (m *Workspace) dragGhostLayer() *lipgloss.Layer {
	if !config.AnimationsEnabled || m.Machine == nil {
		return nil
	}
	v := m.Machine.View()
	if v.Mode != gesture.ModeDragOut {
		return nil
	}
	return m.renderGhost(v)
}

// renderStatusBar renders the bottom status line.
func (m *Workspace) renderStatusBar() string {
	mode := "idle"
	if m.Machine != nil {
		mode = m.Machine.View().Mode.String()
	}
	left := fmt.Sprintf(" %s ", mode)
	if m.Announcement != "" {
		left += "| " + m.Announcement + " "
	}
	right := fmt.Sprintf(" cpu %2.0f%% ram %2.0f%% | u undo / l logs / ? help / q quit ", m.CPUPercent, m.RAMPercent)

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	line := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(theme.StatusBarBg()).
		Foreground(theme.StatusBarFg()).
		MaxWidth(m.Width).
		Render(line)
}

// renderNotifications stacks active notifications in the top-right corner.
func (m *Workspace) renderNotifications() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	y := 0
	for _, n := range m.Notifications {
		box := lipgloss.NewStyle().
			Border(getBorder()).
			BorderForeground(theme.NotificationColors(n.Type)).
			Padding(0, 1).
			Render(n.Message)
		h := lipgloss.Height(box)
		x := m.Width - lipgloss.Width(box) - 1
		if x < 0 {
			x = 0
		}
		layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y).Z(2000).ID("notif-"+n.ID))
		y += h
	}
	return layers
}

// renderLogOverlay renders the log viewer.
func (m *Workspace) renderLogOverlay() *lipgloss.Layer {
	rows := m.Height - 6
	if rows < 4 {
		rows = 4
	}
	start := len(m.LogMessages) - rows
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	b.WriteString("Logs\n\n")
	for _, lm := range m.LogMessages[start:] {
		fmt.Fprintf(&b, "%s %-5s %s\n", lm.Time.Format("15:04:05"), lm.Level, lm.Message)
	}
	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.BorderFocused()).
		Padding(0, 1).
		MaxWidth(m.Width - 4).
		Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.NewLayer(box).X(2).Y(1).Z(3000).ID("log-overlay")
}

// renderHelpOverlay renders the keybinding help.
func (m *Workspace) renderHelpOverlay() *lipgloss.Layer {
	help := strings.Join([]string{
		"tabflow demo",
		"",
		"drag a tab sideways      reorder within the strip",
		"drag a tab up or down    tear it out of the window",
		"  ... over a window      move it into that window",
		"  ... over empty space   open it in a new window",
		"esc                      cancel the drag (snapback)",
		"u                        undo the last transfer",
		"n                        new tab in focused window",
		"p                        pin/unpin the active tab",
		"tab                      cycle window focus",
		"l                        toggle log overlay",
		"?                        toggle this help",
		"q                        quit",
	}, "\n")
	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.BorderFocused()).
		Padding(0, 2).
		Render(help)
	x := (m.Width - lipgloss.Width(box)) / 2
	if x < 0 {
		x = 0
	}
	y := (m.Height - lipgloss.Height(box)) / 2
	if y < 0 {
		y = 0
	}
	return lipgloss.NewLayer(box).X(x).Y(y).Z(3000).ID("help-overlay")
}

// GetCanvas composes all windows and overlays into the frame canvas.
func (m *Workspace) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas()
	focusedID := m.Shell.Focused()

	// Shell z-order is front first; lipgloss wants higher Z on top.
	wins := m.Shell.Windows()
	for i := len(wins) - 1; i >= 0; i-- {
		w := m.WindowByID(wins[i].ID)
		if w == nil {
			continue
		}
		box := m.renderWindow(w, w.Win.ID == focusedID)
		layer := lipgloss.NewLayer(box).
			X(w.Win.Rect.X).Y(w.Win.Rect.Y).Z(len(wins) - i).ID(w.Win.ID)
		canvas.AddLayers(layer)
		w.Dirty = false
	}

	if ghost := m.dragGhostLayer(); ghost != nil {
		canvas.AddLayers(ghost)
	}

	canvas.AddLayers(m.renderNotifications()...)
	if m.ShowLogs {
		canvas.AddLayers(m.renderLogOverlay())
	}
	if m.ShowHelp {
		canvas.AddLayers(m.renderHelpOverlay())
	}

	if m.Height > 0 {
		bar := lipgloss.NewLayer(m.renderStatusBar()).
			X(0).Y(m.Height - config.StatusBarHeight).Z(4000).ID("status-bar")
		canvas.AddLayers(bar)
	}

	return canvas
}

// View renders the whole frame.
func (m *Workspace) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}
