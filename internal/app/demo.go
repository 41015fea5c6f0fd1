package app

import (
	"strings"

	"github.com/tabflow/tabflow/internal/config"
	"github.com/tabflow/tabflow/internal/host"
	"github.com/tabflow/tabflow/internal/tab"
)

// demoDoc is one seeded markdown file.
type demoDoc struct {
	title   string
	content string
	pinned  bool
	dirty   bool
}

var demoWindows = [][]demoDoc{
	{
		{title: "README.md", content: "# tabflow\n\nDrag a tab along the strip to reorder it.\nDrag it off the strip to move it to another window.\n", pinned: true},
		{title: "notes.md", content: "# Notes\n\n- hold a tab, then drag sideways\n- drag down past the strip to tear it out\n- press u to undo the last transfer\n", dirty: true},
		{title: "draft.md", content: "# Draft\n\nUnsaved edits travel with the tab when it moves.\n", dirty: true},
		{title: "ideas.md", content: "# Ideas\n\nDrop a tab onto the other window's body to transfer it.\n"},
	},
	{
		{title: "journal.md", content: "# Journal\n\nThis window accepts drops from its neighbor.\n"},
	},
}

// SeedDemo populates the workspace with the standard demo layout: a primary
// editor with a handful of markdown tabs and a second, smaller window to
// drop them into. Call after the first WindowSizeMsg or with explicit
// dimensions.
func (m *Workspace) SeedDemo(width, height int) {
	if width < 40 || height < 12 {
		width, height = 80, 24
	}
	m.Width = width
	m.Height = height

	usable := height - config.StatusBarHeight
	rects := []host.Rect{
		{X: 1, Y: 1, W: width*3/5 - 2, H: usable - 2},
		{X: width*3/5 + 1, Y: usable / 4, W: width*2/5 - 2, H: usable / 2},
	}

	for i, docs := range demoWindows {
		ew := m.AddWindow(rects[i])
		for _, d := range docs {
			tb := tab.NewTab(d.title, "/workspace/"+d.title)
			tb.Pinned = d.pinned
			doc := &tab.Document{
				Content:       d.content,
				SavedContent:  d.content,
				Path:          tb.Path,
				WorkspaceRoot: "/workspace",
			}
			if d.dirty {
				doc.Content = strings.TrimRight(d.content, "\n") + "\n\n(unsaved edit)\n"
				doc.Dirty = true
			}
			if err := m.Shell.InjectTabIntoWindow(ew.Win.ID, tb, doc); err != nil {
				m.LogError("seed %s: %v", d.title, err)
				continue
			}
			if ew.ActiveTabID == "" {
				ew.ActiveTabID = tb.ID
			}
		}
	}
	_ = m.Shell.FocusWindow(m.Windows[0].Win.ID)
	m.LogInfo("seeded %d demo windows", len(m.Windows))
	m.Announce("%d windows ready", len(m.Windows))
}
