package app

import (
	"errors"
	"testing"
	"time"

	"github.com/tabflow/tabflow/internal/config"
	"github.com/tabflow/tabflow/internal/gesture"
	"github.com/tabflow/tabflow/internal/host"
	"github.com/tabflow/tabflow/internal/tab"
	"github.com/tabflow/tabflow/internal/transfer"
)

var d0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// seededWorkspace builds the two windows the demo starts with: the primary
// window holding three 8-character titles so every tab renders 10 cells
// wide, strip row y=1, first tab starting at x=1.
func seededWorkspace(t *testing.T) (*Workspace, *EditorWindow, *EditorWindow, []*tab.Tab) {
	t.Helper()
	return seededWorkspaceWithConfig(t, nil)
}

func seededWorkspaceWithConfig(t *testing.T, cfg *config.UserConfig) (*Workspace, *EditorWindow, *EditorWindow, []*tab.Tab) {
	t.Helper()
	m := NewWorkspace(cfg)
	m.Width = 80
	m.Height = 40
	m.Now = d0

	w1 := m.AddWindow(host.Rect{X: 0, Y: 0, W: 60, H: 20})
	w2 := m.AddWindow(host.Rect{X: 0, Y: 25, W: 60, H: 12})

	var tabs []*tab.Tab
	for _, name := range []string{"alpha.md", "beta0.md", "gamma.md"} {
		tb := tab.NewTab(name, "/doc/"+name)
		doc := &tab.Document{Content: "# " + name, SavedContent: "# " + name, Path: tb.Path}
		if err := m.Shell.InjectTabIntoWindow(w1.Win.ID, tb, doc); err != nil {
			t.Fatal(err)
		}
		tabs = append(tabs, tb)
	}
	w1.ActiveTabID = tabs[0].ID
	return m, w1, w2, tabs
}

func titles(c *tab.Collection) []string {
	var out []string
	for _, t := range c.Tabs() {
		out = append(out, t.Title)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTabAtMapsStripCells(t *testing.T) {
	m, w1, _, tabs := seededWorkspace(t)

	cases := []struct {
		x, y int
		want string
	}{
		{1, 1, tabs[0].ID},
		{10, 1, tabs[0].ID},
		{11, 1, tabs[1].ID},
		{25, 1, tabs[2].ID},
		{31, 1, ""}, // past the last tab
		{5, 5, ""},  // off the strip row
	}
	for _, c := range cases {
		got := ""
		if tb := m.TabAt(w1, c.x, c.y); tb != nil {
			got = tb.ID
		}
		if got != c.want {
			t.Errorf("TabAt(%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
}

func TestMouseDragReordersTabs(t *testing.T) {
	m, w1, _, tabs := seededWorkspace(t)

	m.BeginDrag(w1, tabs[0], gesture.PointerMouse, gesture.Point{X: 5, Y: 1})
	if m.Machine == nil {
		t.Fatal("drag did not start")
	}
	m.DragMove(gesture.Point{X: 18, Y: 1})
	if v := m.Machine.View(); v.Mode != gesture.ModeReorder {
		t.Fatalf("mode = %v, want reorder", v.Mode)
	}
	m.DragRelease(gesture.Point{X: 18, Y: 1})

	if m.Machine != nil {
		t.Error("machine not released after commit")
	}
	want := []string{"beta0.md", "gamma.md", "alpha.md"}
	if got := titles(w1.Win.Tabs); !equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestReleaseWithoutMovementSelects(t *testing.T) {
	m, w1, _, tabs := seededWorkspace(t)

	m.BeginDrag(w1, tabs[1], gesture.PointerMouse, gesture.Point{X: 15, Y: 1})
	m.DragRelease(gesture.Point{X: 15, Y: 1})

	if w1.ActiveTabID != tabs[1].ID {
		t.Errorf("active = %q, want %q", w1.ActiveTabID, tabs[1].ID)
	}
	want := []string{"alpha.md", "beta0.md", "gamma.md"}
	if got := titles(w1.Win.Tabs); !equal(got, want) {
		t.Errorf("select mutated order: %v", got)
	}
}

func TestTouchHoldArmsThroughTick(t *testing.T) {
	m, w1, _, tabs := seededWorkspace(t)

	m.BeginDrag(w1, tabs[0], gesture.PointerTouch, gesture.Point{X: 5, Y: 1})
	if v := m.Machine.View(); v.Mode != gesture.ModeHold {
		t.Fatalf("mode = %v, want hold", v.Mode)
	}

	m.Now = d0.Add(200 * time.Millisecond)
	m.DragTick()
	if v := m.Machine.View(); v.Mode != gesture.ModePending {
		t.Fatalf("mode after hold delay = %v, want pending", v.Mode)
	}

	m.DragMove(gesture.Point{X: 18, Y: 1})
	m.DragRelease(gesture.Point{X: 18, Y: 1})
	want := []string{"beta0.md", "gamma.md", "alpha.md"}
	if got := titles(w1.Win.Tabs); !equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestPinnedTabRefusesDrag(t *testing.T) {
	m, w1, _, _ := seededWorkspace(t)

	pinned := tab.NewTab("notes.md", "/doc/notes.md")
	pinned.Pinned = true
	w1.Win.Tabs.Add(pinned)
	w1.Win.Docs.Init(pinned.ID, &tab.Document{Path: pinned.Path})

	m.BeginDrag(w1, pinned, gesture.PointerMouse, gesture.Point{X: 5, Y: 1})
	if m.Machine != nil {
		t.Error("pinned tab started a drag")
	}
	if len(m.Notifications) == 0 {
		t.Error("no refusal notification")
	}
	if m.Announcement == "" {
		t.Error("no refusal announcement")
	}
}

func TestReorderIntoPinnedZoneSnapsBack(t *testing.T) {
	m, w1, _, tabs := seededWorkspace(t)

	pinned := tab.NewTab("notes.md", "/doc/notes.md")
	pinned.Pinned = true
	w1.Win.Tabs.Add(pinned) // becomes index 0
	w1.Win.Docs.Init(pinned.ID, &tab.Document{Path: pinned.Path})
	before := titles(w1.Win.Tabs)

	// Pinned tab renders 12 cells, so alpha.md now starts at x=13.
	m.BeginDrag(w1, tabs[1], gesture.PointerMouse, gesture.Point{X: 25, Y: 1})
	m.DragMove(gesture.Point{X: 3, Y: 1})
	m.DragRelease(gesture.Point{X: 3, Y: 1})

	if got := titles(w1.Win.Tabs); !equal(got, before) {
		t.Errorf("blocked reorder mutated order: %v", got)
	}
	if len(m.Notifications) == 0 {
		t.Error("no snapback notification")
	}
}

func TestDragOutTransfersTabAndDocument(t *testing.T) {
	m, w1, w2, tabs := seededWorkspace(t)
	beta := tabs[1]

	m.BeginDrag(w1, beta, gesture.PointerMouse, gesture.Point{X: 15, Y: 1})
	m.DragMove(gesture.Point{X: 15, Y: 10})
	if v := m.Machine.View(); v.Mode != gesture.ModeDragOut {
		t.Fatalf("mode = %v, want dragout", v.Mode)
	}
	m.DragMove(gesture.Point{X: 15, Y: 30})
	m.DragRelease(gesture.Point{X: 15, Y: 30})

	if w1.Win.Tabs.Get(beta.ID) != nil {
		t.Error("tab still in source window")
	}
	if w2.Win.Tabs.Get(beta.ID) == nil {
		t.Fatal("tab missing from target window")
	}
	doc := w2.Win.Docs.Get(beta.ID)
	if doc == nil || doc.Content != "# beta0.md" {
		t.Errorf("document did not travel: %+v", doc)
	}
	if w2.ActiveTabID != beta.ID {
		t.Errorf("target active = %q, want %q", w2.ActiveTabID, beta.ID)
	}
	if m.Shell.Focused() != w2.Win.ID {
		t.Error("target window not focused after transfer")
	}
	if !m.Coordinator.CanUndo() {
		t.Error("transfer not undoable")
	}
}

func TestDragOutToEmptySpaceSpawnsWindow(t *testing.T) {
	m, w1, _, tabs := seededWorkspace(t)
	gamma := tabs[2]

	m.BeginDrag(w1, gamma, gesture.PointerMouse, gesture.Point{X: 25, Y: 1})
	m.DragMove(gesture.Point{X: 70, Y: 10})
	m.DragRelease(gesture.Point{X: 70, Y: 10})

	if len(m.Windows) != 3 {
		t.Fatalf("windows = %d, want 3", len(m.Windows))
	}
	spawned := m.Windows[2]
	if spawned.Win.Tabs.Get(gamma.ID) == nil {
		t.Error("torn-out tab missing from spawned window")
	}
	if spawned.Win.Docs.Get(gamma.ID) == nil {
		t.Error("document missing from spawned window")
	}
	if w1.Win.Tabs.Get(gamma.ID) != nil {
		t.Error("tab still in source window")
	}
	if spawned.ActiveTabID != gamma.ID {
		t.Errorf("spawned active = %q", spawned.ActiveTabID)
	}
}

func TestLastPrimaryTabBlocksDragOut(t *testing.T) {
	m := NewWorkspace(nil)
	m.Width = 80
	m.Height = 40
	m.Now = d0
	w1 := m.AddWindow(host.Rect{X: 0, Y: 0, W: 60, H: 20})
	w2 := m.AddWindow(host.Rect{X: 0, Y: 25, W: 60, H: 12})

	only := tab.NewTab("alpha.md", "/doc/alpha.md")
	if err := m.Shell.InjectTabIntoWindow(w1.Win.ID, only, &tab.Document{Path: only.Path}); err != nil {
		t.Fatal(err)
	}
	w1.ActiveTabID = only.ID

	m.BeginDrag(w1, only, gesture.PointerMouse, gesture.Point{X: 5, Y: 1})
	m.DragMove(gesture.Point{X: 15, Y: 30})
	m.DragRelease(gesture.Point{X: 15, Y: 30})

	if w1.Win.Tabs.Get(only.ID) == nil {
		t.Error("last primary tab left its window")
	}
	if w2.Win.Tabs.Len() != 0 {
		t.Error("blocked transfer still landed")
	}
	if len(m.Notifications) == 0 {
		t.Error("no snapback notification")
	}
}

func TestUndoRestoresTransferredTab(t *testing.T) {
	m, w1, w2, tabs := seededWorkspace(t)
	beta := tabs[1]

	m.BeginDrag(w1, beta, gesture.PointerMouse, gesture.Point{X: 15, Y: 1})
	m.DragMove(gesture.Point{X: 15, Y: 30})
	m.DragRelease(gesture.Point{X: 15, Y: 30})
	if w2.Win.Tabs.Get(beta.ID) == nil {
		t.Fatal("transfer did not land")
	}

	m.Undo()

	if w2.Win.Tabs.Get(beta.ID) != nil {
		t.Error("tab still in target after undo")
	}
	if got := w1.Win.Tabs.IndexOf(beta.ID); got != 1 {
		t.Errorf("restored index = %d, want 1", got)
	}
	if w1.Win.Docs.Get(beta.ID) == nil {
		t.Error("document not restored with tab")
	}

	m.Undo()
	if w1.Win.Tabs.IndexOf(beta.ID) != 1 {
		t.Error("second undo mutated state")
	}
}

func TestUndoAfterTearOutClosesSpawnedWindow(t *testing.T) {
	m, w1, _, tabs := seededWorkspace(t)
	gamma := tabs[2]

	m.BeginDrag(w1, gamma, gesture.PointerMouse, gesture.Point{X: 25, Y: 1})
	m.DragMove(gesture.Point{X: 70, Y: 10})
	m.DragRelease(gesture.Point{X: 70, Y: 10})
	if len(m.Windows) != 3 {
		t.Fatal("tear-out did not spawn")
	}

	m.Undo()

	if len(m.Windows) != 2 {
		t.Errorf("windows = %d after undo, want 2", len(m.Windows))
	}
	if got := w1.Win.Tabs.IndexOf(gamma.ID); got != 2 {
		t.Errorf("restored index = %d, want 2", got)
	}
}

func TestCancelAbortsWithoutMutation(t *testing.T) {
	m, w1, _, tabs := seededWorkspace(t)
	before := titles(w1.Win.Tabs)

	m.BeginDrag(w1, tabs[0], gesture.PointerMouse, gesture.Point{X: 5, Y: 1})
	m.DragMove(gesture.Point{X: 18, Y: 1})
	m.DragCancel()

	if m.Machine != nil {
		t.Error("machine survived cancel")
	}
	if got := titles(w1.Win.Tabs); !equal(got, before) {
		t.Errorf("cancel mutated order: %v", got)
	}
	if m.Announcement != "Drag cancelled" {
		t.Errorf("announcement = %q", m.Announcement)
	}
}

func TestDropPreviewHighlightFollowsProbe(t *testing.T) {
	m, w1, w2, tabs := seededWorkspace(t)

	m.BeginDrag(w1, tabs[1], gesture.PointerMouse, gesture.Point{X: 15, Y: 1})
	m.DragMove(gesture.Point{X: 15, Y: 30})
	m.Update(TickerMsg(d0.Add(50 * time.Millisecond)))
	if !w2.DropHighlight {
		t.Error("drop candidate not highlighted")
	}

	m.DragCancel()
	m.Update(TickerMsg(d0.Add(100 * time.Millisecond)))
	if w2.DropHighlight {
		t.Error("highlight survived cancel")
	}
}

func TestScrollStripClampsToContent(t *testing.T) {
	m, w1, _, _ := seededWorkspace(t)

	m.ScrollStripBy(w1, -10)
	if w1.StripScroll != 0 {
		t.Errorf("scroll = %d, want 0", w1.StripScroll)
	}

	// 3 tabs at 10 cells vs 58 visible: nothing to scroll.
	m.ScrollStripBy(w1, 50)
	if w1.StripScroll != 0 {
		t.Errorf("scroll past content = %d, want 0", w1.StripScroll)
	}

	for _, name := range []string{"delta.md", "epsil.md", "zeta0.md", "eta00.md"} {
		tb := tab.NewTab(name, "/doc/"+name)
		w1.Win.Tabs.Add(tb)
		w1.Win.Docs.Init(tb.ID, &tab.Document{Path: tb.Path})
	}
	// 7 tabs, 70 cells of strip against 58 visible.
	m.ScrollStripBy(w1, 50)
	if w1.StripScroll != 12 {
		t.Errorf("scroll = %d, want 12", w1.StripScroll)
	}
}

func TestProbeDebounceFromUserConfig(t *testing.T) {
	cfg := &config.UserConfig{Gesture: config.GestureConfig{ProbeDebounceMs: 10000}}
	m, w1, w2, tabs := seededWorkspaceWithConfig(t, cfg)

	m.BeginDrag(w1, tabs[0], gesture.PointerMouse, gesture.Point{X: 5, Y: 1})
	// First probe fires immediately but sees no window besides the source.
	m.DragMove(gesture.Point{X: 5, Y: 10})
	if got := m.Prober.Target(); got != "" {
		t.Fatalf("target = %q, want none", got)
	}

	// The pointer is over the second window now, but the next probe is
	// still held back.
	m.DragMove(gesture.Point{X: 5, Y: 30})
	if got := m.Prober.Target(); got != "" {
		t.Errorf("debounced probe resolved %q", got)
	}

	m.Now = d0.Add(11 * time.Second)
	m.DragMove(gesture.Point{X: 5, Y: 30})
	if got := m.Prober.Target(); got != w2.Win.ID {
		t.Errorf("target = %q, want %q", got, w2.Win.ID)
	}
	m.DragCancel()
}

func TestDragOutMarginFromUserConfig(t *testing.T) {
	cfg := &config.UserConfig{Gesture: config.GestureConfig{DragOutMargin: 5}}
	m, w1, _, tabs := seededWorkspaceWithConfig(t, cfg)

	m.BeginDrag(w1, tabs[0], gesture.PointerMouse, gesture.Point{X: 5, Y: 1})

	// Five cells below the strip row is still within the widened band.
	m.DragMove(gesture.Point{X: 5, Y: 6})
	if mode := m.Machine.View().Mode; mode != gesture.ModePending {
		t.Fatalf("mode at band edge = %v, want pending", mode)
	}

	m.DragMove(gesture.Point{X: 5, Y: 7})
	if mode := m.Machine.View().Mode; mode != gesture.ModeDragOut {
		t.Errorf("mode past margin = %v, want dragout", mode)
	}
	m.DragCancel()
}

// failingSpawner refuses to spawn windows so the tear-out rollback path
// can be driven end to end.
type failingSpawner struct {
	*host.Shell
}

func (f failingSpawner) SpawnWindowWithTab(r host.Rect, tb *tab.Tab, doc *tab.Document) (string, error) {
	return "", errors.New("no window slots")
}

func TestSpawnFailureSnapsTabBack(t *testing.T) {
	m, w1, _, tabs := seededWorkspace(t)
	m.Coordinator = transfer.NewCoordinator(failingSpawner{m.Shell}, m.Registry)

	m.BeginDrag(w1, tabs[2], gesture.PointerMouse, gesture.Point{X: 25, Y: 1})
	m.DragMove(gesture.Point{X: 70, Y: 10})
	m.DragRelease(gesture.Point{X: 70, Y: 10})

	want := []string{"alpha.md", "beta0.md", "gamma.md"}
	if got := titles(w1.Win.Tabs); !equal(got, want) {
		t.Errorf("tabs after failed spawn = %v, want %v", got, want)
	}
	if len(m.Windows) != 2 {
		t.Errorf("window count = %d, want 2", len(m.Windows))
	}
	if m.Announcement != "Tear out failed, tab snapped back" {
		t.Errorf("announcement = %q", m.Announcement)
	}
	found := false
	for _, n := range m.Notifications {
		if n.Type == "error" {
			found = true
		}
	}
	if !found {
		t.Error("no error notification after failed spawn")
	}
	if m.Machine != nil {
		t.Error("gesture still live after release")
	}
}
