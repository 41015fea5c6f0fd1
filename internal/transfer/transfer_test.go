package transfer

import (
	"errors"
	"testing"

	"github.com/tabflow/tabflow/internal/host"
	"github.com/tabflow/tabflow/internal/tab"
)

func seededShell(t *testing.T) (*host.Shell, *host.ShellWindow, *host.ShellWindow, []*tab.Tab) {
	t.Helper()
	s := host.NewShell(host.NewBroker())
	w1 := s.NewWindow(host.Rect{X: 0, Y: 0, W: 200, H: 100})
	w2 := s.NewWindow(host.Rect{X: 300, Y: 0, W: 200, H: 100})
	var tabs []*tab.Tab
	for _, name := range []string{"alpha.md", "beta.md", "gamma.md"} {
		tb := tab.NewTab(name, "/doc/"+name)
		if err := s.InjectTabIntoWindow(w1.ID, tb, &tab.Document{Content: name, Path: tb.Path}); err != nil {
			t.Fatal(err)
		}
		tabs = append(tabs, tb)
	}
	return s, w1, w2, tabs
}

func TestPayloadCarriesUnsavedState(t *testing.T) {
	tb := tab.NewTab("draft.md", "/doc/draft.md")
	doc := &tab.Document{
		Content:       "edited",
		SavedContent:  "original",
		Dirty:         true,
		Path:          "/doc/draft.md",
		WorkspaceRoot: "/doc",
	}
	p := NewPayload(tb, doc)

	data, err := p.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodePayload(data)
	if err != nil {
		t.Fatal(err)
	}
	rt, rdoc := got.Restore()
	if rt.ID != tb.ID || rt.Title != "draft.md" {
		t.Errorf("restored tab %+v", rt)
	}
	if rdoc.Content != "edited" || rdoc.SavedContent != "original" || !rdoc.Dirty {
		t.Errorf("unsaved state lost in transit: %+v", rdoc)
	}
	if rdoc.WorkspaceRoot != "/doc" {
		t.Errorf("workspace root lost: %q", rdoc.WorkspaceRoot)
	}
}

func TestRegistryClaimOnce(t *testing.T) {
	r := NewRegistry()
	r.Deposit("win-b", Payload{TabID: "t1"})
	if !r.PendingFor("win-b") {
		t.Fatal("payload should be pending")
	}
	p, ok := r.Claim("win-b")
	if !ok || p.TabID != "t1" {
		t.Fatalf("claim = %+v, %v", p, ok)
	}
	if _, ok := r.Claim("win-b"); ok {
		t.Error("second claim must come back empty")
	}
}

func TestRegistryDepositReplacesAndClear(t *testing.T) {
	r := NewRegistry()
	r.Deposit("win-b", Payload{TabID: "t1"})
	r.Deposit("win-b", Payload{TabID: "t2"})
	if p, _ := r.Claim("win-b"); p.TabID != "t2" {
		t.Errorf("claim after replace = %q, want t2", p.TabID)
	}
	r.Deposit("win-c", Payload{TabID: "t3"})
	r.Clear("win-c")
	if r.PendingFor("win-c") {
		t.Error("clear should drop the unclaimed payload")
	}
}

func TestCommitToWindowMovesTabOnce(t *testing.T) {
	s, w1, w2, tabs := seededShell(t)
	c := NewCoordinator(s, NewRegistry())

	if err := c.CommitToWindow(w1.ID, tabs[1].ID, w2.ID); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if w1.Tabs.Len() != 2 {
		t.Errorf("source tabs = %d, want 2", w1.Tabs.Len())
	}
	if w2.Tabs.Len() != 1 {
		t.Errorf("target tabs = %d, want 1", w2.Tabs.Len())
	}
	if w1.Tabs.Get(tabs[1].ID) != nil {
		t.Error("tab still present in source after commit")
	}
	got := w2.Tabs.Get(tabs[1].ID)
	if got == nil {
		t.Fatal("tab missing from target after commit")
	}
	if doc := w2.Docs.Get(tabs[1].ID); doc == nil || doc.Content != "beta.md" {
		t.Error("document did not travel with the tab")
	}
	if s.Focused() != w2.ID {
		t.Error("target window should take focus after the drop")
	}
}

func TestCommitPinnedTabBlocked(t *testing.T) {
	s, w1, w2, tabs := seededShell(t)
	w1.Tabs.Get(tabs[0].ID).Pinned = true
	c := NewCoordinator(s, NewRegistry())

	if err := c.CommitToWindow(w1.ID, tabs[0].ID, w2.ID); !errors.Is(err, ErrPinnedTab) {
		t.Errorf("commit of pinned tab = %v, want ErrPinnedTab", err)
	}
	if w1.Tabs.Len() != 3 || w2.Tabs.Len() != 0 {
		t.Error("blocked commit must not mutate either window")
	}
}

func TestCommitLastPrimaryTabBlocked(t *testing.T) {
	s := host.NewShell(host.NewBroker())
	w1 := s.NewWindow(host.Rect{W: 200, H: 100})
	w2 := s.NewWindow(host.Rect{X: 300, W: 200, H: 100})
	tb := tab.NewTab("only.md", "")
	if err := s.InjectTabIntoWindow(w1.ID, tb, nil); err != nil {
		t.Fatal(err)
	}
	c := NewCoordinator(s, NewRegistry())
	if err := c.CommitToWindow(w1.ID, tb.ID, w2.ID); !errors.Is(err, ErrLastPrimaryTab) {
		t.Errorf("commit = %v, want ErrLastPrimaryTab", err)
	}
	if w1.Tabs.Len() != 1 {
		t.Error("primary window lost its last tab")
	}
}

func TestCommitIntoClosedTargetRollsBack(t *testing.T) {
	s, w1, w2, tabs := seededShell(t)
	c := NewCoordinator(s, NewRegistry())
	if err := s.CloseWindow(w2.ID); err != nil {
		t.Fatal(err)
	}

	err := c.CommitToWindow(w1.ID, tabs[1].ID, w2.ID)
	if err == nil {
		t.Fatal("commit into a closed window should fail")
	}
	if w1.Tabs.Len() != 3 {
		t.Fatalf("source tabs = %d after rollback, want 3", w1.Tabs.Len())
	}
	if got := w1.Tabs.IndexOf(tabs[1].ID); got != 1 {
		t.Errorf("rolled-back tab at index %d, want 1", got)
	}
	if doc := w1.Docs.Get(tabs[1].ID); doc == nil || doc.Content != "beta.md" {
		t.Error("rolled-back tab lost its document")
	}
}

func TestCommitToNewWindow(t *testing.T) {
	s, w1, _, tabs := seededShell(t)
	c := NewCoordinator(s, NewRegistry())

	id, err := c.CommitToNewWindow(w1.ID, tabs[2].ID, host.Rect{X: 600, Y: 200, W: 200, H: 100})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	w := s.Window(id)
	if w == nil || w.Tabs.Len() != 1 {
		t.Fatal("spawned window should hold the torn tab")
	}
	if w1.Tabs.Len() != 2 {
		t.Errorf("source tabs = %d, want 2", w1.Tabs.Len())
	}
	if s.Focused() != id {
		t.Error("spawned window should take focus")
	}
}

func TestUndoRestoresPositionAndClosesSpawned(t *testing.T) {
	s, w1, _, tabs := seededShell(t)
	c := NewCoordinator(s, NewRegistry())

	id, err := c.CommitToNewWindow(w1.ID, tabs[1].ID, host.Rect{X: 600, W: 200, H: 100})
	if err != nil {
		t.Fatal(err)
	}
	if !c.CanUndo() {
		t.Fatal("transfer should be undoable")
	}
	if err := c.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := w1.Tabs.IndexOf(tabs[1].ID); got != 1 {
		t.Errorf("undone tab at index %d, want 1", got)
	}
	if s.Window(id) != nil {
		t.Error("spawned window should close when undo empties it")
	}
	if c.CanUndo() {
		t.Error("undo should consume the record")
	}
	if err := c.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("second undo = %v, want ErrNothingToUndo", err)
	}
}

func TestUndoAfterWindowToWindowTransfer(t *testing.T) {
	s, w1, w2, tabs := seededShell(t)
	c := NewCoordinator(s, NewRegistry())

	if err := c.CommitToWindow(w1.ID, tabs[0].ID, w2.ID); err != nil {
		t.Fatal(err)
	}
	if err := c.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := w1.Tabs.IndexOf(tabs[0].ID); got != 0 {
		t.Errorf("undone tab at index %d, want 0", got)
	}
	if w2.Tabs.Len() != 0 {
		t.Error("target should be empty after undo")
	}
	if s.Focused() != w1.ID {
		t.Error("undo should refocus the source window")
	}
}
