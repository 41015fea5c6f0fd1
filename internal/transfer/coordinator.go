package transfer

import (
	"errors"
	"fmt"

	"github.com/tabflow/tabflow/internal/host"
	"github.com/tabflow/tabflow/internal/tab"
)

var (
	// ErrPinnedTab means a pinned tab cannot leave its window.
	ErrPinnedTab = errors.New("transfer: pinned tab cannot be transferred")
	// ErrLastPrimaryTab means the primary window keeps its last tab.
	ErrLastPrimaryTab = errors.New("transfer: cannot move the last tab out of the primary window")
	// ErrNothingToUndo means no transfer is on record.
	ErrNothingToUndo = errors.New("transfer: nothing to undo")
)

type undoRecord struct {
	payload  Payload
	sourceID string
	index    int
	targetID string
	spawned  bool
}

// Coordinator commits drag-out drops. Every commit either completes all
// its steps or rolls back to the pre-drag state: the torn tab is never
// left owned by two windows or by none.
type Coordinator struct {
	wm   host.WindowManager
	reg  *Registry
	last *undoRecord
}

// NewCoordinator builds a coordinator over the window manager.
func NewCoordinator(wm host.WindowManager, reg *Registry) *Coordinator {
	return &Coordinator{wm: wm, reg: reg}
}

// check enforces the drop preconditions without mutating anything.
func (c *Coordinator) check(sourceID, tabID string) (*tab.Tab, int, error) {
	t, index, err := c.wm.TabInWindow(sourceID, tabID)
	if err != nil {
		return nil, -1, err
	}
	if t.Pinned {
		return nil, -1, ErrPinnedTab
	}
	count, primary, err := c.wm.WindowTabCount(sourceID)
	if err != nil {
		return nil, -1, err
	}
	if primary && count == 1 {
		return nil, -1, ErrLastPrimaryTab
	}
	return t, index, nil
}

// CommitToWindow moves a tab from the source window into an existing
// target window: detach from the source, park the payload for the target,
// claim and inject it there, then focus the target. A target that closed
// mid-drop fails the commit and the tab goes back where it was.
func (c *Coordinator) CommitToWindow(sourceID, tabID, targetID string) error {
	_, index, err := c.check(sourceID, tabID)
	if err != nil {
		return err
	}

	t, doc, err := c.wm.RemoveTabFromWindow(sourceID, tabID)
	if err != nil {
		return err
	}

	p := NewPayload(t, doc)
	c.reg.Deposit(targetID, p)

	claimed, ok := c.reg.Claim(targetID)
	if !ok {
		// Cannot happen in-process, but the protocol treats an empty
		// claim the same as a vanished target.
		c.restore(sourceID, p, index)
		return host.ErrWindowClosed
	}
	nt, ndoc := claimed.Restore()
	if err := c.wm.InjectTabIntoWindow(targetID, nt, ndoc); err != nil {
		c.reg.Clear(targetID)
		c.restore(sourceID, p, index)
		return fmt.Errorf("inject into target: %w", err)
	}

	// Focus is cosmetic, the transfer stands either way.
	_ = c.wm.FocusWindow(targetID)
	c.last = &undoRecord{payload: p, sourceID: sourceID, index: index, targetID: targetID}
	return nil
}

// CommitToNewWindow tears the tab out into a freshly spawned window at the
// given bounds.
func (c *Coordinator) CommitToNewWindow(sourceID, tabID string, r host.Rect) (string, error) {
	_, index, err := c.check(sourceID, tabID)
	if err != nil {
		return "", err
	}

	t, doc, err := c.wm.RemoveTabFromWindow(sourceID, tabID)
	if err != nil {
		return "", err
	}
	p := NewPayload(t, doc)

	nt, ndoc := p.Restore()
	id, err := c.wm.SpawnWindowWithTab(r, nt, ndoc)
	if err != nil {
		c.restore(sourceID, p, index)
		return "", fmt.Errorf("spawn window: %w", err)
	}
	c.last = &undoRecord{payload: p, sourceID: sourceID, index: index, targetID: id, spawned: true}
	return id, nil
}

// Undo reverses the most recent transfer: the tab leaves the window it
// landed in and returns to its source at its old strip position. A spawned
// window left empty by the undo is closed.
func (c *Coordinator) Undo() error {
	rec := c.last
	if rec == nil {
		return ErrNothingToUndo
	}
	if _, _, err := c.wm.WindowTabCount(rec.sourceID); err != nil {
		return fmt.Errorf("undo: source window gone: %w", err)
	}

	t, doc, err := c.wm.RemoveTabFromWindow(rec.targetID, rec.payload.TabID)
	if err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	if err := c.wm.InjectTabIntoWindow(rec.sourceID, t, doc); err != nil {
		// Put it back in the target rather than lose the tab.
		_ = c.wm.InjectTabIntoWindow(rec.targetID, t, doc)
		return fmt.Errorf("undo: %w", err)
	}
	c.reposition(rec.sourceID, rec.payload.TabID, rec.index)
	if rec.spawned {
		_ = c.wm.CloseWindow(rec.targetID)
	}
	_ = c.wm.FocusWindow(rec.sourceID)
	c.last = nil
	return nil
}

// CanUndo reports whether a transfer is on record.
func (c *Coordinator) CanUndo() bool {
	return c.last != nil
}

// restore undoes a detach after a later step failed.
func (c *Coordinator) restore(sourceID string, p Payload, index int) {
	t, doc := p.Restore()
	if err := c.wm.InjectTabIntoWindow(sourceID, t, doc); err != nil {
		return
	}
	c.reposition(sourceID, p.TabID, index)
}

// reposition moves a just-injected tab from the end of the strip back to
// its recorded index. Best effort: a strip that changed shape keeps the
// tab at the end.
func (c *Coordinator) reposition(sourceID, tabID string, index int) {
	if index < 0 {
		return
	}
	_ = c.wm.MoveTabWithinWindow(sourceID, tabID, index)
}
