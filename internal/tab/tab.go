// Package tab provides the per-window tab collection and the document store
// backing it. A window owns exactly one ordered Collection; pinned tabs
// occupy a contiguous prefix of the ordering and are protected from drags.
package tab

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Errors returned by collection operations. Callers turn these into snapback
// notifications; none of them leave the collection modified.
var (
	// ErrNotFound indicates the tab id is not in the collection.
	ErrNotFound = errors.New("tab not found")

	// ErrPinnedZone indicates a reorder would move a tab into or out of the
	// pinned prefix.
	ErrPinnedZone = errors.New("reorder blocked by pinned zone")

	// ErrIndexRange indicates an index is outside the collection bounds.
	ErrIndexRange = errors.New("index out of range")
)

// Tab identifies one open document inside a window. The id is unique within
// the owning window and stable across reorders and transfers.
type Tab struct {
	ID     string
	Title  string
	Path   string // backing file path, empty for unsaved documents
	Pinned bool
}

// NewTab creates a tab with a fresh id.
func NewTab(title, path string) *Tab {
	return &Tab{
		ID:    uuid.New().String(),
		Title: title,
		Path:  path,
	}
}

// Collection is a window's ordered tab list. Order is meaningful: it is the
// visual order of the strip, and pinned tabs are always a prefix of it.
type Collection struct {
	tabs []*Tab
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Len returns the number of tabs.
func (c *Collection) Len() int {
	return len(c.tabs)
}

// PinnedCount returns the length of the pinned prefix.
func (c *Collection) PinnedCount() int {
	n := 0
	for _, t := range c.tabs {
		if !t.Pinned {
			break
		}
		n++
	}
	return n
}

// At returns the tab at index i, or nil if out of range.
func (c *Collection) At(i int) *Tab {
	if i < 0 || i >= len(c.tabs) {
		return nil
	}
	return c.tabs[i]
}

// IndexOf returns the index of the tab with the given id, or -1.
func (c *Collection) IndexOf(id string) int {
	return slices.IndexFunc(c.tabs, func(t *Tab) bool { return t.ID == id })
}

// Get returns the tab with the given id, or nil.
func (c *Collection) Get(id string) *Tab {
	if i := c.IndexOf(id); i >= 0 {
		return c.tabs[i]
	}
	return nil
}

// Tabs returns a copy of the ordered tab slice.
func (c *Collection) Tabs() []*Tab {
	return slices.Clone(c.tabs)
}

// Add appends a tab, keeping the pinned prefix contiguous: pinned tabs are
// inserted at the end of the prefix, unpinned tabs at the end of the list.
func (c *Collection) Add(t *Tab) {
	if t.Pinned {
		c.tabs = slices.Insert(c.tabs, c.PinnedCount(), t)
		return
	}
	c.tabs = append(c.tabs, t)
}

// Remove detaches the tab with the given id and returns it.
func (c *Collection) Remove(id string) (*Tab, error) {
	i := c.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t := c.tabs[i]
	c.tabs = slices.Delete(c.tabs, i, i+1)
	return t, nil
}

// CommitIndex converts a live insertion boundary into the index the dragged
// tab occupies after the move. Removing the tab reflows every later tab one
// slot left, which carries the pointer's boundary one slot further right, so
// a boundary past the current index is kept as-is rather than decremented.
// The result is clamped to the post-removal bounds.
func CommitIndex(boundary, count int) int {
	target := boundary
	if target > count-1 {
		target = count - 1
	}
	if target < 0 {
		target = 0
	}
	return target
}

// Pin marks the tab pinned and moves it to the end of the pinned prefix.
// Pinning an already pinned tab is a no-op.
func (c *Collection) Pin(id string) error {
	i := c.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t := c.tabs[i]
	if t.Pinned {
		return nil
	}
	c.tabs = slices.Delete(c.tabs, i, i+1)
	t.Pinned = true
	c.tabs = slices.Insert(c.tabs, c.PinnedCount(), t)
	return nil
}

// Unpin clears the pin and moves the tab to the front of the unpinned
// region, keeping the prefix contiguous.
func (c *Collection) Unpin(id string) error {
	i := c.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t := c.tabs[i]
	if !t.Pinned {
		return nil
	}
	c.tabs = slices.Delete(c.tabs, i, i+1)
	t.Pinned = false
	c.tabs = slices.Insert(c.tabs, c.PinnedCount(), t)
	return nil
}

// MoveTo places the tab with the given id at an exact index, clamped to the
// list bounds. Used to restore a tab's old position after an undone
// transfer. The pinned prefix is enforced the same way Reorder enforces it.
func (c *Collection) MoveTo(id string, index int) error {
	from := c.IndexOf(id)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	n := len(c.tabs)
	if index < 0 {
		index = 0
	}
	if index > n-1 {
		index = n - 1
	}
	t := c.tabs[from]
	pinned := c.PinnedCount()
	if t.Pinned {
		if index >= pinned {
			return ErrPinnedZone
		}
	} else if index < pinned {
		return ErrPinnedZone
	}
	if index == from {
		return nil
	}
	c.tabs = slices.Delete(c.tabs, from, from+1)
	c.tabs = slices.Insert(c.tabs, index, t)
	return nil
}

// Reorder moves the tab at from so it ends up at the insertion boundary
// computed by the hit test. The move is rejected, not clamped, when it would
// place an unpinned tab inside the pinned prefix or disturb a pinned tab.
func (c *Collection) Reorder(from, boundary int) error {
	n := len(c.tabs)
	if from < 0 || from >= n {
		return fmt.Errorf("%w: from %d of %d", ErrIndexRange, from, n)
	}
	if boundary < 0 || boundary > n {
		return fmt.Errorf("%w: boundary %d of %d", ErrIndexRange, boundary, n)
	}

	t := c.tabs[from]
	target := CommitIndex(boundary, n)

	pinned := c.PinnedCount()
	if t.Pinned {
		// Pinned tabs may move only within the prefix.
		if target >= pinned {
			return ErrPinnedZone
		}
	} else if target < pinned {
		return ErrPinnedZone
	}

	if target == from {
		return nil
	}

	c.tabs = slices.Delete(c.tabs, from, from+1)
	c.tabs = slices.Insert(c.tabs, target, t)
	return nil
}
