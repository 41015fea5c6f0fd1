// Package gesture implements the tab drag-gesture state machine: direction
// locking between in-strip reorder and drag-out, hold arming for touch
// input, hit-test geometry, and edge auto-scroll.
package gesture

// Extent is one sibling tab's horizontal range in strip coordinates.
// Min is inclusive, Max exclusive.
type Extent struct {
	Min int
	Max int
}

// Mid returns the visual midpoint of the extent.
func (e Extent) Mid() int {
	return (e.Min + e.Max) / 2
}

// InsertionIndex computes the boundary at which a dragged tab would be
// inserted for the given pointer x: the first index whose visual midpoint is
// to the right of the pointer, or len(tabs) to insert at the end. The result
// is monotonically non-decreasing in x for a fixed layout. It must be
// recomputed on every move because the strip itself can be scrolling.
func InsertionIndex(tabs []Extent, x int) int {
	for i, t := range tabs {
		if t.Mid() > x {
			return i
		}
	}
	return len(tabs)
}
