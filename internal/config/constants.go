// Package config provides gesture tuning constants, user settings, and
// command-line overrides.
package config

import "time"

// =============================================================================
// Gesture Thresholds
// =============================================================================

const (
	// HoldDelay is how long a touch/pen contact must dwell before the
	// gesture arms. Mouse contacts skip the hold phase entirely.
	HoldDelay = 180 * time.Millisecond

	// HoldCancelRadius is the movement (in strip units) that aborts a hold.
	// A tap that wanders less than this still counts as a tap.
	HoldCancelRadius = 8

	// ReorderLockThreshold is the horizontal displacement from the anchor
	// that locks an armed gesture into reorder mode.
	ReorderLockThreshold = 6

	// DragOutMargin is how far above or below the tab strip's vertical band
	// the pointer must travel before the gesture becomes a drag-out.
	DragOutMargin = 40
)

// =============================================================================
// Auto-Scroll
// =============================================================================

const (
	// AutoScrollEdgeMargin is the width of the zone at each end of the
	// strip's visible extent in which auto-scroll engages.
	AutoScrollEdgeMargin = 28

	// AutoScrollMaxStep caps the scroll delta applied per tick.
	AutoScrollMaxStep = 14
)

// =============================================================================
// Cross-Window Timing
// =============================================================================

const (
	// ProbeDebounce is the minimum interval between drop-target probes.
	// Probing crosses the host process boundary and must not run on every
	// raw pointer move.
	ProbeDebounce = 60 * time.Millisecond

	// SpringLoadDwell is how long the pointer must hover a candidate window
	// during drag-out before that window is brought to the foreground.
	SpringLoadDwell = 420 * time.Millisecond
)

// =============================================================================
// Notifications and Logging
// =============================================================================

const (
	// NotificationDuration is the default time a notification stays visible.
	NotificationDuration = 1500 * time.Millisecond

	// SnapbackNotificationDuration is the time a rejected-drop message stays
	// visible. Longer than the default so the reason can be read.
	SnapbackNotificationDuration = 2500 * time.Millisecond

	// MaxLogMessages is the maximum number of entries kept in the log ring.
	MaxLogMessages = 500

	// MaxVisibleNotifications is the maximum number of notifications shown
	// at once.
	MaxVisibleNotifications = 3
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the refresh rate during regular operation.
	NormalFPS = 60

	// InteractionFPS is the refresh rate while a gesture is live. Lower FPS
	// during interactions improves pointer responsiveness.
	InteractionFPS = 30

	// StatsUpdateInterval is the interval between CPU/RAM statusbar updates.
	StatsUpdateInterval = 500 * time.Millisecond
)

// =============================================================================
// Demo Layout Dimensions
// =============================================================================

const (
	// TabStripHeight is the height of a window's tab strip in cells.
	TabStripHeight = 1

	// MinTabCellWidth is the narrowest a rendered tab may get before the
	// strip starts scrolling instead of shrinking further.
	MinTabCellWidth = 8

	// MaxTabCellWidth is the widest a rendered tab may get.
	MaxTabCellWidth = 24

	// StatusBarHeight is the height of the demo's status line.
	StatusBarHeight = 1

	// MaxTitleLength is the maximum tab title length shown in a strip.
	MaxTitleLength = 18
)

// =============================================================================
// Demo Gesture Scale
// =============================================================================

// The gesture thresholds above are tuned for pixel input. The terminal demo
// works in character cells, so it feeds the state machine these cell-scale
// equivalents instead.
const (
	// DemoHoldCancelRadius is HoldCancelRadius in cells.
	DemoHoldCancelRadius = 2

	// DemoReorderLockThreshold is ReorderLockThreshold in cells.
	DemoReorderLockThreshold = 1

	// DemoDragOutMargin is DragOutMargin in cells.
	DemoDragOutMargin = 2

	// DemoAutoScrollEdgeMargin is AutoScrollEdgeMargin in cells.
	DemoAutoScrollEdgeMargin = 4

	// DemoAutoScrollMaxStep is AutoScrollMaxStep in cells.
	DemoAutoScrollMaxStep = 2
)

// =============================================================================
// Mutable Globals (set once at startup from config/flags)
// =============================================================================

// These mirror the user config after ApplyOverrides has run. They are read
// from the render and input paths, which never mutate them.
var (
	// StripPosition is where each window docks its tab strip: "top" or
	// "bottom".
	StripPosition = "top"

	// AnimationsEnabled controls snapback and preview animations.
	AnimationsEnabled = true

	// UseASCIIOnly replaces decorative glyphs with plain ASCII.
	UseASCIIOnly = false
)
