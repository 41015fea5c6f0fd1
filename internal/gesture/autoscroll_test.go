package gesture

import "testing"

func TestAutoScrollDelta(t *testing.T) {
	const (
		min     = 0
		max     = 400
		margin  = 28
		maxStep = 14
	)

	tests := []struct {
		name string
		x    int
		want int
	}{
		{"center of strip", 200, 0},
		{"just inside left zone boundary", margin, 0},
		{"just inside right zone boundary", max - margin, 0},
		{"at left edge", 0, -maxStep},
		{"at right edge", max, maxStep},
		{"past left edge", -20, -maxStep},
		{"past right edge", max + 20, maxStep},
		{"halfway into left zone", 14, -7},
		{"halfway into right zone", max - 14, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutoScrollDelta(tt.x, min, max, margin, maxStep); got != tt.want {
				t.Errorf("AutoScrollDelta(%d) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestAutoScrollDeltaSignAndCap(t *testing.T) {
	for x := -100; x <= 500; x++ {
		got := AutoScrollDelta(x, 0, 400, 28, 14)
		if got < -14 || got > 14 {
			t.Fatalf("AutoScrollDelta(%d) = %d, exceeds cap", x, got)
		}
		if x >= 28 && x <= 372 && got != 0 {
			t.Fatalf("AutoScrollDelta(%d) = %d, want 0 outside edge zones", x, got)
		}
	}
}

func TestAutoScrollDeltaDegenerateArgs(t *testing.T) {
	if got := AutoScrollDelta(0, 0, 400, 0, 14); got != 0 {
		t.Errorf("zero margin should disable auto-scroll, got %d", got)
	}
	if got := AutoScrollDelta(0, 0, 400, 28, 0); got != 0 {
		t.Errorf("zero max step should disable auto-scroll, got %d", got)
	}
}
