package gesture

// AutoScrollDelta returns how far the strip should scroll this tick when the
// pointer is near a horizontal edge of the visible extent. The step grows
// linearly with how deep into the edge margin the pointer sits and is capped
// at maxStep. Negative means scroll toward the start of the strip, positive
// toward the end, zero when the pointer is outside both edge zones.
func AutoScrollDelta(x, visibleMin, visibleMax, margin, maxStep int) int {
	if margin <= 0 || maxStep <= 0 {
		return 0
	}
	if x < visibleMin+margin {
		depth := visibleMin + margin - x
		if depth > margin {
			depth = margin
		}
		step := depth * maxStep / margin
		if step < 1 {
			step = 1
		}
		return -step
	}
	if x > visibleMax-margin {
		depth := x - (visibleMax - margin)
		if depth > margin {
			depth = margin
		}
		step := depth * maxStep / margin
		if step < 1 {
			step = 1
		}
		return step
	}
	return 0
}
