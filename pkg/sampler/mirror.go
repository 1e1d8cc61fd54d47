package sampler

import "slices"

// mirrorRing closes an upper-half ring by appending its reflection across
// y=0 in reverse order. An endpoint sitting exactly on the mirror axis
// (sample value zero) maps onto itself, so its reflected copy is dropped;
// the check is on the sample value, never the index, so functions that
// change sign inside the domain are reflected untouched.
func mirrorRing(upper Ring) Ring {
	lower := slices.Clone(upper)
	if lower[0].Y == 0 {
		lower = lower[1:]
	}
	slices.Reverse(lower)
	if len(lower) > 0 && lower[0].Y == 0 {
		lower = lower[1:]
	}

	ring := upper
	for _, p := range lower {
		ring = append(ring, Point{X: p.X, Y: -p.Y, Slope: p.Slope})
	}
	return ring
}
