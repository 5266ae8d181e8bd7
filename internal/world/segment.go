package world

import "github.com/paulmach/orb"

// cross returns the z component of the cross product of two 2D vectors.
func cross(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

// intersectSegments returns the position t along p->q where it crosses the
// segment a->b. Parallel segments never intersect.
func intersectSegments(p, q, a, b orb.Point) (float64, bool) {
	rx, ry := q[0]-p[0], q[1]-p[1]
	sx, sy := b[0]-a[0], b[1]-a[1]

	denom := cross(rx, ry, sx, sy)
	if denom == 0 {
		return 0, false
	}

	apx, apy := a[0]-p[0], a[1]-p[1]
	t := cross(apx, apy, sx, sy) / denom
	u := cross(apx, apy, rx, ry) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// closestOnSegment projects p onto a->b, clamped to the segment.
func closestOnSegment(a, b, p orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}
