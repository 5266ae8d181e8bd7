package math

import "math"

// Yaw returns the horizontal heading from a to b in degrees, in [0, 360).
func Yaw(a, b Vec3) float64 {
	deg := math.Atan2(float64(b.Y)-float64(a.Y), float64(b.X)-float64(a.X)) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Pitch returns the climb angle from a to b in degrees, in (-90, 90].
// A zero horizontal distance yields ±90 (or 0 when the points coincide).
func Pitch(a, b Vec3) float64 {
	horiz := float64(a.XY().Distance(b.XY()))
	return math.Atan2(float64(b.Z)-float64(a.Z), horiz) * 180 / math.Pi
}

// AngleDelta returns the smallest absolute difference between two headings, in [0, 180].
func AngleDelta(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ApproxDistance is the cheap octagonal distance estimate: the larger axis
// plus half the smaller. Never less than the true distance, never more than
// about 12% over it.
func ApproxDistance(dx, dy float64) float64 {
	dx = math.Abs(dx)
	dy = math.Abs(dy)
	if dx < dy {
		return dx + dy - dx/2
	}
	return dx + dy - dy/2
}

// ApproxDistance3 applies ApproxDistance to the planar distance and a
// weighted vertical component.
func ApproxDistance3(a, b Vec3, zWeight float64) float64 {
	planar := ApproxDistance(float64(a.X)-float64(b.X), float64(a.Y)-float64(b.Y))
	if zWeight == 0 {
		return planar
	}
	return ApproxDistance(planar, (float64(a.Z)-float64(b.Z))*zWeight)
}
