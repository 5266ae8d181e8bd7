// Package world provides the geometry queries navigation needs from the
// level: sight checks, wall probes, nearest boundary lines, floor and
// ceiling heights, and track feature regions.
package world

import (
	"github.com/paulmach/orb"

	vmath "github.com/Faultbox/kartnav/pkg/math"
)

// FeatureKind identifies a class of track feature.
type FeatureKind int

const (
	NoFeature FeatureKind = iota
	SneakerPanel
)

var featureNames = map[FeatureKind]string{
	NoFeature:    "none",
	SneakerPanel: "sneaker_panel",
}

func (k FeatureKind) String() string {
	if s, ok := featureNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseFeatureKind maps a feature name to its kind.
func ParseFeatureKind(s string) (FeatureKind, bool) {
	for k, name := range featureNames {
		if name == s {
			return k, true
		}
	}
	return NoFeature, false
}

// Hit describes the first blocking surface met by a probe.
type Hit struct {
	Solid    bool       // something blocks the segment
	Deadly   bool       // the blocker is a pit or instant-death sector
	Distance float64    // from the probe origin to Point
	Point    vmath.Vec3 // where the probe was stopped
}

// Geometry answers world queries for navigation.
type Geometry interface {
	// LineOfSight reports whether nothing solid lies between from and to.
	LineOfSight(from, to vmath.Vec3) bool
	// Probe returns the first blocking surface along from -> to. Deadly
	// sectors count as solid.
	Probe(from, to vmath.Vec3) Hit
	// NearestLine returns the closest point on any boundary line in the
	// horizontal plane, its distance, and false when the world has no lines.
	NearestLine(p vmath.Vec3) (vmath.Vec3, float64, bool)
	// FloorAt returns the highest floor at (x, y) not above z.
	FloorAt(x, y, z float32) (float32, bool)
	// CeilingAt returns the lowest ceiling at (x, y) not below z.
	CeilingAt(x, y, z float32) (float32, bool)
	// TrackFeatures returns the 2D extents of every feature of a kind.
	TrackFeatures(kind FeatureKind) []orb.Bound
}

// SightChecker is the part of Geometry route queries need.
type SightChecker interface {
	LineOfSight(from, to vmath.Vec3) bool
}

// Open is a world without any geometry: everything is visible and no
// probe ever hits.
type Open struct{}

func (Open) LineOfSight(_, _ vmath.Vec3) bool { return true }

func (Open) Probe(_, to vmath.Vec3) Hit { return Hit{Point: to} }

func (Open) NearestLine(vmath.Vec3) (vmath.Vec3, float64, bool) {
	return vmath.Vec3{}, 0, false
}

func (Open) FloorAt(_, _, _ float32) (float32, bool) { return 0, false }

func (Open) CeilingAt(_, _, _ float32) (float32, bool) { return 0, false }

func (Open) TrackFeatures(FeatureKind) []orb.Bound { return nil }
