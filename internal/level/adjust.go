package level

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/kartnav/internal/world"
	vmath "github.com/Faultbox/kartnav/pkg/math"
)

// ApplyAnchors sets each anchored waypoint's radius to its distance from
// the anchor. The placements are updated in place.
func (l *Level) ApplyAnchors() error {
	var errs error
	for i, a := range l.Anchors {
		w := l.FindWaypoint(a.Waypoint)
		if w == nil {
			errs = multierr.Append(errs, fmt.Errorf("anchor %d: %w %d", i, ErrUnknownWaypoint, a.Waypoint))
			continue
		}
		w.Radius = w.Position.vec().Distance(a.Position.vec())
	}
	return errs
}

// ApplyRisers moves each risen waypoint to the nearest floor below it or
// ceiling above it, plus the riser offset. Waypoints with no such surface
// stay where they are and are reported.
func (l *Level) ApplyRisers(geo world.Geometry) error {
	var errs error
	for i, r := range l.Risers {
		w := l.FindWaypoint(r.Waypoint)
		if w == nil {
			errs = multierr.Append(errs, fmt.Errorf("riser %d: %w %d", i, ErrUnknownWaypoint, r.Waypoint))
			continue
		}

		x, y, z := w.Position[0], w.Position[1], w.Position[2]
		var (
			surface float32
			ok      bool
		)
		switch r.Mode {
		case RiseToFloor:
			surface, ok = geo.FloorAt(x, y, z)
		case RiseToCeiling:
			surface, ok = geo.CeilingAt(x, y, z)
		default:
			errs = multierr.Append(errs, fmt.Errorf("riser %d: %w, got %q", i, ErrBadRiserMode, r.Mode))
			continue
		}
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("riser %d: no %s at waypoint %d", i, r.Mode, w.ID))
			continue
		}
		w.Position[2] = surface + r.Offset
	}
	return errs
}

func (v Vec3) vec() vmath.Vec3 {
	return vmath.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
