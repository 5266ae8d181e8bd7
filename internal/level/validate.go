package level

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/kartnav/internal/world"
)

// Validate reports every problem in the description as one combined error.
// Problems the graph builder tolerates (dangling next ids, missing finish
// line) are left to it.
func (l *Level) Validate() error {
	var errs error
	if len(l.Waypoints) == 0 {
		return ErrNoWaypoints
	}

	seen := make(map[int]bool, len(l.Waypoints))
	for _, w := range l.Waypoints {
		if seen[w.ID] {
			errs = multierr.Append(errs, fmt.Errorf("waypoint %d: %w", w.ID, ErrDuplicateID))
		}
		seen[w.ID] = true
		if w.Radius < 0 {
			errs = multierr.Append(errs, fmt.Errorf("waypoint %d radius: %w", w.ID, ErrNegativeSize))
		}
	}

	for i, a := range l.Anchors {
		if !seen[a.Waypoint] {
			errs = multierr.Append(errs, fmt.Errorf("anchor %d: %w %d", i, ErrUnknownWaypoint, a.Waypoint))
		}
	}
	for i, r := range l.Risers {
		if !seen[r.Waypoint] {
			errs = multierr.Append(errs, fmt.Errorf("riser %d: %w %d", i, ErrUnknownWaypoint, r.Waypoint))
		}
		if r.Mode != RiseToFloor && r.Mode != RiseToCeiling {
			errs = multierr.Append(errs, fmt.Errorf("riser %d: %w, got %q", i, ErrBadRiserMode, r.Mode))
		}
	}
	for i, s := range l.Sectors {
		if len(s.Polygon) < 3 {
			errs = multierr.Append(errs, fmt.Errorf("sector %d: %w", i, ErrBadPolygon))
		}
		if s.Feature != "" {
			if _, ok := world.ParseFeatureKind(s.Feature); !ok {
				errs = multierr.Append(errs, fmt.Errorf("sector %d: %w %q", i, ErrUnknownFeature, s.Feature))
			}
		}
	}
	for i, p := range l.Panels {
		if p.Size < 0 {
			errs = multierr.Append(errs, fmt.Errorf("panel %d size: %w", i, ErrNegativeSize))
		}
	}
	return errs
}
