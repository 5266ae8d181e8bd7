package level

import (
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/Faultbox/kartnav/internal/waypoint"
	"github.com/Faultbox/kartnav/internal/world"
)

// Records converts the placements into graph builder input.
func (l *Level) Records() []waypoint.Record {
	out := make([]waypoint.Record, len(l.Waypoints))
	for i, w := range l.Waypoints {
		out[i] = waypoint.Record{
			ID:         w.ID,
			Next:       append([]int(nil), w.Next...),
			Position:   w.Position.vec(),
			Radius:     w.Radius,
			Enabled:    w.IsEnabled(),
			Shortcut:   w.Shortcut,
			Spawnpoint: w.IsSpawnpoint(),
			FinishLine: w.FinishLine,
		}
	}
	return out
}

// ToWorld builds the queryable geometry of the level. Unknown sector
// features are ignored; Validate reports them.
func (l *Level) ToWorld(log *zap.Logger) *world.Map {
	data := world.Data{
		Walls:    make([]world.Wall, 0, len(l.Walls)),
		Sectors:  make([]world.Sector, 0, len(l.Sectors)),
		Features: make(map[world.FeatureKind][]orb.Bound),
	}

	for _, w := range l.Walls {
		data.Walls = append(data.Walls, world.Wall{
			A:        orb.Point(w.From),
			B:        orb.Point(w.To),
			TwoSided: w.TwoSided,
			Bottom:   w.Bottom,
			Top:      w.Top,
		})
	}

	for _, s := range l.Sectors {
		if len(s.Polygon) < 3 {
			continue
		}
		kind, _ := world.ParseFeatureKind(s.Feature)
		data.Sectors = append(data.Sectors, world.Sector{
			Polygon: orb.Polygon{closedRing(s.Polygon)},
			Floor:   s.Floor,
			Ceiling: s.Ceiling,
			Deadly:  s.Deadly,
			Feature: kind,
		})
	}

	for _, p := range l.Panels {
		pt := orb.Point(p.Position)
		data.Features[world.SneakerPanel] = append(data.Features[world.SneakerPanel], pt.Bound().Pad(p.Size))
	}

	return world.NewMap(data, log)
}

func closedRing(pts []Vec2) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point(p))
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}
