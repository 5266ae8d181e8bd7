package circuit

import (
	"math"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/Faultbox/kartnav/internal/waypoint"
	"github.com/Faultbox/kartnav/internal/world"
	vmath "github.com/Faultbox/kartnav/pkg/math"
)

// Turn is the score of one waypoint triple.
type Turn struct {
	Apex         *waypoint.Waypoint
	YawDelta     float64 // degrees
	PitchDelta   float64 // degrees
	Radius       float64 // radius factor
	Spacing      float64 // distance factor
	Wall         float64 // wall factor
	Contribution float64
}

// probeSlots are the positions along the travel direction, in multiples of
// the probe offset, from which walls are looked for on both sides.
var probeSlots = [...]float64{-1.5, -0.5, 0.5, 1.5}

// Complexity scores g from its starting waypoint to its finish line. It
// returns the baseline when there is no route to follow.
func (a *Analyzer) Complexity(g *waypoint.Graph) int {
	score, _, _, _ := a.complexity(g)
	return score
}

func (a *Analyzer) complexity(g *waypoint.Graph) (int, []Turn, []orb.Bound, bool) {
	start, finish := g.StartingWaypoint(), g.FinishLine()
	if start == nil || finish == nil {
		a.log.Warn("no starting waypoint, complexity left at baseline",
			zap.Int("baseline", a.cfg.Baseline))
		return a.cfg.Baseline, nil, nil, true
	}

	path, ok := waypoint.PathTo(a.engine, start, finish, waypoint.SearchOptions{})
	if !ok {
		a.log.Warn("no route to the finish line, complexity left at baseline",
			zap.Stringer("starting", start), zap.Int("baseline", a.cfg.Baseline))
		return a.cfg.Baseline, nil, nil, true
	}

	total := float64(a.cfg.Baseline)
	var turns []Turn
	for i := 1; i+1 < path.Len(); i++ {
		prev, mid, next := path.Nodes[i-1], path.Nodes[i], path.Nodes[i+1]
		if !prev.Spawnpoint() || !mid.Spawnpoint() || !next.Spawnpoint() {
			continue
		}
		t := a.ScoreTurn(prev, mid, next)
		turns = append(turns, t)
		total += t.Contribution
	}

	clusters := ClusterFeatures(a.geo.TrackFeatures(world.SneakerPanel), a.cfg.SneakerPanelMargin)
	total -= float64(len(clusters) * a.cfg.SneakerPanelPenalty)

	return int(math.Round(total)), turns, clusters, false
}

// ScoreTurn rates the turn at mid. Turns sharper than the minimum add to
// the score, scaled down for wide waypoints, long segments and nearby
// walls. Straighter segments take a little off. Steep pitch changes add a
// drop bonus either way.
func (a *Analyzer) ScoreTurn(prev, mid, next *waypoint.Waypoint) Turn {
	p, m, n := prev.Position(), mid.Position(), next.Position()
	t := Turn{
		Apex:       mid,
		YawDelta:   vmath.AngleDelta(vmath.Yaw(p, m), vmath.Yaw(m, n)),
		PitchDelta: vmath.AngleDelta(vmath.Pitch(p, m), vmath.Pitch(m, n)),
		Radius:     1,
		Spacing:    1,
		Wall:       1,
	}

	delta := t.YawDelta - a.cfg.MinimumTurn
	if delta < 0 {
		t.Contribution = delta / a.cfg.StraightDivisor
	} else {
		avgRadius := float64(prev.Radius()+mid.Radius()+next.Radius()) / 3
		t.Radius = 1 + (math.Min(1, a.cfg.BaseRadius/math.Max(1, avgRadius))-1)/2

		spacing := p.Distance64(m) + m.Distance64(n)
		t.Spacing = math.Min(1, 2*a.cfg.BaseRadius/math.Max(1, spacing))

		t.Wall = a.WallFactor(prev, mid, next)
		t.Contribution = delta * t.Radius * t.Spacing * t.Wall
	}

	if t.PitchDelta > a.cfg.MinimumDrop {
		t.Contribution += (t.PitchDelta - a.cfg.MinimumDrop) * a.cfg.DropMultiplier
	}
	return t
}

// WallFactor probes sideways from points around the apex of a turn. Every
// solid hit within the search radius lowers the factor, nearer hits more,
// down to 1 - WallWeight when every probe hits right away.
func (a *Analyzer) WallFactor(prev, mid, next *waypoint.Waypoint) float64 {
	dir := next.Position().XY().Sub(prev.Position().XY()).Normalize()
	if dir.Length() == 0 {
		return 1
	}
	side := dir.Perp()
	apex := mid.Position()
	radius := a.cfg.WallSearchRadius
	if radius <= 0 {
		return 1
	}

	probes, closeness := 0, 0.0
	for _, slot := range probeSlots {
		origin := apex.XY().Add(dir.Scale(float32(slot * a.cfg.WallProbeOffset)))
		for _, sign := range [...]float32{1, -1} {
			end := origin.Add(side.Scale(sign * float32(radius)))
			hit := a.geo.Probe(origin.Vec3(apex.Z), end.Vec3(apex.Z))
			probes++
			if hit.Solid && hit.Distance < radius {
				closeness += 1 - hit.Distance/radius
			}
		}
	}

	return 1 - a.cfg.WallWeight*closeness/float64(probes)
}
