// Package route answers gameplay queries against a waypoint graph: which
// waypoint an agent is at, and which waypoint to head for next.
package route

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/kartnav/internal/logger"
	"github.com/Faultbox/kartnav/internal/pathfind"
	"github.com/Faultbox/kartnav/internal/waypoint"
	"github.com/Faultbox/kartnav/internal/world"
	vmath "github.com/Faultbox/kartnav/pkg/math"
)

// verticalWeight scales height differences when ranking waypoints for an agent.
const verticalWeight = 4

// Advisor answers route queries for one graph. It reuses a single search
// engine and is not safe for concurrent use.
type Advisor struct {
	graph  *waypoint.Graph
	engine *waypoint.Engine
	sight  world.SightChecker
	log    *zap.Logger

	finish         []finishEntry // by arena index
	finishRevision uint64
}

type finishEntry struct {
	known bool
	ok    bool
	dist  uint32
}

// NewAdvisor creates an advisor. A nil engine gets a default one, a nil
// sight checker sees everything, and a nil logger discards output.
func NewAdvisor(g *waypoint.Graph, e *waypoint.Engine, sight world.SightChecker, log *zap.Logger) *Advisor {
	if e == nil {
		e = waypoint.NewEngine(pathfind.DefaultCapacity())
	}
	if sight == nil {
		sight = world.Open{}
	}
	return &Advisor{
		graph:  g,
		engine: e,
		sight:  sight,
		log:    logger.OrNop(log),
	}
}

// Graph returns the graph the advisor works on.
func (a *Advisor) Graph() *waypoint.Graph { return a.graph }

// Engine returns the search engine the advisor uses.
func (a *Advisor) Engine() *waypoint.Engine { return a.engine }

// ClosestWaypoint returns the enabled waypoint nearest to pos by approximate
// distance. Ties keep the first waypoint found.
func (a *Advisor) ClosestWaypoint(pos vmath.Vec3) *waypoint.Waypoint {
	var best *waypoint.Waypoint
	bestDist := math.Inf(1)

	for i := 0; i < a.graph.Len(); i++ {
		w := a.graph.At(i)
		if !w.Enabled() {
			continue
		}
		if d := vmath.ApproxDistance3(pos, w.Position(), 1); d < bestDist {
			best, bestDist = w, d
		}
	}

	if best == nil {
		a.log.Debug("no closest waypoint", zap.Int("waypoints", a.graph.Len()))
	}
	return best
}

// BestWaypointForAgent returns the waypoint an agent at pos should be
// considered at. Height differences count heavily except for hint and its
// neighbours. The nearest waypoint in sight wins unless the agent is inside
// its radius; then every waypoint in sight whose radius holds the agent
// competes, and the one closer to the finish line wins. Without shortcuts a
// regular waypoint always beats a shortcut one. The result does not depend
// on the order waypoints were placed in.
func (a *Advisor) BestWaypointForAgent(pos vmath.Vec3, hint *waypoint.Waypoint, allowShortcuts bool) *waypoint.Waypoint {
	var best candidate
	for i := 0; i < a.graph.Len(); i++ {
		w := a.graph.At(i)
		if !w.Enabled() {
			continue
		}
		c := candidate{w: w, dist: a.agentDistance(pos, w, hint)}
		if best.w != nil && !c.nearer(best) {
			continue
		}
		if !a.sight.LineOfSight(pos, w.Position()) {
			continue
		}
		best = c
	}

	if best.w == nil {
		a.log.Debug("no waypoint in sight", zap.Stringer("hint", hint))
		return nil
	}
	if !best.inside() {
		return best.w
	}

	for i := 0; i < a.graph.Len(); i++ {
		w := a.graph.At(i)
		if w == best.w || !w.Enabled() {
			continue
		}
		c := candidate{w: w, dist: a.agentDistance(pos, w, hint)}
		if !c.inside() || !a.preferOverlapping(c, best, allowShortcuts) {
			continue
		}
		if !a.sight.LineOfSight(pos, w.Position()) {
			continue
		}
		best = c
	}
	return best.w
}

// candidate is a waypoint with the agent's distance to it.
type candidate struct {
	w    *waypoint.Waypoint
	dist float64
}

func (c candidate) inside() bool { return c.dist <= float64(c.w.Radius()) }

// nearer orders by distance, then id.
func (c candidate) nearer(o candidate) bool {
	if c.dist != o.dist {
		return c.dist < o.dist
	}
	return c.w.ID() < o.w.ID()
}

func (a *Advisor) agentDistance(pos vmath.Vec3, w, hint *waypoint.Waypoint) float64 {
	if hint != nil && (w == hint || w.IsNeighbour(hint)) {
		return vmath.ApproxDistance3(pos, w.Position(), 0)
	}
	return vmath.ApproxDistance3(pos, w.Position(), verticalWeight)
}

// preferOverlapping reports whether c should replace best when the agent is
// inside both. Waypoints that reach the finish line beat those that do not.
func (a *Advisor) preferOverlapping(c, best candidate, allowShortcuts bool) bool {
	if !allowShortcuts && c.w.Shortcut() != best.w.Shortcut() {
		return !c.w.Shortcut()
	}

	cd, cok := a.distanceToFinish(c.w)
	bd, bok := a.distanceToFinish(best.w)
	switch {
	case cok != bok:
		return cok
	case cok && cd != bd:
		return cd < bd
	}
	return c.nearer(best)
}

// distanceToFinish returns the route length from w to the finish line. The
// results are cached until an enabled flag changes.
func (a *Advisor) distanceToFinish(w *waypoint.Waypoint) (uint32, bool) {
	if rev := a.graph.Revision(); a.finish == nil || rev != a.finishRevision {
		a.finish = make([]finishEntry, a.graph.Len())
		a.finishRevision = rev
	}

	e := &a.finish[w.Index()]
	if !e.known {
		path, ok := waypoint.PathTo(a.engine, w, a.graph.FinishLine(), waypoint.SearchOptions{})
		*e = finishEntry{known: true, ok: ok, dist: path.TotalCost}
	}
	return e.dist, e.ok
}

// NextWaypointToward returns the waypoint to take after source on the way
// to destination, following incoming edges when reverse is set.
func (a *Advisor) NextWaypointToward(source, destination *waypoint.Waypoint, allowShortcuts, reverse bool) *waypoint.Waypoint {
	if source == nil || destination == nil {
		a.log.Debug("next waypoint query without endpoints",
			zap.Stringer("source", source), zap.Stringer("destination", destination))
		return nil
	}
	if source == destination {
		return destination
	}

	conns := source.Connections(reverse)
	switch len(conns) {
	case 0:
		a.log.Debug("waypoint has nowhere to go",
			zap.Stringer("source", source), zap.Bool("reverse", reverse))
		return nil
	case 1:
		if next := conns[0].Node; next.Enabled() {
			return next
		}
		return nil
	}

	opts := waypoint.SearchOptions{Shortcuts: allowShortcuts, Backward: reverse}
	if path, ok := waypoint.PathTo(a.engine, source, destination, opts); ok && path.Len() > 1 {
		return path.Nodes[1]
	}

	a.log.Debug("no route, using a neighbour",
		zap.Stringer("source", source), zap.Stringer("destination", destination))
	return fallbackNeighbour(conns, allowShortcuts)
}

// fallbackNeighbour picks an enabled shortcut neighbour when shortcuts are
// allowed, otherwise the first enabled neighbour the policy permits.
func fallbackNeighbour(conns []waypoint.Edge, allowShortcuts bool) *waypoint.Waypoint {
	if allowShortcuts {
		for _, c := range conns {
			if c.Node.Enabled() && c.Node.Shortcut() {
				return c.Node
			}
		}
	}
	for _, c := range conns {
		if c.Node.Enabled() && (allowShortcuts || !c.Node.Shortcut()) {
			return c.Node
		}
	}
	return nil
}

// NextWaypointAlongCircuit returns the next hop toward the finish line. On
// a circuit the finish line itself leads into the next lap.
func (a *Advisor) NextWaypointAlongCircuit(source *waypoint.Waypoint, allowShortcuts bool) *waypoint.Waypoint {
	finish := a.graph.FinishLine()
	if source != nil && source == finish && !a.graph.Sprint() {
		source = source.Probe()
	}
	return a.NextWaypointToward(source, finish, allowShortcuts, false)
}

// PathTo returns the shortest route from source to destination.
func (a *Advisor) PathTo(source, destination *waypoint.Waypoint, allowShortcuts, reverse bool) (waypoint.Path, bool) {
	if source == nil || destination == nil {
		a.log.Debug("path query without endpoints")
		return waypoint.Path{}, false
	}
	return waypoint.PathTo(a.engine, source, destination,
		waypoint.SearchOptions{Shortcuts: allowShortcuts, Backward: reverse})
}

// PathThroughCircuit follows the route from source for at least distance.
func (a *Advisor) PathThroughCircuit(source *waypoint.Waypoint, distance uint32, allowShortcuts, reverse bool) (waypoint.Path, bool) {
	if source == nil {
		a.log.Debug("circuit path query without source")
		return waypoint.Path{}, false
	}
	return waypoint.PathThroughCircuit(a.engine, source, distance,
		waypoint.SearchOptions{Shortcuts: allowShortcuts, Backward: reverse})
}

// PathThroughCircuitSpawnable is PathThroughCircuit ending on a spawn point.
func (a *Advisor) PathThroughCircuitSpawnable(source *waypoint.Waypoint, distance uint32, allowShortcuts, reverse bool) (waypoint.Path, bool) {
	if source == nil {
		a.log.Debug("spawnable path query without source")
		return waypoint.Path{}, false
	}
	return waypoint.PathThroughCircuitSpawnable(a.engine, source, distance,
		waypoint.SearchOptions{Shortcuts: allowShortcuts, Backward: reverse})
}

// SpawnPointAhead returns the first spawn point at least distance along the
// route from source, or the end of the route.
func (a *Advisor) SpawnPointAhead(source *waypoint.Waypoint, distance uint32, allowShortcuts, reverse bool) *waypoint.Waypoint {
	path, ok := a.PathThroughCircuitSpawnable(source, distance, allowShortcuts, reverse)
	if !ok {
		return nil
	}
	return path.Last()
}
