// Package circuit derives per-level track metadata from a waypoint graph:
// lap length, the waypoint a race starts from, and a complexity score.
package circuit

import (
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/Faultbox/kartnav/internal/config"
	"github.com/Faultbox/kartnav/internal/logger"
	"github.com/Faultbox/kartnav/internal/pathfind"
	"github.com/Faultbox/kartnav/internal/waypoint"
	"github.com/Faultbox/kartnav/internal/world"
)

// Report is the outcome of analysing one graph.
type Report struct {
	Sprint     bool
	Length     uint32
	Starting   *waypoint.Waypoint
	Complexity int
	Baseline   bool        // complexity could not be computed
	Turns      []Turn      // scored waypoint triples along the route
	Clusters   []orb.Bound // merged sneaker panel areas
}

// Analyzer scores tracks. It runs once per level load.
type Analyzer struct {
	cfg    config.ComplexityConfig
	geo    world.Geometry
	engine *waypoint.Engine
	log    *zap.Logger
}

// NewAnalyzer creates an analyzer. A nil geometry is an open world, a nil
// engine gets a default one.
func NewAnalyzer(cfg config.ComplexityConfig, geo world.Geometry, e *waypoint.Engine, log *zap.Logger) *Analyzer {
	if geo == nil {
		geo = world.Open{}
	}
	if e == nil {
		e = waypoint.NewEngine(pathfind.DefaultCapacity())
	}
	return &Analyzer{
		cfg:    cfg,
		geo:    geo,
		engine: e,
		log:    logger.OrNop(log),
	}
}

// Analyze computes the circuit and complexity of g and stores both on it.
func (a *Analyzer) Analyze(g *waypoint.Graph) Report {
	r := Report{Sprint: g.Sprint()}

	r.Starting, r.Length = a.Circuit(g)
	g.SetCircuit(r.Starting, r.Length)

	r.Complexity, r.Turns, r.Clusters, r.Baseline = a.complexity(g)
	g.SetComplexity(r.Complexity)

	a.log.Info("track analysed",
		zap.Bool("sprint", r.Sprint),
		zap.Uint32("length", r.Length),
		zap.Stringer("starting", r.Starting),
		zap.Int("complexity", r.Complexity),
		zap.Int("turns", len(r.Turns)),
		zap.Int("sneaker_clusters", len(r.Clusters)))

	return r
}

// Circuit returns the starting waypoint and the lap length. On a sprint
// the route is followed backward from the finish line until it ends; on a
// circuit a copy of the finish line is routed forward back onto it.
func (a *Analyzer) Circuit(g *waypoint.Graph) (*waypoint.Waypoint, uint32) {
	finish := g.FinishLine()
	if finish == nil {
		a.log.Error("waypoints do not form a circuit", zap.String("reason", "no finish line"))
		return nil, 0
	}

	var (
		starting *waypoint.Waypoint
		length   uint32
	)
	if g.Sprint() {
		path, ok := waypoint.PathThroughCircuit(a.engine, finish, waypoint.Unbounded,
			waypoint.SearchOptions{Backward: true})
		if ok {
			starting, length = path.Last(), path.TotalCost
		}
	} else {
		if path, ok := waypoint.PathTo(a.engine, finish.Probe(), finish, waypoint.SearchOptions{}); ok {
			length = path.TotalCost
		}
		starting = finish
		if next := finish.Next(); len(next) > 0 {
			starting = next[0].Node
		}
	}

	if length == 0 {
		a.log.Error("waypoints do not form a circuit",
			zap.Stringer("finish", finish), zap.Bool("sprint", g.Sprint()))
	}
	return starting, length
}
