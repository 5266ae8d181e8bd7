package waypoint

import (
	"math"

	"github.com/Faultbox/kartnav/internal/pathfind"
)

// Engine is the search engine specialised to waypoints.
type Engine = pathfind.Engine[*Waypoint]

// Path is a search result over waypoints.
type Path = pathfind.Path[*Waypoint]

// Unbounded is a travel budget no track reaches, used to walk as far as
// the graph goes.
const Unbounded = math.MaxUint32 - math.MaxUint16

// NewEngine creates a waypoint search engine.
func NewEngine(c pathfind.Capacity) *Engine {
	return pathfind.NewEngine[*Waypoint](c)
}

// SearchOptions selects the traversal rules of a search.
type SearchOptions struct {
	Shortcuts bool // shortcut waypoints may be entered from anywhere
	Backward  bool // follow incoming edges instead of outgoing ones
}

// searchGraph is the pathfind.Graph view of the waypoint graph for one
// direction and shortcut policy.
type searchGraph struct {
	opts SearchOptions
}

func (s searchGraph) Connections(w *Waypoint) []pathfind.Connection[*Waypoint] {
	return w.Connections(s.opts.Backward)
}

// Heuristic is the straight-line distance, truncated. Edge costs are
// rounded per edge, so over several short edges the estimate can exceed the
// summed cost by up to half a unit per edge; routes are shortest within that
// slack. Searches without a destination get zero, which makes them expand in
// order of travelled distance.
func (s searchGraph) Heuristic(from, to *Waypoint) uint32 {
	if from == nil || to == nil {
		return 0
	}
	return uint32(from.position.Distance64(to.position))
}

// Traversable rejects disabled waypoints, and shortcut waypoints unless
// shortcuts are allowed or the route is already on a shortcut.
func (s searchGraph) Traversable(w, prev *Waypoint) bool {
	if !w.enabled {
		return false
	}
	if s.opts.Shortcuts || !w.shortcut {
		return true
	}
	return prev != nil && prev.shortcut
}

// reachedBudget finishes once the travelled distance reaches the budget or
// the route cannot continue in the search direction.
func reachedBudget(opts SearchOptions) pathfind.FinishedFunc[*Waypoint] {
	return func(n *pathfind.Node[*Waypoint], setup *pathfind.Setup[*Waypoint]) bool {
		return n.G >= setup.Budget || len(n.Data.Connections(opts.Backward)) == 0
	}
}

// reachedSpawnableBudget is reachedBudget that only stops on spawn points.
func reachedSpawnableBudget(opts SearchOptions) pathfind.FinishedFunc[*Waypoint] {
	return func(n *pathfind.Node[*Waypoint], setup *pathfind.Setup[*Waypoint]) bool {
		if len(n.Data.Connections(opts.Backward)) == 0 {
			return true
		}
		return n.G >= setup.Budget && n.Data.spawnpoint
	}
}

// PathTo finds the shortest route from source to destination.
func PathTo(e *Engine, source, destination *Waypoint, opts SearchOptions) (Path, bool) {
	if e == nil || source == nil || destination == nil {
		return Path{}, false
	}
	return e.Search(&pathfind.Setup[*Waypoint]{
		Start:    source,
		Goal:     destination,
		Graph:    searchGraph{opts: opts},
		Finished: pathfind.ReachedGoal[*Waypoint],
	})
}

// PathThroughCircuit travels from source until distance has been covered
// or the route runs out, and returns the route taken.
func PathThroughCircuit(e *Engine, source *Waypoint, distance uint32, opts SearchOptions) (Path, bool) {
	if e == nil || source == nil {
		return Path{}, false
	}
	return e.Search(&pathfind.Setup[*Waypoint]{
		Start:    source,
		Budget:   distance,
		Graph:    searchGraph{opts: opts},
		Finished: reachedBudget(opts),
	})
}

// PathThroughCircuitSpawnable is PathThroughCircuit that ends on the first
// spawn point at or beyond distance.
func PathThroughCircuitSpawnable(e *Engine, source *Waypoint, distance uint32, opts SearchOptions) (Path, bool) {
	if e == nil || source == nil {
		return Path{}, false
	}
	return e.Search(&pathfind.Setup[*Waypoint]{
		Start:    source,
		Budget:   distance,
		Graph:    searchGraph{opts: opts},
		Finished: reachedSpawnableBudget(opts),
	})
}
