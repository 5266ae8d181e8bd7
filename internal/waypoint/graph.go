package waypoint

import "go.uber.org/zap"

// Graph owns every waypoint of a level. The arena is sized once from the
// number of placement records and never grows; edges live in two flat
// arrays that each waypoint indexes into.
type Graph struct {
	waypoints []Waypoint
	count     int
	byID      map[int]*Waypoint

	out []Edge
	in  []Edge

	first    *Waypoint
	finish   *Waypoint
	starting *Waypoint

	circuitLength uint32
	complexity    int
	sprint        bool

	revision uint64
	warnings error

	log *zap.Logger
}

// Len returns the number of waypoints in the graph.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return g.count
}

// Cap returns the arena size, which equals the number of placement records.
func (g *Graph) Cap() int {
	if g == nil {
		return 0
	}
	return len(g.waypoints)
}

// At returns the waypoint in arena slot i.
func (g *Graph) At(i int) *Waypoint {
	if g == nil || i < 0 || i >= g.count {
		return nil
	}
	return &g.waypoints[i]
}

// FindByID returns the waypoint with the given placement id.
func (g *Graph) FindByID(id int) *Waypoint {
	if g == nil {
		return nil
	}
	return g.byID[id]
}

// First returns the first waypoint constructed.
func (g *Graph) First() *Waypoint {
	if g == nil {
		return nil
	}
	return g.first
}

// FinishLine returns the finish line waypoint.
func (g *Graph) FinishLine() *Waypoint {
	if g == nil {
		return nil
	}
	return g.finish
}

// StartingWaypoint returns the waypoint a race starts from, once analysed.
func (g *Graph) StartingWaypoint() *Waypoint {
	if g == nil {
		return nil
	}
	return g.starting
}

// CircuitLength returns the lap (or sprint) length, zero if the waypoints
// do not form a circuit.
func (g *Graph) CircuitLength() uint32 {
	if g == nil {
		return 0
	}
	return g.circuitLength
}

// Complexity returns the track complexity score.
func (g *Graph) Complexity() int {
	if g == nil {
		return 0
	}
	return g.complexity
}

// Sprint reports whether the level is point-to-point rather than a circuit.
func (g *Graph) Sprint() bool {
	return g != nil && g.sprint
}

// Revision changes whenever a waypoint's enabled flag changes.
func (g *Graph) Revision() uint64 {
	if g == nil {
		return 0
	}
	return g.revision
}

// SetCircuit stores the circuit analysis result.
func (g *Graph) SetCircuit(starting *Waypoint, length uint32) {
	g.starting = starting
	g.circuitLength = length
}

// SetComplexity stores the track complexity score.
func (g *Graph) SetComplexity(c int) {
	g.complexity = c
}

// Validate returns the structural warnings found while building, combined
// into one error, or nil when the graph is clean.
func (g *Graph) Validate() error {
	if g == nil {
		return nil
	}
	return g.warnings
}

// Logger returns the logger the graph was built with.
func (g *Graph) Logger() *zap.Logger {
	return g.log
}

// Clear releases the graph's storage. The graph is empty afterwards and
// waypoints taken from it must not be used.
func (g *Graph) Clear() {
	for i := range g.waypoints {
		g.waypoints[i].graph = nil
	}
	*g = Graph{log: g.log}
}
