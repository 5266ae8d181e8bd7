// Package waypoint holds the directed graph of route markers placed on a
// track: the waypoints, their cached edge distances, and the per-level
// metadata (finish line, starting waypoint, circuit length, complexity).
package waypoint

import (
	"fmt"
	"math"

	"github.com/Faultbox/kartnav/internal/pathfind"
	vmath "github.com/Faultbox/kartnav/pkg/math"
)

// Edge is a directed connection to another waypoint with its cached distance.
type Edge = pathfind.Connection[*Waypoint]

// span is a half-open index range into one of the graph's flat edge arrays.
type span struct {
	start, end int32
}

func (s span) len() int { return int(s.end - s.start) }

// Waypoint is a node of the route graph.
type Waypoint struct {
	id       int
	index    int
	position vmath.Vec3
	radius   float32

	enabled    bool
	shortcut   bool
	spawnpoint bool
	onLine     bool

	graph *Graph
	next  span // into graph.out
	prev  span // into graph.in
}

// ID returns the placement id of the waypoint.
func (w *Waypoint) ID() int { return w.id }

// Index returns the waypoint's slot in the graph arena.
func (w *Waypoint) Index() int { return w.index }

// Position returns the waypoint anchor.
func (w *Waypoint) Position() vmath.Vec3 { return w.position }

// Radius returns the capture radius.
func (w *Waypoint) Radius() float32 { return w.radius }

// Enabled reports whether the waypoint may be traversed.
func (w *Waypoint) Enabled() bool { return w.enabled }

// SetEnabled toggles traversal of the waypoint. Changing the flag bumps the
// graph revision so cached query results are discarded.
func (w *Waypoint) SetEnabled(enabled bool) {
	if w.enabled == enabled {
		return
	}
	w.enabled = enabled
	if w.graph != nil {
		w.graph.revision++
	}
}

// Shortcut reports whether the waypoint is only usable on shortcut routes.
func (w *Waypoint) Shortcut() bool { return w.shortcut }

// Spawnpoint reports whether agents may respawn at the waypoint.
func (w *Waypoint) Spawnpoint() bool { return w.spawnpoint }

// OnLine reports whether a spawn waypoint sits on a sector boundary.
func (w *Waypoint) OnLine() bool { return w.onLine }

// SetOnLine records whether the waypoint sits on a sector boundary.
func (w *Waypoint) SetOnLine(on bool) { w.onLine = on }

// IsFinishLine reports whether the waypoint is the graph's finish line.
func (w *Waypoint) IsFinishLine() bool {
	return w.graph != nil && w.graph.finish == w
}

// Next returns the outgoing edges. The slice is shared; do not modify it.
func (w *Waypoint) Next() []Edge {
	if w.graph == nil {
		return nil
	}
	return w.graph.out[w.next.start:w.next.end]
}

// Prev returns the incoming edges. The slice is shared; do not modify it.
func (w *Waypoint) Prev() []Edge {
	if w.graph == nil {
		return nil
	}
	return w.graph.in[w.prev.start:w.prev.end]
}

// NumNext returns the number of outgoing edges.
func (w *Waypoint) NumNext() int { return w.next.len() }

// NumPrev returns the number of incoming edges.
func (w *Waypoint) NumPrev() int { return w.prev.len() }

// Connections returns outgoing edges, or incoming edges when backward is set.
func (w *Waypoint) Connections(backward bool) []Edge {
	if backward {
		return w.Prev()
	}
	return w.Next()
}

// IsNeighbour reports whether other is directly connected in either direction.
func (w *Waypoint) IsNeighbour(other *Waypoint) bool {
	for _, e := range w.Next() {
		if e.Node == other {
			return true
		}
	}
	for _, e := range w.Prev() {
		if e.Node == other {
			return true
		}
	}
	return false
}

// DistanceTo returns the rounded Euclidean distance between two anchors.
func (w *Waypoint) DistanceTo(other *Waypoint) uint32 {
	return distance(w.position, other.position)
}

// Probe returns a detached copy of the waypoint that shares its edges but
// not its identity. Searches treat it as a different node, which lets a
// search start "at" a waypoint and still have to come back around to it.
func (w *Waypoint) Probe() *Waypoint {
	c := *w
	return &c
}

func (w *Waypoint) String() string {
	if w == nil {
		return "waypoint(nil)"
	}
	return fmt.Sprintf("waypoint(%d)", w.id)
}

func distance(a, b vmath.Vec3) uint32 {
	return uint32(math.Round(a.Distance64(b)))
}
