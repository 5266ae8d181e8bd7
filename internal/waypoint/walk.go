package waypoint

// Direction selects which edges a traversal follows.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Walk visits every waypoint reachable from start exactly once, following
// outgoing edges (Forward) or incoming edges (Backward). The traversal is
// depth first on an explicit stack, taking edges in their stored order.
// Returning false from visit stops the walk.
func (g *Graph) Walk(start *Waypoint, dir Direction, visit func(*Waypoint) bool) {
	if g == nil || start == nil || start.graph != g {
		return
	}

	visited := make([]bool, g.count)
	stack := []*Waypoint{start}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[w.index] {
			continue
		}
		visited[w.index] = true
		if !visit(w) {
			return
		}

		edges := w.Connections(dir == Backward)
		for i := len(edges) - 1; i >= 0; i-- {
			if n := edges[i].Node; !visited[n.index] {
				stack = append(stack, n)
			}
		}
	}
}

// Find walks from start and returns the first waypoint match accepts.
func (g *Graph) Find(start *Waypoint, dir Direction, match func(*Waypoint) bool) *Waypoint {
	var found *Waypoint
	g.Walk(start, dir, func(w *Waypoint) bool {
		if match(w) {
			found = w
			return false
		}
		return true
	})
	return found
}
