// Package pathfind implements a reusable A* search over caller-defined graphs.
//
// The engine knows nothing about the graph it walks. Each search is described
// by a Setup: a Graph capability (connections with edge costs, heuristic,
// traversability) and a FinishedFunc deciding when the search is done. The
// same engine therefore serves point-to-point searches, distance-budgeted
// walks and any other termination rule a caller needs.
package pathfind

// Connection is one traversable edge out of a node.
type Connection[N comparable] struct {
	Node N
	Cost uint32
}

// Graph is what a search needs to know about the graph it walks.
type Graph[N comparable] interface {
	// Connections returns the neighbours reachable from node with their edge costs.
	Connections(node N) []Connection[N]
	// Heuristic estimates the remaining cost from one node to another. It must
	// not overestimate for the result to be a shortest path.
	Heuristic(from, to N) uint32
	// Traversable reports whether node may be entered coming from prev.
	Traversable(node, prev N) bool
}

// FinishedFunc reports whether the node just taken off the open set ends the search.
type FinishedFunc[N comparable] func(node *Node[N], setup *Setup[N]) bool

// Setup describes a single search.
type Setup[N comparable] struct {
	Start N
	Goal  N // destination, or the zero value for searches without one

	// Budget is the target accumulated cost for budgeted searches.
	Budget uint32

	Graph    Graph[N]
	Finished FinishedFunc[N]
}

// ReachedGoal finishes the search when the destination is taken off the open set.
func ReachedGoal[N comparable](node *Node[N], setup *Setup[N]) bool {
	return node.Data == setup.Goal
}

// Node is the per-node bookkeeping of a search.
type Node[N comparable] struct {
	Data N
	G    uint32 // accumulated cost from the start
	H    uint32 // heuristic estimate to the goal

	parent    int    // index of the parent node state, -1 for the start
	heapIndex int    // position in the open set, -1 when not in it
	seq       uint64 // insertion order, breaks ties between equal F
	closed    bool
}

// F returns the priority of the node in the open set.
func (n *Node[N]) F() uint64 {
	return uint64(n.G) + uint64(n.H)
}

// Path is the result of a successful search.
type Path[N comparable] struct {
	Nodes     []N // start to end, both inclusive
	TotalCost uint32
}

// Len returns the number of nodes on the path.
func (p Path[N]) Len() int {
	return len(p.Nodes)
}

// Last returns the final node of the path, or the zero value for an empty path.
func (p Path[N]) Last() N {
	var zero N
	if len(p.Nodes) == 0 {
		return zero
	}
	return p.Nodes[len(p.Nodes)-1]
}

// openHeap adapts the engine's open set to container/heap.
type openHeap[N comparable] struct {
	e *Engine[N]
}

func (h openHeap[N]) Len() int { return len(h.e.open) }

func (h openHeap[N]) Less(i, j int) bool {
	a := &h.e.nodes[h.e.open[i]]
	b := &h.e.nodes[h.e.open[j]]
	if a.F() != b.F() {
		return a.F() < b.F()
	}
	return a.seq < b.seq
}

func (h openHeap[N]) Swap(i, j int) {
	open := h.e.open
	open[i], open[j] = open[j], open[i]
	h.e.nodes[open[i]].heapIndex = i
	h.e.nodes[open[j]].heapIndex = j
}

func (h openHeap[N]) Push(x interface{}) {
	idx := x.(int)
	h.e.nodes[idx].heapIndex = len(h.e.open)
	h.e.open = append(h.e.open, idx)
}

func (h openHeap[N]) Pop() interface{} {
	old := h.e.open
	n := len(old)
	idx := old[n-1]
	h.e.open = old[:n-1]
	h.e.nodes[idx].heapIndex = -1
	return idx
}
