package pathfind

import "container/heap"

var _ heap.Interface = openHeap[int]{}

// Capacity holds the initial sizes of the search buffers.
type Capacity struct {
	Open   int
	Closed int
	Nodes  int
}

// DefaultCapacity returns conservative starting sizes.
func DefaultCapacity() Capacity {
	return Capacity{Open: 16, Closed: 16, Nodes: 32}
}

// Stats describes the engine's buffer sizing and usage.
type Stats struct {
	Base     Capacity // current base sizes (high-water marks)
	Searches int
	Expanded int // nodes closed by the most recent search
}

// Engine runs A* searches. Its scratch buffers (open set, closed set and
// node-state array) survive between searches and only ever grow: the largest
// size any search reached becomes the starting size of the next one.
//
// An Engine is not safe for concurrent use.
type Engine[N comparable] struct {
	nodes  []Node[N]
	index  map[N]int
	open   []int
	closed []int
	pq     openHeap[N]

	base     Capacity
	seq      uint64
	searches int
	expanded int
}

// NewEngine creates an engine with the given starting buffer sizes.
// Non-positive sizes fall back to DefaultCapacity.
func NewEngine[N comparable](c Capacity) *Engine[N] {
	def := DefaultCapacity()
	if c.Open <= 0 {
		c.Open = def.Open
	}
	if c.Closed <= 0 {
		c.Closed = def.Closed
	}
	if c.Nodes <= 0 {
		c.Nodes = def.Nodes
	}
	e := &Engine[N]{base: c}
	e.pq = openHeap[N]{e: e}
	return e
}

// Search runs A* as described by setup. It returns the path to the node
// that satisfied setup.Finished, or false when the open set ran dry first.
// Not finding a path is an expected outcome, not an error.
func (e *Engine[N]) Search(setup *Setup[N]) (Path[N], bool) {
	if setup == nil || setup.Graph == nil || setup.Finished == nil {
		return Path[N]{}, false
	}

	e.prepare()
	defer e.recordHighWater()
	e.searches++

	start := e.addNode(setup.Start, 0, setup.Graph.Heuristic(setup.Start, setup.Goal), -1)
	heap.Push(e.pq, start)

	for len(e.open) > 0 {
		idx := heap.Pop(e.pq).(int)
		e.nodes[idx].closed = true
		e.closed = append(e.closed, idx)

		if setup.Finished(&e.nodes[idx], setup) {
			return e.buildPath(idx), true
		}

		// Copy out: addNode may reallocate e.nodes.
		cur := e.nodes[idx].Data
		curG := e.nodes[idx].G

		for _, c := range setup.Graph.Connections(cur) {
			if !setup.Graph.Traversable(c.Node, cur) {
				continue
			}

			g := curG + c.Cost

			if ni, ok := e.index[c.Node]; ok {
				n := &e.nodes[ni]
				if n.closed {
					continue
				}
				if g < n.G {
					n.G = g
					n.parent = idx
					n.seq = e.nextSeq()
					heap.Fix(e.pq, n.heapIndex)
				}
				continue
			}

			ni := e.addNode(c.Node, g, setup.Graph.Heuristic(c.Node, setup.Goal), idx)
			heap.Push(e.pq, ni)
		}
		e.trackOpen()
	}

	return Path[N]{}, false
}

// Reset releases the scratch buffers, keeping the learned base sizes.
func (e *Engine[N]) Reset() {
	e.nodes = nil
	e.open = nil
	e.closed = nil
	e.index = nil
}

// Stats returns the current sizing and usage figures.
func (e *Engine[N]) Stats() Stats {
	return Stats{Base: e.base, Searches: e.searches, Expanded: e.expanded}
}

// trackOpen records the open set peak. The open set shrinks as the search
// drains it, so the peak has to be sampled while expanding.
func (e *Engine[N]) trackOpen() {
	if n := len(e.open); n > e.base.Open {
		e.base.Open = n
	}
}

func (e *Engine[N]) prepare() {
	if cap(e.nodes) < e.base.Nodes {
		e.nodes = make([]Node[N], 0, e.base.Nodes)
	} else {
		e.nodes = e.nodes[:0]
	}
	if cap(e.open) < e.base.Open {
		e.open = make([]int, 0, e.base.Open)
	} else {
		e.open = e.open[:0]
	}
	if cap(e.closed) < e.base.Closed {
		e.closed = make([]int, 0, e.base.Closed)
	} else {
		e.closed = e.closed[:0]
	}
	if e.index == nil {
		e.index = make(map[N]int, e.base.Nodes)
	} else {
		clear(e.index)
	}
	e.seq = 0
}

func (e *Engine[N]) recordHighWater() {
	if n := len(e.nodes); n > e.base.Nodes {
		e.base.Nodes = n
	}
	if n := len(e.closed); n > e.base.Closed {
		e.base.Closed = n
	}
	e.trackOpen()
	e.expanded = len(e.closed)
}

func (e *Engine[N]) addNode(data N, g, h uint32, parent int) int {
	idx := len(e.nodes)
	e.nodes = append(e.nodes, Node[N]{
		Data:      data,
		G:         g,
		H:         h,
		parent:    parent,
		heapIndex: -1,
		seq:       e.nextSeq(),
	})
	e.index[data] = idx
	return idx
}

func (e *Engine[N]) nextSeq() uint64 {
	e.seq++
	return e.seq
}

func (e *Engine[N]) buildPath(idx int) Path[N] {
	total := e.nodes[idx].G

	var nodes []N
	for i := idx; i >= 0; i = e.nodes[i].parent {
		nodes = append(nodes, e.nodes[i].Data)
	}
	// Built from the end back to the start.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	return Path[N]{Nodes: nodes, TotalCost: total}
}
