package waypoint

import (
	"go.uber.org/zap"

	"github.com/Faultbox/kartnav/internal/logger"
	vmath "github.com/Faultbox/kartnav/pkg/math"
)

// Record is the raw placement data of one waypoint as supplied by level loading.
type Record struct {
	ID         int
	Next       []int // ids of the following waypoints; the own id means none
	Position   vmath.Vec3
	Radius     float32
	Enabled    bool
	Shortcut   bool
	Spawnpoint bool
	FinishLine bool
}

// Options configures Build.
type Options struct {
	Sprint bool // point-to-point level rather than a closed circuit
	Logger *zap.Logger
}

// Build links raw placement records into a graph. Records may reference
// ids that appear later in the list. Structural problems are logged and
// kept for Validate; only an empty record set fails.
func Build(records []Record, opts Options) (*Graph, error) {
	if len(records) == 0 {
		return nil, &ConstructionError{Reason: "no waypoint records"}
	}

	g := &Graph{
		waypoints: make([]Waypoint, len(records)),
		byID:      make(map[int]*Waypoint, len(records)),
		sprint:    opts.Sprint,
		log:       logger.OrNop(opts.Logger),
	}

	b := builder{g: g, records: records}
	b.indexRecords()
	b.resolveTargets()
	b.materialize()
	b.linkEdges()
	g.pickFinishLine(records, b.slotOf)
	g.checkDeadEnds()
	g.checkReachability()

	g.log.Debug("waypoint graph built",
		zap.Int("records", len(records)),
		zap.Int("waypoints", g.count),
		zap.Int("edges", len(g.out)),
		zap.Stringer("finish", g.finish))

	return g, nil
}

// builder holds the scratch state of a single Build call.
type builder struct {
	g       *Graph
	records []Record

	recordOf map[int]int // placement id -> record index
	skip     []bool      // duplicate records
	targets  [][]int     // record index -> target record indexes
	slotOf   []int       // record index -> arena slot, -1 if not materialized
}

func (b *builder) indexRecords() {
	b.recordOf = make(map[int]int, len(b.records))
	b.skip = make([]bool, len(b.records))
	for i, r := range b.records {
		if _, dup := b.recordOf[r.ID]; dup {
			b.skip[i] = true
			b.g.warn(DuplicateID, r.ID, 0)
			continue
		}
		b.recordOf[r.ID] = i
	}
}

func (b *builder) resolveTargets() {
	b.targets = make([][]int, len(b.records))
	for i, r := range b.records {
		if b.skip[i] {
			continue
		}
		seen := make(map[int]bool, len(r.Next))
		for _, next := range r.Next {
			if next == r.ID {
				b.g.warn(SelfReference, r.ID, next)
				continue
			}
			ti, ok := b.recordOf[next]
			if !ok {
				b.g.warn(UnknownNext, r.ID, next)
				continue
			}
			if seen[next] {
				b.g.warn(DuplicateNext, r.ID, next)
				continue
			}
			seen[next] = true
			b.targets[i] = append(b.targets[i], ti)
		}
	}
}

// materialize assigns arena slots. Each record's successors are chased
// depth first with an explicit stack, so a record reached through a "next"
// reference is constructed right after the waypoint pointing at it.
func (b *builder) materialize() {
	b.slotOf = make([]int, len(b.records))
	for i := range b.slotOf {
		b.slotOf[i] = -1
	}

	var stack []int
	for i := range b.records {
		if b.skip[i] || b.slotOf[i] >= 0 {
			continue
		}
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			ri := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if b.slotOf[ri] >= 0 {
				continue
			}
			b.construct(ri)

			ts := b.targets[ri]
			for j := len(ts) - 1; j >= 0; j-- {
				if b.slotOf[ts[j]] < 0 {
					stack = append(stack, ts[j])
				}
			}
		}
	}
}

func (b *builder) construct(ri int) {
	g := b.g
	r := b.records[ri]
	slot := g.count
	g.count++
	b.slotOf[ri] = slot

	w := &g.waypoints[slot]
	*w = Waypoint{
		id:         r.ID,
		index:      slot,
		position:   r.Position,
		radius:     r.Radius,
		enabled:    r.Enabled,
		shortcut:   r.Shortcut,
		spawnpoint: r.Spawnpoint,
		graph:      g,
	}
	g.byID[r.ID] = w
	if g.first == nil {
		g.first = w
	}
}

// linkEdges fills the flat edge arrays in two passes: count degrees, then
// place each edge and its mirrored incoming entry.
func (b *builder) linkEdges() {
	g := b.g
	outDeg := make([]int32, g.count)
	inDeg := make([]int32, g.count)
	total := 0
	for ri, ts := range b.targets {
		s := b.slotOf[ri]
		if s < 0 {
			continue
		}
		for _, ti := range ts {
			outDeg[s]++
			inDeg[b.slotOf[ti]]++
			total++
		}
	}

	g.out = make([]Edge, total)
	g.in = make([]Edge, total)

	var outPos, inPos int32
	for s := 0; s < g.count; s++ {
		w := &g.waypoints[s]
		w.next = span{outPos, outPos}
		w.prev = span{inPos, inPos}
		outPos += outDeg[s]
		inPos += inDeg[s]
	}

	for s := 0; s < g.count; s++ {
		w := &g.waypoints[s]
		ri := b.recordOf[w.id]
		for _, ti := range b.targets[ri] {
			t := &g.waypoints[b.slotOf[ti]]
			d := distance(w.position, t.position)

			g.out[w.next.end] = Edge{Node: t, Cost: d}
			w.next.end++
			g.in[t.prev.end] = Edge{Node: w, Cost: d}
			t.prev.end++
		}
	}
}

func (g *Graph) pickFinishLine(records []Record, slotOf []int) {
	for ri, r := range records {
		if !r.FinishLine || slotOf[ri] < 0 {
			continue
		}
		if g.finish == nil {
			g.finish = &g.waypoints[slotOf[ri]]
			continue
		}
		g.warn(MultipleFinishLines, r.ID, 0)
	}

	if g.finish == nil {
		g.finish = g.first
		g.warn(NoFinishLine, g.first.id, 0)
	}
}

func (g *Graph) checkDeadEnds() {
	for i := 0; i < g.count; i++ {
		if w := &g.waypoints[i]; w.NumNext() == 0 && w != g.finish {
			g.warn(DeadEnd, w.id, 0)
		}
	}
}

// checkReachability warns about waypoints from which the finish line can
// never be reached, found by walking incoming edges back from it.
func (g *Graph) checkReachability() {
	reach := make([]bool, g.count)
	g.Walk(g.finish, Backward, func(w *Waypoint) bool {
		reach[w.index] = true
		return true
	})
	for i := 0; i < g.count; i++ {
		if !reach[i] {
			g.warn(CannotReachFinish, g.waypoints[i].id, 0)
		}
	}
}
