package waypoint

import (
	"reflect"
	"testing"

	"github.com/Faultbox/kartnav/internal/pathfind"
)

// Edge distances of forkRecords:
//
//	1-2 112, 2-4 112, 1-3 128, 3-4 128, 1-6 100, 6-4 100, 4-5 316, 5-1 316

func TestPathTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		opts     SearchOptions
		disable  []int
		want     []int
		wantCost uint32
	}{
		{name: "shortest without shortcuts", from: 1, to: 4, want: []int{1, 2, 4}, wantCost: 224},
		{name: "shortcut allowed", from: 1, to: 4, opts: SearchOptions{Shortcuts: true}, want: []int{1, 6, 4}, wantCost: 200},
		{name: "disabled waypoint avoided", from: 1, to: 4, disable: []int{2}, want: []int{1, 3, 4}, wantCost: 256},
		{name: "around the loop", from: 2, to: 1, want: []int{2, 4, 5, 1}, wantCost: 744},
		{name: "backward", from: 4, to: 1, opts: SearchOptions{Backward: true}, want: []int{4, 2, 1}, wantCost: 224},
		{name: "to itself", from: 5, to: 5, want: []int{5}, wantCost: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBuild(t, forkRecords(), Options{})
			for _, id := range tt.disable {
				g.FindByID(id).SetEnabled(false)
			}
			e := NewEngine(pathfind.DefaultCapacity())

			path, ok := PathTo(e, g.FindByID(tt.from), g.FindByID(tt.to), tt.opts)

			if !ok {
				t.Fatal("expected a path")
			}
			if !reflect.DeepEqual(ids(path.Nodes), tt.want) {
				t.Errorf("path = %v, want %v", ids(path.Nodes), tt.want)
			}
			if path.TotalCost != tt.wantCost {
				t.Errorf("cost = %d, want %d", path.TotalCost, tt.wantCost)
			}
		})
	}
}

func TestPathTo_NoRoute(t *testing.T) {
	g := mustBuild(t, forkRecords(), Options{})
	for _, id := range []int{2, 3} {
		g.FindByID(id).SetEnabled(false)
	}
	e := NewEngine(pathfind.DefaultCapacity())

	if _, ok := PathTo(e, g.FindByID(1), g.FindByID(4), SearchOptions{}); ok {
		t.Error("expected no path when only the shortcut remains")
	}
	if _, ok := PathTo(e, g.FindByID(1), nil, SearchOptions{}); ok {
		t.Error("expected no path without a destination")
	}
	if _, ok := PathTo(nil, g.FindByID(1), g.FindByID(4), SearchOptions{}); ok {
		t.Error("expected no path without an engine")
	}
}

func TestPathTo_DirectionSymmetry(t *testing.T) {
	g := mustBuild(t, forkRecords(), Options{})
	e := NewEngine(pathfind.DefaultCapacity())

	for i := 0; i < g.Len(); i++ {
		for j := 0; j < g.Len(); j++ {
			a, b := g.At(i), g.At(j)
			fwd, okF := PathTo(e, a, b, SearchOptions{Shortcuts: true})
			bwd, okB := PathTo(e, b, a, SearchOptions{Shortcuts: true, Backward: true})
			if okF != okB {
				t.Fatalf("%v -> %v: forward found %v, backward found %v", a, b, okF, okB)
			}
			if okF && fwd.TotalCost != bwd.TotalCost {
				t.Errorf("%v -> %v: forward cost %d, backward cost %d", a, b, fwd.TotalCost, bwd.TotalCost)
			}
		}
	}
}

func TestTraversable(t *testing.T) {
	g := mustBuild(t, forkRecords(), Options{})
	plain, short := g.FindByID(1), g.FindByID(6)
	otherShort := short.Probe()

	tests := []struct {
		name string
		opts SearchOptions
		w    *Waypoint
		prev *Waypoint
		want bool
	}{
		{"plain", SearchOptions{}, plain, nil, true},
		{"shortcut from plain", SearchOptions{}, short, plain, false},
		{"shortcut allowed", SearchOptions{Shortcuts: true}, short, plain, true},
		{"shortcut from shortcut", SearchOptions{}, short, otherShort, true},
		{"shortcut without previous", SearchOptions{}, short, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (searchGraph{opts: tt.opts}).Traversable(tt.w, tt.prev); got != tt.want {
				t.Errorf("Traversable() = %v, want %v", got, tt.want)
			}
		})
	}

	plain.SetEnabled(false)
	if (searchGraph{opts: SearchOptions{Shortcuts: true}}).Traversable(plain, nil) {
		t.Error("disabled waypoint should never be traversable")
	}
}

func TestPathTo_ProbeComesAround(t *testing.T) {
	g := mustBuild(t, squareRecords(), Options{})
	e := NewEngine(pathfind.DefaultCapacity())
	finish := g.FinishLine()

	probe := finish.Probe()
	if probe == finish || probe.IsFinishLine() {
		t.Fatal("probe must be a distinct waypoint")
	}

	path, ok := PathTo(e, probe, finish, SearchOptions{})
	if !ok {
		t.Fatal("expected the probe to reach the finish line")
	}
	if path.TotalCost != 4 || path.Len() != 5 {
		t.Errorf("lap = %d over %d nodes, want 4 over 5", path.TotalCost, path.Len())
	}
	if path.Last() != finish {
		t.Errorf("path ends at %v", path.Last())
	}
}

func TestPathThroughCircuit(t *testing.T) {
	g := mustBuild(t, forkRecords(), Options{})
	e := NewEngine(pathfind.DefaultCapacity())

	path, ok := PathThroughCircuit(e, g.FindByID(1), 150, SearchOptions{})
	if !ok {
		t.Fatal("expected a path")
	}
	if want := []int{1, 2, 4}; !reflect.DeepEqual(ids(path.Nodes), want) {
		t.Errorf("path = %v, want %v", ids(path.Nodes), want)
	}
	if path.TotalCost < 150 {
		t.Errorf("cost %d is short of the budget", path.TotalCost)
	}

	path, ok = PathThroughCircuit(e, g.FindByID(1), 0, SearchOptions{})
	if !ok || path.Len() != 1 || path.TotalCost != 0 {
		t.Errorf("zero budget: path %v cost %d", ids(path.Nodes), path.TotalCost)
	}
}

func TestPathThroughCircuit_BudgetMonotonic(t *testing.T) {
	g := mustBuild(t, forkRecords(), Options{})
	e := NewEngine(pathfind.DefaultCapacity())

	var last uint32
	for budget := uint32(0); budget <= 500; budget += 25 {
		path, ok := PathThroughCircuit(e, g.FindByID(1), budget, SearchOptions{})
		if !ok {
			t.Fatalf("budget %d: no path", budget)
		}
		if path.TotalCost < budget {
			t.Errorf("budget %d: cost %d", budget, path.TotalCost)
		}
		if path.TotalCost < last {
			t.Errorf("budget %d: cost %d dropped below %d", budget, path.TotalCost, last)
		}
		last = path.TotalCost
	}
}

func TestPathThroughCircuit_StopsAtDeadEnd(t *testing.T) {
	rs := []Record{
		rec(1, 0, 0, 0, 2),
		rec(2, 10, 0, 0, 3),
		rec(3, 20, 0, 0),
	}
	rs[2].FinishLine = true
	g := mustBuild(t, rs, Options{Sprint: true})
	e := NewEngine(pathfind.DefaultCapacity())

	path, ok := PathThroughCircuit(e, g.FindByID(1), Unbounded, SearchOptions{})
	if !ok || path.Last().ID() != 3 || path.TotalCost != 20 {
		t.Errorf("forward: path %v cost %d", ids(path.Nodes), path.TotalCost)
	}

	path, ok = PathThroughCircuit(e, g.FindByID(3), Unbounded, SearchOptions{Backward: true})
	if !ok || path.Last().ID() != 1 || path.TotalCost != 20 {
		t.Errorf("backward: path %v cost %d", ids(path.Nodes), path.TotalCost)
	}
}

func TestPathThroughCircuitSpawnable(t *testing.T) {
	rs := squareRecords()
	rs[1].Spawnpoint = false
	g := mustBuild(t, rs, Options{})
	e := NewEngine(pathfind.DefaultCapacity())

	plain, ok := PathThroughCircuit(e, g.FindByID(1), 1, SearchOptions{})
	if !ok || plain.Last().ID() != 2 {
		t.Fatalf("plain search ended at %v", plain.Last())
	}

	spawn, ok := PathThroughCircuitSpawnable(e, g.FindByID(1), 1, SearchOptions{})
	if !ok {
		t.Fatal("expected a path")
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(ids(spawn.Nodes), want) {
		t.Errorf("path = %v, want %v", ids(spawn.Nodes), want)
	}
}

func TestPathThroughCircuitSpawnable_DeadEnd(t *testing.T) {
	rs := []Record{
		rec(1, 0, 0, 0, 2),
		rec(2, 10, 0, 0),
	}
	rs[1].Spawnpoint = false
	rs[1].FinishLine = true
	g := mustBuild(t, rs, Options{Sprint: true})
	e := NewEngine(pathfind.DefaultCapacity())

	path, ok := PathThroughCircuitSpawnable(e, g.FindByID(1), 100, SearchOptions{})
	if !ok || path.Last().ID() != 2 {
		t.Errorf("expected the route to end on the dead end, got %v", ids(path.Nodes))
	}
}

func TestHeuristicSlackOverShortEdges(t *testing.T) {
	// Ten 1.49 long edges each cost 1, while the straight line is 14.9.
	var rs []Record
	for i := 1; i <= 11; i++ {
		var next []int
		if i < 11 {
			next = []int{i + 1}
		}
		rs = append(rs, rec(i, 1.49*float32(i-1), 0, 0, next...))
	}
	g := mustBuild(t, rs, Options{})
	first, last := g.FindByID(1), g.FindByID(11)

	path, ok := PathTo(NewEngine(pathfind.DefaultCapacity()), first, last, SearchOptions{})
	if !ok {
		t.Fatal("expected a route along the chain")
	}
	if path.TotalCost != 10 {
		t.Errorf("expected cost 10, got %d", path.TotalCost)
	}

	h := searchGraph{}.Heuristic(first, last)
	if h != 14 {
		t.Errorf("expected heuristic 14, got %d", h)
	}
	if edges := uint32(len(path.Nodes) - 1); h > path.TotalCost+edges/2 {
		t.Errorf("heuristic %d exceeds cost %d by more than half a unit per edge", h, path.TotalCost)
	}
}
