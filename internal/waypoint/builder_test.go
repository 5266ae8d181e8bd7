package waypoint

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuild_Empty(t *testing.T) {
	g, err := Build(nil, Options{})
	if g != nil {
		t.Error("expected nil graph")
	}
	var ce *ConstructionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConstructionError, got %v", err)
	}
}

func TestBuild_LinksForwardReferences(t *testing.T) {
	// Records listed in reverse: every next id points to a later-processed record.
	rs := squareRecords()
	reversed := []Record{rs[3], rs[2], rs[1], rs[0]}

	g := mustBuild(t, reversed, Options{})

	if g.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", g.Len())
	}
	for id, want := range map[int]int{1: 2, 2: 3, 3: 4, 4: 1} {
		w := g.FindByID(id)
		if w.NumNext() != 1 || w.Next()[0].Node.ID() != want {
			t.Errorf("waypoint %d next = %v, want %d", id, w.Next(), want)
		}
		if w.NumPrev() != 1 {
			t.Errorf("waypoint %d has %d incoming edges, want 1", id, w.NumPrev())
		}
	}
	if err := g.Validate(); err != nil {
		t.Errorf("expected a clean graph, got %v", err)
	}
}

func TestBuild_EdgeSymmetry(t *testing.T) {
	g := mustBuild(t, forkRecords(), Options{})

	outTotal, inTotal := 0, 0
	for i := 0; i < g.Len(); i++ {
		a := g.At(i)
		outTotal += a.NumNext()
		inTotal += a.NumPrev()

		for _, e := range a.Next() {
			matches := 0
			for _, back := range e.Node.Prev() {
				if back.Node == a {
					matches++
					if back.Cost != e.Cost {
						t.Errorf("%v -> %v: distance %d, mirrored %d", a, e.Node, e.Cost, back.Cost)
					}
				}
			}
			if matches != 1 {
				t.Errorf("%v -> %v: %d mirrored edges, want 1", a, e.Node, matches)
			}
		}
	}
	if outTotal != inTotal {
		t.Errorf("outgoing %d != incoming %d", outTotal, inTotal)
	}
}

func TestBuild_CachesEuclideanDistance(t *testing.T) {
	g := mustBuild(t, []Record{
		rec(1, 0, 0, 0, 2),
		rec(2, 30, 40, 0, 3),
		rec(3, 30, 40, 120, 1),
	}, Options{})

	tests := []struct {
		from int
		want uint32
	}{
		{1, 50},
		{2, 120},
		{3, 130},
	}
	for _, tt := range tests {
		if got := g.FindByID(tt.from).Next()[0].Cost; got != tt.want {
			t.Errorf("distance from %d = %d, want %d", tt.from, got, tt.want)
		}
	}
}

func TestBuild_ArenaSizedToRecords(t *testing.T) {
	rs := squareRecords()
	rs = append(rs, rec(2, 50, 50, 0, 3)) // duplicate id

	g := mustBuild(t, rs, Options{})

	if g.Cap() != len(rs) {
		t.Errorf("Cap() = %d, want %d", g.Cap(), len(rs))
	}
	if g.Len() != 4 {
		t.Errorf("Len() = %d, want 4", g.Len())
	}
	if g.At(4) != nil {
		t.Error("unused arena slot should not be returned")
	}
	if kinds(g.Validate())[DuplicateID] != 1 {
		t.Errorf("expected one duplicate id warning, got %v", g.Validate())
	}
	// The first record with the id wins.
	if g.FindByID(2).Position().X != 1 {
		t.Errorf("duplicate id replaced the original waypoint")
	}
}

func TestBuild_MaterializationOrder(t *testing.T) {
	// 10 is listed last but reached from the first record, so it is
	// constructed second.
	g := mustBuild(t, []Record{
		rec(1, 0, 0, 0, 10),
		rec(5, 0, 0, 0, 1),
		rec(10, 0, 0, 0, 5),
	}, Options{})

	var got []int
	for i := 0; i < g.Len(); i++ {
		got = append(got, g.At(i).ID())
	}
	if want := []int{1, 10, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("construction order = %v, want %v", got, want)
	}
	if g.First().ID() != 1 {
		t.Errorf("First() = %v, want waypoint 1", g.First())
	}
	for i := 0; i < g.Len(); i++ {
		if g.At(i).Index() != i {
			t.Errorf("At(%d).Index() = %d", i, g.At(i).Index())
		}
	}
}

func TestBuild_SelfReferenceBecomesDeadEnd(t *testing.T) {
	rs := []Record{
		rec(1, 0, 0, 0, 2),
		rec(2, 10, 0, 0, 2),
	}
	rs[0].FinishLine = true

	g := mustBuild(t, rs, Options{})

	w := g.FindByID(2)
	if w.NumNext() != 0 {
		t.Errorf("self reference kept: %v", w.Next())
	}
	k := kinds(g.Validate())
	if k[SelfReference] != 1 || k[DeadEnd] != 1 {
		t.Errorf("warnings = %v, want one self reference and one dead end", g.Validate())
	}
}

func TestBuild_UnknownAndDuplicateNext(t *testing.T) {
	rs := squareRecords()
	rs[1].Next = []int{3, 99, 3}

	g := mustBuild(t, rs, Options{})

	if n := g.FindByID(2).NumNext(); n != 1 {
		t.Errorf("waypoint 2 has %d next edges, want 1", n)
	}
	k := kinds(g.Validate())
	if k[UnknownNext] != 1 || k[DuplicateNext] != 1 {
		t.Errorf("warnings = %v", g.Validate())
	}
}

func TestBuild_FinishLine(t *testing.T) {
	tests := []struct {
		name     string
		flagged  []int // record indexes flagged as finish line
		wantID   int
		wantKind WarningKind
		wantWarn bool
	}{
		{name: "single", flagged: []int{2}, wantID: 3},
		{name: "none", flagged: nil, wantID: 1, wantKind: NoFinishLine, wantWarn: true},
		{name: "several", flagged: []int{1, 3}, wantID: 2, wantKind: MultipleFinishLines, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := squareRecords()
			rs[0].FinishLine = false
			for _, i := range tt.flagged {
				rs[i].FinishLine = true
			}

			g := mustBuild(t, rs, Options{})

			if g.FinishLine().ID() != tt.wantID {
				t.Errorf("FinishLine() = %v, want %d", g.FinishLine(), tt.wantID)
			}
			count := 0
			for i := 0; i < g.Len(); i++ {
				if g.At(i).IsFinishLine() {
					count++
				}
			}
			if count != 1 {
				t.Errorf("%d waypoints report IsFinishLine, want exactly 1", count)
			}
			if got := kinds(g.Validate())[tt.wantKind] > 0; tt.wantWarn && !got {
				t.Errorf("expected %v warning, got %v", tt.wantKind, g.Validate())
			}
			if !tt.wantWarn && g.Validate() != nil {
				t.Errorf("unexpected warnings: %v", g.Validate())
			}
		})
	}
}

func TestBuild_CannotReachFinish(t *testing.T) {
	rs := squareRecords()
	rs = append(rs, rec(7, 5, 5, 0, 8), rec(8, 6, 5, 0, 7)) // detached loop

	g := mustBuild(t, rs, Options{})

	if k := kinds(g.Validate()); k[CannotReachFinish] != 2 {
		t.Errorf("warnings = %v, want 2 unreachable", g.Validate())
	}
}

func TestBuild_LogsDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rs := squareRecords()
	rs[0].FinishLine = false

	mustBuild(t, rs, Options{Logger: zap.New(core)})

	if logs.FilterMessageSnippet("no finish line").Len() != 1 {
		t.Errorf("expected a finish line diagnostic, got %v", logs.All())
	}
}

func TestBuild_KeepsFlagsAndSprint(t *testing.T) {
	rs := forkRecords()
	rs[2].Enabled = false
	rs[3].Spawnpoint = false

	g := mustBuild(t, rs, Options{Sprint: true})

	if !g.Sprint() {
		t.Error("expected sprint graph")
	}
	if !g.FindByID(6).Shortcut() || g.FindByID(2).Shortcut() {
		t.Error("shortcut flags not carried over")
	}
	if g.FindByID(3).Enabled() {
		t.Error("waypoint 3 should be disabled")
	}
	if g.FindByID(4).Spawnpoint() {
		t.Error("waypoint 4 should not be a spawn point")
	}
}

func TestSetEnabledBumpsRevision(t *testing.T) {
	g := mustBuild(t, squareRecords(), Options{})
	w := g.FindByID(3)

	rev := g.Revision()
	w.SetEnabled(true) // no change
	if g.Revision() != rev {
		t.Error("revision changed without a flag change")
	}
	w.SetEnabled(false)
	if g.Revision() == rev || w.Enabled() {
		t.Error("disabling should bump the revision")
	}
}

func TestIsNeighbour(t *testing.T) {
	g := mustBuild(t, squareRecords(), Options{})
	if !g.FindByID(1).IsNeighbour(g.FindByID(2)) || !g.FindByID(1).IsNeighbour(g.FindByID(4)) {
		t.Error("expected 2 and 4 to neighbour 1")
	}
	if g.FindByID(1).IsNeighbour(g.FindByID(3)) {
		t.Error("3 is not a neighbour of 1")
	}
}

func TestClear(t *testing.T) {
	g := mustBuild(t, squareRecords(), Options{})
	w := g.FindByID(1)

	g.Clear()

	if g.Len() != 0 || g.FinishLine() != nil || g.FindByID(1) != nil {
		t.Error("graph not empty after Clear")
	}
	if w.Next() != nil || w.IsFinishLine() {
		t.Error("waypoint still attached after Clear")
	}
}
