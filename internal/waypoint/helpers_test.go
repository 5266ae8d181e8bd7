package waypoint

import (
	"testing"

	vmath "github.com/Faultbox/kartnav/pkg/math"
)

// rec builds an enabled spawn-point record.
func rec(id int, x, y, z float32, next ...int) Record {
	return Record{
		ID:         id,
		Next:       next,
		Position:   vmath.Vec3{X: x, Y: y, Z: z},
		Radius:     64,
		Enabled:    true,
		Spawnpoint: true,
	}
}

// squareRecords is a unit square loop 1 -> 2 -> 3 -> 4 -> 1 with 1 as the finish line.
func squareRecords() []Record {
	rs := []Record{
		rec(1, 0, 0, 0, 2),
		rec(2, 1, 0, 0, 3),
		rec(3, 1, 1, 0, 4),
		rec(4, 0, 1, 0, 1),
	}
	rs[0].FinishLine = true
	return rs
}

// forkRecords is a loop with a fork and a longer shortcut branch:
//
//	1 -> 2 -> 4 -> 5 -> 1
//	1 -> 3 -> 4
//	1 -> 6 (shortcut) -> 4
func forkRecords() []Record {
	rs := []Record{
		rec(1, 0, 0, 0, 2, 3, 6),
		rec(2, 100, 50, 0, 4),
		rec(3, 100, -80, 0, 4),
		rec(4, 200, 0, 0, 5),
		rec(5, 100, 300, 0, 1),
		rec(6, 100, 0, 0, 4),
	}
	rs[0].FinishLine = true
	rs[5].Shortcut = true
	return rs
}

func mustBuild(t *testing.T, records []Record, opts Options) *Graph {
	t.Helper()
	g, err := Build(records, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func ids(ws []*Waypoint) []int {
	out := make([]int, len(ws))
	for i, w := range ws {
		out[i] = w.ID()
	}
	return out
}

func kinds(err error) map[WarningKind]int {
	out := make(map[WarningKind]int)
	for _, w := range Warnings(err) {
		out[w.Kind]++
	}
	return out
}
