package circuit

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// clusterEntry wraps a padded feature bound for R-tree storage.
type clusterEntry struct {
	index int
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *clusterEntry) Bounds() rtreego.Rect {
	return e.rect
}

// ClusterFeatures merges feature bounds whose areas, grown by margin,
// overlap or touch. Merging is transitive. Each cluster is returned as the
// union of its members' original bounds, ordered by first member.
func ClusterFeatures(bounds []orb.Bound, margin float64) []orb.Bound {
	if len(bounds) == 0 {
		return nil
	}

	padded := make([]orb.Bound, len(bounds))
	tree := rtreego.NewTree(2, 25, 50)
	for i, b := range bounds {
		padded[i] = b.Pad(margin)
		// Touching bounds must meet in the tree, which only reports
		// overlaps with area.
		rect, err := boundRect(padded[i].Pad(0.5))
		if err != nil {
			continue
		}
		tree.Insert(&clusterEntry{index: i, rect: rect})
	}

	uf := newUnionFind(len(bounds))
	for i := range padded {
		rect, err := boundRect(padded[i].Pad(0.5))
		if err != nil {
			continue
		}
		for _, item := range tree.SearchIntersect(rect) {
			j := item.(*clusterEntry).index
			if j != i && padded[i].Intersects(padded[j]) {
				uf.union(i, j)
			}
		}
	}

	var out []orb.Bound
	slot := make(map[int]int)
	for i, b := range bounds {
		root := uf.find(i)
		if s, ok := slot[root]; ok {
			out[s] = out[s].Union(b)
			continue
		}
		slot[root] = len(out)
		out = append(out, b)
	}
	return out
}

func boundRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1]},
	)
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri == rj {
		return
	}
	if ri < rj {
		u.parent[rj] = ri
	} else {
		u.parent[ri] = rj
	}
}
