package world

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"github.com/Faultbox/kartnav/internal/logger"
	vmath "github.com/Faultbox/kartnav/pkg/math"
)

// Wall is a boundary line in the horizontal plane. One-sided walls always
// block; two-sided lines only block outside their opening.
type Wall struct {
	A, B     orb.Point
	TwoSided bool
	Bottom   float32 // opening floor, two-sided only
	Top      float32 // opening ceiling, two-sided only
}

// Sector is a floor region. Sectors may overlap to form platforms.
type Sector struct {
	Polygon orb.Polygon
	Floor   float32
	Ceiling float32
	Deadly  bool
	Feature FeatureKind
}

// Data is the raw content of a Map.
type Data struct {
	Walls    []Wall
	Sectors  []Sector
	Features map[FeatureKind][]orb.Bound
}

// wallEntry wraps a wall for R-tree storage.
type wallEntry struct {
	wall *Wall
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *wallEntry) Bounds() rtreego.Rect {
	return e.rect
}

// Map is an in-memory Geometry with walls indexed in an R-tree.
type Map struct {
	walls    []Wall
	sectors  []Sector
	features map[FeatureKind][]orb.Bound
	tree     *rtreego.Rtree
	bound    orb.Bound
	empty    bool
}

const (
	// wallPad widens index boxes so axis-aligned walls have an area.
	wallPad = 1.0
	// nearestStart is the first search radius of NearestLine.
	nearestStart = 64.0
)

// NewMap indexes data. A nil logger is allowed.
func NewMap(data Data, log *zap.Logger) *Map {
	m := &Map{
		walls:    append([]Wall(nil), data.Walls...),
		sectors:  append([]Sector(nil), data.Sectors...),
		features: make(map[FeatureKind][]orb.Bound, len(data.Features)),
		tree:     rtreego.NewTree(2, 25, 50),
		empty:    true,
	}
	for kind, bounds := range data.Features {
		m.features[kind] = append([]orb.Bound(nil), bounds...)
	}

	for i := range m.walls {
		w := &m.walls[i]
		b := orb.Bound{Min: w.A, Max: w.A}.Extend(w.B).Pad(wallPad)
		rect, err := boundRect(b)
		if err != nil {
			continue
		}
		m.tree.Insert(&wallEntry{wall: w, rect: rect})
		m.extend(b)
	}
	for _, s := range m.sectors {
		if len(s.Polygon) > 0 {
			m.extend(s.Polygon.Bound())
		}
	}

	logger.OrNop(log).Debug("world map indexed",
		zap.Int("walls", m.tree.Size()),
		zap.Int("sectors", len(m.sectors)))

	return m
}

func (m *Map) extend(b orb.Bound) {
	if m.empty {
		m.bound = b
		m.empty = false
		return
	}
	m.bound = m.bound.Union(b)
}

// Bound returns the extent of all walls and sectors.
func (m *Map) Bound() orb.Bound {
	return m.bound
}

// LineOfSight implements Geometry.
func (m *Map) LineOfSight(from, to vmath.Vec3) bool {
	_, blocked := m.firstWall(from, to)
	return !blocked
}

// Probe implements Geometry.
func (m *Map) Probe(from, to vmath.Vec3) Hit {
	t, hit := m.firstWall(from, to)
	deadly := false
	if td, ok := m.firstDeadly(from, to); ok && (!hit || td < t) {
		t, hit, deadly = td, true, true
	}
	if !hit {
		return Hit{Point: to, Distance: from.Distance64(to)}
	}

	return Hit{
		Solid:    true,
		Deadly:   deadly,
		Distance: t * from.Distance64(to),
		Point:    from.Add(to.Sub(from).Scale(float32(t))),
	}
}

// firstWall returns the smallest position along from -> to where a wall
// blocks it.
func (m *Map) firstWall(from, to vmath.Vec3) (float64, bool) {
	p, q := planePoint(from), planePoint(to)
	rect, err := boundRect(orb.Bound{Min: p, Max: p}.Extend(q).Pad(wallPad))
	if err != nil {
		return 0, false
	}

	best, found := math.Inf(1), false
	for _, item := range m.tree.SearchIntersect(rect) {
		w := item.(*wallEntry).wall
		t, ok := intersectSegments(p, q, w.A, w.B)
		if !ok || t >= best {
			continue
		}
		if w.TwoSided {
			z := from.Z + (to.Z-from.Z)*float32(t)
			if w.Bottom < w.Top && z >= w.Bottom && z <= w.Top {
				continue
			}
		}
		best, found = t, true
	}
	return best, found
}

// firstDeadly returns where from -> to first enters a deadly sector.
func (m *Map) firstDeadly(from, to vmath.Vec3) (float64, bool) {
	p, q := planePoint(from), planePoint(to)

	best, found := math.Inf(1), false
	for _, s := range m.sectors {
		if !s.Deadly || len(s.Polygon) == 0 {
			continue
		}
		if planar.PolygonContains(s.Polygon, p) {
			return 0, true
		}
		for _, ring := range s.Polygon {
			for i := 0; i+1 < len(ring); i++ {
				if t, ok := intersectSegments(p, q, ring[i], ring[i+1]); ok && t < best {
					best, found = t, true
				}
			}
		}
	}
	return best, found
}

// NearestLine implements Geometry. The search box grows until it holds a
// wall no farther away than the box half-size, which makes that wall the
// closest one.
func (m *Map) NearestLine(p vmath.Vec3) (vmath.Vec3, float64, bool) {
	if m.tree.Size() == 0 {
		return vmath.Vec3{}, 0, false
	}
	q := planePoint(p)

	limit := wallPad
	for _, c := range []orb.Point{m.bound.Min, m.bound.Max, m.bound.LeftTop(), m.bound.RightBottom()} {
		limit = math.Max(limit, planar.Distance(q, c)+wallPad)
	}

	for r := nearestStart; ; r *= 2 {
		if r > limit {
			r = limit
		}
		w, d := m.nearestWithin(q, r)
		if w != nil && d <= r {
			c := closestOnSegment(w.A, w.B, q)
			return vmath.Vec3{X: float32(c[0]), Y: float32(c[1]), Z: p.Z}, d, true
		}
		if r >= limit {
			break
		}
	}
	return vmath.Vec3{}, 0, false
}

func (m *Map) nearestWithin(q orb.Point, r float64) (*Wall, float64) {
	rect, err := boundRect(orb.Bound{Min: q, Max: q}.Pad(r))
	if err != nil {
		return nil, 0
	}

	var best *Wall
	bestD := math.Inf(1)
	for _, item := range m.tree.SearchIntersect(rect) {
		w := item.(*wallEntry).wall
		if d := planar.DistanceFromSegment(w.A, w.B, q); d < bestD {
			best, bestD = w, d
		}
	}
	return best, bestD
}

// FloorAt implements Geometry.
func (m *Map) FloorAt(x, y, z float32) (float32, bool) {
	pt := orb.Point{float64(x), float64(y)}
	floor, found := float32(0), false
	for _, s := range m.sectors {
		if s.Floor > z || !planar.PolygonContains(s.Polygon, pt) {
			continue
		}
		if !found || s.Floor > floor {
			floor, found = s.Floor, true
		}
	}
	return floor, found
}

// CeilingAt implements Geometry.
func (m *Map) CeilingAt(x, y, z float32) (float32, bool) {
	pt := orb.Point{float64(x), float64(y)}
	ceiling, found := float32(0), false
	for _, s := range m.sectors {
		if s.Ceiling < z || !planar.PolygonContains(s.Polygon, pt) {
			continue
		}
		if !found || s.Ceiling < ceiling {
			ceiling, found = s.Ceiling, true
		}
	}
	return ceiling, found
}

// TrackFeatures implements Geometry. Sectors tagged with the feature are
// reported by their bounds after the explicitly placed features.
func (m *Map) TrackFeatures(kind FeatureKind) []orb.Bound {
	out := append([]orb.Bound(nil), m.features[kind]...)
	for _, s := range m.sectors {
		if s.Feature == kind && kind != NoFeature && len(s.Polygon) > 0 {
			out = append(out, s.Polygon.Bound())
		}
	}
	return out
}

func planePoint(v vmath.Vec3) orb.Point {
	return orb.Point{float64(v.X), float64(v.Y)}
}

// boundRect converts an orb bound to an R-tree rectangle.
func boundRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1]},
	)
}
