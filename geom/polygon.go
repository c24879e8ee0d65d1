package geom

import (
	"math"

	"github.com/pkg/errors"
)

// Polygon is an ordered sequence of at least 3 vertices, implicitly closed.
type Polygon struct {
	Points []Point
}

// NewPolygon wraps points as a Polygon without any normalization.
func NewPolygon(points []Point) Polygon {
	return Polygon{Points: points}
}

// ErrDegenerateInput is returned when a polygon has fewer than 3 vertices,
// is non-convex, or is collinear, where an operation requires convexity.
var ErrDegenerateInput = errors.New("geom: degenerate polygon input")

// Edges returns the directed boundary edges P[i] -> P[i+1 mod n].
func (p Polygon) Edges() []Edge {
	edges := make([]Edge, len(p.Points))
	n := len(p.Points)
	for i := range p.Points {
		edges[i] = Edge{p.Points[i], p.Points[(i+1)%n]}
	}
	return edges
}

// Centroid returns the mean of the polygon's vertices.
func (p Polygon) Centroid() Point {
	var sum Point
	for _, v := range p.Points {
		sum = sum.Add(v)
	}
	n := float64(len(p.Points))
	return Point{sum.X / n, sum.Y / n}
}

// IsCounterClockwise uses the signed shoelace sum: a positive total
// indicates the vertices wind counter-clockwise with the Y axis pointing
// down (screen coordinates). EdgeAngles' increasing order follows the same
// convention.
func (p Polygon) IsCounterClockwise() bool {
	total := 0.0
	for _, e := range p.Edges() {
		total += (e.B.X - e.A.X) * (e.B.Y + e.A.Y)
	}
	return total > 0
}

// CounterClockwise returns p, reversing its vertex order if needed so the
// result always winds counter-clockwise.
func (p Polygon) CounterClockwise() Polygon {
	if p.IsCounterClockwise() {
		return p
	}
	reversed := make([]Point, len(p.Points))
	for i, v := range p.Points {
		reversed[len(p.Points)-1-i] = v
	}
	return Polygon{Points: reversed}
}

// TopLeftVertex returns the vertex with minimum X; ties are broken by
// maximum Y.
func (p Polygon) TopLeftVertex() Point {
	best := p.Points[0]
	for _, v := range p.Points[1:] {
		if v.X < best.X || (v.X == best.X && v.Y > best.Y) {
			best = v
		}
	}
	return best
}

// IsConvex reports whether the polygon turns the same direction at every
// vertex (degenerate collinear runs are tolerated as long as no reversal
// occurs).
func (p Polygon) IsConvex() bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		c := p.Points[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if math.Abs(cross) < EpsilonIntersect {
			continue
		}
		curSign := 1
		if cross < 0 {
			curSign = -1
		}
		if sign == 0 {
			sign = curSign
		} else if sign != curSign {
			return false
		}
	}
	return sign != 0
}

// EdgeAngles returns, for each directed edge, the angle (in [0, 2pi)) of its
// outward normal measured from the positive Y axis, together with the index
// of the smallest such angle. The outward direction is chosen as whichever
// sign of the normal points away from the centroid.
func (p Polygon) EdgeAngles() (angles []float64, minIdx int) {
	center := p.Centroid()
	edges := p.Edges()
	angles = make([]float64, len(edges))
	minAngle := math.Inf(1)
	minIdx = 0
	for i, e := range edges {
		normal := e.Normal()
		centerLine := e.Midpoint().Sub(center)
		dot := normal.X*centerLine.X + normal.Y*centerLine.Y
		switch {
		case dot < 0:
			normal = normal.Negate()
		case dot == 0:
			panic("geom: EdgeAngles could not determine an outward normal (centroid lies on an edge's line)")
		}
		norm := math.Hypot(normal.X, normal.Y)
		if norm > 0 {
			normal = Point{normal.X / norm, normal.Y / norm}
		}
		angle := math.Atan2(normal.X*1 /*pos-y.Y*/, normal.Y*1)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		angles[i] = angle
		if angle < minAngle {
			minAngle = angle
			minIdx = i
		}
	}
	return angles, minIdx
}

// PointOnBoundary reports whether p lies (within tolerance) on any edge of
// the polygon.
func (p Polygon) PointOnBoundary(point Point) bool {
	for _, e := range p.Edges() {
		if e.ToSegment().PointOnEdge(point) {
			return true
		}
	}
	return false
}

// Set holds several polygons and implements operations that only make sense
// over the whole obstacle field: edge sampling for the incremental builder,
// and the "is this fully inside a polygon" test used to cull trapezoids.
type Set struct {
	Polygons []Polygon
}

// NewSet wraps polygons as a Set.
func NewSet(polygons []Polygon) Set {
	return Set{Polygons: polygons}
}

// ContainsBoundaryPoints reports whether every point in points lies on the
// boundary of the same single polygon in the set. This is the edge-
// membership heuristic from the original decomposition: after construction,
// a trapezoid lying inside an obstacle has all four of its vertices on that
// obstacle's boundary, because its walls were cut by the obstacle's own
// edges. It deliberately does not use a winding-number test, and it can
// misclassify trapezoids that happen to share boundary segments between
// unrelated polygons; that tradeoff is inherited on purpose.
func (s Set) ContainsBoundaryPoints(points []Point) bool {
	for _, poly := range s.Polygons {
		allOn := true
		for _, pt := range points {
			if !poly.PointOnBoundary(pt) {
				allOn = false
				break
			}
		}
		if allOn {
			return true
		}
	}
	return false
}

// Edges returns every directed edge of every polygon in the set, in
// polygon-then-vertex order (undefined order across polygons is resolved by
// the caller via Shuffle).
func (s Set) Edges() []Edge {
	var edges []Edge
	for _, poly := range s.Polygons {
		edges = append(edges, poly.Edges()...)
	}
	return edges
}
