package geom

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() Polygon {
	return NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
}

func TestIsCounterClockwise(t *testing.T) {
	// Winding is judged with the Y axis pointing down (screen coordinates):
	// square() runs clockwise there, and its reverse counter-clockwise.
	assert.False(t, square().IsCounterClockwise())
	reversed := NewPolygon([]Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}})
	assert.True(t, reversed.IsCounterClockwise())
}

func TestCounterClockwiseNormalizesOrder(t *testing.T) {
	cw := NewPolygon([]Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}})
	ccw := cw.CounterClockwise()
	assert.True(t, ccw.IsCounterClockwise())
}

func TestTopLeftVertex(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 5}})
	tl := p.TopLeftVertex()
	assert.Equal(t, Point{0, 10}, tl)
}

func TestIsConvex(t *testing.T) {
	assert.True(t, square().IsConvex())
	nonConvex := NewPolygon([]Point{{0, 0}, {10, 0}, {5, 5}, {10, 10}, {0, 10}})
	assert.False(t, nonConvex.IsConvex())
}

func TestEdgeAnglesMonotonicForConvexCCW(t *testing.T) {
	p := square().CounterClockwise()
	angles, minIdx := p.EdgeAngles()
	require.Len(t, angles, 4)
	// Rotate so the smallest angle comes first; the rest must increase.
	n := len(angles)
	for i := 1; i < n; i++ {
		prev := angles[(minIdx+i-1)%n]
		cur := angles[(minIdx+i)%n]
		assert.GreaterOrEqual(t, cur, prev)
	}
}

func TestPointOnBoundary(t *testing.T) {
	p := square()
	assert.True(t, p.PointOnBoundary(Point{5, 0}))
	assert.False(t, p.PointOnBoundary(Point{5, 5}))
}

func TestSetContainsBoundaryPoints(t *testing.T) {
	s := NewSet([]Polygon{square()})
	assert.True(t, s.ContainsBoundaryPoints([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}))
	assert.False(t, s.ContainsBoundaryPoints([]Point{{0, 0}, {5, 5}}))
}

func TestRandomEdgeSamplerCoversAllEdgesExactlyOnce(t *testing.T) {
	s := NewSet([]Polygon{square(), NewPolygon([]Point{{20, 20}, {30, 20}, {25, 30}})})
	rng := rand.New(rand.NewSource(42))
	edges := s.RandomEdgeSampler(rng)
	assert.Len(t, edges, 7)
	assert.ElementsMatch(t, s.Edges(), edges)
}

func TestConvexHullTriangle(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {5, 10}, {5, 5}}
	hull := ConvexHull(pts)
	assert.Len(t, hull, 3)
}

func TestRandomConvexPolygonWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bounds := Box{Point{0, 0}, Point{100, 100}}
	poly := RandomConvexPolygon(rng, 6, bounds)
	assert.GreaterOrEqual(t, len(poly.Points), 3)
	for _, p := range poly.Points {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 100.0)
	}
}

func TestRandomDisjointPolygonSet(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	bounds := Box{Point{0, 0}, Point{800, 800}}
	polys := RandomDisjointPolygonSet(rng, bounds, 12)
	assert.NotEmpty(t, polys)
}
