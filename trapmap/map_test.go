package trapmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trapplan/motionplan/geom"
)

func bounds800() geom.Box {
	return geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 800, Y: 800}}
}

func TestAddEdgeSingleTriangle(t *testing.T) {
	triangle := geom.NewPolygon([]geom.Point{{200, 100}, {240, 30}, {280, 100}})
	m := New(bounds800(), 1)
	for _, e := range triangle.Edges() {
		require.NoError(t, m.AddEdge(e))
	}

	assert.Equal(t, 8, m.Set.Count())
	assert.Equal(t, 2, m.Set.RightAdjacentTo(200))
	assert.Equal(t, 2, m.Set.RightAdjacentTo(240))
	assert.Equal(t, 1, m.Set.RightAdjacentTo(280))
}

// TestAddEdgeTwoDisjointTriangles exercises the two-obstacle insertion order
// named in the scenario this is grounded on: T1-bottom, T2-bottom, T2-left,
// T1-right, T1-left. That scenario names only 5 of the 6 edges and an
// adjacency count at x=10, which is not a vertex of either triangle — both
// are left ambiguous in the source material (see DESIGN.md), so this test
// closes with T2's remaining top edge and checks the adjacency counts at
// every X that unambiguously corresponds to a triangle vertex, plus a sanity
// bound on the total trapezoid count rather than the exact figure.
func TestAddEdgeTwoDisjointTriangles(t *testing.T) {
	t1 := []geom.Point{{200, 100}, {240, 30}, {280, 100}}
	t2 := []geom.Point{{100, 300}, {400, 300}, {400, 200}}

	edges := []geom.Edge{
		{A: t1[2], B: t1[0]}, // T1 bottom: (280,100)->(200,100)
		{A: t2[1], B: t2[2]}, // T2 bottom: (400,300)->(400,200)
		{A: t2[2], B: t2[0]}, // T2 left:   (400,200)->(100,300)
		{A: t1[1], B: t1[2]}, // T1 right:  (240,30)->(280,100)
		{A: t1[0], B: t1[1]}, // T1 left:   (200,100)->(240,30)
		{A: t2[0], B: t2[1]}, // T2 top:    (100,300)->(400,300)
	}

	m := New(bounds800(), 2)
	for _, e := range edges {
		require.NoError(t, m.AddEdge(e))
	}

	assert.GreaterOrEqual(t, m.Set.Count(), 8)
	for _, x := range []float64{100, 200, 240, 280, 400} {
		assert.Greaterf(t, m.Set.RightAdjacentTo(x), 0, "expected at least one trapezoid wall at x=%v", x)
	}
}

func TestQueryOutsideBoundsIsError(t *testing.T) {
	m := New(bounds800(), 3)
	_, err := m.Query(geom.Point{X: -10, Y: 0})
	assert.ErrorIs(t, err, ErrPointOutsideBounds)
}

func TestQueryFindsInsertedTrapezoid(t *testing.T) {
	triangle := geom.NewPolygon([]geom.Point{{200, 100}, {240, 30}, {280, 100}})
	m := New(bounds800(), 4)
	for _, e := range triangle.Edges() {
		require.NoError(t, m.AddEdge(e))
	}
	idx, err := m.Query(geom.Point{X: 10, Y: 10})
	require.NoError(t, err)
	assert.NotNil(t, m.Set.Get(idx))
}

// TestAddEdgeOverlappingPolygonsReturnsTypedError checks that when two
// obstacles' boundaries actually cross, AddEdge never panics and, if it
// rejects an edge, rejects it with ErrOverlappingPolygons specifically
// (never a bare or internal error) — the failure mode the spec calls out
// for self-intersecting obstacle input.
func TestAddEdgeOverlappingPolygonsReturnsTypedError(t *testing.T) {
	square := geom.NewPolygon([]geom.Point{{100, 100}, {300, 100}, {300, 300}, {100, 300}})
	overlapping := geom.NewPolygon([]geom.Point{{200, 200}, {400, 200}, {400, 400}, {200, 400}})

	m := New(bounds800(), 5)
	for _, e := range square.Edges() {
		require.NoError(t, m.AddEdge(e))
	}

	for _, e := range overlapping.Edges() {
		if err := m.AddEdge(e); err != nil {
			assert.ErrorIs(t, err, ErrOverlappingPolygons)
		}
	}
}

func TestBuildIsDeterministicAcrossSameSeed(t *testing.T) {
	triangle := geom.NewPolygon([]geom.Point{{200, 100}, {240, 30}, {280, 100}})
	set := geom.NewSet([]geom.Polygon{triangle})

	m1 := New(bounds800(), 42)
	require.NoError(t, m1.Build(set))
	m2 := New(bounds800(), 42)
	require.NoError(t, m2.Build(set))

	assert.Equal(t, m1.Set.Count(), m2.Set.Count())
	assert.Equal(t, m1.DiagnosticEdges(), m2.DiagnosticEdges())
}

func TestRemoveInsidePolygonsPrunesObstacleInterior(t *testing.T) {
	triangle := geom.NewPolygon([]geom.Point{{200, 100}, {240, 30}, {280, 100}})
	m := New(bounds800(), 6)
	for _, e := range triangle.Edges() {
		require.NoError(t, m.AddEdge(e))
	}
	before := m.Set.Count()
	m.Set.RemoveInsidePolygons(geom.NewSet([]geom.Polygon{triangle}))
	assert.Less(t, m.Set.Count(), before)
}
