package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapplan/motionplan/geom"
	"github.com/trapplan/motionplan/trapmap"
)

func bounds800() geom.Box {
	return geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 800, Y: 800}}
}

func buildTriangleMap(t *testing.T, seed uint64) (*trapmap.Map, geom.Polygon) {
	triangle := geom.NewPolygon([]geom.Point{{200, 100}, {240, 30}, {280, 100}})
	m := trapmap.New(bounds800(), seed)
	for _, e := range triangle.Edges() {
		require.NoError(t, m.AddEdge(e))
	}
	return m, triangle
}

func TestBuildConnectsFreeSpaceAroundObstacle(t *testing.T) {
	m, triangle := buildTriangleMap(t, 1)
	m.Set.RemoveInsidePolygons(geom.NewSet([]geom.Polygon{triangle}))

	g := Build(m, 0)
	start := geom.Point{X: 10, Y: 10}
	goal := geom.Point{X: 790, Y: 790}

	path, err := g.Search(start, goal)
	require.NoError(t, err)
	require.True(t, len(path) >= 2)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
}

func TestSearchSameTrapezoidIsDirect(t *testing.T) {
	m, triangle := buildTriangleMap(t, 2)
	m.Set.RemoveInsidePolygons(geom.NewSet([]geom.Polygon{triangle}))

	g := Build(m, 0)
	// Both points sit well clear of the triangle on its left side, inside the
	// single trapezoid left of the wall at x=200, so the path is a direct
	// two-point line with no interface crossed.
	start := geom.Point{X: 10, Y: 10}
	goal := geom.Point{X: 15, Y: 15}

	path, err := g.Search(start, goal)
	require.NoError(t, err)
	assert.Len(t, path, 2)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
}

func TestSearchPointOutsideFreeSpaceAfterRemoval(t *testing.T) {
	m, triangle := buildTriangleMap(t, 3)
	m.Set.RemoveInsidePolygons(geom.NewSet([]geom.Polygon{triangle}))

	g := Build(m, 0)
	start := geom.Point{X: 10, Y: 10}
	insideTriangle := geom.Point{X: 240, Y: 70}

	_, err := g.Search(start, insideTriangle)
	assert.ErrorIs(t, err, ErrPointOutsideFreeSpace)
}

func TestSearchPointOutsideBoundsIsOutsideFreeSpace(t *testing.T) {
	m, triangle := buildTriangleMap(t, 4)
	m.Set.RemoveInsidePolygons(geom.NewSet([]geom.Polygon{triangle}))

	g := Build(m, 0)
	start := geom.Point{X: 10, Y: 10}
	outside := geom.Point{X: -50, Y: -50}

	_, err := g.Search(start, outside)
	assert.ErrorIs(t, err, ErrPointOutsideFreeSpace)
}

// TestSearchNoPathWhenGraphDisconnected exercises the NoPath branch directly
// against a hand-built Graph, bypassing geometric construction: two valid,
// live trapezoids that simply have no recorded Interface between them (as
// would happen if an obstacle genuinely separated two regions of free
// space).
func TestSearchNoPathWhenGraphDisconnected(t *testing.T) {
	m, triangle := buildTriangleMap(t, 5)
	m.Set.RemoveInsidePolygons(geom.NewSet([]geom.Polygon{triangle}))

	g := &Graph{Map: m, interfaces: make(map[int]map[int]Interface)}

	start := geom.Point{X: 10, Y: 10}
	goal := geom.Point{X: 790, Y: 790}

	_, err := g.Search(start, goal)
	assert.ErrorIs(t, err, ErrNoPath)
}
