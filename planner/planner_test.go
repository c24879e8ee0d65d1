package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapplan/motionplan/geom"
	"github.com/trapplan/motionplan/roadmap"
)

func bounds800() geom.Box {
	return geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 800, Y: 800}}
}

func TestNewRejectsMismatchedTolerance(t *testing.T) {
	_, err := New(bounds800(), Config{EpsilonIntersect: 0.5})
	assert.ErrorIs(t, err, ErrToleranceMismatch)
}

func TestPlanBeforeBuildIsError(t *testing.T) {
	p, err := New(bounds800(), DefaultConfig())
	require.NoError(t, err)
	_, err = p.Plan(geom.Point{X: 1, Y: 1}, geom.Point{X: 2, Y: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestBuildAndPlanAroundATriangleObstacle(t *testing.T) {
	triangle := geom.NewPolygon([]geom.Point{{200, 100}, {240, 30}, {280, 100}})

	p, err := New(bounds800(), DefaultConfig())
	require.NoError(t, err)
	p.SetObstacles([]geom.Polygon{triangle})

	require.NoError(t, p.Build())
	assert.NotEmpty(t, p.Trapezoids())
	assert.NotEmpty(t, p.DecompositionEdges())

	path, err := p.Plan(geom.Point{X: 10, Y: 10}, geom.Point{X: 790, Y: 790})
	require.NoError(t, err)
	assert.Equal(t, geom.Point{X: 10, Y: 10}, path[0])
	assert.Equal(t, geom.Point{X: 790, Y: 790}, path[len(path)-1])
}

func TestBuildExpandsObstaclesByVehicleFootprint(t *testing.T) {
	square := geom.NewPolygon([]geom.Point{{300, 300}, {320, 300}, {320, 320}, {300, 320}})
	vehicle := geom.NewPolygon([]geom.Point{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}})

	p, err := New(bounds800(), DefaultConfig())
	require.NoError(t, err)
	p.SetObstacles([]geom.Polygon{square})
	p.SetVehicle(vehicle)

	require.NoError(t, p.Build())
	require.Len(t, p.CSpaceObstacles(), 1)

	expanded := p.CSpaceObstacles()[0]
	var minX, maxX float64 = 1e9, -1e9
	for _, pt := range expanded.Points {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
	}
	// The vehicle is 20 units wide, so the expanded obstacle should be at
	// least that much wider than the original 20-unit-wide square.
	assert.GreaterOrEqual(t, maxX-minX, 40.0)
}

func TestPlanToPointInsideObstacleIsOutsideFreeSpace(t *testing.T) {
	triangle := geom.NewPolygon([]geom.Point{{200, 100}, {240, 30}, {280, 100}})

	p, err := New(bounds800(), DefaultConfig())
	require.NoError(t, err)
	p.SetObstacles([]geom.Polygon{triangle})
	require.NoError(t, p.Build())

	_, err = p.Plan(geom.Point{X: 10, Y: 10}, geom.Point{X: 240, Y: 70})
	require.Error(t, err)
	assert.ErrorIs(t, err, roadmap.ErrPointOutsideFreeSpace)
}
