package cspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trapplan/motionplan/geom"
)

func TestMinkowskiPointVehicleIsIdentity(t *testing.T) {
	obstacle := geom.NewPolygon([]geom.Point{{200, 100}, {240, 30}, {280, 100}})
	vehicle := geom.NewPolygon([]geom.Point{{0, 0}})
	sum, err := Minkowski(obstacle, vehicle)
	require.NoError(t, err)
	assert.Equal(t, obstacle, sum)
}

func TestMinkowskiSquareTriangle(t *testing.T) {
	square := geom.NewPolygon([]geom.Point{{400, 50}, {800, 50}, {800, 200}, {400, 200}})
	triangle := geom.NewPolygon([]geom.Point{{200, 100}, {300, 100}, {250, 10}})

	sum, err := Minkowski(square, triangle)
	require.NoError(t, err)
	require.Len(t, sum.Points, 7)

	expected := []geom.Point{
		{400, 260}, {800, 260}, {850, 170}, {850, 20}, {450, 20}, {350, 20}, {350, 170},
	}
	assertSamePointSetUpToRotation(t, expected, sum.Points)
}

func TestMinkowskiRejectsNonConvex(t *testing.T) {
	nonConvex := geom.NewPolygon([]geom.Point{{0, 0}, {10, 0}, {5, 5}, {10, 10}, {0, 10}})
	square := geom.NewPolygon([]geom.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	_, err := Minkowski(nonConvex, square)
	assert.ErrorIs(t, err, geom.ErrDegenerateInput)
}

func assertSamePointSetUpToRotation(t *testing.T, expected, actual []geom.Point) {
	t.Helper()
	require.Len(t, actual, len(expected))
	n := len(expected)
	for shift := 0; shift < n; shift++ {
		match := true
		for i := 0; i < n; i++ {
			if !expected[i].EqualEps(actual[(i+shift)%n], 1e-3) {
				match = false
				break
			}
		}
		if match {
			return
		}
	}
	t.Fatalf("point sets do not match up to rotation.\nexpected: %v\nactual:   %v", expected, actual)
}
