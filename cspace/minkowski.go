// Package cspace computes configuration-space obstacles: the Minkowski sum
// of each obstacle polygon with the (reflected) vehicle polygon.
package cspace

import (
	"math"

	"github.com/trapplan/motionplan/geom"
)

// Minkowski computes the Minkowski sum of a convex obstacle polygon with a
// convex vehicle polygon (reflected through the origin) in O(m+n) time by
// merge-walking the two polygons' edges in outward-normal angle order.
//
// As a special case, a single-point vehicle (the "point robot" used in
// scenarios with no vehicle footprint) leaves the obstacle unchanged, since
// the sum of a shape with a single point is that shape translated by zero.
func Minkowski(obstacle, vehicle geom.Polygon) (geom.Polygon, error) {
	if len(vehicle.Points) == 1 {
		return obstacle, nil
	}
	if len(obstacle.Points) < 3 || len(vehicle.Points) < 3 {
		return geom.Polygon{}, geom.ErrDegenerateInput
	}
	if !obstacle.IsConvex() || !vehicle.IsConvex() {
		return geom.Polygon{}, geom.ErrDegenerateInput
	}

	negated := make([]geom.Point, len(vehicle.Points))
	for i, p := range vehicle.Points {
		negated[i] = p.Negate()
	}
	vehicleCCW := geom.NewPolygon(negated).CounterClockwise()
	obstacleCCW := obstacle.CounterClockwise()

	vehicleAngles, vStart := vehicleCCW.EdgeAngles()
	obstacleAngles, oStart := obstacleCCW.EdgeAngles()
	vehicleEdges := vehicleCCW.Edges()
	obstacleEdges := obstacleCCW.Edges()
	nv := len(vehicleAngles)
	no := len(obstacleAngles)

	output := []geom.Point{obstacleEdges[oStart].A, obstacleEdges[oStart].B}
	lastAngle := obstacleAngles[oStart]

	for vehicleAngles[vStart] < lastAngle {
		vStart = (vStart + 1) % nv
	}

	vIdx, oIdx := 0, 1
	for i := 1; i < nv+no; i++ {
		currV := (vIdx + vStart) % nv
		currO := (oIdx + oStart) % no
		angleV := vehicleAngles[currV]
		angleO := obstacleAngles[currO]
		diffV := angleV - lastAngle
		diffO := angleO - lastAngle
		if diffV < 0 {
			diffV += 2 * math.Pi
		}
		if diffO < 0 {
			diffO += 2 * math.Pi
		}

		var edge geom.Edge
		if diffV < diffO {
			edge = vehicleEdges[currV]
			vIdx++
			lastAngle = angleV
		} else {
			edge = obstacleEdges[currO]
			oIdx++
			lastAngle = angleO
		}
		vec := edge.Vector()
		output = append(output, output[len(output)-1].Add(vec))
	}

	if output[0] == output[len(output)-1] {
		output = output[:len(output)-1]
	}

	result := geom.NewPolygon(output)

	// Align the inflated obstacle's reference corner with the original
	// obstacle's, so downstream decomposition stays numerically close to the
	// input coordinates.
	cornerOffset := vehicleCCW.Centroid().Sub(vehicleCCW.TopLeftVertex())
	minkowskiOffsetLocation := result.TopLeftVertex().Add(cornerOffset)
	shift := minkowskiOffsetLocation.Sub(obstacleCCW.TopLeftVertex())

	final := make([]geom.Point, len(output))
	for i, p := range output {
		final[i] = p.Sub(shift)
	}
	return geom.NewPolygon(final), nil
}

// Expand computes the C-space obstacle for every obstacle polygon against a
// single vehicle polygon.
//
// TODO: merge intersecting polygons into one before returning. Obstacles
// that overlap after inflation are left as separate polygons, which
// trapmap.Map.AddEdge will reject with ErrOverlappingPolygons.
func Expand(obstacles []geom.Polygon, vehicle geom.Polygon) ([]geom.Polygon, error) {
	enlarged := make([]geom.Polygon, 0, len(obstacles))
	for _, obstacle := range obstacles {
		sum, err := Minkowski(obstacle, vehicle)
		if err != nil {
			return nil, err
		}
		enlarged = append(enlarged, sum)
	}
	return enlarged, nil
}
