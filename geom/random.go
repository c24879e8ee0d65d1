package geom

import "math/rand"

// Box is an axis-aligned free-space rectangle, [Min, Max].
type Box struct {
	Min, Max Point
}

func (b Box) width() float64  { return b.Max.X - b.Min.X }
func (b Box) height() float64 { return b.Max.Y - b.Min.Y }

// RandomConvexPolygon returns a random convex polygon of at most
// maxVertices vertices inside bounds, ported from the original
// implementation's Polygons.make_convex: scatter random points in the box
// and take their convex hull.
func RandomConvexPolygon(rng *rand.Rand, maxVertices int, bounds Box) Polygon {
	if maxVertices < 3 {
		panic("geom: RandomConvexPolygon requires maxVertices >= 3")
	}
	pts := make([]Point, maxVertices)
	for i := range pts {
		x := bounds.Min.X + 5 + rng.Float64()*(bounds.width()-10)
		y := bounds.Min.Y + 5 + rng.Float64()*(bounds.height()-10)
		pts[i] = Point{x, y}
	}
	return Polygon{Points: ConvexHull(pts)}
}

// splitFreeSpace randomly splits one box in free into two, mutating free in
// place, matching Polygons.split_freespace.
func splitFreeSpace(rng *rand.Rand, free []Box) []Box {
	if len(free) == 0 {
		return free
	}
	idx := rng.Intn(len(free))
	box := free[idx]

	axis := 0 // 0 = vertical split (varies X), 1 = horizontal split (varies Y)
	if rng.Float64() > 0.5 {
		axis = 1
	}

	var splitCoord float64
	var box1, box2 Box
	if axis == 0 {
		splitCoord = box.Min.X + rng.Float64()*(box.Max.X-box.Min.X)
		box1 = Box{box.Min, Point{splitCoord, box.Max.Y}}
		box2 = Box{Point{splitCoord, box.Min.Y}, box.Max}
	} else {
		splitCoord = box.Min.Y + rng.Float64()*(box.Max.Y-box.Min.Y)
		box1 = Box{box.Min, Point{box.Max.X, splitCoord}}
		box2 = Box{Point{box.Min.X, splitCoord}, box.Max}
	}

	free[idx] = box1
	return append(free, box2)
}

// RandomDisjointPolygonSet generates a random set of disjoint convex
// polygons within bounds, totalling approximately numVertices vertices, by
// recursively splitting free space and filling the pieces that are large
// enough to hold a polygon. Ported from the original implementation's
// Polygons.make_random.
func RandomDisjointPolygonSet(rng *rand.Rand, bounds Box, numVertices int) []Polygon {
	free := []Box{bounds}
	initialPartitions := int(0.3 * float64(numVertices))
	for i := 0; i < initialPartitions; i++ {
		free = splitFreeSpace(rng, free)
	}

	var polygons []Polygon
	generated := 0
	for generated < numVertices && numVertices-generated > 2 {
		if len(free) < 3 {
			free = splitFreeSpace(rng, free)
		}

		found := false
		var box Box
		for len(free) > 0 {
			idx := rng.Intn(len(free))
			candidate := free[idx]
			free = append(free[:idx], free[idx+1:]...)
			if candidate.width() > 20 && candidate.height() > 20 {
				box = candidate
				found = true
				break
			}
		}
		if !found {
			break
		}

		remaining := numVertices - generated
		poly := RandomConvexPolygon(rng, remaining, box)
		polygons = append(polygons, poly)
		generated += len(poly.Points)
	}
	return polygons
}
