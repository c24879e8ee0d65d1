package trapmap

import "github.com/pkg/errors"

// ErrPointOutsideBounds is returned by Query for a point at or left of the
// map's left bound (x <= bounds.Min.X), and by any AddEdge with such an
// endpoint. Points beyond the other three sides are not detected: Query
// resolves them to a trapezoid of the map like any other point.
var ErrPointOutsideBounds = errors.New("trapmap: point outside bounds")

// ErrOverlappingPolygons is returned by AddEdge when a new edge's chain of
// intersected trapezoids runs off the side of the map without its right
// endpoint ever falling inside one of them — the signature of two input
// obstacles overlapping, which this decomposition does not support merging.
var ErrOverlappingPolygons = errors.New("trapmap: overlapping polygons detected")

var errBothChildrenFilled = errors.New("trapmap: DAG node already has both children filled")

// internalError marks an invariant violation deep inside the incremental
// build (a malformed split, a parent that lost track of its child). AddEdge
// recovers these at its boundary and reports them as a wrapped error,
// mirroring the teacher's panic/recover pattern for its own recursive build.
type internalError struct {
	msg string
}

func (e *internalError) Error() string { return e.msg }
