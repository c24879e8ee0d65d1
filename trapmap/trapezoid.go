package trapmap

import "github.com/trapplan/motionplan/geom"

// Trapezoid is one cell of the trapezoidal decomposition: a top chord, a
// bottom chord, and the leftmost/rightmost vertices joining them. Top and
// Bottom degenerate to a shared endpoint for the triangular cells that show
// up at the left and right tips of an inserted edge's chain.
type Trapezoid struct {
	Top, Bottom geom.Segment
	LeftP, RightP geom.Point

	// Originators are the (at most two) obstacle vertices whose insertion
	// carved this trapezoid's vertical walls, left to right. A trapezoid
	// with zero originators has no wall carved by an inserted endpoint: both
	// of its vertical walls lie on the bounding rectangle's sides, though an
	// edge spanning the full width may have cut it into top and bottom.
	Originators []geom.Point

	// Index is this trapezoid's slot in its owning Set. It is kept in sync
	// by Set.Add/Set.UpdateIdx rather than set once at construction, since a
	// Trapezoid value is reused across merges under a stable index.
	Index int

	// Parents are the DAG nodes whose leaf points at this trapezoid. A
	// trapezoid always has at least one parent once added to a Set; popLeaf
	// uses this list to patch the DAG when the trapezoid is split away.
	Parents []parent
}

// newTrapezoid builds a Trapezoid from an unordered but adjacency-ordered
// vertex list (3 or 4 points, consecutive entries must be adjacent around
// the cell's boundary — see splitBy for how these lists are assembled) and
// an originator list already in left-to-right order.
func newTrapezoid(vertices []geom.Point, originators []geom.Point) *Trapezoid {
	top := fitChord(vertices, true)
	bottom := fitChord(vertices, false)
	left, right := extremeX(vertices)
	return &Trapezoid{
		Top:         top,
		Bottom:      bottom,
		LeftP:       left,
		RightP:      right,
		Originators: originators,
	}
}

// fitChord finds the top (or bottom) boundary segment of a 3- or 4-vertex
// cell: the vertex with extreme Y, and whichever of its two neighbors (in
// list-adjacency order, treated circularly) continues the chord rather than
// dropping down the cell's vertical wall.
func fitChord(vertices []geom.Point, top bool) geom.Segment {
	n := len(vertices)
	extreme := 0
	for i, v := range vertices {
		if top {
			if v.Y > vertices[extreme].Y {
				extreme = i
			}
		} else {
			if v.Y < vertices[extreme].Y {
				extreme = i
			}
		}
	}
	start := vertices[extreme]
	prev := vertices[((extreme-1)%n+n)%n]
	next := vertices[(extreme+1)%n]

	var end geom.Point
	switch {
	case prev.X == start.X:
		end = next
	case next.X == start.X:
		end = prev
	case top:
		if prev.Y > next.Y {
			end = prev
		} else {
			end = next
		}
	default:
		if prev.Y < next.Y {
			end = prev
		} else {
			end = next
		}
	}
	return geom.MakeSegment(start, end)
}

func extremeX(vertices []geom.Point) (left, right geom.Point) {
	left, right = vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		if v.X < left.X {
			left = v
		}
		if v.X > right.X {
			right = v
		}
	}
	return left, right
}

// IsLeftPointed reports whether Top and Bottom share their left endpoint,
// making this cell a triangle pointing left.
func (t *Trapezoid) IsLeftPointed() bool {
	return t.Top.Left == t.Bottom.Left
}

// IsRightPointed reports whether Top and Bottom share their right endpoint.
func (t *Trapezoid) IsRightPointed() bool {
	return t.Top.Right == t.Bottom.Right
}

// Vertices returns the cell's distinct corners, Top.Left, Top.Right,
// Bottom.Right, Bottom.Left, deduplicated for pointed cells.
func (t *Trapezoid) Vertices() []geom.Point {
	raw := []geom.Point{t.Top.Left, t.Top.Right, t.Bottom.Right, t.Bottom.Left}
	out := raw[:0:0]
	for _, p := range raw {
		if len(out) == 0 || out[len(out)-1] != p {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// IsIntersected reports whether edge genuinely crosses this trapezoid's
// interior (as opposed to merely touching a wall), using EpsilonIntersect
// for the chord comparisons.
func (t *Trapezoid) IsIntersected(edge geom.Segment) bool {
	var topLeftOK, bottomLeftOK bool
	if edge.Left.X < t.Top.Left.X {
		topLeftOK = edge.Interp(t.Top.Left.X) <= t.Top.Left.Y+geom.EpsilonIntersect
		bottomLeftOK = edge.Interp(t.Bottom.Left.X) >= t.Bottom.Left.Y-geom.EpsilonIntersect
	} else {
		topLeftOK = edge.Left.Y <= t.Top.Interp(edge.Left.X)+geom.EpsilonIntersect
		bottomLeftOK = edge.Left.Y >= t.Bottom.Interp(edge.Left.X)-geom.EpsilonIntersect
	}
	if !topLeftOK || !bottomLeftOK {
		return false
	}

	var topRightOK, bottomRightOK bool
	if edge.Right.X > t.Top.Right.X {
		topRightOK = edge.Interp(t.Top.Right.X) <= t.Top.Right.Y+geom.EpsilonIntersect
		bottomRightOK = edge.Interp(t.Bottom.Right.X) >= t.Bottom.Right.Y-geom.EpsilonIntersect
	} else {
		topRightOK = edge.Right.Y <= t.Top.Interp(edge.Right.X)+geom.EpsilonIntersect
		bottomRightOK = edge.Right.Y >= t.Bottom.Interp(edge.Right.X)-geom.EpsilonIntersect
	}
	if !topRightOK || !bottomRightOK {
		return false
	}

	if edge.Right.X <= t.LeftP.X {
		return false
	}
	if edge.Left.X >= t.RightP.X {
		return false
	}
	return true
}

// IncludesPoint reports whether p lies strictly inside this trapezoid.
func (t *Trapezoid) IncludesPoint(p geom.Point) bool {
	if p.X <= t.LeftP.X || p.X >= t.RightP.X {
		return false
	}
	return p.Y > t.Bottom.Interp(p.X) && p.Y < t.Top.Interp(p.X)
}

// IncludesPointLoose reports whether p lies inside this trapezoid or on its
// boundary, within EpsilonIntersect. Used to detect "the chain walk has
// reached the trapezoid containing the edge's right endpoint".
func (t *Trapezoid) IncludesPointLoose(p geom.Point) bool {
	if p.X < t.LeftP.X || p.X > t.RightP.X {
		return false
	}
	upper := t.Top.Interp(p.X)
	lower := t.Bottom.Interp(p.X)
	return p.Y >= lower-geom.EpsilonIntersect && p.Y <= upper+geom.EpsilonIntersect
}

// splitBy carves this trapezoid around edge, returning the pieces keyed by
// "left" (the piece cut off by a vertical wall at edge's left endpoint, if it
// falls strictly inside), "right" (symmetric, at edge's right endpoint), "top" (the part of
// the remaining middle strip above edge) and "bottom" (below). Vertical
// edges only ever produce "left"/"right". Returns an empty map if edge does
// not intersect the trapezoid at all.
func (t *Trapezoid) splitBy(edge geom.Segment) map[string]*Trapezoid {
	result := map[string]*Trapezoid{}
	if !t.IsIntersected(edge) {
		return result
	}

	curr := t
	endpoints := [2]geom.Point{edge.Left, edge.Right}
	keys := [2]string{"left", "right"}
	for i := 0; i < 2; i++ {
		p := endpoints[i]
		if !curr.IncludesPoint(p) {
			continue
		}
		topPoint := geom.Point{X: p.X, Y: curr.Top.Interp(p.X)}
		bottomPoint := geom.Point{X: p.X, Y: curr.Bottom.Interp(p.X)}
		centerPoints := []geom.Point{topPoint, bottomPoint}

		sideBottom, sideTop := sideCorners(curr, i)
		sideVerts := append(append([]geom.Point{}, centerPoints...), sideBottom)
		if sideTop.Y != sideBottom.Y {
			sideVerts = append(sideVerts, sideTop)
		}

		otherBottom, otherTop := sideCorners(curr, 1-i)
		leftoverVerts := append(append([]geom.Point{}, centerPoints...), otherBottom)
		if otherTop.Y != otherBottom.Y {
			leftoverVerts = append(leftoverVerts, otherTop)
		}

		sideOriginators := filterOriginators(curr.Originators, sideVerts)
		sideOriginators = append(sideOriginators, p)
		leftoverOriginators := filterOriginators(curr.Originators, leftoverVerts)
		leftoverOriginators = append(leftoverOriginators, p)

		result[keys[i]] = newTrapezoid(sideVerts, sideOriginators)
		curr = newTrapezoid(leftoverVerts, leftoverOriginators)
	}

	if edge.Left.X == edge.Right.X {
		// Vertical edge: there is no top/bottom split to do. The loop above
		// only ever carves a "left" piece off this trapezoid (edge.Left and
		// edge.Right share an X, so the second iteration's IncludesPoint
		// check always fails), leaving the rest of the cell in curr. That
		// remainder is the "right" piece the vertical wall cuts off.
		if _, ok := result["left"]; ok {
			result["right"] = curr
		}
		return result
	}

	centerLeft := geom.Point{X: curr.LeftP.X, Y: edge.Interp(curr.LeftP.X)}
	centerRight := geom.Point{X: curr.RightP.X, Y: edge.Interp(curr.RightP.X)}
	centerPoints := []geom.Point{centerRight, centerLeft}

	topVerts := append(append([]geom.Point{}, centerPoints...), curr.Top.Left, curr.Top.Right)
	bottomVerts := append(append([]geom.Point{}, centerPoints...), curr.Bottom.Left, curr.Bottom.Right)

	topOriginators := filterOriginators(curr.Originators, topVerts)
	bottomOriginators := filterOriginators(curr.Originators, bottomVerts)

	result["top"] = newTrapezoid(topVerts, topOriginators)
	result["bottom"] = newTrapezoid(bottomVerts, bottomOriginators)
	return result
}

// sideCorners returns (bottom corner, top corner) of curr on side i (0 =
// left, 1 = right).
func sideCorners(curr *Trapezoid, i int) (bottom, top geom.Point) {
	if i == 0 {
		return curr.Bottom.Left, curr.Top.Left
	}
	return curr.Bottom.Right, curr.Top.Right
}

// filterOriginators keeps only the originators whose X coordinate matches
// some vertex in verts — an exact-match test, mirroring the original
// implementation's array membership check.
func filterOriginators(originators, verts []geom.Point) []geom.Point {
	var kept []geom.Point
	for _, o := range originators {
		for _, v := range verts {
			if v.X == o.X {
				kept = append(kept, o)
				break
			}
		}
	}
	return kept
}
