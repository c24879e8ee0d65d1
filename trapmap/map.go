// Package trapmap builds and queries an incremental randomized trapezoidal
// decomposition: a Set of trapezoids covering a bounding rectangle, and a
// point-location DAG (X-node/Y-node/leaf) patched in step with every edge
// insertion so that locating the trapezoid under a point stays expected
// O(log n).
package trapmap

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/trapplan/motionplan/geom"
)

// Map owns both halves of the decomposition: the trapezoid Set and the
// search DAG rooted at Root. They live in one package, and this one struct,
// because a Trapezoid's Parents and a DAG leaf's trapezoid index are
// mutually recursive.
type Map struct {
	Set  *Set
	Root *xNode
	rng  *rand.Rand
}

// New creates a Map covering bounds, seeded for reproducible edge-insertion
// order.
func New(bounds geom.Box, seed uint64) *Map {
	set := NewSet()
	verts := []geom.Point{
		{X: bounds.Min.X, Y: bounds.Min.Y},
		{X: bounds.Min.X, Y: bounds.Max.Y},
		{X: bounds.Max.X, Y: bounds.Max.Y},
		{X: bounds.Max.X, Y: bounds.Min.Y},
	}
	start := newTrapezoid(verts, nil)
	startIdx := set.Add(start)

	root := &xNode{X: bounds.Min.X, True: failureLeaf, False: leaf(startIdx)}
	start.Parents = append(start.Parents, root)

	return &Map{
		Set:  set,
		Root: root,
		rng:  rand.New(rand.NewSource(int64(seed))),
	}
}

// Query locates the trapezoid containing p, walking the DAG from the root.
func (m *Map) Query(p geom.Point) (idx int, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*internalError); ok {
				err = errors.Wrap(ie, "trapmap: internal invariant violation")
				return
			}
			panic(r)
		}
	}()

	var cur node = m.Root
	for {
		if cur == nil {
			panic(&internalError{"trapmap: query ran off an unfilled DAG child"})
		}
		if l, ok := cur.(leaf); ok {
			if l == failureLeaf {
				return 0, ErrPointOutsideBounds
			}
			return int(l), nil
		}
		cur = cur.find(p)
	}
}

// Build inserts every edge of obstacles in a random order driven by the
// Map's seed.
func (m *Map) Build(obstacles geom.Set) error {
	for _, e := range obstacles.RandomEdgeSampler(m.rng) {
		if err := m.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}

// popLeaf removes the trapezoid at idx and clears the matching leaf out of
// each of its parents, returning those parents so the caller can patch in a
// replacement subtree.
func (m *Map) popLeaf(idx int) []parent {
	t := m.Set.Get(idx)
	parents := t.Parents
	m.Set.Pop(idx)
	for _, p := range parents {
		if !p.clearLeaf(idx) {
			panic(&internalError{fmt.Sprintf("trapmap: parent does not have expected child %d", idx)})
		}
	}
	return parents
}

// AddEdge inserts a single obstacle edge into the decomposition: it walks
// the chain of trapezoids the edge crosses, splits each one, merges
// newly-split pieces with their predecessor along the chain where the
// geometry agrees, and patches the DAG so every popped leaf's parents point
// at the new subtree.
func (m *Map) AddEdge(e geom.Edge) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*internalError); ok {
				err = errors.Wrap(ie, "trapmap: internal invariant violation")
				return
			}
			panic(r)
		}
	}()

	seg := e.ToSegment()
	leftIdx, err := m.Query(seg.Left)
	if err != nil {
		return err
	}
	rightIdx, err := m.Query(seg.Right)
	if err != nil {
		return err
	}

	// A vertical edge whose endpoints both resolve to trapezoids ending at
	// its X lies along a wall the map already has: there is nothing to split.
	if seg.IsVertical() && leftIdx != rightIdx &&
		m.Set.Get(leftIdx).RightP.X == seg.Left.X && m.Set.Get(rightIdx).RightP.X == seg.Left.X {
		return nil
	}

	intersected := []int{leftIdx}
	if leftIdx != rightIdx {
		cur := leftIdx
		reachedRight := false
		for {
			next := -1
			for _, cand := range m.Set.RightAdjacent(cur) {
				if m.Set.Get(cand).IsIntersected(seg) {
					next = cand
					break
				}
			}
			if next == -1 {
				break
			}
			intersected = append(intersected, next)
			cur = next
			if m.Set.Get(cur).IncludesPointLoose(seg.Right) {
				reachedRight = true
				break
			}
		}
		if !reachedRight {
			return ErrOverlappingPolygons
		}
	}

	splits := make([]map[string]*Trapezoid, len(intersected))
	parentsByStep := make([][]parent, len(intersected))
	for i, idx := range intersected {
		splits[i] = m.Set.Get(idx).splitBy(seg)
		if len(splits[i]) > 0 {
			parentsByStep[i] = m.popLeaf(idx)
		}
	}

	idxMaps := m.Set.AddAndCheckMerges(splits)

	for i := range intersected {
		parents := parentsByStep[i]
		if parents == nil {
			continue
		}
		replacement := m.buildSubtree(seg, idxMaps[i])
		for _, p := range parents {
			if err := p.setChild(replacement); err != nil {
				panic(&internalError{err.Error()})
			}
		}
	}

	return nil
}

// buildSubtree assembles the little DAG fragment that replaces a single
// popped leaf: a Y-node choosing top/bottom, optionally wrapped in X-nodes
// for the left/right pieces cut off at the edge's endpoints. For a
// vertical edge there is no top/bottom distinction, just an X-node choosing
// left/right.
func (m *Map) buildSubtree(seg geom.Segment, indices map[string]int) node {
	if seg.IsVertical() {
		leftIdx, leftOK := indices["left"]
		rightIdx, rightOK := indices["right"]
		if !leftOK || !rightOK {
			panic(&internalError{"trapmap: vertical edge split missing left/right child"})
		}
		xn := &xNode{X: seg.Left.X, True: leaf(leftIdx), False: leaf(rightIdx)}
		m.Set.Get(leftIdx).Parents = append(m.Set.Get(leftIdx).Parents, xn)
		m.Set.Get(rightIdx).Parents = append(m.Set.Get(rightIdx).Parents, xn)
		return xn
	}

	yn := &yNode{Seg: seg}
	if idx, ok := indices["top"]; ok {
		yn.True = leaf(idx)
		m.Set.Get(idx).Parents = append(m.Set.Get(idx).Parents, yn)
	}
	if idx, ok := indices["bottom"]; ok {
		yn.False = leaf(idx)
		m.Set.Get(idx).Parents = append(m.Set.Get(idx).Parents, yn)
	}

	var root node = yn
	if idx, ok := indices["right"]; ok {
		xn := &xNode{X: seg.Right.X, True: root, False: leaf(idx)}
		m.Set.Get(idx).Parents = append(m.Set.Get(idx).Parents, xn)
		root = xn
	}
	if idx, ok := indices["left"]; ok {
		xn := &xNode{X: seg.Left.X, True: leaf(idx), False: root}
		m.Set.Get(idx).Parents = append(m.Set.Get(idx).Parents, xn)
		root = xn
	}
	return root
}

// DiagnosticEdges returns the segment stored at every Y-node reachable from
// the root: the set of inserted obstacle edges the DAG currently
// distinguishes on, used by internal/draw to render the decomposition.
func (m *Map) DiagnosticEdges() []geom.Segment {
	var segs []geom.Segment
	iterateNodes(m.Root, func(n node) {
		if yn, ok := n.(*yNode); ok {
			segs = append(segs, yn.Seg)
		}
	})
	return segs
}
