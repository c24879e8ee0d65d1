package trapmap

import "github.com/trapplan/motionplan/geom"

// node is the search-DAG decision interface. Concrete types are *xNode,
// *yNode, and leaf. A nil node value means "child slot not yet filled" (see
// the "empty while a split is being patched" case in AddEdge).
type node interface {
	find(p geom.Point) node
}

// leaf is a trapezoid index, or failureLeaf for "query point is outside the
// global bounds". It is a value type (not a pointer) so that two leaves for
// the same trapezoid compare equal, which is what lets popLeaf find and
// clear the right child slot on every parent.
type leaf int

const failureLeaf leaf = -1

func (l leaf) find(geom.Point) node {
	panic(&internalError{"trapmap: cannot traverse past a leaf"})
}

// parent is a node that owns two child slots and can have one of them
// filled in after a split (set_value in the spec).
type parent interface {
	node
	setChild(child node) error
	unfilled() bool
	clearLeaf(idx int) bool
}

// xNode asks "does the query point satisfy p.x <= X?"
type xNode struct {
	X           float64
	True, False node
}

func (n *xNode) find(p geom.Point) node {
	if p.X <= n.X {
		return n.True
	}
	return n.False
}

func (n *xNode) setChild(child node) error {
	if n.True == nil {
		n.True = child
		return nil
	}
	if n.False == nil {
		n.False = child
		return nil
	}
	return errBothChildrenFilled
}

func (n *xNode) unfilled() bool { return n.True == nil || n.False == nil }

func (n *xNode) clearLeaf(idx int) bool {
	if n.True == leaf(idx) {
		n.True = nil
		return true
	}
	if n.False == leaf(idx) {
		n.False = nil
		return true
	}
	return false
}

// yNode asks "is p.y above the segment at x = p.x?"
type yNode struct {
	Seg         geom.Segment
	True, False node // True = above
}

func (n *yNode) find(p geom.Point) node {
	y := n.Seg.Interp(p.X)
	if p.Y > y {
		return n.True
	}
	return n.False
}

func (n *yNode) setChild(child node) error {
	if n.True == nil {
		n.True = child
		return nil
	}
	if n.False == nil {
		n.False = child
		return nil
	}
	return errBothChildrenFilled
}

func (n *yNode) unfilled() bool { return n.True == nil || n.False == nil }

func (n *yNode) clearLeaf(idx int) bool {
	if n.True == leaf(idx) {
		n.True = nil
		return true
	}
	if n.False == leaf(idx) {
		n.False = nil
		return true
	}
	return false
}

// iterateNodes visits every reachable node exactly once, starting at root.
func iterateNodes(root node, visit func(n node)) {
	seen := make(map[node]bool)
	var walk func(n node)
	walk = func(n node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		visit(n)
		switch t := n.(type) {
		case *xNode:
			walk(t.True)
			walk(t.False)
		case *yNode:
			walk(t.True)
			walk(t.False)
		}
	}
	walk(root)
}
