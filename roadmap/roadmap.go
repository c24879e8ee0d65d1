// Package roadmap turns a finished trapezoidal decomposition into an
// undirected adjacency graph over its free trapezoids and answers
// point-to-point path queries with breadth-first search.
package roadmap

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/trapplan/motionplan/geom"
	"github.com/trapplan/motionplan/trapmap"
)

// ErrPointOutsideFreeSpace is returned when a query point resolves to the
// DAG's "failure" sentinel, or to a trapezoid that has since been removed
// (it lies inside a C-space obstacle).
var ErrPointOutsideFreeSpace = errors.New("roadmap: point outside free space")

// ErrNoPath is returned when BFS exhausts the start point's connected
// component without reaching the goal.
var ErrNoPath = errors.New("roadmap: no path between start and goal")

// Interface is the shared vertical wall between two adjacent free
// trapezoids: its Center is used as a path waypoint.
type Interface struct {
	Top, Bottom, Center geom.Point
}

func newInterface(left, right *trapmap.Trapezoid) Interface {
	top := left.Top.Right
	if right.Top.Left.Y < top.Y {
		top = right.Top.Left
	}
	bottom := left.Bottom.Right
	if right.Bottom.Left.Y > bottom.Y {
		bottom = right.Bottom.Left
	}
	return Interface{
		Top:    top,
		Bottom: bottom,
		Center: geom.Point{X: (top.X + bottom.X) / 2, Y: (top.Y + bottom.Y) / 2},
	}
}

// Graph is the roadmap over a trapmap.Map's free trapezoids.
type Graph struct {
	Map        *trapmap.Map
	interfaces map[int]map[int]Interface
}

// Build seeds a BFS from every trapezoid whose left wall sits at leftmostX
// (typically the bounds' left edge) and walks right-adjacency from there,
// recording an undirected Interface for every pair of neighboring
// trapezoids it discovers.
func Build(m *trapmap.Map, leftmostX float64) *Graph {
	g := &Graph{Map: m, interfaces: make(map[int]map[int]Interface)}

	var queue []int
	seen := make(map[int]bool)
	for _, t := range m.Set.All() {
		if t.LeftP.X == leftmostX && !seen[t.Index] {
			seen[t.Index] = true
			queue = append(queue, t.Index)
		}
	}

	for i := 0; i < len(queue); i++ {
		idx := queue[i]
		for _, nbr := range m.Set.RightAdjacent(idx) {
			if !seen[nbr] {
				seen[nbr] = true
				queue = append(queue, nbr)
			}
			iface := newInterface(m.Set.Get(idx), m.Set.Get(nbr))
			g.link(idx, nbr, iface)
			g.link(nbr, idx, iface)
		}
	}
	return g
}

func (g *Graph) link(a, b int, iface Interface) {
	if g.interfaces[a] == nil {
		g.interfaces[a] = make(map[int]Interface)
	}
	g.interfaces[a][b] = iface
}

// Neighbors returns the trapezoid indices adjacent to idx, sorted for
// deterministic traversal.
func (g *Graph) Neighbors(idx int) []int {
	m := g.interfaces[idx]
	out := make([]int, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func (g *Graph) resolve(p geom.Point) (int, error) {
	idx, err := g.Map.Query(p)
	if err != nil {
		return 0, ErrPointOutsideFreeSpace
	}
	if g.Map.Set.Get(idx) == nil {
		return 0, ErrPointOutsideFreeSpace
	}
	return idx, nil
}

type searchNode struct {
	idx    int
	parent *searchNode
	iface  Interface
}

// Search finds a path from start to goal: start, then the Center of every
// Interface crossed along the shortest (by trapezoid count) chain, then
// goal.
func (g *Graph) Search(start, goal geom.Point) ([]geom.Point, error) {
	startIdx, err := g.resolve(start)
	if err != nil {
		return nil, err
	}
	goalIdx, err := g.resolve(goal)
	if err != nil {
		return nil, err
	}

	queue := []*searchNode{{idx: startIdx}}
	seen := map[int]bool{startIdx: true}
	var final *searchNode
	if startIdx == goalIdx {
		final = queue[0]
	}

	for i := 0; final == nil && i < len(queue); i++ {
		cur := queue[i]
		for _, nbrIdx := range g.Neighbors(cur.idx) {
			if seen[nbrIdx] {
				continue
			}
			seen[nbrIdx] = true
			next := &searchNode{idx: nbrIdx, parent: cur, iface: g.interfaces[cur.idx][nbrIdx]}
			queue = append(queue, next)
			if nbrIdx == goalIdx {
				final = next
				break
			}
		}
	}
	if final == nil {
		return nil, ErrNoPath
	}

	var chain []*searchNode
	for n := final; n != nil; n = n.parent {
		chain = append(chain, n)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	path := []geom.Point{start}
	for _, n := range chain[1:] {
		path = append(path, n.iface.Center)
	}
	path = append(path, goal)
	return path, nil
}
