package trapmap

import (
	"sort"

	"github.com/trapplan/motionplan/geom"
)

// xBucket is a sorted-by-bottom-Y index of every trapezoid whose left wall
// sits at a given X, used by RightAdjacent to find the candidates a
// trapezoid's right wall might border. Go has no ordered-map package in the
// retrieval pack (the original implementation leaned on Python's
// sortedcontainers.SortedDict, which has no equivalent among the example
// repos' dependencies), so this is a small sorted slice searched with the
// standard library's sort.Search — the same complexity sortedcontainers
// would give, without pulling in an unrelated dependency for one helper.
type xBucket struct {
	entries []xEntry
}

type xEntry struct {
	bottomY float64
	index   int
}

func (b *xBucket) insert(bottomY float64, index int) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].bottomY >= bottomY })
	b.entries = append(b.entries, xEntry{})
	copy(b.entries[i+1:], b.entries[i:])
	b.entries[i] = xEntry{bottomY, index}
}

func (b *xBucket) remove(bottomY float64) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].bottomY >= bottomY })
	if i < len(b.entries) && b.entries[i].bottomY == bottomY {
		b.entries = append(b.entries[:i], b.entries[i+1:]...)
	}
}

// bisectLeft returns the first index whose bottomY >= target, or
// len(entries) if none.
func (b *xBucket) bisectLeft(target float64) int {
	return sort.Search(len(b.entries), func(i int) bool { return b.entries[i].bottomY >= target })
}

// Set owns the live trapezoids of a decomposition: a slice indexed by stable
// Index, a free list for reused slots, and the by-left-x adjacency index
// used to discover a trapezoid's right neighbors.
type Set struct {
	trapezoids []*Trapezoid
	freeList   []int
	byLeftX    map[float64]*xBucket
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{byLeftX: make(map[float64]*xBucket)}
}

// Get returns the trapezoid at idx, or nil if it has been removed.
func (s *Set) Get(idx int) *Trapezoid {
	if idx < 0 || idx >= len(s.trapezoids) {
		return nil
	}
	return s.trapezoids[idx]
}

// Count returns the number of live trapezoids.
func (s *Set) Count() int {
	n := 0
	for _, t := range s.trapezoids {
		if t != nil {
			n++
		}
	}
	return n
}

// All returns every live trapezoid, in index order.
func (s *Set) All() []*Trapezoid {
	var out []*Trapezoid
	for _, t := range s.trapezoids {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (s *Set) register(t *Trapezoid) {
	if t.IsLeftPointed() {
		return
	}
	bucket, ok := s.byLeftX[t.LeftP.X]
	if !ok {
		bucket = &xBucket{}
		s.byLeftX[t.LeftP.X] = bucket
	}
	bucket.insert(t.Bottom.Left.Y, t.Index)
}

func (s *Set) unregister(t *Trapezoid) {
	if t.IsLeftPointed() {
		return
	}
	if bucket, ok := s.byLeftX[t.LeftP.X]; ok {
		bucket.remove(t.Bottom.Left.Y)
	}
}

// Add assigns t a stable index and indexes it for adjacency lookups.
func (s *Set) Add(t *Trapezoid) int {
	var idx int
	if n := len(s.freeList); n > 0 {
		idx = s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		s.trapezoids[idx] = t
	} else {
		idx = len(s.trapezoids)
		s.trapezoids = append(s.trapezoids, t)
	}
	t.Index = idx
	s.register(t)
	return idx
}

// Pop removes the trapezoid at idx from the set, freeing its slot for reuse.
func (s *Set) Pop(idx int) {
	t := s.trapezoids[idx]
	if t == nil {
		return
	}
	s.unregister(t)
	s.trapezoids[idx] = nil
	s.freeList = append(s.freeList, idx)
}

// UpdateIdx replaces the trapezoid at idx (used when two trapezoids merge
// into a replacement occupying one of their former slots).
func (s *Set) UpdateIdx(idx int, t *Trapezoid) {
	if old := s.trapezoids[idx]; old != nil {
		s.unregister(old)
	}
	s.trapezoids[idx] = t
	t.Index = idx
	s.register(t)
}

// RightAdjacentTo returns how many live trapezoids have their left wall
// registered at x, regardless of whether they actually border one another
// vertically. Exposed for diagnostics and tests that check the shape of the
// decomposition at a given X.
func (s *Set) RightAdjacentTo(x float64) int {
	if b, ok := s.byLeftX[x]; ok {
		return len(b.entries)
	}
	return 0
}

// RightAdjacent returns the indices of every live trapezoid sharing (part
// of) its left wall with the right wall of the trapezoid at idx, restricted
// to those that actually border it vertically (not merely share an X
// coordinate).
func (s *Set) RightAdjacent(idx int) []int {
	t := s.Get(idx)
	bucket, ok := s.byLeftX[t.RightP.X]
	if !ok {
		return nil
	}
	i := bucket.bisectLeft(t.Top.Right.Y)
	if i == len(bucket.entries) {
		i--
	}
	if i < 0 {
		return nil
	}

	var result []int
	for i >= 0 {
		cand := s.trapezoids[bucket.entries[i].index]
		if t.Bottom.Right.Y > cand.Top.Left.Y {
			break
		}
		if t.Top.Right.Y >= cand.Bottom.Left.Y {
			result = append(result, cand.Index)
		}
		i--
	}
	return result
}

// AddAndCheckMerges assigns stable indices to every trapezoid produced by a
// chain of splits (in left, right, top, bottom order within each split), then
// tries to merge each split's "top" and "bottom" pieces with the previous
// split's same-named piece (the two are adjacent across the vertical wall
// that separated the two consecutive trapezoids of the chain).
// The returned slice mirrors splits, with each Trapezoid replaced by its
// (possibly merged) index.
func (s *Set) AddAndCheckMerges(splits []map[string]*Trapezoid) []map[string]int {
	result := make([]map[string]int, len(splits))
	for i, splitTraps := range splits {
		idxMap := make(map[string]int, len(splitTraps))
		for _, key := range [4]string{"left", "right", "top", "bottom"} {
			if trap, ok := splitTraps[key]; ok {
				idxMap[key] = s.Add(trap)
			}
		}
		if i > 0 {
			last := result[i-1]
			for _, key := range [2]string{"top", "bottom"} {
				lastIdx, lastOK := last[key]
				curIdx, curOK := idxMap[key]
				if !lastOK || !curOK {
					continue
				}
				merged := TryMerge(s.Get(lastIdx), s.Get(curIdx))
				if merged == nil {
					continue
				}
				s.Pop(curIdx)
				idxMap[key] = lastIdx
				s.UpdateIdx(lastIdx, merged)
			}
		}
		result[i] = idxMap
	}
	return result
}

// RemoveInsidePolygons pops every live trapezoid whose vertices all lie on
// the boundary of one of polys' polygons, i.e. trapezoids that decompose an
// obstacle's own interior rather than free space.
func (s *Set) RemoveInsidePolygons(polys geom.Set) {
	for _, t := range s.All() {
		if polys.ContainsBoundaryPoints(t.Vertices()) {
			s.Pop(t.Index)
		}
	}
}
