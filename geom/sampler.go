package geom

import "math/rand"

// RandomEdgeSampler returns every directed edge of every polygon in the set
// exactly once, in a uniformly random permutation driven by rng. This
// randomization is the analytical basis for the expected O(n log n) build
// time of the trapezoidal map: each edge is equally likely to be inserted at
// any point in the sequence.
func (s Set) RandomEdgeSampler(rng *rand.Rand) []Edge {
	edges := s.Edges()
	shuffled := make([]Edge, len(edges))
	copy(shuffled, edges)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
