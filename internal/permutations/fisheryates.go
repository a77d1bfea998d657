package permutations

import (
	"github.com/optable/derange/pkg/prng"
)

type fisherYates struct{}

// NewFisherYates permutation method
func NewFisherYates() fisherYates {
	return fisherYates{}
}

// Generate a uniformly random permutation of 0..n-1.
// Walking i down from n-1 and drawing j from [0, i] makes every one
// of the n! orderings equally likely; drawing j from [0, n) instead
// would not.
func (fisherYates) Generate(src prng.Source, n int) ([]int, error) {
	if n < 1 {
		return nil, ErrInvalidLength
	}

	// Initialize a trivial permutation
	var p = Sequence(n)
	// and then shuffle it by random swaps
	for i := n - 1; i > 0; i-- {
		j := prng.Intn(src, i+1)
		if j != i {
			p[j], p[i] = p[i], p[j]
		}
	}

	return p, nil
}
