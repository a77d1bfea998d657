package permutations

import "github.com/optable/derange/pkg/prng"

type identity struct{}

func NewIdentity() identity {
	return identity{}
}

// Generate using the identity method
// just return 0..n-1, src is never read
func (identity) Generate(_ prng.Source, n int) ([]int, error) {
	if n < 1 {
		return nil, ErrInvalidLength
	}
	return Sequence(n), nil
}
