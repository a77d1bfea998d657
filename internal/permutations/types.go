package permutations

import (
	"fmt"

	"github.com/optable/derange/pkg/prng"
)

// Generator is an interface satisfied by anything that can produce
// a permutation of 0..n-1 out of a random source
type Generator interface {
	Generate(src prng.Source, n int) ([]int, error)
}

const (
	FisherYates = iota
	Identity
)

var (
	ErrUnknownGenerator = fmt.Errorf("cannot create a permutation generator of unknown type")
	ErrInvalidLength    = fmt.Errorf("permutation length must be at least 1")
)

// New creates a generator of type t
func New(t int) (Generator, error) {
	switch t {
	case FisherYates:
		return NewFisherYates(), nil
	case Identity:
		return NewIdentity(), nil
	default:
		return nil, ErrUnknownGenerator
	}
}

// Sequence returns the trivial permutation 0..n-1
func Sequence(n int) []int {
	var p = make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
