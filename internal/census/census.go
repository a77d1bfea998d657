package census

import (
	"encoding/binary"
	"math/big"

	bloom "github.com/bits-and-blooms/bloom/v3"
	"github.com/optable/derange/internal/hash"
)

// FalsePositive is the fixed false positive rate parameter for the bloomfilter,
// expressed in terms of 0-1 is 0% - 100%
const FalsePositive = 1e-6

// Census counts how many distinct permutations have been observed.
// Permutations are reduced to a 64-bit fingerprint and remembered in a
// bloomfilter, so the count can only err low, by about FalsePositive
// per observation.
type Census struct {
	h        hash.Hasher
	bf       *bloom.BloomFilter
	distinct uint64
	key      [8]byte
}

// New returns a census sized for about expected observations.
func New(h hash.Hasher, expected uint) *Census {
	if expected < 1 {
		expected = 1
	}
	return &Census{h: h, bf: bloom.NewWithEstimates(expected, FalsePositive)}
}

// Observe records p and reports whether it had not been seen before.
func (c *Census) Observe(p []int) bool {
	binary.BigEndian.PutUint64(c.key[:], hash.Fingerprint(c.h, p))
	if c.bf.TestAndAdd(c.key[:]) {
		return false
	}
	c.distinct++
	return true
}

// Distinct permutations observed since the last reset
func (c *Census) Distinct() uint64 {
	return c.distinct
}

// Reset forgets every observation
func (c *Census) Reset() {
	c.bf.ClearAll()
	c.distinct = 0
}

// Possible returns n!, the number of permutations of n items.
func Possible(n int) *big.Int {
	if n < 0 {
		return big.NewInt(0)
	}
	return new(big.Int).MulRange(1, int64(n))
}
