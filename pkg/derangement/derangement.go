package derangement

import (
	"fmt"
	"math"
)

// Limit is the probability that a large random permutation
// has at least one fixed point: 1 - 1/e.
const Limit = 1 - 1/math.E

// ErrPermutationMismatch is matched by every MismatchError.
var ErrPermutationMismatch = fmt.Errorf("sequences are not permutations of the same items")

// MismatchError reports two sequences that cannot be compared
// position by position.
type MismatchError struct {
	Reason string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPermutationMismatch, e.Reason)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrPermutationMismatch
}

// Check verifies that candidate is a rearrangement of original:
// same length and the same multiset of items.
func Check[T comparable](original, candidate []T) error {
	if len(original) != len(candidate) {
		return &MismatchError{Reason: fmt.Sprintf("length %d vs %d", len(original), len(candidate))}
	}

	var counts = make(map[T]int, len(original))
	for _, v := range original {
		counts[v]++
	}
	for _, v := range candidate {
		if counts[v] == 0 {
			return &MismatchError{Reason: fmt.Sprintf("item %v is not in the original or appears too often", v)}
		}
		counts[v]--
	}

	return nil
}

// IsDerangement returns true when no item of candidate sits
// at its index in original. An empty input is a derangement.
func IsDerangement[T comparable](original, candidate []T) (bool, error) {
	if err := Check(original, candidate); err != nil {
		return false, err
	}

	for i := range original {
		if candidate[i] == original[i] {
			return false, nil
		}
	}
	return true, nil
}

// FixedPoints returns the indices where candidate and original agree.
func FixedPoints[T comparable](original, candidate []T) ([]int, error) {
	if err := Check(original, candidate); err != nil {
		return nil, err
	}

	var fixed []int
	for i := range original {
		if candidate[i] == original[i] {
			fixed = append(fixed, i)
		}
	}
	return fixed, nil
}

// NonDerangementProbability is the exact probability that a uniform
// permutation of n items keeps at least one item home:
//
//	1 - sum_{k=0..n} (-1)^k / k!
//
// It is 0 for n = 0, 1 for n = 1, 1/2 for n = 2 and tends to Limit.
func NonDerangementProbability(n int) float64 {
	if n < 0 {
		return math.NaN()
	}

	var (
		sum  float64
		term = 1.0
	)
	for k := 0; k <= n; k++ {
		if k > 0 {
			term /= -float64(k)
		}
		sum += term
		// terms vanish long before n does for large boards
		if math.Abs(term) < 1e-18 {
			break
		}
	}
	return 1 - sum
}
