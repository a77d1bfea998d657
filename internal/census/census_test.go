package census

import (
	"testing"

	"github.com/optable/derange/internal/hash"
	"github.com/optable/derange/internal/permutations"
	"github.com/optable/derange/pkg/prng"
)

func newCensus(t *testing.T, expected uint) *Census {
	h, err := hash.New(hash.Murmur3, make([]byte, hash.SaltLength))
	if err != nil {
		t.Fatal(err)
	}
	return New(h, expected)
}

func TestObserve(t *testing.T) {
	c := newCensus(t, 100)

	if !c.Observe([]int{0, 1, 2}) {
		t.Errorf("expected a novel permutation")
	}
	if c.Observe([]int{0, 1, 2}) {
		t.Errorf("expected a repeated permutation")
	}
	if !c.Observe([]int{2, 1, 0}) {
		t.Errorf("expected a novel permutation")
	}
	if d := c.Distinct(); d != 2 {
		t.Errorf("expected 2 got %d", d)
	}

	c.Reset()
	if d := c.Distinct(); d != 0 {
		t.Errorf("expected 0 got %d", d)
	}
	if !c.Observe([]int{0, 1, 2}) {
		t.Errorf("expected a novel permutation after a reset")
	}
}

// every ordering of a small board shows up, and nothing else
func TestCoverage(t *testing.T) {
	var (
		g   = permutations.NewFisherYates()
		src = prng.NewSeeded(5)
	)

	for n, want := range map[int]uint64{1: 1, 2: 2, 3: 6, 4: 24} {
		c := newCensus(t, 1000)
		for i := 0; i < 1000; i++ {
			p, err := g.Generate(src, n)
			if err != nil {
				t.Fatal(err)
			}
			c.Observe(p)
		}
		if d := c.Distinct(); d != want {
			t.Errorf("n=%d: expected %d distinct got %d", n, want, d)
		}
		if p := Possible(n); p.Uint64() != want {
			t.Errorf("n=%d: expected %d possible got %v", n, want, p)
		}
	}
}

func TestPossible(t *testing.T) {
	if p := Possible(0); p.Int64() != 1 {
		t.Errorf("expected 1 got %v", p)
	}
	if p := Possible(20); p.String() != "2432902008176640000" {
		t.Errorf("expected 20! got %v", p)
	}
	if p := Possible(-1); p.Sign() != 0 {
		t.Errorf("expected 0 got %v", p)
	}
}
