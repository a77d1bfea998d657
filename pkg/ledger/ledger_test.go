package ledger

import (
	"math/big"
	"math/rand/v2"
	"testing"
)

func TestEmpty(t *testing.T) {
	l := New(10)
	if _, ok := l.RunningAverage(); ok {
		t.Errorf("expected no average on an empty ledger")
	}
	if r := l.Ratio(); r != nil {
		t.Errorf("expected nil ratio got %v", r)
	}
	s := l.Snapshot()
	if s.Count != 0 || s.NonDerangements != 0 || s.HasAverage {
		t.Errorf("expected an empty snapshot got %+v", s)
	}
	if h := l.History(); len(h) != 0 {
		t.Errorf("expected no history got %v", h)
	}
}

func TestRecordInvariant(t *testing.T) {
	var (
		l   = New(0)
		src = rand.New(rand.NewPCG(11, 13))
		non int64
	)

	for k := int64(1); k <= 1000; k++ {
		outcome := src.IntN(2) == 0
		if outcome {
			non++
		}
		o := l.Record(outcome)
		if o.Sequence != k || o.NonDerangement != outcome {
			t.Fatalf("expected {%d %v} got %+v", k, outcome, o)
		}

		s := l.Snapshot()
		if s.Count != k {
			t.Fatalf("expected count %d got %d", k, s.Count)
		}
		if s.NonDerangements < 0 || s.NonDerangements > s.Count || s.NonDerangements != non {
			t.Fatalf("expected %d non derangements got %d", non, s.NonDerangements)
		}
	}

	if r := l.Ratio(); r.Cmp(big.NewRat(non, 1000)) != 0 {
		t.Errorf("expected %d/1000 got %v", non, r)
	}
	if avg, _ := l.RunningAverage(); avg != float64(non)/1000 {
		t.Errorf("expected %v got %v", float64(non)/1000, avg)
	}
}

func TestExactThirds(t *testing.T) {
	l := New(0)
	l.Record(true)
	l.Record(false)
	l.Record(true)

	s := l.Snapshot()
	if s.Count != 3 || s.NonDerangements != 2 {
		t.Fatalf("expected 2/3 got %d/%d", s.NonDerangements, s.Count)
	}
	if s.Average != 2.0/3 {
		t.Errorf("expected %v got %v", 2.0/3, s.Average)
	}
	if l.Ratio().Cmp(big.NewRat(2, 3)) != 0 {
		t.Errorf("expected 2/3 got %v", l.Ratio())
	}
}

func TestHistoryBounded(t *testing.T) {
	l := New(4)
	for i := 0; i < 10; i++ {
		l.Record(i%2 == 0)
	}

	h := l.History()
	if len(h) != 4 {
		t.Fatalf("expected 4 points got %d", len(h))
	}
	for i, p := range h {
		if want := int64(7 + i); p.Sequence != want {
			t.Errorf("expected sequence %d got %d", want, p.Sequence)
		}
		// sequence 7 is i=6, a non derangement
		if want := (p.Sequence-1)%2 == 0; p.NonDerangement != want {
			t.Errorf("sequence %d: expected %v got %v", p.Sequence, want, p.NonDerangement)
		}
	}
	if last := h[3]; last.Average != 0.5 {
		t.Errorf("expected 0.5 got %v", last.Average)
	}
}

func TestReset(t *testing.T) {
	l := New(3)
	l.Record(true)
	l.Record(true)
	l.Reset()

	if s := l.Snapshot(); s.Count != 0 || s.NonDerangements != 0 || s.HasAverage {
		t.Errorf("expected an empty snapshot got %+v", s)
	}
	if h := l.History(); len(h) != 0 {
		t.Errorf("expected no history got %v", h)
	}

	if o := l.Record(false); o.Sequence != 1 {
		t.Errorf("expected sequence 1 after a reset got %d", o.Sequence)
	}
}

func BenchmarkRecord(b *testing.B) {
	l := New(1000)
	for i := 0; i < b.N; i++ {
		l.Record(i&1 == 0)
	}
}
