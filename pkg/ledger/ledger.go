package ledger

import (
	"math/big"
)

// Outcome of one recorded trial
type Outcome struct {
	// Sequence is 1 for the first trial after a reset
	Sequence       int64
	NonDerangement bool
}

// Snapshot is a read-only copy of the ledger counters.
// Average is only meaningful when HasAverage is set.
type Snapshot struct {
	Count           int64
	NonDerangements int64
	Average         float64
	HasAverage      bool
}

// Point is one entry of the per-trial history, enough to plot
// an outcome marker and the running average at that trial.
type Point struct {
	Sequence       int64
	NonDerangement bool
	Average        float64
}

// Ledger accumulates trial outcomes. Counts are kept as exact
// integers so the running average never drifts; only the final
// division is rounded.
// A Ledger is not safe for concurrent use.
type Ledger struct {
	count           int64
	nonDerangements int64
	history         *ring
}

// New returns an empty ledger that keeps at most historyCap
// per-trial points. historyCap <= 0 disables the history.
func New(historyCap int) *Ledger {
	var l = &Ledger{}
	if historyCap > 0 {
		l.history = newRing(historyCap)
	}
	return l
}

// Record appends one trial in O(1) and returns its outcome.
func (l *Ledger) Record(nonDerangement bool) Outcome {
	l.count++
	if nonDerangement {
		l.nonDerangements++
	}

	var o = Outcome{Sequence: l.count, NonDerangement: nonDerangement}
	if l.history != nil {
		avg, _ := l.RunningAverage()
		l.history.push(Point{Sequence: o.Sequence, NonDerangement: nonDerangement, Average: avg})
	}
	return o
}

// RunningAverage returns nonDerangements / count, and false
// if nothing was recorded yet.
func (l *Ledger) RunningAverage() (float64, bool) {
	if l.count == 0 {
		return 0, false
	}
	return float64(l.nonDerangements) / float64(l.count), true
}

// Ratio returns the running average as an exact fraction,
// or nil on an empty ledger.
func (l *Ledger) Ratio() *big.Rat {
	if l.count == 0 {
		return nil
	}
	return big.NewRat(l.nonDerangements, l.count)
}

// Snapshot the counters
func (l *Ledger) Snapshot() Snapshot {
	avg, ok := l.RunningAverage()
	return Snapshot{
		Count:           l.count,
		NonDerangements: l.nonDerangements,
		Average:         avg,
		HasAverage:      ok,
	}
}

// History returns the retained points, oldest first.
func (l *Ledger) History() []Point {
	if l.history == nil {
		return nil
	}
	return l.history.points()
}

// Reset empties the ledger and its history.
func (l *Ledger) Reset() {
	l.count = 0
	l.nonDerangements = 0
	if l.history != nil {
		l.history.reset()
	}
}
