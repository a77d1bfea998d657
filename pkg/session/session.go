package session

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/go-logr/logr"
	"github.com/optable/derange/internal/permutations"
	"github.com/optable/derange/pkg/prng"
	"github.com/optable/derange/pkg/derangement"
	"github.com/optable/derange/pkg/ledger"
	"github.com/optable/derange/pkg/position"
)

var (
	ErrInvalidSize   = fmt.Errorf("invalid board size")
	ErrUninitialized = fmt.Errorf("uninitialized session: call SetSize first")
)

// SizeResult describes a freshly dealt board
type SizeResult struct {
	Identity []int
	Initial  []int
	// Transitions of the initial deal all have zero displacement,
	// nothing was shuffled yet
	Transitions    []position.Transition[int]
	NonDerangement bool
	// Recorded is set when the initial deal counted as a trial
	Recorded bool
}

// TrialResult is everything a view needs to show one shuffle.
// It shares no memory with the session.
type TrialResult struct {
	Outcome        ledger.Outcome
	Permutation    []int
	NonDerangement bool
	Ledger         ledger.Snapshot
	// Transitions go from the previously displayed board to Permutation
	Transitions []position.Transition[int]
	// Novel is set when a census is attached and had never seen Permutation
	Novel bool
}

// Session owns a board of n items: its identity ordering, the
// displayed permutation and the ledger of trials on that board.
// Calls are serialized, so a Session may be shared by goroutines.
type Session struct {
	mu sync.Mutex

	src          prng.Source
	gen          Generator
	layoutFor    func(n int) position.LayoutFunc
	countInitial bool
	historyCap   int
	census       Census
	metrics      Recorder
	logger       logr.Logger

	// set by SetSize
	ready    bool
	n        int
	identity []int
	current  []int
	layout   position.LayoutFunc
	ledger   *ledger.Ledger
}

// New returns an uninitialized session
func New(opts ...Option) *Session {
	s := &Session{
		gen:       permutations.NewFisherYates(),
		layoutFor: position.SquareGrid,
		logger:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = prng.NewCrypto()
	}
	return s
}

// SetSize deals a new board of n items and resets the statistics.
// Nothing changes when n is invalid.
func (s *Session) SetSize(n int) (SizeResult, error) {
	if n < 1 {
		return SizeResult{}, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	identity := permutations.Sequence(n)
	initial, err := s.gen.Generate(s.src, n)
	if err != nil {
		return SizeResult{}, fmt.Errorf("failed to deal %d items: %w", n, err)
	}
	deranged, err := derangement.IsDerangement(identity, initial)
	if err != nil {
		return SizeResult{}, err
	}
	layout := s.layoutFor(n)
	transitions, err := position.MapTransitions(initial, initial, layout)
	if err != nil {
		return SizeResult{}, err
	}

	s.ready = true
	s.n = n
	s.identity = identity
	s.current = initial
	s.layout = layout
	s.ledger = ledger.New(s.historyCap)
	if s.census != nil {
		s.census.Reset()
	}
	if s.metrics != nil {
		s.metrics.ObserveReset(n)
	}

	if s.countInitial {
		s.record(initial, !deranged)
	}

	s.logger.V(1).Info("board dealt", "items", n, "derangement", deranged, "counted", s.countInitial)

	return SizeResult{
		Identity:       slices.Clone(identity),
		Initial:        slices.Clone(initial),
		Transitions:    transitions,
		NonDerangement: !deranged,
		Recorded:       s.countInitial,
	}, nil
}

// Shuffle runs one trial: a new permutation is dealt, classified
// against the identity ordering and recorded, and becomes the
// displayed board.
func (s *Session) Shuffle() (TrialResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return TrialResult{}, ErrUninitialized
	}

	next, err := s.gen.Generate(s.src, s.n)
	if err != nil {
		return TrialResult{}, fmt.Errorf("failed to shuffle %d items: %w", s.n, err)
	}
	deranged, err := derangement.IsDerangement(s.identity, next)
	if err != nil {
		return TrialResult{}, err
	}
	transitions, err := position.MapTransitions(s.current, next, s.layout)
	if err != nil {
		return TrialResult{}, err
	}

	outcome, novel := s.record(next, !deranged)
	s.current = next

	s.logger.V(2).Info("shuffled", "trial", outcome.Sequence, "derangement", deranged, "novel", novel)

	return TrialResult{
		Outcome:        outcome,
		Permutation:    slices.Clone(next),
		NonDerangement: !deranged,
		Ledger:         s.ledger.Snapshot(),
		Transitions:    transitions,
		Novel:          novel,
	}, nil
}

// record one trial in the ledger, the census and the metrics
func (s *Session) record(p []int, nonDerangement bool) (ledger.Outcome, bool) {
	outcome := s.ledger.Record(nonDerangement)

	var novel bool
	if s.census != nil {
		novel = s.census.Observe(p)
	}
	if s.metrics != nil {
		avg, _ := s.ledger.RunningAverage()
		s.metrics.ObserveTrial(nonDerangement, avg)
	}
	return outcome, novel
}

// Run shuffles trials times, stopping early if ctx is done.
func (s *Session) Run(ctx context.Context, trials int) (ledger.Snapshot, error) {
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			snap, _ := s.LedgerSnapshot()
			return snap, err
		}
		if _, err := s.Shuffle(); err != nil {
			return ledger.Snapshot{}, err
		}
	}
	return s.LedgerSnapshot()
}

// LedgerSnapshot returns the counters of the current board
func (s *Session) LedgerSnapshot() (ledger.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return ledger.Snapshot{}, ErrUninitialized
	}
	return s.ledger.Snapshot(), nil
}

// History returns the retained per-trial points, oldest first
func (s *Session) History() ([]ledger.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, ErrUninitialized
	}
	return s.ledger.History(), nil
}

// Current returns the displayed permutation
func (s *Session) Current() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, ErrUninitialized
	}
	return slices.Clone(s.current), nil
}

// Size returns the number of items, false before the first SetSize
func (s *Session) Size() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.n, s.ready
}

// Layout returns the layout of the current board
func (s *Session) Layout() (position.LayoutFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, ErrUninitialized
	}
	return s.layout, nil
}

// Distinct is the number of distinct permutations recorded on this
// board, 0 without a census
func (s *Session) Distinct() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.census == nil {
		return 0
	}
	return s.census.Distinct()
}
