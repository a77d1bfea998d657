package session

import (
	"github.com/go-logr/logr"
	"github.com/optable/derange/pkg/prng"
	"github.com/optable/derange/pkg/position"
)

// Generator deals a permutation of 0..n-1 out of src
type Generator interface {
	Generate(src prng.Source, n int) ([]int, error)
}

// Census counts the distinct permutations recorded on a board
type Census interface {
	// Observe reports whether p had not been seen since the last Reset
	Observe(p []int) bool
	Distinct() uint64
	Reset()
}

// Recorder is told about every resize and every trial
type Recorder interface {
	ObserveReset(n int)
	ObserveTrial(nonDerangement bool, average float64)
}

// Option configures a Session
type Option func(*Session)

// WithSource sets the random source permutations are drawn from.
// The default is the operating system CSPRNG.
func WithSource(src prng.Source) Option {
	return func(s *Session) {
		s.src = src
	}
}

// WithGenerator replaces the Fisher-Yates generator, nil keeps it
func WithGenerator(g Generator) Option {
	return func(s *Session) {
		if g != nil {
			s.gen = g
		}
	}
}

// WithLayout sets how a board of n items is laid out.
// The default is position.SquareGrid, nil keeps it.
func WithLayout(layoutFor func(n int) position.LayoutFunc) Option {
	return func(s *Session) {
		if layoutFor != nil {
			s.layoutFor = layoutFor
		}
	}
}

// WithCountInitial decides whether the permutation dealt by SetSize
// is recorded in the ledger. By default only explicit shuffles count.
func WithCountInitial(count bool) Option {
	return func(s *Session) {
		s.countInitial = count
	}
}

// WithHistory keeps the last n per-trial points, 0 disables it.
func WithHistory(n int) Option {
	return func(s *Session) {
		s.historyCap = n
	}
}

// WithCensus counts distinct permutations in c. The census is reset
// together with the ledger.
func WithCensus(c Census) Option {
	return func(s *Session) {
		s.census = c
	}
}

// WithMetrics reports resets and trials to m, usually a *metrics.Metrics
func WithMetrics(m Recorder) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithLogger sets the session logger, the default discards everything
func WithLogger(logger logr.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}
