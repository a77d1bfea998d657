package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "derange"

// Outcome label values
const (
	OutcomeDerangement    = "derangement"
	OutcomeNonDerangement = "non_derangement"
)

// Metrics are the collectors a session updates on every trial.
type Metrics struct {
	Trials         *prometheus.CounterVec
	Resets         prometheus.Counter
	BoardSize      prometheus.Gauge
	RunningAverage prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Trials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trials_total",
				Help:      "Total number of shuffles, by outcome",
			},
			[]string{"outcome"},
		),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Number of times the board was resized and the ledger reset",
		}),
		BoardSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "board_items",
			Help:      "Number of items on the current board",
		}),
		RunningAverage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running_average",
			Help:      "Fraction of trials since the last reset that were not derangements, NaN before the first trial",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Trials, m.Resets, m.BoardSize, m.RunningAverage} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// ObserveReset records a board resize to n items. The running
// average of an empty ledger is undefined and reads NaN until the
// first trial.
func (m *Metrics) ObserveReset(n int) {
	m.Resets.Inc()
	m.BoardSize.Set(float64(n))
	m.RunningAverage.Set(math.NaN())
}

// ObserveTrial records one trial and the running average after it
func (m *Metrics) ObserveTrial(nonDerangement bool, average float64) {
	outcome := OutcomeDerangement
	if nonDerangement {
		outcome = OutcomeNonDerangement
	}
	m.Trials.WithLabelValues(outcome).Inc()
	m.RunningAverage.Set(average)
}
