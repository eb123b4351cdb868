package observability

import (
	"errors"
	"time"

	"github.com/jonathan/candidate-ranker/internal/validation"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "candidate_ranker"

// Metrics holds the Prometheus collectors describing ranking activity
type Metrics struct {
	Rankings          *prometheus.CounterVec
	Errors            *prometheus.CounterVec
	RankedCandidates  prometheus.Counter
	RankingDuration   prometheus.Histogram
	SelectionsChanged prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered, which is what tests usually want.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Rankings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rankings_total",
			Help:      "Completed ranking operations by sort key.",
		}, []string{"sort_key"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ranking_errors_total",
			Help:      "Failed ranking operations by error kind.",
		}, []string{"kind"}),
		RankedCandidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ranked_candidates_total",
			Help:      "Candidates placed in a ranking.",
		}),
		RankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "ranking_duration_seconds",
			Help:      "Time spent scoring and ordering one candidate pool.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		SelectionsChanged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "selection_changes_total",
			Help:      "Candidate selection changes made through the API.",
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Rankings, m.Errors, m.RankedCandidates, m.RankingDuration, m.SelectionsChanged} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRanking records one successful ranking of n candidates.
func (m *Metrics) ObserveRanking(sortKey string, n int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Rankings.WithLabelValues(sortKey).Inc()
	m.RankedCandidates.Add(float64(n))
	m.RankingDuration.Observe(elapsed.Seconds())
}

// ObserveError records a failed ranking under the kind of err.
func (m *Metrics) ObserveError(err error) {
	if m == nil || err == nil {
		return
	}
	m.Errors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind classifies err for the kind label.
func ErrorKind(err error) string {
	var inputErr *validation.InvalidInputError
	var configErr *validation.InvalidConfigError
	switch {
	case errors.As(err, &inputErr):
		return "invalid_input"
	case errors.As(err, &configErr):
		return "invalid_config"
	default:
		return "internal"
	}
}
