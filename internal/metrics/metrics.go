package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dtroode/neoarcana-server/internal/model"
)

// Reading outcomes.
const (
	OutcomeGenerated = "generated"
	OutcomeCached    = "cached"
	OutcomeFallback  = "fallback"
	OutcomeDenied    = "denied"
	OutcomeConflict  = "conflict"
)

// Readings holds the reading pipeline collectors. A nil *Readings records nothing.
type Readings struct {
	served          *prometheus.CounterVec
	generation      *prometheus.HistogramVec
	historyFailures *prometheus.CounterVec
}

// NewReadings registers the collectors with reg.
func NewReadings(reg prometheus.Registerer) *Readings {
	f := promauto.With(reg)
	return &Readings{
		served: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neoarcana",
			Name:      "readings_total",
			Help:      "Readings served, by reading type and outcome.",
		}, []string{"reading_type", "outcome"}),
		generation: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "neoarcana",
			Name:      "generation_seconds",
			Help:      "Time spent generating readings, including retries.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}, []string{"reading_type"}),
		historyFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neoarcana",
			Name:      "history_failures_total",
			Help:      "Failed best-effort history writes, by sink.",
		}, []string{"sink"}),
	}
}

func (m *Readings) Served(t model.ReadingType, outcome string) {
	if m == nil {
		return
	}
	m.served.WithLabelValues(string(t), outcome).Inc()
}

func (m *Readings) ObserveGeneration(t model.ReadingType, d time.Duration) {
	if m == nil {
		return
	}
	m.generation.WithLabelValues(string(t)).Observe(d.Seconds())
}

func (m *Readings) HistoryFailed(sink string) {
	if m == nil {
		return
	}
	m.historyFailures.WithLabelValues(sink).Inc()
}
