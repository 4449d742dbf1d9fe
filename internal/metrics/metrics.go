// Package metrics exposes Prometheus collectors for stage calls, cache
// lookups and persisted records.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	stageCalls    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	records       *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stageCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letterbrick",
			Name:      "stage_calls_total",
			Help:      "Completion calls per feedback stage and outcome.",
		}, []string{"stage", "outcome"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "letterbrick",
			Name:      "stage_duration_seconds",
			Help:      "Latency of completion calls per feedback stage.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"stage"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letterbrick",
			Name:      "analysis_cache_lookups_total",
			Help:      "Session analysis cache lookups by result.",
		}, []string{"result"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letterbrick",
			Name:      "records_total",
			Help:      "Creative runs by terminal outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.stageCalls, m.stageDuration, m.cacheLookups, m.records)
	return m
}

// ObserveStage implements feedback.StageObserver.
func (m *Metrics) ObserveStage(stage string, ok bool, elapsed time.Duration) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.stageCalls.WithLabelValues(stage, outcome).Inc()
	if elapsed > 0 {
		m.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	}
}

// ObserveCacheLookup implements session.LookupObserver.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveRecord counts a creative run outcome: persisted, unpersisted,
// stage_failed or incomplete.
func (m *Metrics) ObserveRecord(outcome string) {
	m.records.WithLabelValues(outcome).Inc()
}
