package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveStage("analysis", true, 2*time.Second)
	m.ObserveStage("analysis", false, 0)
	m.ObserveStage("creative_score", true, time.Second)
	m.ObserveCacheLookup(true)
	m.ObserveCacheLookup(false)
	m.ObserveCacheLookup(false)
	m.ObserveRecord("persisted")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.stageCalls.WithLabelValues("analysis", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stageCalls.WithLabelValues("analysis", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stageCalls.WithLabelValues("creative_score", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.records.WithLabelValues("persisted")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.stageDuration))
}

func TestNew_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
