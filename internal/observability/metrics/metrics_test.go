package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAPIRequest("appointments_create", "201", 0.2)
	m.ObserveAPIRequest("appointments_create", "201", 0.1)
	m.ObserveAPIRequest("appointments_create", "409", 0.1)
	m.ObserveAction("book", true)
	m.ObserveAction("book", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("appointments_create", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("appointments_create", "409")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.botActions.WithLabelValues("book", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.apiLatency))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPIRequest("x", "200", 0.1)
	m.ObserveAction("x", true)
}
