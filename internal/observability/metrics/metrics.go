package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters/histograms for backend calls and bot actions.
type Metrics struct {
	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	botActions  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psicocare",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total backend API requests",
		}, []string{"endpoint", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "psicocare",
			Subsystem: "api",
			Name:      "request_seconds",
			Help:      "Latency of backend API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		botActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psicocare",
			Subsystem: "bot",
			Name:      "actions_total",
			Help:      "Total user actions handled by the bot",
		}, []string{"action", "result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.apiRequests, m.apiLatency, m.botActions)
	return m
}

// ObserveAPIRequest records one backend call. status is the HTTP code or "transport_error".
func (m *Metrics) ObserveAPIRequest(endpoint, status string, seconds float64) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(endpoint, status).Inc()
	m.apiLatency.WithLabelValues(endpoint).Observe(seconds)
}

func (m *Metrics) ObserveAction(action string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.botActions.WithLabelValues(action, result).Inc()
}
