// Package metrics records upstream call outcomes for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream calls.
const (
	OutcomeOK          = "ok"
	OutcomeRejected    = "rejected"
	OutcomeUnreachable = "unreachable"
	OutcomeNoKey       = "no_key"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Tokens   *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tikkun_upstream_requests_total",
			Help: "Upstream completion calls by function and outcome.",
		}, []string{"function", "outcome"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tikkun_upstream_request_duration_seconds",
			Help:    "Upstream completion latency by function.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		}, []string{"function"}),
		Tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tikkun_upstream_tokens_total",
			Help: "Tokens reported by the upstream, by direction.",
		}, []string{"direction"}),
	}

	m.registry.MustRegister(
		m.Requests,
		m.Latency,
		m.Tokens,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveCall records one upstream call. function must come from a bounded
// set (a registered profile id or "custom"); caller-supplied values such as
// model overrides never become labels. Nil receivers are no-ops.
func (m *Metrics) ObserveCall(function, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(function, outcome).Inc()
	if outcome == OutcomeOK || outcome == OutcomeRejected {
		m.Latency.WithLabelValues(function).Observe(elapsed.Seconds())
	}
}

// AddTokens records reported token usage.
func (m *Metrics) AddTokens(input, output int64) {
	if m == nil {
		return
	}
	if input > 0 {
		m.Tokens.WithLabelValues("input").Add(float64(input))
	}
	if output > 0 {
		m.Tokens.WithLabelValues("output").Add(float64(output))
	}
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
