package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ytget/player-bridge/internal/model"
)

const namespace = "player_bridge"

// Metrics keeps the bridge counters in its own registry.
type Metrics struct {
	registry *prometheus.Registry

	calls    *prometheus.CounterVec
	launches *prometheus.CounterVec
	memory   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_calls_total",
			Help:      "Method calls by channel, method and reply status.",
		}, []string{"channel", "method", "status"}),
		launches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "launches_total",
			Help:      "Player launches by outcome.",
		}, []string{"outcome"}),
		memory: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memory_queries_total",
			Help:      "Memory queries by result (measured or assumed).",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.calls,
		m.launches,
		m.memory,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveCall(channel, method, status string) {
	m.calls.WithLabelValues(channel, method, status).Inc()
}

func (m *Metrics) ObserveLaunch(outcome model.LaunchOutcome) {
	m.launches.WithLabelValues(outcome.String()).Inc()
}

func (m *Metrics) ObserveMemory(report model.MemoryReport) {
	result := "measured"
	if report.Assumed {
		result = "assumed"
	}
	m.memory.WithLabelValues(result).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
