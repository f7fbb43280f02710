// Package metrics exposes server counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/himakhaitan/respkv/engine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "respkv"

// Command outcome labels.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusUnknown = "unknown"
)

type Metrics struct {
	registry *prometheus.Registry

	Commands          *prometheus.CounterVec
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter
	ProtocolErrors    prometheus.Counter
	SweptKeys         prometheus.Counter
}

// New creates the collectors on a private registry, so independent
// instances never collide.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands dispatched, by command name and outcome.",
		}, []string{"command", "status"}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Client connections currently open.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Client connections accepted.",
		}),
		ProtocolErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_errors_total",
			Help:      "Connections closed because of malformed input.",
		}),
		SweptKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swept_keys_total",
			Help:      "Keys removed by the background expiry sweep.",
		}),
	}

	m.registry.MustRegister(
		m.Commands,
		m.ConnectionsActive,
		m.ConnectionsTotal,
		m.ProtocolErrors,
		m.SweptKeys,
	)
	return m
}

// WatchDB registers collectors that read the current key counts from db.
func (m *Metrics) WatchDB(db *engine.DB) error {
	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keys",
			Help:      "Keys currently stored.",
		}, func() float64 { return float64(db.Stats().TotalKeys) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "expiring_keys",
			Help:      "Keys carrying a deadline.",
		}, func() float64 { return float64(db.Stats().ExpiringKeys) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lazy_expired_keys_total",
			Help:      "Keys removed on access after their deadline passed.",
		}, func() float64 { return float64(db.Stats().LazyExpired) }),
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveCommand counts one dispatched command.
func (m *Metrics) ObserveCommand(name, status string) {
	m.Commands.WithLabelValues(name, status).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
