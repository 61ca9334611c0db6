package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/muurk/formguard/internal/registry"
)

// Metrics holds the server's collectors and the registry metrics shared by
// every session.
type Metrics struct {
	Sessions prometheus.Gauge
	Messages *prometheus.CounterVec
	Errors   prometheus.Counter
	Registry *registry.Metrics
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "formguard",
			Subsystem: "server",
			Name:      "sessions",
			Help:      "Open WebSocket sessions.",
		}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formguard",
			Subsystem: "server",
			Name:      "messages_total",
			Help:      "Client messages received, by type.",
		}, []string{"type"}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formguard",
			Subsystem: "server",
			Name:      "message_errors_total",
			Help:      "Client messages answered with an error.",
		}),
		Registry: registry.NewMetrics(reg),
	}
	if reg != nil {
		reg.MustRegister(m.Sessions, m.Messages, m.Errors)
	}
	return m
}
