package registry

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the registry's prometheus collectors. One Metrics may be
// shared by many registries.
type Metrics struct {
	Members         prometheus.Gauge
	Blurs           prometheus.Counter
	ValidityReports *prometheus.CounterVec
	Validations     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Members: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "formguard",
			Name:      "registered_fields",
			Help:      "Number of fields currently registered across all forms.",
		}),
		Blurs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formguard",
			Name:      "blur_events_total",
			Help:      "Blur events broadcast by fields.",
		}),
		ValidityReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formguard",
			Name:      "validity_reports_total",
			Help:      "Validity reported by fields after blur.",
		}, []string{"result"}),
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formguard",
			Name:      "validations_total",
			Help:      "Form-wide validations by outcome.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Members, m.Blurs, m.ValidityReports, m.Validations)
	}
	return m
}

func resultLabel(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}
