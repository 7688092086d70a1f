// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/siemens-plc/internal/wizard"
)

// Probe counts and times wizard submissions.
type Probe struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewProbe registers the probe collectors on reg.
func NewProbe(reg prometheus.Registerer) (*Probe, error) {
	p := &Probe{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siemensplc_probe_total",
				Help: "Wizard submissions by device family and outcome",
			},
			[]string{"family", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "siemensplc_probe_duration_seconds",
				Help:    "Duration of wizard submissions, validation included",
				Buckets: []float64{.005, .025, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"family"},
		),
	}

	for _, c := range []prometheus.Collector{p.total, p.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Observe is a wizard.Observer.
func (p *Probe) Observe(o wizard.Outcome) {
	family := string(o.Family)
	if family == "" {
		family = "unknown"
	}
	p.total.WithLabelValues(family, string(o.Kind)).Inc()

	// Only submissions that reached the client carry a meaningful duration.
	if o.Kind != wizard.ValidationFailed {
		p.duration.WithLabelValues(family).Observe(o.Duration.Seconds())
	}
}
