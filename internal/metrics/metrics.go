// Package metrics holds the Prometheus collectors for conversions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels recorded for a conversion.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder observes finished conversions.
type Recorder interface {
	ObserveConversion(backend, result string, d time.Duration)
}

// Conversion counts conversions by backend and result and tracks their latency.
type Conversion struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewConversion creates the collectors and registers them on reg.
func NewConversion(reg prometheus.Registerer) (*Conversion, error) {
	m := &Conversion{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Total number of PDF to DOCX conversions by result.",
			},
			[]string{"backend", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "conversion_duration_seconds",
				Help:    "Time spent converting a PDF to DOCX.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"backend"},
		),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Conversion) ObserveConversion(backend, result string, d time.Duration) {
	m.total.WithLabelValues(backend, result).Inc()
	m.duration.WithLabelValues(backend).Observe(d.Seconds())
}

// Nop discards observations.
type Nop struct{}

func (Nop) ObserveConversion(string, string, time.Duration) {}
