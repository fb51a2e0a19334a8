// Package metrics provides Prometheus metrics for the validation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Evaluation outcomes used as label values.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeUnknown = "unknown_action"
)

// Collector holds all Prometheus metrics for paramgate.
type Collector struct {
	EvaluationsTotal   *prometheus.CounterVec
	ArgumentFailures   *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	SchemasLoaded      prometheus.Gauge
}

// New creates a collector with all metrics registered on the default
// registerer.
func New() *Collector {
	return &Collector{
		EvaluationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paramgate",
				Name:      "evaluations_total",
				Help:      "Total number of parameter evaluations",
			},
			[]string{"action", "outcome"},
		),
		ArgumentFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paramgate",
				Name:      "argument_failures_total",
				Help:      "Argument-level validation failures by kind",
			},
			[]string{"action", "kind"},
		),
		EvaluationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "paramgate",
				Name:      "evaluation_duration_seconds",
				Help:      "Time spent evaluating parameter maps",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"action"},
		),
		SchemasLoaded: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "paramgate",
				Name:      "schemas_loaded",
				Help:      "Number of schemas in the frozen registry",
			},
		),
	}
}
