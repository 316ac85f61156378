// Package metrics provides Prometheus metrics collection for resource
// managers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the Prometheus metrics recorded by managers.
type Collector struct {
	// OperationsTotal counts manager operations by resource, operation,
	// and outcome (ok, validation_error, not_found, conflict, storage_error).
	OperationsTotal *prometheus.CounterVec

	// OperationDuration observes operation latency in seconds.
	OperationDuration *prometheus.HistogramVec

	// Records tracks the record count per resource as seen by list calls.
	Records *prometheus.GaugeVec
}

// New creates a collector registered on the default registry.
func New() *Collector {
	return newWith(promauto.With(prometheus.DefaultRegisterer))
}

// NewWithRegistry creates a collector on a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	return newWith(promauto.With(reg))
}

func newWith(factory promauto.Factory) *Collector {
	return &Collector{
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "metarest",
				Name:      "operations_total",
				Help:      "Total number of manager operations",
			},
			[]string{"resource", "operation", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "metarest",
				Name:      "operation_duration_seconds",
				Help:      "Manager operation duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"resource", "operation"},
		),
		Records: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "metarest",
				Name:      "records",
				Help:      "Record count per resource as of the last list",
			},
			[]string{"resource"},
		),
	}
}
