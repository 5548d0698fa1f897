package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides an interface for collecting and exposing
// client metrics. It abstracts Prometheus metric operations with support
// for counters, histograms, and gauges.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// Default metric methods

	// IncrementConversions increments the conversion counter for a
	// direction ("to_wire" or "from_wire"), encoding and status label.
	IncrementConversions(direction, encoding, status string)

	// RecordConversionDuration records the duration (in seconds) of a
	// conversion for the given direction.
	RecordConversionDuration(start time.Time, direction string)

	// ObserveGraphProperties sets the property-count gauge for a
	// collection.
	ObserveGraphProperties(value float64, collection string)

	// Dynamic metric factories

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
