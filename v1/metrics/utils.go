package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementConversions increments the conversion counter.
// Example: metrics.IncrementConversions("to_wire", "rest", "success")
func (m *Metrics) IncrementConversions(direction, encoding, status string) {
	m.conversionsTotal.WithLabelValues(direction, encoding, status).Inc()
}

// RecordConversionDuration records the duration (in seconds) of a conversion.
// Example: defer metrics.RecordConversionDuration(time.Now(), "from_wire")
func (m *Metrics) RecordConversionDuration(start time.Time, direction string) {
	duration := time.Since(start).Seconds()
	m.conversionDuration.WithLabelValues(direction).Observe(duration)
}

// ObserveGraphProperties sets the property-count gauge for a collection.
// Example: metrics.ObserveGraphProperties(12, "Article")
func (m *Metrics) ObserveGraphProperties(value float64, collection string) {
	m.graphProperties.WithLabelValues(collection).Set(value)
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(name, help, labels)
	m.registerer.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
// Used internally to keep metric construction consistent.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
// Used internally for latency tracking.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec for resource-style gauges.
func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}
