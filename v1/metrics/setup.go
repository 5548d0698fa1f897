package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing client metrics.
//
// This structure provides the components needed to register metrics
// collectors and serve them via the /metrics HTTP endpoint for Prometheus
// scraping.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric
	// name collisions.
	Registry *prometheus.Registry

	// registerer is the Registry wrapped with the constant service label.
	// All metrics, built-in and dynamically created, register through it
	// so the label stays consistent.
	registerer prometheus.Registerer

	// Core built-in metrics
	conversionsTotal   *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec
	graphProperties    *prometheus.GaugeVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers default system
// collectors, wraps all metrics with a constant `service` label, and
// creates an HTTP server exposing the /metrics endpoint.
//
// The setup includes:
//   - A dedicated Prometheus registry for the service
//   - Automatic registration of Go, process, and build info collectors
//   - A global "service" label applied to all metrics for easier aggregation
//   - An HTTP server exposing the metrics endpoint
//
// Example:
//
//	cfg := metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "catalog-indexer",
//	    EnableDefaultCollectors: true,
//	}
//	metricsInstance := metrics.NewMetrics(cfg)
//	go metricsInstance.Server.ListenAndServe()
//
// Access metrics at: http://localhost:9090/metrics
func NewMetrics(cfg Config) *Metrics {
	// An isolated registry per service avoids metric collisions when
	// multiple services run in the same process.
	registry := prometheus.NewRegistry()

	// Every metric emitted by this service automatically includes the
	// label service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrappedRegistry,
	}

	// Define the built-in conversion metrics using helpers
	m.conversionsTotal = createCounterVec(
		"quiver_conversions_total",
		"Total number of property conversions by direction, encoding and status",
		[]string{"direction", "encoding", "status"},
	)
	m.conversionDuration = createHistogramVec(
		"quiver_conversion_duration_seconds",
		"Duration of property conversions in seconds",
		[]string{"direction"},
		prometheus.DefBuckets,
	)
	m.graphProperties = createGaugeVec(
		"quiver_graph_properties",
		"Number of properties in the most recently converted graph per collection",
		[]string{"collection"},
	)

	wrappedRegistry.MustRegister(
		m.conversionsTotal,
		m.conversionDuration,
		m.graphProperties,
	)

	// Standard collectors provide essential runtime metrics for Go
	// processes:
	//   - GoCollector: Memory usage, goroutines, GC stats
	//   - ProcessCollector: CPU, file descriptors, memory stats
	//   - BuildInfoCollector: Binary version/build info
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	// The handler exposes metrics at /metrics for Prometheus scraping.
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}
	return m
}
