package metrics

// DefaultMetricsAddress is the listen address used when none is configured.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens.
	//
	// Example values:
	//   - ":9090"          → Listen on all interfaces, port 9090
	//   - "127.0.0.1:9100" → Listen only on localhost, port 9100
	//
	// This setting can be configured via:
	//   - YAML configuration with the "address" key
	//   - Environment variable QUIVER_METRICS_ADDRESS
	//
	// Default: ":9090"
	Address string `yaml:"address" envconfig:"QUIVER_METRICS_ADDRESS"`

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process metrics are automatically registered.
	//
	// When true, metrics such as goroutine count, GC stats, and CPU
	// usage are included automatically. Disable only for full manual
	// control over registered collectors.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "enable_default_collectors" key
	//   - Environment variable QUIVER_METRICS_ENABLE_DEFAULT_COLLECTORS
	//
	// Default: true
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"QUIVER_METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// ServiceName identifies the service exposing metrics. It is applied
	// as a constant "service" label on every metric, which keeps metrics
	// distinguishable when several services report to the same
	// Prometheus cluster.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "service_name" key
	//   - Environment variable QUIVER_METRICS_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"QUIVER_METRICS_SERVICE_NAME"`
}

// DefaultConfig returns the configuration used when the application
// provides none.
func DefaultConfig() Config {
	return Config{
		Address:                 DefaultMetricsAddress,
		EnableDefaultCollectors: true,
		ServiceName:             "quiver-go",
	}
}
