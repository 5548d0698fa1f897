package logger

// Log level names accepted in Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls how the logger is built.
type Config struct {
	// Level selects the minimum level that gets emitted. Unknown values
	// fall back to info.
	Level string `yaml:"level" envconfig:"QUIVER_LOG_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"QUIVER_LOG_SERVICE_NAME"`
}

// DefaultConfig returns the configuration used when nothing else is
// provided: info level, tagged as quiver-go.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "quiver-go",
	}
}
