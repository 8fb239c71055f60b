package logger

// Level represents the minimum severity of log entries that will be emitted.
type Level string

const (
	// Debug emits everything, including per-operation diagnostics.
	Debug Level = "debug"

	// Info is the production default.
	Info Level = "info"

	// Warning emits warnings and errors only.
	Warning Level = "warning"

	// Error emits errors only.
	Error Level = "error"
)

// Config defines the configuration for the logger.
type Config struct {
	// Level is the minimum log level to emit.
	// Default: Info
	Level Level

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string

	// EnableTracing enables extraction of trace and span IDs from the
	// context in the *WithContext logging methods.
	EnableTracing bool
}
