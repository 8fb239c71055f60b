package tracer

// Config defines the configuration for the OpenTelemetry tracer.
type Config struct {
	// Endpoint is the OTLP HTTP collector endpoint, host:port.
	// Default: "localhost:4318"
	Endpoint string

	// ServiceName is attached to every span as the service.name resource
	// attribute.
	ServiceName string

	// Insecure disables TLS towards the collector.
	Insecure bool

	// SampleRatio is the fraction of traces to sample, in (0, 1].
	// Default: 1 (sample everything)
	SampleRatio float64
}
