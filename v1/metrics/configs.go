package metrics

// Config defines the configuration for the metrics server.
type Config struct {
	// Address is the listen address of the /metrics HTTP server.
	// Default: ":9090"
	Address string

	// ServiceName is attached to every metric as a constant "service" label.
	ServiceName string

	// EnableDefaultCollectors registers the standard Go, process and build
	// info collectors in addition to the registry metrics.
	EnableDefaultCollectors bool
}
