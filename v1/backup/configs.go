package backup

// Config defines the configuration for the lineage exporter.
type Config struct {
	// Endpoint is the object storage endpoint, host:port.
	Endpoint string

	// AccessKey is the object storage access key.
	AccessKey string

	// SecretKey is the object storage secret key.
	SecretKey string

	// UseSSL enables TLS towards the endpoint.
	UseSSL bool

	// Bucket is the bucket lineage exports are written to. It is created on
	// first use if it does not exist.
	// Default: "schema-backups"
	Bucket string

	// Concurrency bounds the number of parallel uploads per export.
	// Default: 4
	Concurrency int
}

// DefaultBucket is the bucket used when none is configured.
const DefaultBucket = "schema-backups"

// DefaultConcurrency bounds parallel uploads when none is configured.
const DefaultConcurrency = 4
