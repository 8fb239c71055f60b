package postgres

import "time"

// ConnectionConfig holds the parameters used to build the connection string.
type ConnectionConfig struct {
	// Host is the PostgreSQL server hostname or IP address
	// Default: "localhost"
	Host string

	// Port is the PostgreSQL server port
	// Default: "5432"
	Port string

	// User is the database user
	User string

	// Password is the database password
	Password string

	// DbName is the database name
	DbName string

	// SSLMode is the libpq sslmode parameter
	// Default: "disable"
	SSLMode string
}

// ConnectionDetailsConfig holds connection pool tuning parameters.
type ConnectionDetailsConfig struct {
	// MaxOpenConns is the maximum number of open connections
	// Default: 50
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	// Default: 25
	MaxIdleConns int

	// ConnMaxLifetime is the maximum duration a connection may be reused
	// Default: 1 minute
	ConnMaxLifetime time.Duration
}

// Config defines the top-level configuration for the PostgreSQL-backed
// schema storage.
type Config struct {
	Connection        ConnectionConfig
	ConnectionDetails ConnectionDetailsConfig
}
