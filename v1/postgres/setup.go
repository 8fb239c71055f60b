package postgres

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SchemaStore is the PostgreSQL-backed implementation of storage.Storage.
//
// Concurrency: all operations go through the shared gorm connection pool;
// conditional appends run inside a transaction that locks the lineage tip.
type SchemaStore struct {
	cfg Config
	db  *gorm.DB

	closeOnce sync.Once
	closeErr  error
}

// NewSchemaStore creates a new SchemaStore with the provided configuration.
// It establishes the connection, configures the pool and migrates the
// schema_revisions table.
//
// Returns *SchemaStore concrete type (following Go best practice: "accept
// interfaces, return structs").
func NewSchemaStore(cfg Config) (*SchemaStore, error) {
	db, err := connectToPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: error in connecting to postgres: %w", err)
	}

	if err := db.AutoMigrate(&schemaRevision{}); err != nil {
		return nil, fmt.Errorf("postgres: failed to migrate schema_revisions table: %w", err)
	}

	return &SchemaStore{cfg: cfg, db: db}, nil
}

// connectToPostgres establishes a connection to the PostgreSQL database
// using the provided configuration and configures the connection pool.
func connectToPostgres(cfg Config) (*gorm.DB, error) {
	conn := cfg.Connection
	if conn.Host == "" {
		conn.Host = "localhost"
	}
	if conn.Port == "" {
		conn.Port = "5432"
	}
	if conn.SSLMode == "" {
		conn.SSLMode = "disable"
	}

	pgConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		conn.Host,
		conn.Port,
		conn.User,
		conn.Password,
		conn.DbName,
		conn.SSLMode)

	database, err := gorm.Open(
		postgres.Open(pgConnStr),
		&gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	// Set connection pool parameters.
	// If config fields are not set (zero), apply package defaults.
	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 50
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 25
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 1 * time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpen)
	databaseInstance.SetMaxIdleConns(maxIdle)
	databaseInstance.SetConnMaxLifetime(maxLifetime)

	return database, nil
}

// Close implements storage.Storage. It closes the underlying connection
// pool; subsequent calls return the first result.
func (s *SchemaStore) Close() error {
	s.closeOnce.Do(func() {
		sqlDB, err := s.db.DB()
		if err != nil {
			s.closeErr = err
			return
		}
		s.closeErr = sqlDB.Close()
	})
	return s.closeErr
}
