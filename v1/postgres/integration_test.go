package postgres

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Aleph-Alpha/schema-registry/v1/compatibility"
	"github.com/Aleph-Alpha/schema-registry/v1/registry"
	"github.com/Aleph-Alpha/schema-registry/v1/schema"
	"github.com/Aleph-Alpha/schema-registry/v1/storage"
)

// PostgresContainer represents a Postgres container for testing
type PostgresContainer struct {
	testcontainers.Container
	Config Config
	Host   string
	Port   string
}

// setupPostgresContainer sets up a Postgres container for testing
func setupPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	// Get a random free port
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"5432/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	// Double-check port mapping (could be different from requested)
	mappedPort, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}
	portStr = mappedPort.Port()

	config := Config{
		Connection: ConnectionConfig{
			Host:     host,
			Port:     portStr,
			User:     "testuser",
			Password: "testpass",
			DbName:   "testdb",
			SSLMode:  "disable",
		},
	}

	return &PostgresContainer{
		Container: pgContainer,
		Config:    config,
		Host:      host,
		Port:      portStr,
	}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = addr.Close()
	}()
	return addr.Addr().(*net.TCPAddr).Port, nil
}

// waitForStore retries the store constructor until the database accepts
// connections or the timeout elapses. The container's log-based wait fires
// before PostgreSQL is always ready to authenticate new clients.
func waitForStore(cfg Config, timeout time.Duration) (*SchemaStore, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		store, err := NewSchemaStore(cfg)
		if err == nil {
			return store, nil
		}
		lastErr = err
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("timed out waiting for PostgreSQL: %w", lastErr)
}

// TestSchemaStoreIntegration exercises the full Storage contract against a
// real PostgreSQL instance.
func TestSchemaStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using PostgreSQL on %s:%s", pgContainer.Host, pgContainer.Port)

	store, err := waitForStore(pgContainer.Config, 30*time.Second)
	require.NoError(t, err)
	defer store.Close()

	t.Run("AppendAndRead", func(t *testing.T) {
		v0, err := store.Put(ctx, "it/append", []byte("r0"), []byte("h0"), storage.NoLowerBound)
		require.NoError(t, err)
		v1, err := store.Put(ctx, "it/append", []byte("r1"), []byte("h1"), storage.NoLowerBound)
		require.NoError(t, err)

		rev0, err := store.VersionFromBytes(v0.Bytes())
		require.NoError(t, err)
		rev1, err := store.VersionFromBytes(v1.Bytes())
		require.NoError(t, err)
		assert.Equal(t, int64(0), rev0)
		assert.Equal(t, int64(1), rev1)

		latest, err := store.GetLatest(ctx, "it/append")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, []byte("r1"), latest.Data)

		first, err := store.Get(ctx, "it/append", v0)
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, []byte("r0"), first.Data)

		all, err := store.GetAll(ctx, "it/append")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("AbsentLineage", func(t *testing.T) {
		latest, err := store.GetLatest(ctx, "it/absent")
		require.NoError(t, err)
		assert.Nil(t, latest)

		all, err := store.GetAll(ctx, "it/absent")
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("DedupByHashContext", func(t *testing.T) {
		v0, err := store.Put(ctx, "it/dedup", []byte("r0"), []byte("same"), storage.NoLowerBound)
		require.NoError(t, err)

		// Identical hash resolves to the existing revision.
		v, err := store.Put(ctx, "it/dedup", []byte("r0-retry"), []byte("same"), storage.NoLowerBound)
		require.NoError(t, err)
		assert.Equal(t, v0, v)

		// A horizon past the match forces a fresh append.
		v, err = store.Put(ctx, "it/dedup", []byte("r1"), []byte("same"), 1)
		require.NoError(t, err)
		rev, err := store.VersionFromBytes(v.Bytes())
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)
	})

	t.Run("EmptyHashContextAlwaysAppends", func(t *testing.T) {
		v0, err := store.Put(ctx, "it/tombs", []byte("tomb"), nil, storage.NoLowerBound)
		require.NoError(t, err)
		v1, err := store.Put(ctx, "it/tombs", []byte("tomb"), nil, storage.NoLowerBound)
		require.NoError(t, err)
		assert.NotEqual(t, v0, v1)
	})

	t.Run("SurvivesReconnect", func(t *testing.T) {
		_, err := store.Put(ctx, "it/durable", []byte("r0"), []byte("h"), storage.NoLowerBound)
		require.NoError(t, err)

		second, err := NewSchemaStore(pgContainer.Config)
		require.NoError(t, err)
		defer second.Close()

		latest, err := second.GetLatest(ctx, "it/durable")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, []byte("r0"), latest.Data)
	})
}

// TestRegistryOverPostgres runs the registry's admission protocol end to end
// on the PostgreSQL store.
func TestRegistryOverPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	store, err := waitForStore(pgContainer.Config, 30*time.Second)
	require.NoError(t, err)

	svc := registry.NewService(store, compatibility.NewRegistry())
	defer svc.Close()

	data := schema.Data{Type: schema.TypeAvro, Payload: []byte(`{"type":"record"}`), User: "it"}

	v0, err := svc.PutSchemaIfAbsent(ctx, "it/registry", data, compatibility.AlwaysCompatible)
	require.NoError(t, err)

	// Idempotent re-registration.
	v, err := svc.PutSchemaIfAbsent(ctx, "it/registry", data, compatibility.AlwaysCompatible)
	require.NoError(t, err)
	assert.Equal(t, v0, v)

	got, err := svc.GetSchema(ctx, "it/registry")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, data.Payload, got.Schema.Payload)

	// Delete, then verify the lineage reads as absent while history remains.
	_, err = svc.DeleteSchema(ctx, "it/registry", "it-admin")
	require.NoError(t, err)

	got, err = svc.GetSchema(ctx, "it/registry")
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := svc.GetAllSchemas(ctx, "it/registry")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
