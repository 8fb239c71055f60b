package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/schema-registry/v1/storage"
)

func TestNewExporter_RequiresEndpoint(t *testing.T) {
	_, err := NewExporter(Config{}, storage.NewMemStorage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint")
}

func TestNewExporter_Defaults(t *testing.T) {
	e, err := NewExporter(Config{Endpoint: "localhost:9000"}, storage.NewMemStorage())
	require.NoError(t, err)
	assert.Equal(t, DefaultBucket, e.cfg.Bucket)
	assert.Equal(t, DefaultConcurrency, e.cfg.Concurrency)
}

func TestObjectNames(t *testing.T) {
	assert.Equal(t, "tenant/ns/topic/revision-3.json", objectName("tenant/ns/topic", 3))
	assert.Equal(t, "tenant/ns/topic/manifest.json", manifestName("tenant/ns/topic"))
}
