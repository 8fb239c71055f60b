package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/schema-registry/v1/observability"
)

func TestPrometheusObserver_CountsByStatus(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "schema-registry-test"})
	obs := m.Observer()

	obs.ObserveOperation(observability.OperationContext{
		Component: "registry",
		Operation: "put_schema_if_absent",
		Duration:  25 * time.Millisecond,
	})
	obs.ObserveOperation(observability.OperationContext{
		Component: "registry",
		Operation: "put_schema_if_absent",
		Duration:  10 * time.Millisecond,
		Error:     errors.New("boom"),
	})

	success := testutil.ToFloat64(m.operationsTotal.WithLabelValues("registry", "put_schema_if_absent", "success"))
	failure := testutil.ToFloat64(m.operationsTotal.WithLabelValues("registry", "put_schema_if_absent", "error"))
	assert.Equal(t, float64(1), success)
	assert.Equal(t, float64(1), failure)

	count := testutil.CollectAndCount(m.operationDuration, "schema_registry_operation_duration_seconds")
	assert.Equal(t, 1, count)
}

func TestNewMetrics_Defaults(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "schema-registry-test"})
	require.NotNil(t, m.Server)
	assert.Equal(t, ":9090", m.Server.Addr)
	require.NotNil(t, m.Registry)
}

func TestNewMetrics_ServiceLabelApplied(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "schema-registry-test"})
	m.Observer().ObserveOperation(observability.OperationContext{
		Component: "registry",
		Operation: "get_schema",
	})

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() != "schema_registry_operations_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "service" {
					assert.Equal(t, "schema-registry-test", label.GetValue())
					found = true
				}
			}
		}
	}
	assert.True(t, found, "expected the service label on gathered metrics")
}
