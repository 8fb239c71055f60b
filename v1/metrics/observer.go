package metrics

import (
	"github.com/Aleph-Alpha/schema-registry/v1/observability"
)

// PrometheusObserver reports observed operations to the Metrics counters and
// histograms. It implements observability.Observer.
type PrometheusObserver struct {
	metrics *Metrics
}

// Observer returns an observability.Observer backed by this Metrics instance.
// The returned observer is safe for concurrent use and may be shared by
// multiple components.
func (m *Metrics) Observer() *PrometheusObserver {
	return &PrometheusObserver{metrics: m}
}

// ObserveOperation implements observability.Observer.
func (o *PrometheusObserver) ObserveOperation(ctx observability.OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}
	o.metrics.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.metrics.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
}
