package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps the OpenTelemetry tracer provider configured for this
// service. The embedded provider flushes and shuts down through the fx
// lifecycle hook.
type Tracer struct {
	// tracer is the SDK provider; kept for shutdown
	tracer *sdktrace.TracerProvider

	// Tracer is the API handle components record spans with
	Tracer trace.Tracer
}

// NewClient initializes an OTLP/HTTP exporter and a tracer provider with
// the configured service name and sample ratio, and registers the provider
// globally.
//
// Parameters:
//   - cfg: Configuration for the tracer, including the collector endpoint
//
// Returns:
//   - *Tracer: A configured tracer ready for use and lifecycle management
func NewClient(cfg Config) (*Tracer, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4318"
	}
	if cfg.SampleRatio <= 0 || cfg.SampleRatio > 1 {
		cfg.SampleRatio = 1
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("tracer: failed to create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tracer: failed to build resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(provider)

	return &Tracer{
		tracer: provider,
		Tracer: provider.Tracer("github.com/Aleph-Alpha/schema-registry"),
	}, nil
}
