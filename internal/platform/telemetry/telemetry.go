// Package telemetry provides OpenTelemetry tracer and meter initialization for
// the playground. The terminal belongs to the UI, so both exporters write to
// a caller-supplied writer (usually a file named in the config).
//
// Tracer initialization:
//
//	tp, err := telemetry.InitTracer(ctx, "riverplay", telemetry.ExporterStdout, w)
//	defer tp.Shutdown(ctx)
//
// Meter initialization:
//
//	mp, err := telemetry.InitMeter(ctx, "riverplay", telemetry.ExporterStdout, w)
//	defer mp.Shutdown(ctx)
//
// Pre-registered metrics:
//
//	metrics, err := telemetry.NewMetrics(mp)
//	metrics.RecordSync(ctx, "applied", elapsed)
package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// ExporterStdout selects the stdout exporters, writing to the given writer.
const ExporterStdout = "stdout"

// InstrumentationName scopes tracers and meters to this module.
const InstrumentationName = "github.com/jsamuelsen11/riverplay"

// Attribute keys for metric labels and span attributes.
var (
	AttrResult        = attribute.Key("result")
	AttrOperation     = attribute.Key("operation")
	AttrSourceVersion = attribute.Key("source.version")
	AttrSourceLength  = attribute.Key("source.length")
	AttrBreakerState  = attribute.Key("breaker.state")
)

// Metrics holds pre-registered OpenTelemetry metric instruments. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	SyncTotal          metric.Int64Counter
	SyncDuration       metric.Float64Histogram
	EngineCallDuration metric.Float64Histogram
}

// InitTracer creates and registers a global TracerProvider whose spans are
// pretty-printed to w.
//
// The returned TracerProvider must be shut down when the application exits.
func InitTracer(_ context.Context, serviceName, exporter string, w io.Writer) (*sdktrace.TracerProvider, error) {
	if exporter != ExporterStdout {
		return nil, fmt.Errorf("unsupported trace exporter %q", exporter)
	}

	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spanExporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)

	return tp, nil
}

// InitMeter creates and registers a global MeterProvider whose readings are
// written to w periodically.
//
// The returned MeterProvider must be shut down when the application exits.
func InitMeter(_ context.Context, serviceName, exporter string, w io.Writer) (*sdkmetric.MeterProvider, error) {
	if exporter != ExporterStdout {
		return nil, fmt.Errorf("unsupported metric exporter %q", exporter)
	}

	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

// NewMetrics creates and registers all metric instruments using the given
// MeterProvider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(InstrumentationName)

	syncTotal, err := meter.Int64Counter(
		"pipeline.sync.total",
		metric.WithDescription("Total number of sync cycles by outcome"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.sync.total: %w", err)
	}

	syncDuration, err := meter.Float64Histogram(
		"pipeline.sync.duration",
		metric.WithDescription("Duration of sync cycles"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.sync.duration: %w", err)
	}

	engineDuration, err := meter.Float64Histogram(
		"engine.call.duration",
		metric.WithDescription("Duration of engine collaborator calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating engine.call.duration: %w", err)
	}

	return &Metrics{
		SyncTotal:          syncTotal,
		SyncDuration:       syncDuration,
		EngineCallDuration: engineDuration,
	}, nil
}

// RecordSync records one finished sync cycle.
func (m *Metrics) RecordSync(ctx context.Context, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(AttrResult.String(result))
	m.SyncTotal.Add(ctx, 1, attrs)
	m.SyncDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordEngineCall records the duration of one engine call.
func (m *Metrics) RecordEngineCall(ctx context.Context, operation, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.EngineCallDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		AttrOperation.String(operation),
		AttrResult.String(result),
	))
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}
