package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegistration records an installed registration.
	RecordRegistration(ctx context.Context, key string)

	// RecordLookup records a lookup and whether the key was registered.
	RecordLookup(ctx context.Context, key string, found bool)

	// RecordCreation records a creator invocation with its duration and
	// error status.
	RecordCreation(ctx context.Context, key string, duration time.Duration, err error)

	// RecordInitError records an initializer failure.
	RecordInitError(ctx context.Context, key string)

	// RecordBatch records a batch initialization pass.
	RecordBatch(ctx context.Context, entries int, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations  metric.Int64Counter
	lookups        metric.Int64Counter
	lookupMisses   metric.Int64Counter
	creations      metric.Int64Counter
	creationErrors metric.Int64Counter
	createLatency  metric.Float64Histogram
	initErrors     metric.Int64Counter
	batchRuns      metric.Int64Counter
	batchLatency   metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("autoreg")

	registrations, err := meter.Int64Counter("autoreg.registrations",
		metric.WithDescription("Number of registrations installed"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter("autoreg.lookups",
		metric.WithDescription("Number of instance lookups"),
	)
	if err != nil {
		return nil, err
	}

	lookupMisses, err := meter.Int64Counter("autoreg.lookup.misses",
		metric.WithDescription("Number of lookups for unregistered keys"),
	)
	if err != nil {
		return nil, err
	}

	creations, err := meter.Int64Counter("autoreg.creations",
		metric.WithDescription("Number of creator invocations"),
	)
	if err != nil {
		return nil, err
	}

	creationErrors, err := meter.Int64Counter("autoreg.creation.errors",
		metric.WithDescription("Number of creator failures"),
	)
	if err != nil {
		return nil, err
	}

	createLatency, err := meter.Float64Histogram("autoreg.create.latency_ms",
		metric.WithDescription("Creator latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	initErrors, err := meter.Int64Counter("autoreg.init.errors",
		metric.WithDescription("Number of initializer failures"),
	)
	if err != nil {
		return nil, err
	}

	batchRuns, err := meter.Int64Counter("autoreg.batch.runs",
		metric.WithDescription("Number of batch initialization passes"),
	)
	if err != nil {
		return nil, err
	}

	batchLatency, err := meter.Float64Histogram("autoreg.batch.latency_ms",
		metric.WithDescription("Batch initialization latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations:  registrations,
		lookups:        lookups,
		lookupMisses:   lookupMisses,
		creations:      creations,
		creationErrors: creationErrors,
		createLatency:  createLatency,
		initErrors:     initErrors,
		batchRuns:      batchRuns,
		batchLatency:   batchLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRegistration records an installed registration.
func (m *otelMetrics) RecordRegistration(ctx context.Context, key string) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("key", key),
	))
}

// RecordLookup records a lookup and whether the key was registered.
func (m *otelMetrics) RecordLookup(ctx context.Context, key string, found bool) {
	attrs := []attribute.KeyValue{
		attribute.String("key", key),
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(attrs...))
	if !found {
		m.lookupMisses.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordCreation records a creator invocation.
func (m *otelMetrics) RecordCreation(ctx context.Context, key string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("key", key),
	}
	m.creations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.createLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		m.creationErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordInitError records an initializer failure.
func (m *otelMetrics) RecordInitError(ctx context.Context, key string) {
	m.initErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("key", key),
	))
}

// RecordBatch records a batch initialization pass.
func (m *otelMetrics) RecordBatch(ctx context.Context, entries int, duration time.Duration) {
	m.batchRuns.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("entries", entries),
	))
	m.batchLatency.Record(ctx, float64(duration.Milliseconds()))
}
