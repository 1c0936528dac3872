// Package observability provides OpenTelemetry integration and audit
// logging for command execution and process replacement.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry provides observability features.
type Telemetry interface {
	// StartSpan starts a new trace span.
	StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, func())

	// RecordDuration records a duration metric in seconds.
	RecordDuration(name string, seconds float64, labels map[string]string)

	// RecordCounter increments a counter.
	RecordCounter(name string, labels map[string]string)
}

// SpanOption configures span creation.
type SpanOption func(*spanConfig)

type spanConfig struct {
	attributes []attribute.KeyValue
	kind       trace.SpanKind
}

// WithAttribute adds an attribute to the span.
func WithAttribute(key string, value interface{}) SpanOption {
	return func(c *spanConfig) {
		switch v := value.(type) {
		case string:
			c.attributes = append(c.attributes, attribute.String(key, v))
		case int:
			c.attributes = append(c.attributes, attribute.Int(key, v))
		case bool:
			c.attributes = append(c.attributes, attribute.Bool(key, v))
		}
	}
}

// TelemetryConfig configures telemetry.
type TelemetryConfig struct {
	// ServiceName is the service name for tracing.
	ServiceName string `yaml:"service_name"`

	// EnableTracing enables distributed tracing.
	EnableTracing bool `yaml:"enable_tracing"`

	// EnableMetrics enables metrics collection.
	EnableMetrics bool `yaml:"enable_metrics"`

	// MetricsPrefix is the prefix for all metrics.
	MetricsPrefix string `yaml:"metrics_prefix"`
}

// DefaultTelemetryConfig returns default configuration.
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		ServiceName:   "relaunch",
		EnableTracing: true,
		EnableMetrics: true,
		MetricsPrefix: "relaunch_",
	}
}

// Metric names recorded by this package, without prefix.
const (
	MetricCommandDuration = "command_duration_seconds"
	MetricExecAttempts    = "exec_attempts_total"
	MetricExecFailures    = "exec_failures_total"
	MetricRestarts        = "restarts_total"
	MetricCleanupRemoved  = "cleanup_removed_total"
)

// telemetry implements Telemetry.
type telemetry struct {
	config TelemetryConfig
	tracer trace.Tracer
	meter  metric.Meter

	commandDuration metric.Float64Histogram
	counters        map[string]metric.Int64Counter
}

// NewTelemetry creates a new telemetry instance.
func NewTelemetry(config TelemetryConfig) (Telemetry, error) {
	t := &telemetry{
		config:   config,
		tracer:   otel.Tracer(config.ServiceName),
		meter:    otel.Meter(config.ServiceName),
		counters: make(map[string]metric.Int64Counter),
	}

	var err error
	t.commandDuration, err = t.meter.Float64Histogram(
		config.MetricsPrefix+MetricCommandDuration,
		metric.WithDescription("Duration of external command executions"),
	)
	if err != nil {
		return nil, err
	}

	counters := map[string]string{
		MetricExecAttempts:   "Total number of process image replacement attempts",
		MetricExecFailures:   "Total number of failed exec calls",
		MetricRestarts:       "Total number of in-place restarts requested",
		MetricCleanupRemoved: "Total number of result files removed by cleanup",
	}
	for name, desc := range counters {
		c, err := t.meter.Int64Counter(
			config.MetricsPrefix+name,
			metric.WithDescription(desc),
		)
		if err != nil {
			return nil, err
		}
		t.counters[name] = c
	}

	return t, nil
}

// StartSpan implements Telemetry.StartSpan.
func (t *telemetry) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, func()) {
	if !t.config.EnableTracing {
		return ctx, func() {}
	}

	cfg := &spanConfig{
		kind: trace.SpanKindInternal,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name,
		trace.WithAttributes(cfg.attributes...),
		trace.WithSpanKind(cfg.kind),
	)

	return ctx, func() {
		span.End()
	}
}

// RecordDuration implements Telemetry.RecordDuration.
func (t *telemetry) RecordDuration(name string, seconds float64, labels map[string]string) {
	if !t.config.EnableMetrics {
		return
	}

	attrs := labelsToAttributes(labels)
	t.commandDuration.Record(context.Background(), seconds, metric.WithAttributes(attrs...))
}

// RecordCounter implements Telemetry.RecordCounter.
func (t *telemetry) RecordCounter(name string, labels map[string]string) {
	if !t.config.EnableMetrics {
		return
	}

	counter, ok := t.counters[name]
	if !ok {
		return
	}

	attrs := labelsToAttributes(labels)
	counter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}

// labelsToAttributes converts labels to OTEL attributes.
func labelsToAttributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for k, v := range labels {
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}

// NoopTelemetry returns a no-op telemetry implementation.
func NoopTelemetry() Telemetry {
	return &noopTelemetry{}
}

type noopTelemetry struct{}

func (t *noopTelemetry) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, func()) {
	return ctx, func() {}
}

func (t *noopTelemetry) RecordDuration(name string, seconds float64, labels map[string]string) {}
func (t *noopTelemetry) RecordCounter(name string, labels map[string]string)                   {}
