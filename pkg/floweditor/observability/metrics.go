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

// MetricsRecorder records flow console metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordPoll records one execution poll with its latency and error status.
	RecordPoll(ctx context.Context, flowID string, duration time.Duration, err error)

	// RecordPollingStopped records that a flow's poll loop stopped
	// after exhausting its failure budget.
	RecordPollingStopped(ctx context.Context, flowID string)

	// RecordSave records a flow save attempt.
	RecordSave(ctx context.Context, flowID string, success bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	pollRequests metric.Int64Counter
	pollFailures metric.Int64Counter
	pollLatency  metric.Float64Histogram
	pollStops    metric.Int64Counter
	flowSaves    metric.Int64Counter
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
	meter := otel.Meter("floweditor")

	pollRequests, err := meter.Int64Counter("floweditor.poll.requests",
		metric.WithDescription("Number of execution list polls"),
	)
	if err != nil {
		return nil, err
	}

	pollFailures, err := meter.Int64Counter("floweditor.poll.failures",
		metric.WithDescription("Number of failed execution list polls"),
	)
	if err != nil {
		return nil, err
	}

	pollLatency, err := meter.Float64Histogram("floweditor.poll.latency_ms",
		metric.WithDescription("Execution poll latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	pollStops, err := meter.Int64Counter("floweditor.poll.stops",
		metric.WithDescription("Number of poll loops stopped after repeated failures"),
	)
	if err != nil {
		return nil, err
	}

	flowSaves, err := meter.Int64Counter("floweditor.flow.saves",
		metric.WithDescription("Number of flow save attempts"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		pollRequests: pollRequests,
		pollFailures: pollFailures,
		pollLatency:  pollLatency,
		pollStops:    pollStops,
		flowSaves:    flowSaves,
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

// RecordPoll records one execution poll.
func (m *otelMetrics) RecordPoll(ctx context.Context, flowID string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("flow_id", flowID),
	}

	m.pollRequests.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.pollLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.pollFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordPollingStopped records a poll loop giving up.
func (m *otelMetrics) RecordPollingStopped(ctx context.Context, flowID string) {
	m.pollStops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("flow_id", flowID),
	))
}

// RecordSave records a flow save attempt.
func (m *otelMetrics) RecordSave(ctx context.Context, flowID string, success bool) {
	m.flowSaves.Add(ctx, 1, metric.WithAttributes(
		attribute.String("flow_id", flowID),
		attribute.Bool("success", success),
	))
}
