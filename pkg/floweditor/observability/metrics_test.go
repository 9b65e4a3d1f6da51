package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a function to collect metrics.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordPoll(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	// Create a fresh metrics instance using the test provider
	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("records poll count", func(t *testing.T) {
		m.RecordPoll(ctx, "flow-1", 50*time.Millisecond, nil)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "floweditor.poll.requests")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok, "Expected Sum type")
		require.NotEmpty(t, sum.DataPoints)

		found := false
		for _, dp := range sum.DataPoints {
			for _, attr := range dp.Attributes.ToSlice() {
				if attr.Key == "flow_id" && attr.Value.AsString() == "flow-1" {
					found = true
					assert.GreaterOrEqual(t, dp.Value, int64(1))
				}
			}
		}
		assert.True(t, found, "Expected to find datapoint for flow_id=flow-1")
	})

	t.Run("records latency", func(t *testing.T) {
		m.RecordPoll(ctx, "flow-2", 100*time.Millisecond, nil)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "floweditor.poll.latency_ms")
		require.NotNil(t, metric)

		hist, ok := metric.Data.(metricdata.Histogram[float64])
		require.True(t, ok, "Expected Histogram type")
		require.NotEmpty(t, hist.DataPoints)
	})

	t.Run("records failures when present", func(t *testing.T) {
		m.RecordPoll(ctx, "failing-flow", 10*time.Millisecond, errors.New("connection refused"))

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "floweditor.poll.failures")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok, "Expected Sum type")
		require.NotEmpty(t, sum.DataPoints)

		found := false
		for _, dp := range sum.DataPoints {
			for _, attr := range dp.Attributes.ToSlice() {
				if attr.Key == "flow_id" && attr.Value.AsString() == "failing-flow" {
					found = true
					assert.GreaterOrEqual(t, dp.Value, int64(1))
				}
			}
		}
		assert.True(t, found, "Expected to find failure datapoint")
	})

	t.Run("does not record failure when nil", func(t *testing.T) {
		m.RecordPoll(ctx, "healthy-flow", 10*time.Millisecond, nil)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "floweditor.poll.failures")
		if metric != nil {
			sum, ok := metric.Data.(metricdata.Sum[int64])
			if ok {
				for _, dp := range sum.DataPoints {
					for _, attr := range dp.Attributes.ToSlice() {
						if attr.Key == "flow_id" && attr.Value.AsString() == "healthy-flow" {
							assert.Equal(t, int64(0), dp.Value, "Expected no failures for healthy-flow")
						}
					}
				}
			}
		}
	})
}

func TestRecordPollingStopped(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordPollingStopped(context.Background(), "flow-1")

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "floweditor.poll.stops")
	require.NotNil(t, metric)

	sum, ok := metric.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.NotEmpty(t, sum.DataPoints)
}

func TestRecordSave(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("records successful saves", func(t *testing.T) {
		m.RecordSave(ctx, "flow-1", true)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "floweditor.flow.saves")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.NotEmpty(t, sum.DataPoints)
	})

	t.Run("records failed saves", func(t *testing.T) {
		m.RecordSave(ctx, "flow-1", false)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "floweditor.flow.saves")
		require.NotNil(t, metric)
	})
}

func TestOtelMetrics_AllMethods(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	ctx := context.Background()

	// Call all methods to ensure they work
	m.RecordPoll(ctx, "flow-a", 25*time.Millisecond, nil)
	m.RecordPoll(ctx, "flow-b", 10*time.Millisecond, errors.New("test"))
	m.RecordPollingStopped(ctx, "flow-b")
	m.RecordSave(ctx, "flow-a", true)
	m.RecordSave(ctx, "flow-a", false)

	rm := collectMetrics(t, reader)

	assert.NotNil(t, findMetric(rm, "floweditor.poll.requests"))
	assert.NotNil(t, findMetric(rm, "floweditor.poll.latency_ms"))
	assert.NotNil(t, findMetric(rm, "floweditor.poll.failures"))
	assert.NotNil(t, findMetric(rm, "floweditor.poll.stops"))
	assert.NotNil(t, findMetric(rm, "floweditor.flow.saves"))
}

func TestNewOtelMetrics_Creation(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.NotNil(t, m.pollRequests)
	assert.NotNil(t, m.pollFailures)
	assert.NotNil(t, m.pollLatency)
	assert.NotNil(t, m.pollStops)
	assert.NotNil(t, m.flowSaves)

	_ = reader
}
