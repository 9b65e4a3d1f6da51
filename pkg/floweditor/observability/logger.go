// Package observability provides structured logging, metrics, and
// tracing for the flow console core.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds flow context to a logger.
// Returns a new logger with a flow_id field.
func EnrichLogger(logger *slog.Logger, flowID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("flow_id", flowID))
}

// LogPollSuccess logs a successful execution poll.
func LogPollSuccess(logger *slog.Logger, flowID string, count int, elapsed time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("executions polled",
		slog.String("flow_id", flowID),
		slog.Int("executions", count),
		slog.Float64("duration_ms", float64(elapsed.Milliseconds())),
	)
}

// LogPollFailure logs a failed poll and the backoff applied.
func LogPollFailure(logger *slog.Logger, flowID string, err error, failures int, nextDelay time.Duration) {
	if logger == nil {
		return
	}
	logger.Warn("execution poll failed",
		slog.String("flow_id", flowID),
		slog.String("error", err.Error()),
		slog.Int("consecutive_failures", failures),
		slog.Duration("next_delay", nextDelay),
	)
}

// LogPollingStopped logs that the poll loop gave up after repeated failures.
func LogPollingStopped(logger *slog.Logger, flowID string, failures int) {
	if logger == nil {
		return
	}
	logger.Error("polling stopped after repeated failures",
		slog.String("flow_id", flowID),
		slog.Int("consecutive_failures", failures),
	)
}

// LogPollingCancelled logs that the poll loop was cancelled by its owner.
func LogPollingCancelled(logger *slog.Logger, flowID string) {
	if logger == nil {
		return
	}
	logger.Debug("polling cancelled",
		slog.String("flow_id", flowID),
	)
}

// LogSave logs a flow save.
func LogSave(logger *slog.Logger, flowID string, nodeCount int) {
	if logger == nil {
		return
	}
	logger.Info("flow saved",
		slog.String("flow_id", flowID),
		slog.Int("nodes", nodeCount),
	)
}

// LogSaveError logs a failed flow save. The in-memory graph is
// untouched by a failed save, so the entry is a warning, not fatal.
func LogSaveError(logger *slog.Logger, flowID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("flow save failed",
		slog.String("flow_id", flowID),
		slog.String("error", err.Error()),
	)
}

// LogHistoryStoreError logs a history store failure (non-fatal).
func LogHistoryStoreError(logger *slog.Logger, flowID string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("history store failed",
		slog.String("flow_id", flowID),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}
