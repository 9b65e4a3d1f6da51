// Package execution defines the read-only run records the flow API
// returns: one FlowExecution per run, with per-node results and a
// structured log stream. These objects are created server-side; the
// console only fetches and renders them.
package execution

import "time"

// Status is the lifecycle state of a flow or node execution.
type Status string

const (
	// StatusPending indicates the execution is created but not yet started.
	StatusPending Status = "pending"
	// StatusRunning indicates the execution is in progress.
	StatusRunning Status = "running"
	// StatusCompleted indicates the execution finished successfully.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the execution stopped on an error.
	StatusFailed Status = "failed"
	// StatusCancelled indicates the execution was cancelled by the user.
	StatusCancelled Status = "cancelled"
)

// IsTerminal returns true if the status is a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// CanTransition reports whether to is a legal next state. The
// progression is linear (pending → running → completed/failed), with
// cancelled reachable from pending or running only.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusRunning || to == StatusCancelled
	case StatusRunning:
		return to == StatusCompleted || to == StatusFailed || to == StatusCancelled
	default:
		return false
	}
}

// TriggerSource identifies what started an execution.
type TriggerSource string

const (
	TriggerManual   TriggerSource = "manual"
	TriggerSchedule TriggerSource = "schedule"
	TriggerWebhook  TriggerSource = "webhook"
	TriggerAPI      TriggerSource = "api"
)

// LogLevel is the severity of an execution log entry.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// FlowExecution is one run of a flow.
type FlowExecution struct {
	ID          string        `json:"id"`
	FlowID      string        `json:"flowId"`
	TriggeredBy TriggerSource `json:"triggeredBy"`
	Status      Status        `json:"status"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`

	// Aggregates across all node executions.
	TokensUsed int64   `json:"tokensUsed"`
	Cost       float64 `json:"cost"`
	RetryCount int     `json:"retryCount"`

	// Input is the structured flow input (the input node's fields).
	Input map[string]any `json:"input,omitempty"`
	// Output is the flow result: a string for text-like formats,
	// structured data for JSON output.
	Output any `json:"output,omitempty"`

	Error       string         `json:"error,omitempty"`
	ErrorDetail map[string]any `json:"errorDetail,omitempty"`

	// NodeExecutions holds one record per chain node, in chain order.
	NodeExecutions []NodeExecution `json:"nodeExecutions,omitempty"`
	// Logs is the ordered log stream for the run.
	Logs []ExecutionLog `json:"logs,omitempty"`
}

// Duration returns the run's wall-clock time, or the time elapsed so
// far when the run has not completed.
func (e *FlowExecution) Duration() time.Duration {
	if e.StartedAt.IsZero() {
		return 0
	}
	if e.CompletedAt != nil {
		return e.CompletedAt.Sub(e.StartedAt)
	}
	return time.Since(e.StartedAt)
}

// NodeExecution is the run record for a single node within a run.
type NodeExecution struct {
	NodeID          string `json:"nodeId"`
	NodeType        string `json:"nodeType"`
	Status          Status `json:"status"`
	ExecutionTimeMS int64  `json:"executionTime"`
	TokensUsed      int64  `json:"tokensUsed"`
}

// ExecutionLog is one entry of a run's log stream.
type ExecutionLog struct {
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	// NodeID associates the entry with a node, empty for run-level entries.
	NodeID  string `json:"nodeId,omitempty"`
	Message string `json:"message"`
	// Data is an optional structured payload.
	Data map[string]any `json:"data,omitempty"`
}
