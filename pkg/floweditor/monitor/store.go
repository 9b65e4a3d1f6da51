package monitor

import (
	"errors"
	"time"

	"github.com/randalmurphal/floweditor/pkg/floweditor/execution"
)

// HistoryStore persists per-flow execution-history snapshots so a
// reopened console renders recent runs before its first poll lands.
// Writes are whole-value replacements of a flow's snapshot.
// Implementations must be safe for concurrent use.
type HistoryStore interface {
	// Save stores the snapshot for a flow, replacing any previous one.
	Save(flowID string, execs []execution.FlowExecution) error

	// Load retrieves a flow's snapshot.
	// Returns ErrNotFound if the flow has no snapshot.
	Load(flowID string) ([]execution.FlowExecution, error)

	// Delete removes a flow's snapshot.
	// Returns nil if no snapshot exists.
	Delete(flowID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides snapshot metadata without loading the records.
type Info struct {
	FlowID    string
	Count     int
	UpdatedAt time.Time
}

// Sentinel errors for history store operations.
var (
	// ErrNotFound indicates a flow has no stored snapshot.
	ErrNotFound = errors.New("history snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("history store closed")
)
