package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/floweditor/pkg/floweditor/execution"
	"github.com/randalmurphal/floweditor/pkg/floweditor/observability"
)

// Lister fetches one page of a flow's run history.
// *client.Client satisfies it.
type Lister interface {
	ListExecutions(ctx context.Context, flowID string, page, pageSize int) ([]execution.FlowExecution, int, error)
}

// Defaults for Monitor options.
const (
	DefaultPollInterval = 30 * time.Second
	DefaultBaseBackoff  = 5 * time.Second
	DefaultMaxBackoff   = 30 * time.Second
	DefaultMaxFailures  = 3
	DefaultCacheSize    = 20
)

// Monitor keeps a bounded recent-execution cache per flow, refreshed
// by one self-scheduling poll loop per started flow. Each loop is an
// explicit state machine: scheduled → in-flight → settled →
// scheduled again (healthy interval on success, exponential backoff
// on failure) or stopped, either by cancellation or after the
// consecutive-failure budget is spent.
//
// Exactly one request per flow is ever outstanding: the next poll is
// scheduled only after the previous one settles. Cancelling a flow's
// loop clears its pending timer; a fetch already in flight completes
// but its result is discarded.
//
// Cache entries are replaced whole, never mutated in place, so flows
// displayed concurrently share nothing beyond the cache map itself.
type Monitor struct {
	lister Lister

	pollInterval time.Duration
	initialDelay time.Duration
	baseBackoff  time.Duration
	maxBackoff   time.Duration
	maxFailures  int
	cacheSize    int

	store   HistoryStore
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	mu    sync.Mutex
	loops map[string]*pollLoop
	cache map[string][]execution.FlowExecution

	expandedMu sync.RWMutex
	expanded   map[string]bool
}

// pollLoop is the handle for one flow's running loop.
type pollLoop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithPollInterval sets the healthy-path delay between polls.
// Default: 30s.
func WithPollInterval(d time.Duration) Option {
	return func(m *Monitor) { m.pollInterval = d }
}

// WithInitialDelay delays the first poll after Start.
// Default: 0 (poll immediately).
func WithInitialDelay(d time.Duration) Option {
	return func(m *Monitor) { m.initialDelay = d }
}

// WithBackoff sets the failure backoff policy: the first retry delay
// and its cap. Default: 5s base, 30s max.
func WithBackoff(base, max time.Duration) Option {
	return func(m *Monitor) {
		m.baseBackoff = base
		m.maxBackoff = max
	}
}

// WithMaxFailures sets the consecutive-failure count after which a
// flow's loop stops until restarted. Default: 3.
func WithMaxFailures(n int) Option {
	return func(m *Monitor) { m.maxFailures = n }
}

// WithCacheSize bounds the per-flow recent-execution cache.
// Default: 20.
func WithCacheSize(n int) Option {
	return func(m *Monitor) { m.cacheSize = n }
}

// WithHistoryStore persists each flow's latest snapshot. Store
// failures are logged and never interrupt polling.
func WithHistoryStore(store HistoryStore) Option {
	return func(m *Monitor) { m.store = store }
}

// WithLogger sets the structured logger. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) { m.logger = logger }
}

// WithMetrics enables OTel metrics for poll cycles.
func WithMetrics(enabled bool) Option {
	return func(m *Monitor) {
		if enabled {
			m.metrics = observability.NewMetricsRecorder()
		}
	}
}

// WithTracing enables an OTel span per poll cycle.
func WithTracing(enabled bool) Option {
	return func(m *Monitor) {
		if enabled {
			m.spans = observability.NewSpanManager()
		}
	}
}

// New creates a Monitor that fetches run history through lister.
func New(lister Lister, opts ...Option) *Monitor {
	m := &Monitor{
		lister:       lister,
		pollInterval: DefaultPollInterval,
		baseBackoff:  DefaultBaseBackoff,
		maxBackoff:   DefaultMaxBackoff,
		maxFailures:  DefaultMaxFailures,
		cacheSize:    DefaultCacheSize,
		metrics:      observability.NoopMetrics{},
		spans:        observability.NoopSpanManager{},
		loops:        make(map[string]*pollLoop),
		cache:        make(map[string][]execution.FlowExecution),
		expanded:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins polling the flow's run history. A no-op when the flow
// is already being polled. Starting a flow whose loop previously
// stopped on repeated failures resets its failure budget.
func (m *Monitor) Start(flowID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, running := m.loops[flowID]; running {
		return
	}

	// Seed the cache from the history store so the view renders
	// before the first poll settles.
	if m.store != nil {
		if _, cached := m.cache[flowID]; !cached {
			if execs, err := m.store.Load(flowID); err == nil {
				m.cache[flowID] = execs
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	loop := &pollLoop{cancel: cancel, done: make(chan struct{})}
	m.loops[flowID] = loop
	go m.run(ctx, flowID, loop)
}

// Stop cancels the flow's poll loop: any pending timer is cleared, a
// fetch in flight completes with its result discarded. Blocks until
// the loop goroutine exits.
func (m *Monitor) Stop(flowID string) {
	m.mu.Lock()
	loop, ok := m.loops[flowID]
	if ok {
		delete(m.loops, flowID)
	}
	m.mu.Unlock()

	if ok {
		loop.cancel()
		<-loop.done
	}
}

// Close stops every poll loop.
func (m *Monitor) Close() {
	m.mu.Lock()
	loops := m.loops
	m.loops = make(map[string]*pollLoop)
	m.mu.Unlock()

	for _, loop := range loops {
		loop.cancel()
		<-loop.done
	}
}

// IsPolling reports whether the flow has an active poll loop.
func (m *Monitor) IsPolling(flowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.loops[flowID]
	return ok
}

// Recent returns the flow's cached recent executions, most recent
// first. The returned slice is a copy.
func (m *Monitor) Recent(flowID string) []execution.FlowExecution {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]execution.FlowExecution(nil), m.cache[flowID]...)
}

// ToggleExpanded flips the detail-expansion state for one execution
// and returns the new state. Expansion is independent per execution:
// expanding one run's node and log detail affects no other run.
func (m *Monitor) ToggleExpanded(executionID string) bool {
	m.expandedMu.Lock()
	defer m.expandedMu.Unlock()
	m.expanded[executionID] = !m.expanded[executionID]
	return m.expanded[executionID]
}

// IsExpanded reports the detail-expansion state for one execution.
func (m *Monitor) IsExpanded(executionID string) bool {
	m.expandedMu.RLock()
	defer m.expandedMu.RUnlock()
	return m.expanded[executionID]
}

// run is one flow's poll loop. It always waits first (initialDelay on
// entry, then interval or backoff), so cancellation before the timer
// fires means the network is never touched.
func (m *Monitor) run(ctx context.Context, flowID string, loop *pollLoop) {
	defer close(loop.done)

	delay := m.initialDelay
	failures := 0
	attempt := 0

	for {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				observability.LogPollingCancelled(m.logger, flowID)
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			observability.LogPollingCancelled(m.logger, flowID)
			return
		}

		attempt++
		pollCtx, span := m.spans.StartPollSpan(ctx, flowID, attempt)
		start := time.Now()
		execs, _, err := m.lister.ListExecutions(pollCtx, flowID, 1, m.cacheSize)
		elapsed := time.Since(start)
		m.spans.EndSpanWithError(span, err)
		m.metrics.RecordPoll(ctx, flowID, elapsed, err)

		// Cancelled while the fetch was in flight: the owner is gone,
		// discard whatever came back.
		if ctx.Err() != nil {
			observability.LogPollingCancelled(m.logger, flowID)
			return
		}

		if err != nil {
			failures++
			if failures >= m.maxFailures {
				observability.LogPollingStopped(m.logger, flowID, failures)
				m.metrics.RecordPollingStopped(ctx, flowID)
				m.forget(flowID, loop)
				return
			}
			delay = BackoffDelay(m.baseBackoff, m.maxBackoff, failures)
			observability.LogPollFailure(m.logger, flowID, err, failures, delay)
			continue
		}

		failures = 0
		if len(execs) > m.cacheSize {
			execs = execs[:m.cacheSize]
		}
		m.replaceCache(flowID, execs)
		observability.LogPollSuccess(m.logger, flowID, len(execs), elapsed)
		delay = m.pollInterval
	}
}

// BackoffDelay returns the delay before retry number failures:
// base doubled per consecutive failure, capped at max.
//
//	BackoffDelay(5s, 30s, 1) // 5s
//	BackoffDelay(5s, 30s, 2) // 10s
//	BackoffDelay(5s, 30s, 3) // 20s
//	BackoffDelay(5s, 30s, 4) // 30s (capped)
func BackoffDelay(base, max time.Duration, failures int) time.Duration {
	if failures < 1 {
		return base
	}
	delay := base
	for i := 1; i < failures; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

// replaceCache swaps in a flow's new snapshot and persists it.
func (m *Monitor) replaceCache(flowID string, execs []execution.FlowExecution) {
	m.mu.Lock()
	m.cache[flowID] = execs
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(flowID, execs); err != nil {
			observability.LogHistoryStoreError(m.logger, flowID, "save", err)
		}
	}
}

// forget drops the loop handle after the loop stopped on its own, so
// a later Start can bring it back. Guarded by identity so a loop
// exiting late cannot discard a successor started in the meantime.
func (m *Monitor) forget(flowID string, loop *pollLoop) {
	m.mu.Lock()
	if m.loops[flowID] == loop {
		delete(m.loops, flowID)
	}
	m.mu.Unlock()
}
