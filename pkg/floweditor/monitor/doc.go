/*
Package monitor polls a flow's run history and caches the recent
executions the console displays.

# Overview

Each started flow gets one self-scheduling poll loop, not a fixed
interval timer: after a poll settles the loop schedules the next one —
30 seconds away on success, exponentially backed off on failure (5s,
10s, 20s, capped at 30s). After three consecutive failures the loop
stops and stays stopped until Start is called again. There is never
more than one outstanding request per flow.

# Basic Usage

	api := client.New("http://localhost:8080/api")
	m := monitor.New(api,
	    monitor.WithLogger(slog.Default()),
	    monitor.WithHistoryStore(store),
	)
	defer m.Close()

	m.Start(flowID)
	// ... later, on each render:
	runs := m.Recent(flowID)

	// expanding one run's detail panel:
	m.ToggleExpanded(runs[0].ID)

# Cancellation

Stop clears the flow's pending timer; a fetch already in flight is
allowed to complete, but its result is discarded. Stopping before the
first scheduled poll fires means the network is never touched.

# History Store

An optional HistoryStore (in-memory or SQLite) keeps each flow's
latest snapshot so a reopened console renders immediately. Store
failures are logged and never interrupt polling.
*/
package monitor
