package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects and aggregates counters for store operations.
type Metrics struct {
	mu sync.Mutex

	// Counters
	requestTotal  atomic.Int64
	requestFailed atomic.Int64

	// Per-operation metrics
	opMetrics map[string]*OpMetrics
}

// OpMetrics represents metrics for a specific store operation.
type OpMetrics struct {
	executionCount atomic.Int64
	totalDuration  atomic.Int64 // milliseconds
	errorCount     atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		opMetrics: make(map[string]*OpMetrics),
	}
}

// Global metrics instance.
var globalMetrics = NewMetrics()

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records one completed request.
func (m *Metrics) RecordRequest(operation string, duration time.Duration, failed bool) {
	m.requestTotal.Add(1)
	if failed {
		m.requestFailed.Add(1)
	}

	om := m.opFor(operation)
	om.executionCount.Add(1)
	om.totalDuration.Add(duration.Milliseconds())
	if failed {
		om.errorCount.Add(1)
	}
}

func (m *Metrics) opFor(operation string) *OpMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	om, ok := m.opMetrics[operation]
	if !ok {
		om = &OpMetrics{}
		m.opMetrics[operation] = om
	}
	return om
}

// Snapshot returns a point-in-time copy of the collected counters.
func (m *Metrics) Snapshot() map[string]OpSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]OpSnapshot, len(m.opMetrics))
	for op, om := range m.opMetrics {
		count := om.executionCount.Load()
		snap := OpSnapshot{
			Count:  count,
			Errors: om.errorCount.Load(),
		}
		if count > 0 {
			snap.AvgDurationMs = om.totalDuration.Load() / count
		}
		out[op] = snap
	}
	return out
}

// Totals returns total and failed request counts.
func (m *Metrics) Totals() (total, failed int64) {
	return m.requestTotal.Load(), m.requestFailed.Load()
}

// OpSnapshot is an exported view of one operation's counters.
type OpSnapshot struct {
	Count         int64 `json:"count"`
	Errors        int64 `json:"errors"`
	AvgDurationMs int64 `json:"avg_duration_ms"`
}
