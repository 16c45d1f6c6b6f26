package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsRecordAndSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("CreateBookmark", 10*time.Millisecond, false)
	m.RecordRequest("CreateBookmark", 30*time.Millisecond, false)
	m.RecordRequest("ListTagGroups", 5*time.Millisecond, true)

	total, failed := m.Totals()
	require.EqualValues(t, 3, total)
	require.EqualValues(t, 1, failed)

	snap := m.Snapshot()
	require.EqualValues(t, 2, snap["CreateBookmark"].Count)
	require.EqualValues(t, 20, snap["CreateBookmark"].AvgDurationMs)
	require.EqualValues(t, 1, snap["ListTagGroups"].Errors)
}

func TestRequestContextElapsed(t *testing.T) {
	rc := NewRequestContextWithID(discardLogger(), "req-1")
	require.Equal(t, "req-1", rc.RequestID)
	require.GreaterOrEqual(t, rc.Elapsed(), time.Duration(0))
}
