package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/cases", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/cases", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/cases", "POST", 201, time.Millisecond)
	m.RecordError("/cases/1/status", "PATCH", "FORBIDDEN")

	requests, errors := m.Snapshot()
	require.Equal(t, int64(2), requests["GET /cases 200"])
	require.Equal(t, int64(1), requests["POST /cases 201"])
	require.Equal(t, int64(1), errors["PATCH /cases/1/status FORBIDDEN"])
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "INTERNAL_ERROR")
}
