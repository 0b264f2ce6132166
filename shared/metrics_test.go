package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServiceMetricsRecordsFetches(t *testing.T) {
	metrics := NewServiceMetrics("test_service")

	metrics.RecordFetch(true, 120*time.Millisecond, 2)
	metrics.RecordFetch(false, 80*time.Millisecond, 0)

	snapshot := metrics.Snapshot()
	assert.Equal(t, "test_service", snapshot.ServiceName)
	assert.EqualValues(t, 2, snapshot.TotalFetches)
	assert.EqualValues(t, 1, snapshot.SuccessfulFetches)
	assert.EqualValues(t, 1, snapshot.FailedFetches)
	assert.InDelta(t, 50.0, snapshot.SuccessRate, 0.001)
	assert.EqualValues(t, 80, snapshot.LastFetchMillis)
	assert.Equal(t, 0, snapshot.LastRowsSkipped)
}

func TestServiceMetricsEmptySnapshot(t *testing.T) {
	snapshot := NewServiceMetrics("idle").Snapshot()
	assert.Zero(t, snapshot.TotalFetches)
	assert.Zero(t, snapshot.SuccessRate)
}
