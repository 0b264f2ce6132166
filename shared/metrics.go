package shared

import (
	"sync"
	"time"
)

// ServiceMetrics tracks fetch outcomes for a service. Every dashboard render
// triggers one upstream fetch, so these counters double as request counters.
type ServiceMetrics struct {
	mutex sync.RWMutex

	serviceName       string
	totalFetches      int64
	successfulFetches int64
	failedFetches     int64
	lastFetchDuration time.Duration
	lastFetchTime     time.Time
	lastRowsSkipped   int
}

// MetricsSnapshot is an immutable copy of the current metrics, safe to serialize.
type MetricsSnapshot struct {
	ServiceName       string    `json:"service_name"`
	TotalFetches      int64     `json:"total_fetches"`
	SuccessfulFetches int64     `json:"successful_fetches"`
	FailedFetches     int64     `json:"failed_fetches"`
	SuccessRate       float64   `json:"success_rate"`
	LastFetchMillis   int64     `json:"last_fetch_millis"`
	LastFetchTime     time.Time `json:"last_fetch_time"`
	LastRowsSkipped   int       `json:"last_rows_skipped"`
}

// NewServiceMetrics creates a new metrics tracker for a service
func NewServiceMetrics(serviceName string) *ServiceMetrics {
	return &ServiceMetrics{serviceName: serviceName}
}

// RecordFetch records one fetch with its outcome, duration and the number of
// malformed rows that were skipped while mapping the payload.
func (m *ServiceMetrics) RecordFetch(success bool, duration time.Duration, rowsSkipped int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.totalFetches++
	if success {
		m.successfulFetches++
	} else {
		m.failedFetches++
	}
	m.lastFetchDuration = duration
	m.lastFetchTime = time.Now()
	m.lastRowsSkipped = rowsSkipped
}

// Snapshot returns a copy of the current metrics
func (m *ServiceMetrics) Snapshot() MetricsSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	successRate := 0.0
	if m.totalFetches > 0 {
		successRate = float64(m.successfulFetches) / float64(m.totalFetches) * 100.0
	}

	return MetricsSnapshot{
		ServiceName:       m.serviceName,
		TotalFetches:      m.totalFetches,
		SuccessfulFetches: m.successfulFetches,
		FailedFetches:     m.failedFetches,
		SuccessRate:       successRate,
		LastFetchMillis:   m.lastFetchDuration.Milliseconds(),
		LastFetchTime:     m.lastFetchTime,
		LastRowsSkipped:   m.lastRowsSkipped,
	}
}
