// Package metrics keeps per-process run counters for the monitoring
// endpoints. These are operational numbers about the run itself; the
// content counters of a batch live in digest.Stats.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	EntriesFetched      int64
	ItemsClassified     int64
	DroppedOld          int64
	DroppedIrrelevant   int64
	DuplicatesCollapsed int64
	EmailsSent          int64

	// Timings
	LastProcessingTime time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) RecordBatch(fetched, classified, droppedOld, droppedIrrelevant, collapsed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesFetched += int64(fetched)
	m.ItemsClassified += int64(classified)
	m.DroppedOld += int64(droppedOld)
	m.DroppedIrrelevant += int64(droppedIrrelevant)
	m.DuplicatesCollapsed += int64(collapsed)
}

func (m *Metrics) IncrementEmailsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailsSent++
}

func (m *Metrics) RecordProcessingTime(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastProcessingTime = d
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"entries_fetched":      m.EntriesFetched,
		"items_classified":     m.ItemsClassified,
		"dropped_old":          m.DroppedOld,
		"dropped_irrelevant":   m.DroppedIrrelevant,
		"duplicates_collapsed": m.DuplicatesCollapsed,
		"emails_sent":          m.EmailsSent,
		"last_processing_ms":   m.LastProcessingTime.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
