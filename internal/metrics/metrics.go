// Package metrics collects per-run crawl statistics. A snapshot of these
// counters becomes the opaque stats blob persisted with the batch summary.
package metrics

import (
	"sync"
	"time"
)

// Metrics holds the crawl-run counters.
type Metrics struct {
	mu                 sync.Mutex
	startTime          time.Time
	pagesVisited       int64
	requestsFailed     int64
	candidatesAccepted int64
	candidatesRejected int64
	extractionsSkipped int64
	writeFailures      int64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now().UTC()}
}

// IncrementPagesVisited counts one listing or article page fetched.
func (m *Metrics) IncrementPagesVisited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pagesVisited++
}

// IncrementRequestsFailed counts one failed fetch.
func (m *Metrics) IncrementRequestsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestsFailed++
}

// IncrementCandidatesAccepted counts one anchor that passed validation.
func (m *Metrics) IncrementCandidatesAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidatesAccepted++
}

// IncrementCandidatesRejected counts one anchor the validator dropped.
func (m *Metrics) IncrementCandidatesRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidatesRejected++
}

// IncrementExtractionsSkipped counts one fetched page that was not an article.
func (m *Metrics) IncrementExtractionsSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extractionsSkipped++
}

// IncrementWriteFailures counts one store write that failed after retries.
func (m *Metrics) IncrementWriteFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeFailures++
}

// Snapshot returns the counters as the stats map persisted with the batch.
func (m *Metrics) Snapshot() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	return map[string]any{
		"start_time":          m.startTime,
		"elapsed_seconds":     time.Since(m.startTime).Seconds(),
		"pages_visited":       m.pagesVisited,
		"requests_failed":     m.requestsFailed,
		"candidates_accepted": m.candidatesAccepted,
		"candidates_rejected": m.candidatesRejected,
		"extractions_skipped": m.extractionsSkipped,
		"write_failures":      m.writeFailures,
	}
}
