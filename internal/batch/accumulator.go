// Package batch tracks per-run link counters and produces the final batch
// summary. One accumulator is created when a crawl run opens and closed
// exactly once when it ends; counters are serialized so concurrent
// observations across sources never lose an increment.
package batch

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/newspipe/internal/domain"
)

// ErrClosed is returned when the accumulator is used after Close. This is a
// programming error in the caller, not a transient condition.
var ErrClosed = errors.New("batch accumulator already closed")

// Accumulator aggregates link counts for one crawl run.
type Accumulator struct {
	mu        sync.Mutex
	id        string
	startedAt time.Time
	closed    bool
	linkCount int64
	bySource  map[string]int64
}

// NewAccumulator opens a new batch with a fresh id and start timestamp.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		id:        uuid.NewString(),
		startedAt: time.Now().UTC(),
		bySource:  make(map[string]int64),
	}
}

// ID returns the batch id.
func (a *Accumulator) ID() string {
	return a.id
}

// StartedAt returns when the batch opened.
func (a *Accumulator) StartedAt() time.Time {
	return a.startedAt
}

// RecordLink counts one accepted link for the source. Counts reflect
// "accepted for write": callers increment before issuing the corresponding
// store writes, so a close that follows all RecordLink calls has a complete
// view even if some writes are still in flight.
func (a *Accumulator) RecordLink(sourceID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}

	a.linkCount++
	a.bySource[sourceID]++
	return nil
}

// LinkCount returns the total accepted links so far.
func (a *Accumulator) LinkCount() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.linkCount
}

// Close finalizes the batch, stamps the end time, attaches the external run
// statistics, and returns the immutable summary. Calling Close twice, or
// RecordLink after Close, fails with ErrClosed.
func (a *Accumulator) Close(stats map[string]any) (*domain.BatchSummary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrClosed
	}
	a.closed = true

	bySource := make(map[string]int64, len(a.bySource))
	for source, count := range a.bySource {
		bySource[source] = count
	}

	return &domain.BatchSummary{
		ID:                a.id,
		StartedAt:         a.startedAt,
		EndedAt:           time.Now().UTC(),
		LinkCount:         a.linkCount,
		LinkCountBySource: bySource,
		Stats:             stats,
	}, nil
}
