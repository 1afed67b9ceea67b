package metrics_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/newspipe/internal/metrics"
)

func TestMetrics_SnapshotCarriesCounters(t *testing.T) {
	t.Parallel()

	m := metrics.NewMetrics()
	m.IncrementPagesVisited()
	m.IncrementPagesVisited()
	m.IncrementCandidatesAccepted()
	m.IncrementCandidatesRejected()
	m.IncrementExtractionsSkipped()
	m.IncrementRequestsFailed()
	m.IncrementWriteFailures()

	snap := m.Snapshot()

	assert.Equal(t, int64(2), snap["pages_visited"])
	assert.Equal(t, int64(1), snap["candidates_accepted"])
	assert.Equal(t, int64(1), snap["candidates_rejected"])
	assert.Equal(t, int64(1), snap["extractions_skipped"])
	assert.Equal(t, int64(1), snap["requests_failed"])
	assert.Equal(t, int64(1), snap["write_failures"])
}

func TestMetrics_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	const workers = 16

	m := metrics.NewMetrics()

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m.IncrementCandidatesAccepted()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*100), m.Snapshot()["candidates_accepted"])
}
