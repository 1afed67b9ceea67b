package batch_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newspipe/internal/batch"
)

func TestAccumulator_CountsPerSource(t *testing.T) {
	t.Parallel()

	acc := batch.NewAccumulator()

	require.NoError(t, acc.RecordLink("example"))
	require.NoError(t, acc.RecordLink("example"))
	require.NoError(t, acc.RecordLink("apnews"))

	summary, err := acc.Close(nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.LinkCount)
	assert.Equal(t, int64(2), summary.LinkCountBySource["example"])
	assert.Equal(t, int64(1), summary.LinkCountBySource["apnews"])
}

func TestAccumulator_SummaryCarriesBatchIdentity(t *testing.T) {
	t.Parallel()

	acc := batch.NewAccumulator()
	stats := map[string]any{"pages_visited": 12}

	summary, err := acc.Close(stats)
	require.NoError(t, err)

	assert.Equal(t, acc.ID(), summary.ID)
	assert.Equal(t, acc.StartedAt(), summary.StartedAt)
	assert.False(t, summary.EndedAt.Before(summary.StartedAt))
	assert.Equal(t, stats, summary.Stats)
}

func TestAccumulator_RecordAfterCloseFails(t *testing.T) {
	t.Parallel()

	acc := batch.NewAccumulator()
	_, err := acc.Close(nil)
	require.NoError(t, err)

	assert.ErrorIs(t, acc.RecordLink("example"), batch.ErrClosed)
}

func TestAccumulator_DoubleCloseFails(t *testing.T) {
	t.Parallel()

	acc := batch.NewAccumulator()
	_, err := acc.Close(nil)
	require.NoError(t, err)

	_, err = acc.Close(nil)
	assert.ErrorIs(t, err, batch.ErrClosed)
}

func TestAccumulator_ConcurrentRecordLink(t *testing.T) {
	t.Parallel()

	const (
		workers       = 8
		linksPerBatch = 250
	)

	acc := batch.NewAccumulator()

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range linksPerBatch {
				_ = acc.RecordLink("example")
			}
		}()
	}
	wg.Wait()

	summary, err := acc.Close(nil)
	require.NoError(t, err)

	assert.Equal(t, int64(workers*linksPerBatch), summary.LinkCount)
	assert.Equal(t, int64(workers*linksPerBatch), summary.LinkCountBySource["example"])
}

func TestAccumulator_FreshBatchIDs(t *testing.T) {
	t.Parallel()

	first := batch.NewAccumulator()
	second := batch.NewAccumulator()

	assert.NotEqual(t, first.ID(), second.ID())
}
