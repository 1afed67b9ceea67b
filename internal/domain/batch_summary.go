package domain

import "time"

// BatchSummary aggregates one complete crawl run. It is created when the run
// opens, mutated additively while the run is live, and persisted exactly once
// when the run closes. Field names follow the batches index contract.
type BatchSummary struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	// Total accepted links in the batch.
	LinkCount int64 `json:"link_count"`
	// Accepted links broken down by source.
	LinkCountBySource map[string]int64 `json:"link_count_by_source"`
	// Opaque run statistics supplied by the crawl engine at close.
	Stats map[string]any `json:"stats"`
}
