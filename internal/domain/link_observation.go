package domain

import "time"

// LinkObservation records one anchor followed during one batch. Observations
// are write-once: every sighting produces a new document, even when the
// article it points at has been seen before.
type LinkObservation struct {
	// Fresh identifier generated per observation.
	ID string `json:"id"`
	// Content-addressed article the link resolved to.
	ArticleID string `json:"articleId"`
	// Source and category context the link was discovered under.
	SourceID   string `json:"sourceId"`
	CategoryID string `json:"categoryId"`
	// Batch the observation belongs to.
	BatchID        string    `json:"batchId"`
	BatchStartedAt time.Time `json:"batchStartedAt"`
	// When the link was followed.
	CrawledAt time.Time `json:"crawledAt"`
	// Ordinal rank among accepted links on the listing page.
	Position int `json:"position"`
}
