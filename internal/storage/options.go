package storage

// Index names for the three persisted record kinds.
const (
	DefaultLinksIndex    = "links"
	DefaultArticlesIndex = "articles"
	DefaultBatchesIndex  = "batches"
)

// Options holds configuration options for the Elasticsearch storage.
type Options struct {
	LinksIndex    string
	ArticlesIndex string
	BatchesIndex  string
	// UpsertRetryOnConflict is how many times the store itself re-runs an
	// atomic upsert on a version conflict before reporting ErrConflict.
	UpsertRetryOnConflict int
}

// DefaultOptions returns default options for the storage.
func DefaultOptions() Options {
	return Options{
		LinksIndex:            DefaultLinksIndex,
		ArticlesIndex:         DefaultArticlesIndex,
		BatchesIndex:          DefaultBatchesIndex,
		UpsertRetryOnConflict: 3,
	}
}
