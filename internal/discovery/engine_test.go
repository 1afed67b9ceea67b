package discovery_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newspipe/internal/batch"
	"github.com/jonesrussell/newspipe/internal/config"
	"github.com/jonesrussell/newspipe/internal/discovery"
	"github.com/jonesrussell/newspipe/internal/domain"
	"github.com/jonesrussell/newspipe/internal/extract"
	"github.com/jonesrussell/newspipe/internal/ingest"
	"github.com/jonesrussell/newspipe/internal/logger"
	"github.com/jonesrussell/newspipe/internal/merge"
	"github.com/jonesrussell/newspipe/internal/metrics"
	"github.com/jonesrussell/newspipe/internal/sources"
)

const listingHTML = `<html><body>
<a href="/news/fire-crews-battle-blaze-overnight">Fire Crews Battle Blaze Overnight</a>
<a href="/news/council-approves-transit-plan-after-debate">Council Approves New Transit Plan After Debate</a>
<a href="/about">About</a>
<a href="/subscribe">Subscribe to our newsletter today friends</a>
</body></html>`

const storyHTML = `<html><head>
<meta property="og:type" content="article">
<meta property="og:title" content="Fire Crews Battle Blaze Overnight">
<link rel="canonical" href="https://example.com/news/fire-crews-battle-blaze-overnight">
</head><body><article><p>Fire crews worked through the night.</p></article></body></html>`

const nonArticleHTML = `<html><head>
<meta property="og:type" content="website">
</head><body><p>Listing of subscriptions.</p></body></html>`

// memoryStore collects writes; upsert semantics mirror the real store.
type memoryStore struct {
	mu        sync.Mutex
	documents map[string]map[string]any
}

func newMemoryStore() *memoryStore {
	return &memoryStore{documents: make(map[string]map[string]any)}
}

func (m *memoryStore) CreateOrReplace(_ context.Context, index, id string, document any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.documents[index] == nil {
		m.documents[index] = make(map[string]any)
	}
	m.documents[index][id] = document
	return nil
}

func (m *memoryStore) AtomicUpsert(_ context.Context, index, id string, update any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.documents[index] == nil {
		m.documents[index] = make(map[string]any)
	}
	if _, exists := m.documents[index][id]; exists {
		return nil
	}
	op := update.(merge.UpsertOp)
	m.documents[index][id] = op.Upsert
	return nil
}

func (m *memoryStore) count(index string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.documents[index])
}

func TestEngine_RunDiscoversExtractsAndIngests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/news", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	})
	mux.HandleFunc("/news/fire-crews-battle-blaze-overnight", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(storyHTML))
	})
	mux.HandleFunc("/news/council-approves-transit-plan-after-debate", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(nonArticleHTML))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	// The test server has no registrable domain, so the source carries an
	// override pattern the way an IP-hosted or mirrored source would.
	srcs, err := sources.New([]sources.Source{{
		ID:          "example",
		Name:        "Example News",
		LinkPattern: `/news/[a-z-]+$`,
		Sections: []sources.Section{
			{CategoryID: "world", URL: server.URL + "/news"},
		},
	}}, logger.NewNoOp())
	require.NoError(t, err)

	store := newMemoryStore()
	acc := batch.NewAccumulator()
	coord := ingest.NewCoordinator(store, ingest.DefaultIndices(), acc, logger.NewNoOp())

	engine, err := discovery.NewEngine(
		srcs,
		coord,
		extract.New(),
		metrics.NewMetrics(),
		nil,
		config.CrawlerConfig{
			Parallelism:    2,
			RequestTimeout: 5 * time.Second,
			UserAgent:      "newspipe-test/1.0",
		},
		logger.NewNoOp(),
	)
	require.NoError(t, err)

	summary, err := engine.Run(context.Background())
	require.NoError(t, err)

	// Two anchors matched the override pattern. One fetched page turned out
	// to be a non-article and was skipped, so exactly one article and its
	// link observation were written.
	assert.Equal(t, 1, store.count("articles"))
	assert.Equal(t, 1, store.count("links"))
	assert.Equal(t, int64(1), summary.LinkCount)
	assert.Equal(t, int64(1), summary.LinkCountBySource["example"])

	var article domain.Article
	store.mu.Lock()
	for _, doc := range store.documents["articles"] {
		article = doc.(domain.Article)
	}
	store.mu.Unlock()

	assert.Equal(t, "Fire Crews Battle Blaze Overnight", article.Title)
	assert.Equal(t, []string{"world"}, article.CategoryIDs)
	assert.Equal(t, "https://example.com/news/fire-crews-battle-blaze-overnight", article.CanonicalURL)
}
