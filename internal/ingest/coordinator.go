// Package ingest orchestrates the per-candidate pipeline: resolve the
// article's identity, record the link observation, fold the article into its
// canonical document, and keep the batch counters current. The coordinator
// is safe under concurrent invocation; all cross-observation coordination
// for one article id lives in the store's atomic upsert.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/newspipe/internal/batch"
	"github.com/jonesrussell/newspipe/internal/domain"
	"github.com/jonesrussell/newspipe/internal/identity"
	"github.com/jonesrussell/newspipe/internal/logger"
	"github.com/jonesrussell/newspipe/internal/merge"
	"github.com/jonesrussell/newspipe/internal/retry"
	"github.com/jonesrussell/newspipe/internal/storage"
)

// Store is the document-store capability the coordinator writes through.
type Store interface {
	// CreateOrReplace writes a whole document under an id.
	CreateOrReplace(ctx context.Context, index, id string, document any) error
	// AtomicUpsert applies a scripted insert-or-update as one atomic operation.
	AtomicUpsert(ctx context.Context, index, id string, update any) error
}

var _ Store = (*storage.Storage)(nil)

// Indices names the three output indices.
type Indices struct {
	Links    string
	Articles string
	Batches  string
}

// DefaultIndices returns the standard index names.
func DefaultIndices() Indices {
	return Indices{
		Links:    storage.DefaultLinksIndex,
		Articles: storage.DefaultArticlesIndex,
		Batches:  storage.DefaultBatchesIndex,
	}
}

// Coordinator runs the ingest pipeline for one crawl run.
type Coordinator struct {
	store       Store
	indices     Indices
	accumulator *batch.Accumulator
	logger      logger.Interface
	retryCfg    retry.Config
	now         func() time.Time
}

// NewCoordinator creates a coordinator bound to one open batch.
func NewCoordinator(
	store Store,
	indices Indices,
	accumulator *batch.Accumulator,
	log logger.Interface,
) *Coordinator {
	retryCfg := retry.DefaultConfig()
	retryCfg.IsRetryable = func(err error) bool {
		return errors.Is(err, storage.ErrConflict)
	}

	return &Coordinator{
		store:       store,
		indices:     indices,
		accumulator: accumulator,
		logger:      log,
		retryCfg:    retryCfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetRetryConfig overrides the upsert retry policy. Conflict-only
// retryability is preserved unless the config supplies its own predicate.
func (c *Coordinator) SetRetryConfig(cfg retry.Config) {
	if cfg.IsRetryable == nil {
		cfg.IsRetryable = c.retryCfg.IsRetryable
	}
	c.retryCfg = cfg
}

// Ingest processes one extracted article candidate: it emits a fresh link
// observation and an atomic article upsert as two independent writes. A
// failure of one write never suppresses the other; both outcomes are
// reported to the caller.
func (c *Coordinator) Ingest(ctx context.Context, cand *domain.Candidate, ext *domain.Extraction) error {
	articleID := identity.ResolveID(ext.CanonicalURL, ext.URL)
	now := c.now()

	observation := &domain.LinkObservation{
		ID:             uuid.NewString(),
		ArticleID:      articleID,
		SourceID:       cand.SourceID,
		CategoryID:     cand.CategoryID,
		BatchID:        c.accumulator.ID(),
		BatchStartedAt: c.accumulator.StartedAt(),
		CrawledAt:      now,
		Position:       cand.Position,
	}

	upsert := merge.BuildUpsert(articleID, cand.SourceID, cand.CategoryID, ext, now)

	// Counters reflect "accepted for write" and must be bumped before the
	// writes go out, so a close that follows all Ingest calls sees them all.
	if err := c.accumulator.RecordLink(cand.SourceID); err != nil {
		return fmt.Errorf("record link for source %q: %w", cand.SourceID, err)
	}

	var linkErr, articleErr error

	if err := c.store.CreateOrReplace(ctx, c.indices.Links, observation.ID, observation); err != nil {
		linkErr = fmt.Errorf("write link observation %s: %w", observation.ID, err)
		c.logger.Error("Link observation write failed",
			"observationID", observation.ID,
			"articleID", articleID,
			"error", err,
		)
	}

	if err := c.upsertArticle(ctx, upsert); err != nil {
		articleErr = fmt.Errorf("upsert article %s: %w", articleID, err)
		c.logger.Error("Article upsert failed",
			"articleID", articleID,
			"source", cand.SourceID,
			"category", cand.CategoryID,
			"error", err,
		)
	}

	if linkErr == nil && articleErr == nil {
		c.logger.Debug("Ingested article candidate",
			"articleID", articleID,
			"source", cand.SourceID,
			"category", cand.CategoryID,
			"position", cand.Position,
		)
	}

	return errors.Join(linkErr, articleErr)
}

// upsertArticle applies the upsert with bounded retries on version conflicts.
func (c *Coordinator) upsertArticle(ctx context.Context, op merge.UpsertOp) error {
	return retry.Do(ctx, c.retryCfg, func() error {
		return c.store.AtomicUpsert(ctx, c.indices.Articles, op.ArticleID, op)
	})
}

// Close finalizes the batch and persists its summary exactly once. Callers
// must not invoke Close while Ingest calls for this batch are still in
// flight.
func (c *Coordinator) Close(ctx context.Context, stats map[string]any) (*domain.BatchSummary, error) {
	summary, err := c.accumulator.Close(stats)
	if err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}

	if writeErr := c.store.CreateOrReplace(ctx, c.indices.Batches, summary.ID, summary); writeErr != nil {
		return summary, fmt.Errorf("write batch summary %s: %w", summary.ID, writeErr)
	}

	c.logger.Info("Batch closed",
		"batchID", summary.ID,
		"linkCount", summary.LinkCount,
		"sources", len(summary.LinkCountBySource),
	)
	return summary, nil
}
