// Package crawl implements the crawl command: it runs one complete batch
// over every configured source and section.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
	"github.com/jonesrussell/newspipe/internal/batch"
	"github.com/jonesrussell/newspipe/internal/discovery"
	"github.com/jonesrussell/newspipe/internal/domain"
	"github.com/jonesrussell/newspipe/internal/extract"
	"github.com/jonesrussell/newspipe/internal/ingest"
	"github.com/jonesrussell/newspipe/internal/metrics"
	"github.com/jonesrussell/newspipe/internal/sources"
)

// Command returns the crawl command for use in the root command.
func Command(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Run one crawl batch",
		Long: `Crawl every section of every configured source once, ingest the
discovered articles, and persist the batch summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := getDeps()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := RunBatch(ctx, deps)
			if err != nil {
				if errors.Is(err, sources.ErrNoSources) {
					return nil
				}
				return err
			}

			deps.Logger.Info("Batch complete",
				"batch_id", summary.ID,
				"link_count", summary.LinkCount,
				"duration", summary.EndedAt.Sub(summary.StartedAt).String())
			return nil
		},
	}
}

// RunBatch runs a single batch end to end. The scheduler command reuses it
// for every tick.
func RunBatch(ctx context.Context, deps common.CommandDeps) (*domain.BatchSummary, error) {
	srcs, err := common.LoadSources(ctx, deps.Config, deps.Logger)
	if err != nil {
		if errors.Is(err, sources.ErrNoSources) {
			deps.Logger.Info("No sources configured, nothing to crawl")
			return nil, err
		}
		return nil, err
	}

	store, err := common.CreateStorage(ctx, deps.Config, deps.Logger)
	if err != nil {
		return nil, err
	}
	if err = store.EnsureIndices(ctx); err != nil {
		return nil, fmt.Errorf("ensure indices: %w", err)
	}

	opts := store.Options()
	coordinator := ingest.NewCoordinator(
		store,
		ingest.Indices{
			Links:    opts.LinksIndex,
			Articles: opts.ArticlesIndex,
			Batches:  opts.BatchesIndex,
		},
		batch.NewAccumulator(),
		deps.Logger,
	)

	var renderer *discovery.Renderer
	if deps.Config.Crawler.RenderURL != "" {
		renderer = discovery.NewRenderer(deps.Config.Crawler.RenderURL, deps.Logger)
	}

	engine, err := discovery.NewEngine(
		srcs,
		coordinator,
		extract.New(),
		metrics.NewMetrics(),
		renderer,
		deps.Config.Crawler,
		deps.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("create discovery engine: %w", err)
	}

	deps.Logger.Info("Starting crawl batch", "sources", len(srcs.All()))
	return engine.Run(ctx)
}
