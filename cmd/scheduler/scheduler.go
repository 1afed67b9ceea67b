// Package scheduler implements the scheduler command: it runs crawl batches
// on a cron schedule until interrupted.
package scheduler

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
	"github.com/jonesrussell/newspipe/cmd/crawl"
)

// Command returns the scheduler command for use in the root command.
func Command(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Run crawl batches on a schedule",
		Long: `Run a crawl batch on the configured cron schedule until interrupted.
The --schedule flag overrides the crawler.schedule configuration value.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := getDeps()
			if err != nil {
				return err
			}

			spec := schedule
			if spec == "" {
				spec = deps.Config.Crawler.Schedule
			}
			if spec == "" {
				return fmt.Errorf("no schedule configured: set crawler.schedule or pass --schedule")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, deps, spec)
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", `cron schedule, e.g. "0 */2 * * *"`)
	return cmd
}

// run starts the cron loop and blocks until the context is cancelled. A tick
// that fires while a batch is still running is skipped, so batches never
// overlap.
func run(ctx context.Context, deps common.CommandDeps, spec string) error {
	running := make(chan struct{}, 1)

	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		select {
		case running <- struct{}{}:
		default:
			deps.Logger.Warn("Previous batch still running, skipping this tick")
			return
		}
		defer func() { <-running }()

		summary, batchErr := crawl.RunBatch(ctx, deps)
		if batchErr != nil {
			deps.Logger.Error("Scheduled batch failed", "error", batchErr)
			return
		}
		deps.Logger.Info("Scheduled batch complete",
			"batch_id", summary.ID,
			"link_count", summary.LinkCount)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	deps.Logger.Info("Scheduler started", "schedule", spec)
	scheduler.Start()

	<-ctx.Done()
	deps.Logger.Info("Shutdown signal received, stopping scheduler")

	// Let an in-flight batch finish before returning.
	<-scheduler.Stop().Done()
	return nil
}
