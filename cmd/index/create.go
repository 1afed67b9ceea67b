package index

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
)

// runCreate ensures the three pipeline indices exist with their mappings.
func runCreate(cmd *cobra.Command, getDeps func() (common.CommandDeps, error)) error {
	deps, err := getDeps()
	if err != nil {
		return err
	}

	store, err := common.CreateStorage(cmd.Context(), deps.Config, deps.Logger)
	if err != nil {
		return err
	}

	if err := store.EnsureIndices(cmd.Context()); err != nil {
		return fmt.Errorf("ensure indices: %w", err)
	}

	opts := store.Options()
	deps.Logger.Info("Indices ready",
		"links", opts.LinksIndex,
		"articles", opts.ArticlesIndex,
		"batches", opts.BatchesIndex)
	return nil
}
