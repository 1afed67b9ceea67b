package index

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
)

// runList prints every index in the cluster, marking the ones the pipeline
// writes to.
func runList(cmd *cobra.Command, getDeps func() (common.CommandDeps, error)) error {
	deps, err := getDeps()
	if err != nil {
		return err
	}

	store, err := common.CreateStorage(cmd.Context(), deps.Config, deps.Logger)
	if err != nil {
		return err
	}

	names, err := store.ListIndices(cmd.Context())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		deps.Logger.Info("No indices found")
		return nil
	}

	opts := store.Options()
	managed := map[string]bool{
		opts.LinksIndex:    true,
		opts.ArticlesIndex: true,
		opts.BatchesIndex:  true,
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Index", "Managed"})
	for _, name := range names {
		mark := ""
		if managed[name] {
			mark = "yes"
		}
		t.AppendRow(table.Row{name, mark})
	}
	t.Render()
	return nil
}
