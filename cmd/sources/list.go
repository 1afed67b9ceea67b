package sources

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
	internalsources "github.com/jonesrussell/newspipe/internal/sources"
)

// newListCmd creates the list command.
func newListCmd(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured sources",
		Long:  `List every source with its sections and link handling.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := getDeps()
			if err != nil {
				return err
			}

			srcs, err := common.LoadSources(cmd.Context(), deps.Config, deps.Logger)
			if err != nil {
				return err
			}

			renderTable(srcs.All())
			return nil
		},
	}
}

// renderTable formats the sources as a table on stdout.
func renderTable(configs []internalsources.Source) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Sections", "Link Pattern", "Rendered"})

	for _, source := range configs {
		rendered := ""
		if source.Render {
			rendered = "yes"
		}
		t.AppendRow(table.Row{
			source.ID,
			source.Name,
			strconv.Itoa(len(source.Sections)),
			source.LinkPattern,
			rendered,
		})
	}

	t.Render()
}
