// Package sources implements the command-line interface for inspecting and
// validating the configured content sources.
package sources

import (
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
)

// Command returns the sources command for use in the root command.
func Command(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage content sources",
		Long:  `Inspect and validate the sources the crawler reads from.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newListCmd(getDeps), newValidateCmd(getDeps))
	return cmd
}
