// Package index implements the command-line interface for managing the
// Elasticsearch indices the pipeline writes to.
package index

import (
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
)

var forceDelete bool

// Command returns the index command for use in the root command.
func Command(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage Elasticsearch indices",
		Long:  `Manage the links, articles, and batches indices.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(createListCmd(getDeps), createCreateCmd(getDeps), createDeleteCmd(getDeps))
	return cmd
}

func createListCmd(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all indices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, getDeps)
		},
	}
}

func createCreateCmd(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the pipeline indices",
		Long:  `Create the links, articles, and batches indices with their mappings. Existing indices are left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd, getDeps)
		},
	}
}

func createDeleteCmd(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [index-name...]",
		Short: "Delete one or more indices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args, getDeps)
		},
	}
	cmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Force deletion without confirmation")
	return cmd
}
