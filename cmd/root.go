// Package cmd implements the command-line interface for newspipe. It
// provides the root command and subcommands for running crawl batches and
// operating the supporting services.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
	"github.com/jonesrussell/newspipe/cmd/crawl"
	cmdhttpd "github.com/jonesrussell/newspipe/cmd/httpd"
	cmdindex "github.com/jonesrussell/newspipe/cmd/index"
	cmdscheduler "github.com/jonesrussell/newspipe/cmd/scheduler"
	cmdsources "github.com/jonesrussell/newspipe/cmd/sources"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "newspipe",
		Short: "A news crawler and article ingest pipeline",
		Long: `newspipe discovers article links on configured news sources,
extracts their content, and merges repeat sightings into a single
Elasticsearch document per article.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so configuration sees its variables.
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

// getDeps builds command dependencies from the current flag values. Passed
// to subcommands as a factory so config is only loaded when a command runs.
func getDeps() (common.CommandDeps, error) {
	return common.NewCommandDeps(cfgFile, debug)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./config.yaml or /etc/newspipe/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "newspipe version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(crawl.Command(getDeps))
	rootCmd.AddCommand(cmdscheduler.Command(getDeps))
	rootCmd.AddCommand(cmdhttpd.Command(getDeps))
	rootCmd.AddCommand(cmdindex.Command(getDeps))
	rootCmd.AddCommand(cmdsources.Command(getDeps))
}
