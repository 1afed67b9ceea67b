package index

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
)

// runDelete deletes the named indices, asking for confirmation unless
// --force is set.
func runDelete(cmd *cobra.Command, args []string, getDeps func() (common.CommandDeps, error)) error {
	deps, err := getDeps()
	if err != nil {
		return err
	}

	store, err := common.CreateStorage(cmd.Context(), deps.Config, deps.Logger)
	if err != nil {
		return err
	}

	if !forceDelete {
		fmt.Fprintf(os.Stdout, "Delete indices %s? [y/N]: ", strings.Join(args, ", "))
		reader := bufio.NewReader(os.Stdin)
		answer, readErr := reader.ReadString('\n')
		if readErr != nil {
			return fmt.Errorf("read confirmation: %w", readErr)
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			deps.Logger.Info("Deletion cancelled")
			return nil
		}
	}

	for _, name := range args {
		if err := store.DeleteIndex(cmd.Context(), name); err != nil {
			return fmt.Errorf("delete index %q: %w", name, err)
		}
		deps.Logger.Info("Index deleted", "index", name)
	}
	return nil
}
