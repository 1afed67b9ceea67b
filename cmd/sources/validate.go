package sources

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newspipe/cmd/common"
	internalsources "github.com/jonesrussell/newspipe/internal/sources"
)

// newValidateCmd creates the validate command. It applies stricter checks
// than loading does: a pattern that the loader would warn about and skip is
// a hard failure here.
func newValidateCmd(getDeps func() (common.CommandDeps, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the source configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := getDeps()
			if err != nil {
				return err
			}

			srcs, err := common.LoadSources(cmd.Context(), deps.Config, deps.Logger)
			if err != nil {
				return err
			}

			var failures int
			for _, source := range srcs.All() {
				for _, problem := range checkSource(source) {
					deps.Logger.Error("Source invalid", "source", source.ID, "problem", problem)
					failures++
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d validation failure(s)", failures)
			}
			deps.Logger.Info("All sources valid", "count", len(srcs.All()))
			return nil
		},
	}
}

// checkSource reports every problem with one source.
func checkSource(source internalsources.Source) []string {
	var problems []string

	for _, section := range source.Sections {
		parsed, err := url.Parse(section.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			problems = append(problems, fmt.Sprintf("section url %q is not absolute", section.URL))
		}
	}

	if source.LinkPattern != "" {
		if _, err := regexp.Compile(source.LinkPattern); err != nil {
			problems = append(problems, fmt.Sprintf("link pattern %q does not compile: %v", source.LinkPattern, err))
		}
	}

	return problems
}
