package common

import (
	"context"
	"fmt"

	"github.com/jonesrussell/newspipe/internal/config"
	"github.com/jonesrussell/newspipe/internal/logger"
	"github.com/jonesrussell/newspipe/internal/sources"
	"github.com/jonesrussell/newspipe/internal/sources/apiclient"
	"github.com/jonesrussell/newspipe/internal/sources/loader"
)

// LoadSources builds the source manager from the configured origin. A
// sources API takes precedence over the YAML file when both are set.
func LoadSources(ctx context.Context, cfg *config.Config, log logger.Interface) (*sources.Sources, error) {
	var (
		configs []sources.Source
		err     error
	)

	if cfg.App.SourcesAPIURL != "" {
		log.Info("Loading sources from API", "url", cfg.App.SourcesAPIURL)
		configs, err = apiclient.New(cfg.App.SourcesAPIURL, log).Fetch(ctx)
	} else {
		log.Info("Loading sources from file", "path", cfg.App.SourcesFile)
		configs, err = loader.LoadFromFile(cfg.App.SourcesFile)
	}
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}

	return sources.New(configs, log)
}
