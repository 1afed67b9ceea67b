// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"

	"github.com/jonesrussell/newspipe/internal/config"
	"github.com/jonesrussell/newspipe/internal/logger"
)

// CommandDeps holds common dependencies for all commands.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewCommandDeps loads configuration and creates the logger. Debug forces
// the log level to debug regardless of configuration.
func NewCommandDeps(cfgFile string, debug bool) (CommandDeps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	logCfg := cfg.Logger
	if debug {
		logCfg.Level = logger.DebugLevel
	}

	log, err := logger.New(&logCfg)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}
	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}
