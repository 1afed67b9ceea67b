// Package sources manages news source configuration for crawl runs.
package sources

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jonesrussell/newspipe/internal/logger"
)

var (
	// ErrSourceNotFound indicates the requested source does not exist.
	ErrSourceNotFound = errors.New("source not found")
	// ErrNoSources indicates no sources were configured.
	ErrNoSources = errors.New("no sources found in configuration")
)

// Section is one listing page of a source, tied to a category.
type Section struct {
	CategoryID string `json:"category" mapstructure:"category"`
	URL        string `json:"url"      mapstructure:"url"`
}

// Source is one configured news source. Immutable for the duration of a run.
type Source struct {
	ID       string    `json:"id"       mapstructure:"id"`
	Name     string    `json:"name"     mapstructure:"name"`
	Sections []Section `json:"sections" mapstructure:"sections"`
	// LinkPattern, when set, replaces the generic link heuristics for this
	// source. Some sources publish under paths or mirror domains the
	// heuristics would reject.
	LinkPattern string `json:"link_pattern" mapstructure:"link_pattern"`
	// Render requests the listing pages through the rendering service,
	// for sources that populate their front pages with JavaScript.
	Render bool `json:"render" mapstructure:"render"`

	compiledPattern *regexp.Regexp
}

// CompiledLinkPattern returns the compiled override pattern, or nil when the
// source has none (or the pattern does not compile).
func (s *Source) CompiledLinkPattern() *regexp.Regexp {
	return s.compiledPattern
}

// Sources holds the configured sources for a run.
type Sources struct {
	sources []Source
	logger  logger.Interface
}

// New creates a source manager from already-loaded source configs.
func New(configs []Source, log logger.Interface) (*Sources, error) {
	if len(configs) == 0 {
		return nil, ErrNoSources
	}

	sources := make([]Source, len(configs))
	copy(sources, configs)

	for i := range sources {
		if err := sources[i].validate(); err != nil {
			return nil, fmt.Errorf("source %q: %w", sources[i].ID, err)
		}
		if sources[i].LinkPattern != "" {
			re, err := regexp.Compile(sources[i].LinkPattern)
			if err != nil {
				log.Warn("Ignoring invalid link pattern",
					"source", sources[i].ID,
					"pattern", sources[i].LinkPattern,
					"error", err)
				continue
			}
			sources[i].compiledPattern = re
		}
	}

	return &Sources{sources: sources, logger: log}, nil
}

// All returns the configured sources.
func (s *Sources) All() []Source {
	return s.sources
}

// FindByID returns the source with the given id.
func (s *Sources) FindByID(id string) (*Source, error) {
	for i := range s.sources {
		if s.sources[i].ID == id {
			return &s.sources[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, id)
}

// validate checks the fields every source must carry.
func (s *Source) validate() error {
	if s.ID == "" {
		return errors.New("missing id")
	}
	if len(s.Sections) == 0 {
		return errors.New("no sections")
	}
	for _, sec := range s.Sections {
		if sec.URL == "" {
			return fmt.Errorf("section %q has no url", sec.CategoryID)
		}
		if sec.CategoryID == "" {
			return fmt.Errorf("section %q has no category", sec.URL)
		}
	}
	return nil
}
