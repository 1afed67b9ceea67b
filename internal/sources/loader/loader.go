// Package loader provides functionality for loading source configurations from files.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/jonesrussell/newspipe/internal/sources"
)

var (
	// ErrNoSources indicates no sources were found in the file.
	ErrNoSources = sources.ErrNoSources
	// ErrInvalidSourceFormat indicates the source format is invalid
	ErrInvalidSourceFormat = errors.New("invalid source format")
)

// file is the shape of a sources YAML file.
type file struct {
	Sources []map[string]any `yaml:"sources"`
}

// LoadFromFile reads source configurations from a YAML file.
func LoadFromFile(path string) ([]sources.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var f file
	if unmarshalErr := yaml.Unmarshal(data, &f); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", unmarshalErr)
	}
	if len(f.Sources) == 0 {
		return nil, ErrNoSources
	}

	configs := make([]sources.Source, 0, len(f.Sources))
	for _, raw := range f.Sources {
		var src sources.Source
		if decodeErr := decode(raw, &src); decodeErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSourceFormat, decodeErr)
		}
		configs = append(configs, src)
	}

	return configs, nil
}

// decode maps a raw source entry onto the Source struct.
func decode(raw map[string]any, out *sources.Source) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
