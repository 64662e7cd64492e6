package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/tutur/pkg/tutur/depparse"
	"github.com/cognicore/tutur/pkg/tutur/internalerr"
	"github.com/cognicore/tutur/pkg/tutur/postag"
	"github.com/cognicore/tutur/pkg/tutur/tokenize"
)

// Settings holds the per-stage options:
//
//	tokenizer:
//	  split_affixes: true
//	  handle_repeats: true
//	  split_particles: true
//	tagger:
//	  max_candidates: 8
//	extractor:
//	  split_on_colon: false
type Settings struct {
	Tokenizer tokenize.Options `yaml:"tokenizer"`
	Tagger    postag.Options   `yaml:"tagger"`
	Extractor depparse.Options `yaml:"extractor"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Tokenizer: tokenize.DefaultOptions(),
		Tagger:    postag.DefaultOptions(),
	}
}

// ParseSettings decodes a settings document. Keys the document leaves out
// keep their default values.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	if s.Tagger.MaxCandidates < 0 {
		return Settings{}, fmt.Errorf("tagger.max_candidates %d: %w", s.Tagger.MaxCandidates, internalerr.ErrInvalidConfig)
	}
	return s, nil
}

// LoadSettings loads settings from a YAML file
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	return ParseSettings(data)
}
