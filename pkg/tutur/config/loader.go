package config

import (
	"fmt"

	"github.com/cognicore/tutur/pkg/tutur/chunk"
	"github.com/cognicore/tutur/pkg/tutur/depparse"
	"github.com/cognicore/tutur/pkg/tutur/kb"
	"github.com/cognicore/tutur/pkg/tutur/postag"
	"github.com/cognicore/tutur/pkg/tutur/tokenize"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	LexiconPath     string
	PatternsPath    string
	TransitionsPath string
	SettingsPath    string
}

// Components holds all loaded configuration components. Every stage shares
// the one KnowledgeBase.
type Components struct {
	KB        *kb.KnowledgeBase
	Settings  Settings
	Tokenizer *tokenize.Tokenizer
	Tagger    *postag.Tagger
	Chunker   *chunk.Chunker
	Extractor *depparse.Extractor
}

// Load reads all configuration files and returns initialized components.
// Empty paths fall back to empty tables and default settings.
func (l *Loader) Load() (*Components, error) {
	k, err := kb.Load(l.LexiconPath, l.PatternsPath, l.TransitionsPath)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	settings := DefaultSettings()
	if l.SettingsPath != "" {
		settings, err = LoadSettings(l.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
	}

	return &Components{
		KB:        k,
		Settings:  settings,
		Tokenizer: tokenize.New(k, settings.Tokenizer),
		Tagger:    postag.New(k, settings.Tagger),
		Chunker:   chunk.New(chunk.Options{}),
		Extractor: depparse.New(settings.Extractor),
	}, nil
}
