package kb

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LexiconFile is the YAML layout of a lexicon file:
//
//	base_words: [makan, duduk, buah]
//	words:
//	  dia: PRP-PER
//	  di: IN-LOC
type LexiconFile struct {
	BaseWords []string          `yaml:"base_words"`
	Words     map[string]string `yaml:"words"`
}

// PatternFile is the YAML layout of a regex table. List order is precedence
// order:
//
//	patterns:
//	  - tag: DT-CARD
//	    match: ['\d+', '\d+[.,]\d+']
//	  - tag: SYM-DOT
//	    match: ['\.']
type PatternFile struct {
	Patterns []struct {
		Tag   string   `yaml:"tag"`
		Match []string `yaml:"match"`
	} `yaml:"patterns"`
}

// TransitionFile is the YAML layout of the tag-bigram score table:
//
//	unseen: -10
//	scores:
//	  "<s>":
//	    PRP-PER: -0.4
//	  PRP-PER:
//	    VB-ACT: -0.2
type TransitionFile struct {
	Unseen *float64                      `yaml:"unseen"`
	Scores map[string]map[string]float64 `yaml:"scores"`
}

// AddLexiconYAML decodes a lexicon document into the builder.
func (b *Builder) AddLexiconYAML(data []byte) error {
	var f LexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	b.AddBaseWords(f.BaseWords...)
	for w, tag := range f.Words {
		b.AddWord(w, tag)
	}
	return nil
}

// AddPatternsYAML decodes a pattern table into the builder, appending after
// any patterns already present.
func (b *Builder) AddPatternsYAML(data []byte) error {
	var f PatternFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	for _, row := range f.Patterns {
		for _, expr := range row.Match {
			b.AddPattern(row.Tag, expr)
		}
	}
	return nil
}

// AddTransitionsYAML decodes a transition table into the builder.
func (b *Builder) AddTransitionsYAML(data []byte) error {
	var f TransitionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.Unseen != nil {
		b.SetUnseen(*f.Unseen)
	}
	for prev, row := range f.Scores {
		for curr, s := range row {
			b.SetScore(prev, curr, s)
		}
	}
	return nil
}

// Load reads the three knowledge files and builds a KnowledgeBase. An empty
// path leaves that table empty.
func Load(lexiconPath, patternsPath, transitionsPath string) (*KnowledgeBase, error) {
	b := NewBuilder()
	steps := []struct {
		name string
		path string
		add  func([]byte) error
	}{
		{"lexicon", lexiconPath, b.AddLexiconYAML},
		{"patterns", patternsPath, b.AddPatternsYAML},
		{"transitions", transitionsPath, b.AddTransitionsYAML},
	}
	for _, s := range steps {
		if s.path == "" {
			continue
		}
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", s.name, err)
		}
		if err := s.add(data); err != nil {
			return nil, fmt.Errorf("parse %s %s: %w", s.name, s.path, err)
		}
	}
	return b.Build()
}
