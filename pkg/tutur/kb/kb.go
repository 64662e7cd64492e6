// Package kb holds the read-only linguistic knowledge every stage consults:
//   - Base words: the closed set of roots that validates segmentation
//   - Lexicon tags: the tag of a word when the lexicon knows one
//   - Patterns: an ordered regex → tag table, first full match wins
//   - Transitions: tag-bigram scores used by sequence decoding
//
// A KnowledgeBase is built once (Builder or the YAML loaders) and never
// changes afterwards, so one instance can be shared by any number of
// pipelines running concurrently.
package kb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cognicore/tutur/pkg/tutur/internalerr"
)

// DefaultUnseenScore is the transition score for tag pairs absent from the table.
const DefaultUnseenScore = -10.0

// Pattern is one row of the regex → tag table.
type Pattern struct {
	Tag  string
	Expr string
	re   *regexp.Regexp
}

// Match reports whether token matches the whole pattern.
func (p Pattern) Match(token string) bool {
	return p.re != nil && p.re.MatchString(token)
}

// KnowledgeBase is the immutable lexicon / pattern / transition store.
type KnowledgeBase struct {
	// word -> tag; "" marks a base word with no lexicon tag
	words       map[string]string
	patterns    []Pattern
	transitions map[string]map[string]float64
	unseen      float64
}

// IsBaseWord reports whether word (case-insensitive) is a known root.
func (k *KnowledgeBase) IsBaseWord(word string) bool {
	_, ok := k.words[strings.ToLower(word)]
	return ok
}

// LookupLexicon returns the lexicon tag for word, if it has one.
func (k *KnowledgeBase) LookupLexicon(word string) (string, bool) {
	tag, ok := k.words[strings.ToLower(word)]
	if !ok || tag == "" {
		return "", false
	}
	return tag, true
}

// Patterns returns a copy of the pattern table in precedence order.
func (k *KnowledgeBase) Patterns() []Pattern {
	out := make([]Pattern, len(k.patterns))
	copy(out, k.patterns)
	return out
}

// MatchPattern returns the tag of the first pattern that fully matches token.
func (k *KnowledgeBase) MatchPattern(token string) (string, bool) {
	for _, p := range k.patterns {
		if p.Match(token) {
			return p.Tag, true
		}
	}
	return "", false
}

// MatchAllPatterns returns the distinct tags of every matching pattern, in
// table order.
func (k *KnowledgeBase) MatchAllPatterns(token string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, p := range k.patterns {
		if !seen[p.Tag] && p.Match(token) {
			seen[p.Tag] = true
			tags = append(tags, p.Tag)
		}
	}
	return tags
}

// TransitionScore returns score(prev → curr), or the unseen score when the
// pair is not in the table.
func (k *KnowledgeBase) TransitionScore(prev, curr string) float64 {
	if row, ok := k.transitions[prev]; ok {
		if s, ok := row[curr]; ok {
			return s
		}
	}
	return k.unseen
}

// Stats returns statistics about the knowledge base contents.
func (k *KnowledgeBase) Stats() Stats {
	st := Stats{BaseWords: len(k.words), Patterns: len(k.patterns)}
	for _, tag := range k.words {
		if tag != "" {
			st.TaggedWords++
		}
	}
	for _, row := range k.transitions {
		st.Transitions += len(row)
	}
	return st
}

// Stats holds statistics about knowledge base contents.
type Stats struct {
	BaseWords   int // Every known word, tagged or not
	TaggedWords int // Words with a lexicon tag
	Patterns    int // Rows of the regex table
	Transitions int // Scored tag pairs
}

// Builder accumulates entries before producing an immutable KnowledgeBase.
// A Builder is not safe for concurrent use.
type Builder struct {
	words       map[string]string
	patterns    []Pattern
	transitions map[string]map[string]float64
	unseen      float64
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		words:       make(map[string]string),
		transitions: make(map[string]map[string]float64),
		unseen:      DefaultUnseenScore,
	}
}

// AddBaseWords registers untagged roots. Existing tags are kept.
func (b *Builder) AddBaseWords(words ...string) *Builder {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := b.words[w]; !ok {
			b.words[w] = ""
		}
	}
	return b
}

// AddWord registers word with a lexicon tag, replacing any previous tag.
func (b *Builder) AddWord(word, tag string) *Builder {
	word = strings.ToLower(strings.TrimSpace(word))
	if word != "" {
		b.words[word] = strings.TrimSpace(tag)
	}
	return b
}

// AddPattern appends a full-match pattern to the table. Compilation errors
// are reported by Build.
func (b *Builder) AddPattern(tag, expr string) *Builder {
	b.patterns = append(b.patterns, Pattern{Tag: tag, Expr: expr})
	return b
}

// SetScore sets score(prev → curr).
func (b *Builder) SetScore(prev, curr string, score float64) *Builder {
	row := b.transitions[prev]
	if row == nil {
		row = make(map[string]float64)
		b.transitions[prev] = row
	}
	row[curr] = score
	return b
}

// SetUnseen sets the score used for pairs missing from the table.
func (b *Builder) SetUnseen(score float64) *Builder {
	b.unseen = score
	return b
}

// Build compiles the pattern table and returns the knowledge base. The
// builder's tables are copied, so later builder edits do not leak.
func (b *Builder) Build() (*KnowledgeBase, error) {
	k := &KnowledgeBase{
		words:       make(map[string]string, len(b.words)),
		patterns:    make([]Pattern, 0, len(b.patterns)),
		transitions: make(map[string]map[string]float64, len(b.transitions)),
		unseen:      b.unseen,
	}
	for w, tag := range b.words {
		k.words[w] = tag
	}
	for i, p := range b.patterns {
		if p.Tag == "" {
			return nil, fmt.Errorf("%w: pattern %d (%q) has no tag", internalerr.ErrInvalidConfig, i, p.Expr)
		}
		re, err := regexp.Compile(`^(?:` + p.Expr + `)$`)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %d (%s): %v", internalerr.ErrInvalidConfig, i, p.Tag, err)
		}
		p.re = re
		k.patterns = append(k.patterns, p)
	}
	for prev, row := range b.transitions {
		cp := make(map[string]float64, len(row))
		for curr, s := range row {
			cp[curr] = s
		}
		k.transitions[prev] = cp
	}
	return k, nil
}

// MustBuild is Build for fixtures; it panics on an invalid pattern.
func (b *Builder) MustBuild() *KnowledgeBase {
	k, err := b.Build()
	if err != nil {
		panic(err)
	}
	return k
}
