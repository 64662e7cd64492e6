// Package postag assigns one part-of-speech tag to every token.
//
// Sources are tried in strict precedence: lexicon, regex patterns, affix
// inference, positional rules, Viterbi decoding over the transition table,
// and finally the default tag. Two post-passes follow: confix fusion, which
// re-joins hyphen-marked affixes onto their roots, and contextual
// disambiguation of a few closed ambiguity classes.
package postag

import (
	"github.com/cognicore/tutur/pkg/tutur/kb"
	"github.com/cognicore/tutur/pkg/tutur/tree"
)

// Options configures a Tagger.
type Options struct {
	// MaxCandidates caps the states per decoding column; <= 0 means the default.
	MaxCandidates int `yaml:"max_candidates"`
}

// DefaultOptions returns the default tagger options.
func DefaultOptions() Options {
	return Options{MaxCandidates: DefaultMaxCandidates}
}

// Tagger is safe for concurrent use.
type Tagger struct {
	kb      *kb.KnowledgeBase
	decoder *Decoder
}

// New creates a tagger over the given knowledge base.
func New(k *kb.KnowledgeBase, opts Options) *Tagger {
	if k == nil {
		k = kb.NewBuilder().MustBuild()
	}
	return &Tagger{kb: k, decoder: NewDecoder(k, opts.MaxCandidates)}
}

// Decoder exposes the sequence decoder the tagger uses.
func (t *Tagger) Decoder() *Decoder {
	return t.decoder
}

// Tag returns one (token, tag) pair per token after idiom fusion and confix
// fusion. No returned tag is empty. A panic inside any pass is absorbed and
// the previous pass's result is kept.
func (t *Tagger) Tag(tokens []string) []tree.Token {
	if len(tokens) == 0 {
		return nil
	}

	seq := untagged(tokens)
	protect(func() { seq = mergeIdioms(tokens) })

	protect(func() { t.lookup(seq) })
	protect(func() { fill(seq, inferTag) })
	protect(func() { fill(seq, ruleTag) })
	protect(func() { t.decode(seq) })

	for i := range seq {
		if seq[i].Tag == "" {
			seq[i].Tag = tree.TagDefault
		}
	}

	protect(func() { seq = fuseConfixes(seq) })
	protect(func() {
		if out := disambiguate(seq); len(out) == len(seq) {
			seq = out
		}
	})

	for i := range seq {
		if seq[i].Tag == "" {
			seq[i].Tag = tree.TagDefault
		}
	}
	return seq
}

func (t *Tagger) lookup(seq []tree.Token) {
	for i := range seq {
		if seq[i].Tag != "" {
			continue
		}
		if tag, ok := t.kb.LookupLexicon(seq[i].Text); ok {
			seq[i].Tag = tag
		} else if tag, ok := t.kb.MatchPattern(seq[i].Text); ok {
			seq[i].Tag = tag
		}
	}
}

// decode tags the remaining gaps with the Viterbi path, holding positions
// that already have a tag fixed to it.
func (t *Tagger) decode(seq []tree.Token) {
	texts := make([]string, len(seq))
	pinned := make([]string, len(seq))
	open := false
	for i, tok := range seq {
		texts[i] = tok.Text
		pinned[i] = tok.Tag
		if tok.Tag == "" {
			open = true
		}
	}
	if !open {
		return
	}
	path := t.decoder.decode(texts, pinned)
	for i := range seq {
		if seq[i].Tag == "" && i < len(path) && path[i] != tree.TagUnknown {
			seq[i].Tag = path[i]
		}
	}
}

func fill(seq []tree.Token, guess func(string) string) {
	for i := range seq {
		if seq[i].Tag == "" {
			seq[i].Tag = guess(seq[i].Text)
		}
	}
}

func untagged(tokens []string) []tree.Token {
	out := make([]tree.Token, len(tokens))
	for i, tok := range tokens {
		out[i] = tree.Token{Text: tok}
	}
	return out
}

func protect(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
