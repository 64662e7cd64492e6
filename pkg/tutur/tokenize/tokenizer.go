// Package tokenize segments raw text into morphologically atomic tokens.
//
// Each whitespace-separated word goes through punctuation splitting,
// reduplication handling, particle splitting, affix splitting and a final
// greedy lexicon re-merge. Affix boundaries are marked in the output: a
// prefix token ends with "-" ("me-") and a suffix or particle token starts
// with it ("-nya"), which is what the tagger's confix fusion looks for.
package tokenize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/tutur/pkg/tutur/kb"
)

// Options selects which segmentation steps run. Punctuation splitting and
// the lexicon re-merge always run.
type Options struct {
	SplitAffixes   bool `yaml:"split_affixes"`
	HandleRepeats  bool `yaml:"handle_repeats"`
	SplitParticles bool `yaml:"split_particles"`
}

// DefaultOptions enables every step.
func DefaultOptions() Options {
	return Options{SplitAffixes: true, HandleRepeats: true, SplitParticles: true}
}

// Tokenizer is safe for concurrent use; it holds no per-call state.
type Tokenizer struct {
	kb   *kb.KnowledgeBase
	opts Options
}

// New creates a tokenizer over the given knowledge base.
func New(k *kb.KnowledgeBase, opts Options) *Tokenizer {
	if k == nil {
		k = kb.NewBuilder().MustBuild()
	}
	return &Tokenizer{kb: k, opts: opts}
}

// Options returns the options the tokenizer was built with.
func (t *Tokenizer) Options() Options {
	return t.opts
}

var punctSplit = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]+|[.,!?;:\-"'()]`)

// Tokenize lower-cases text and segments it. Unknown words pass through
// unsegmented; the result never contains empty strings.
func (t *Tokenizer) Tokenize(text string) []string {
	var out []string
	for _, word := range strings.Fields(text) {
		for _, tok := range t.word(strings.ToLower(word)) {
			if strings.TrimSpace(tok) != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

func (t *Tokenizer) word(w string) []string {
	tokens := punctSplit.FindAllString(w, -1)

	if t.opts.HandleRepeats {
		var next []string
		for _, tok := range tokens {
			if t.kb.IsBaseWord(tok) && !strings.Contains(tok, "-") {
				next = append(next, tok)
				continue
			}
			next = append(next, t.splitRepeat(tok)...)
		}
		tokens = next
	}

	if t.opts.SplitParticles {
		var next []string
		for _, tok := range tokens {
			next = append(next, t.splitParticle(tok)...)
		}
		tokens = next
	}

	if t.opts.SplitAffixes {
		var next []string
		for _, tok := range tokens {
			next = append(next, t.splitAffixes(tok)...)
		}
		tokens = next
	}

	return t.remerge(tokens)
}

// splitRepeat handles reduplication: "kata-kata" → [kata - kata],
// "berlarilari" → [ber lari lari], "lakilaki" → [laki laki].
func (t *Tokenizer) splitRepeat(tok string) []string {
	if strings.Contains(tok, "-") {
		parts := strings.Split(tok, "-")
		if len(parts) == 2 && parts[0] == parts[1] && parts[0] != "" {
			return []string{parts[0], "-", parts[1]}
		}
		return []string{tok}
	}

	for _, p := range prefixesLongestFirst {
		if !strings.HasPrefix(tok, p) {
			continue
		}
		if half, ok := t.doubled(tok[len(p):]); ok {
			return []string{p, half, half}
		}
	}
	if half, ok := t.doubled(tok); ok {
		return []string{half, half}
	}
	return []string{tok}
}

// doubled reports whether s is some base word written twice.
func (t *Tokenizer) doubled(s string) (string, bool) {
	if s == "" || len(s)%2 != 0 {
		return "", false
	}
	half := s[:len(s)/2]
	if half == s[len(s)/2:] && t.kb.IsBaseWord(half) {
		return half, true
	}
	return "", false
}

// splitParticle strips one trailing clitic particle. Base words are left
// alone so that roots such as "masalah" survive.
func (t *Tokenizer) splitParticle(tok string) []string {
	if t.kb.IsBaseWord(tok) {
		return []string{tok}
	}
	for _, p := range particles {
		if !strings.HasSuffix(tok, p) {
			continue
		}
		root := strings.TrimSuffix(tok, p)
		if utf8.RuneCountInString(root) > 1 {
			return []string{root, "-" + p}
		}
		break
	}
	return []string{tok}
}

// splitAffixes marks prefixes and suffixes around a lexicon-validated stem.
func (t *Tokenizer) splitAffixes(tok string) []string {
	if t.kb.IsBaseWord(tok) || strings.HasPrefix(tok, "-") {
		return []string{tok}
	}

	pieces := t.splitPrefix(tok)
	stem := pieces[len(pieces)-1]
	pre := pieces[:len(pieces)-1]

	if len(pre) == 1 && pre[0] == procliticKu+"-" && utf8.RuneCountInString(stem) <= 4 {
		return []string{tok}
	}

	out := append([]string{}, pre...)
	return append(out, t.splitSuffix(stem)...)
}

// remerge scans left to right and joins the longest run of tokens whose
// concatenation is a base word.
func (t *Tokenizer) remerge(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		end := -1
		var joined strings.Builder
		for j := i; j < len(tokens); j++ {
			joined.WriteString(tokens[j])
			if t.kb.IsBaseWord(joined.String()) {
				end = j + 1
			}
		}
		if end < 0 {
			out = append(out, tokens[i])
			i++
			continue
		}
		out = append(out, strings.Join(tokens[i:end], ""))
		i = end
	}
	return out
}
