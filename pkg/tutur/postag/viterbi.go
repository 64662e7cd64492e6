package postag

import (
	"math"

	"github.com/cognicore/tutur/pkg/tutur/kb"
	"github.com/cognicore/tutur/pkg/tutur/tree"
)

// DefaultMaxCandidates bounds the number of states per lattice column.
const DefaultMaxCandidates = 8

// Decoder finds the best-scoring tag path through a lattice of candidate
// tags using the knowledge base's transition table.
type Decoder struct {
	kb            *kb.KnowledgeBase
	maxCandidates int
}

// NewDecoder creates a decoder. maxCandidates <= 0 selects the default.
func NewDecoder(k *kb.KnowledgeBase, maxCandidates int) *Decoder {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	return &Decoder{kb: k, maxCandidates: maxCandidates}
}

// Candidates returns the context-free tag candidates for tok: every matching
// pattern tag in table order, or, when no pattern matches, the tags its affix
// shape allows.
func (d *Decoder) Candidates(tok string) []string {
	tags := d.kb.MatchAllPatterns(tok)
	if len(tags) == 0 {
		tags = shapeCandidates(tok)
	}
	if len(tags) > d.maxCandidates {
		tags = tags[:d.maxCandidates]
	}
	return tags
}

// Decode returns one tag per token. If any column of the lattice is empty
// the result is all tree.TagUnknown, with the same length as tokens.
func (d *Decoder) Decode(tokens []string) []string {
	return d.decode(tokens, nil)
}

// decode runs Viterbi with optional pinned columns: a non-empty pinned[i]
// replaces the candidate set at i with that single tag.
func (d *Decoder) decode(tokens []string, pinned []string) []string {
	n := len(tokens)
	if n == 0 {
		return nil
	}

	cache := make(map[string][]string)
	column := func(i int) []string {
		if i < len(pinned) && pinned[i] != "" {
			return []string{pinned[i]}
		}
		tok := tokens[i]
		if c, ok := cache[tok]; ok {
			return c
		}
		c := d.Candidates(tok)
		cache[tok] = c
		return c
	}

	states := make([][]string, n)
	scores := make([][]float64, n)
	back := make([][]int, n)

	states[0] = column(0)
	scores[0] = make([]float64, len(states[0]))
	back[0] = make([]int, len(states[0]))
	for j, tag := range states[0] {
		scores[0][j] = d.kb.TransitionScore(tree.StartSymbol, tag)
		back[0][j] = -1
	}

	for t := 1; t < n; t++ {
		prev := states[t-1]
		if len(prev) == 0 {
			return unknownPath(n)
		}
		cur := column(t)
		states[t] = cur
		scores[t] = make([]float64, len(cur))
		back[t] = make([]int, len(cur))
		for j, tag := range cur {
			best, arg := math.Inf(-1), -1
			for k, p := range prev {
				s := scores[t-1][k] + d.kb.TransitionScore(p, tag)
				if arg < 0 || s > best {
					best, arg = s, k
				}
			}
			scores[t][j] = best
			back[t][j] = arg
		}
	}

	last := n - 1
	if len(states[last]) == 0 {
		return unknownPath(n)
	}
	arg := 0
	for j := 1; j < len(states[last]); j++ {
		if scores[last][j] > scores[last][arg] {
			arg = j
		}
	}

	path := make([]string, n)
	for t := last; t >= 0; t-- {
		path[t] = states[t][arg]
		arg = back[t][arg]
	}
	return path
}

func unknownPath(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = tree.TagUnknown
	}
	return out
}
