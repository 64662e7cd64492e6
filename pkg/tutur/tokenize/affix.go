package tokenize

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// procliticKu is the first-person proclitic. A split that strips only ku-
// from a stem of four letters or fewer is rejected.
const procliticKu = "ku"

var (
	prefixes  = []string{"meng", "mem", "men", "me", "ber", "ter", "se", "per", "pe", "pen", "di", "ke", "ng", procliticKu}
	suffixes  = []string{"kan", "nya", "ku", "mu", "an", "i", "in"}
	particles = []string{"lah", "kah", "tah", "pun"}

	prefixesLongestFirst = byLengthDesc(prefixes)
	suffixesLongestFirst = byLengthDesc(suffixes)
)

func byLengthDesc(in []string) []string {
	out := append([]string{}, in...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// splitPrefix repeatedly strips the prefix whose remaining stem leads to the
// longest deep root, preferring the longer prefix on ties. The last element
// of the result is the unsplit stem.
func (t *Tokenizer) splitPrefix(tok string) []string {
	if t.kb.IsBaseWord(tok) {
		return []string{tok}
	}

	var out []string
	current := tok
	for {
		best, bestRoot, found := "", "", false
		for _, p := range prefixesLongestFirst {
			if !strings.HasPrefix(current, p) {
				continue
			}
			root, ok := t.deepRoot(current[len(p):])
			if !ok {
				continue
			}
			if !found || longer(root, bestRoot) || (runeLen(root) == runeLen(bestRoot) && len(p) > len(best)) {
				best, bestRoot, found = p, root, true
			}
		}
		if !found {
			break
		}
		out = append(out, best+"-")
		current = current[len(best):]
		if t.kb.IsBaseWord(current) {
			break
		}
	}
	return append(out, current)
}

// splitSuffix repeatedly strips the longest suffix that leaves a base word.
// When no suffix does, the first suffix whose residue still ends in another
// suffix is stripped so stacked suffixes ("-an" + "-nya") can peel off one
// at a time. The first element of the result is the stem.
func (t *Tokenizer) splitSuffix(tok string) []string {
	if t.kb.IsBaseWord(tok) {
		return []string{tok}
	}

	var rev []string
	current := tok
	for {
		matched := ""
		for _, s := range suffixesLongestFirst {
			if !strings.HasSuffix(current, s) {
				continue
			}
			base := current[:len(current)-len(s)]
			if t.kb.IsBaseWord(base) {
				matched = s
				break
			}
			if matched == "" && endsWithSuffix(base) {
				matched = s
			}
		}
		if matched == "" {
			break
		}
		rev = append(rev, "-"+matched)
		current = current[:len(current)-len(matched)]
		if t.kb.IsBaseWord(current) {
			break
		}
	}

	out := make([]string, 0, len(rev)+1)
	out = append(out, current)
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}

// deepRoot finds the base word underneath w by stripping suffixes first and
// then any prefix, recursively.
func (t *Tokenizer) deepRoot(w string) (string, bool) {
	if runeLen(w) < 2 {
		return "", false
	}
	if t.kb.IsBaseWord(w) {
		return w, true
	}

	if parts := t.splitSuffix(w); len(parts) > 1 {
		base := parts[0]
		if t.kb.IsBaseWord(base) {
			return base, true
		}
		if root, ok := t.deepRoot(base); ok {
			return root, true
		}
	}

	for _, p := range prefixes {
		if !strings.HasPrefix(w, p) {
			continue
		}
		if root, ok := t.deepRoot(w[len(p):]); ok {
			return root, true
		}
	}
	return "", false
}

func endsWithSuffix(s string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func longer(a, b string) bool { return runeLen(a) > runeLen(b) }
