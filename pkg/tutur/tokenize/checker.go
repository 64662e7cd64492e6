package tokenize

import (
	"strings"
	"unicode"

	"github.com/cognicore/tutur/pkg/tutur/kb"
)

// Checker reports tokens that are neither base words nor known affixes.
type Checker struct {
	kb *kb.KnowledgeBase
}

// NewChecker creates a checker over the given knowledge base.
func NewChecker(k *kb.KnowledgeBase) *Checker {
	if k == nil {
		k = kb.NewBuilder().MustBuild()
	}
	return &Checker{kb: k}
}

// Check splits tokens into recognised and unrecognised morphemes, keeping
// input order. Punctuation-only tokens appear in neither list.
func (c *Checker) Check(tokens []string) (valid, invalid []string) {
	for _, tok := range tokens {
		if isPunct(tok) {
			continue
		}
		clean := strings.Trim(tok, "-")
		if c.kb.IsBaseWord(clean) || isAffix(clean) {
			valid = append(valid, tok)
			continue
		}
		invalid = append(invalid, tok)
	}
	return valid, invalid
}

// Invalid returns only the unrecognised tokens.
func (c *Checker) Invalid(tokens []string) []string {
	_, invalid := c.Check(tokens)
	return invalid
}

func isAffix(s string) bool {
	for _, set := range [][]string{prefixes, suffixes, particles} {
		for _, a := range set {
			if s == a {
				return true
			}
		}
	}
	return false
}

func isPunct(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
