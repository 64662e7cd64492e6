package postag

import "strings"

// inferTag guesses a tag from affix markers alone. It returns "" when the
// token's shape says nothing.
func inferTag(tok string) string {
	switch {
	case hasAnyPrefix(tok, "ber-", "me-", "di-"):
		return "VB-ACT"
	case strings.HasPrefix(tok, "ter-"):
		return "VB-STAT"
	case strings.HasPrefix(tok, "ke-") && strings.HasSuffix(tok, "-an"):
		return "NN-ABST"
	case strings.HasSuffix(tok, "-kan"):
		return "VB-CAUS"
	case strings.HasSuffix(tok, "-nya"):
		return "PRP-POSS"
	case strings.HasSuffix(tok, "-an"):
		return "NN-COM"
	case strings.HasSuffix(tok, "-lah"):
		return "MOD-EMPH"
	case strings.HasSuffix(tok, "-i"):
		return "VB-STAT"
	}
	if a, b, ok := strings.Cut(tok, "-"); ok && a != "" && b != "" {
		if a == b {
			return "NN-COLL"
		}
		return "NN-COM"
	}
	return ""
}

// ruleTag is the positional rule pass that runs after inference for tokens
// still untagged.
func ruleTag(tok string) string {
	switch {
	case tok == "di":
		return "IN"
	case hasAnyPrefix(tok, "ber-", "me-", "di-"):
		return "VB-ACT"
	case strings.HasPrefix(tok, "ter-"):
		return "VB-STAT"
	case strings.HasPrefix(tok, "se-") && len(tok) > 3:
		return "DT-DEF"
	case strings.HasSuffix(tok, "-kan"):
		return "VB-CAUS"
	case strings.HasSuffix(tok, "-nya"):
		return "PRP-POSS"
	case strings.HasSuffix(tok, "-an"):
		return "NN-COM"
	case strings.HasSuffix(tok, "-i") && len(tok) > 3:
		return "VB-STAT"
	}
	return ""
}

// shapeCandidates lists every tag the token's affix shape allows. Unlike
// inferTag it does not stop at the first hit.
func shapeCandidates(tok string) []string {
	var tags []string
	if hasAnyPrefix(tok, "me-", "ber-", "di-", "men-", "mem-", "ter-") {
		tags = append(tags, "VB-ACT")
	}
	if strings.HasSuffix(tok, "-an") {
		tags = append(tags, "NN-COM")
	}
	if strings.HasSuffix(tok, "-nya") || strings.HasSuffix(tok, "-ku") {
		tags = append(tags, "PRP-POSS")
	}
	if a, b, ok := strings.Cut(tok, "-"); ok && a != "" && a == b {
		tags = append(tags, "NN-COLL")
	}
	return tags
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
