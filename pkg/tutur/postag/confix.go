package postag

import (
	"strings"

	"github.com/cognicore/tutur/pkg/tutur/tree"
)

var (
	confixPrefixes = set("di", "me", "ber", "ter", "mem", "men", "meng", "ke", "pe", "se", "pen", "pem", "per")
	confixSuffixes = set("i", "kan", "an", "nya", "lah", "kah", "ku", "mu", "pun")

	doubleSuffixTags = map[[2]string]string{
		{"an", "nya"}:  "NN-COM",
		{"kan", "nya"}: "VB-ACT",
		{"i", "lah"}:   "VB-ACT",
		{"kan", "lah"}: "VB-ACT",
		{"an", "ku"}:   "NN-COM",
		{"an", "mu"}:   "NN-COM",
	}

	countUnits = set("buah", "orang", "ekor", "kali")
)

// fuseConfixes joins hyphen-marked affix tokens back onto their roots and
// retags the result. Combinations are tried longest first:
//
//	prefix- root -suf -suf
//	prefix- root -suf
//	root -suf -suf        (only pairs in doubleSuffixTags)
//	prefix- root
//	root -suf
func fuseConfixes(in []tree.Token) []tree.Token {
	out := make([]tree.Token, 0, len(in))
	n := len(in)
	for i := 0; i < n; {
		if i+3 < n {
			p, r, s1, s2 := in[i], in[i+1], in[i+2], in[i+3]
			if pre, ok := prefixMarker(p.Text); ok && isSuffixMarker(s1.Text) && isSuffixMarker(s2.Text) && confixPrefixes[pre] {
				out = append(out, tree.Token{
					Text: pre + r.Text + trimMarker(s1.Text) + trimMarker(s2.Text),
					Tag:  prefixTag(pre),
				})
				i += 4
				continue
			}
		}

		if i+2 < n {
			p, r, s := in[i], in[i+1], in[i+2]
			if pre, ok := prefixMarker(p.Text); ok && isSuffixMarker(s.Text) && confixPrefixes[pre] {
				suf := trimMarker(s.Text)
				out = append(out, tree.Token{Text: pre + r.Text + suf, Tag: confixTag(pre, suf)})
				i += 3
				continue
			}

			if isSuffixMarker(r.Text) && isSuffixMarker(s.Text) {
				pair := [2]string{trimMarker(r.Text), trimMarker(s.Text)}
				if tag, ok := doubleSuffixTags[pair]; ok {
					out = append(out, tree.Token{Text: p.Text + pair[0] + pair[1], Tag: tag})
					i += 3
					continue
				}
			}
		}

		if i+1 < n {
			p, r := in[i], in[i+1]
			if pre, ok := prefixMarker(p.Text); ok && confixPrefixes[pre] && tree.Category(r.Tag) != "SYM" {
				out = append(out, tree.Token{Text: pre + r.Text, Tag: prefixRootTag(pre, r)})
				i += 2
				continue
			}

			if isSuffixMarker(r.Text) {
				if suf := trimMarker(r.Text); confixSuffixes[suf] {
					out = append(out, tree.Token{Text: p.Text + suf, Tag: suffixTag(suf, p.Tag)})
					i += 2
					continue
				}
			}
		}

		out = append(out, in[i])
		i++
	}
	return out
}

func prefixTag(pre string) string {
	switch pre {
	case "di":
		return "VB-PASS"
	case "ber", "ter":
		return "VB-STAT"
	case "pe", "pen", "pem", "per":
		return "NN-COM"
	}
	return "VB-ACT"
}

func confixTag(pre, suf string) string {
	switch {
	case pre == "ke" && suf == "an":
		return "NN-ABST"
	case pre == "se" && suf == "nya":
		return "ADV-ATT"
	case pre == "se":
		return "NN-COM"
	}
	return prefixTag(pre)
}

func prefixRootTag(pre string, root tree.Token) string {
	switch pre {
	case "se":
		if countUnits[root.Text] {
			return "DT-NUM"
		}
		return "ADV-ATT"
	case "ke":
		if root.Tag == "DT-NUM" {
			return "DT-ORD"
		}
		return "NN-COM"
	}
	return prefixTag(pre)
}

func suffixTag(suf, rootTag string) string {
	switch suf {
	case "an", "nya", "ku", "mu":
		return "NN-COM"
	case "kan", "i":
		return "VB-ACT"
	}
	if rootTag == "" {
		return tree.TagDefault
	}
	return rootTag
}

// prefixMarker returns "me" for "me-". A lone "-" is not a marker.
func prefixMarker(s string) (string, bool) {
	if len(s) < 2 || !strings.HasSuffix(s, "-") {
		return "", false
	}
	return strings.Trim(s, "-"), true
}

func isSuffixMarker(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "-")
}

func trimMarker(s string) string { return strings.Trim(s, "-") }

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
