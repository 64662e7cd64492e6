package postag

import (
	"strings"

	"github.com/cognicore/tutur/pkg/tutur/tree"
)

// window is the tag context a disambiguation rule may inspect.
type window struct {
	tags []string
	i    int
}

func (c window) at(off int) string {
	j := c.i + off
	if j < 0 || j >= len(c.tags) {
		return ""
	}
	return c.tags[j]
}

func (c window) prev() string     { return c.at(-1) }
func (c window) next() string     { return c.at(1) }
func (c window) nextNext() string { return c.at(2) }
func (c window) cur() string      { return c.at(0) }

// rule resolves one closed ambiguity class. It returns the new tag, or false
// to leave the token alone.
type rule struct {
	name    string
	words   map[string]bool
	resolve func(c window) (string, bool)
}

var rules = []rule{
	{"demonstrative", set("itu", "ini", "tersebut", "demikian"), resolveDemonstrative},
	{"mass-noun", set("air", "tepung", "gula", "beras"), resolveMassNoun},
	{"sama", set("sama"), resolveSama},
	{"baik", set("baik"), resolveBaik},
	{"temporal", set("sejak", "hingga", "selama", "sewaktu"), resolveTemporal},
	{"emphasis", set("malah", "justru"), resolveEmphasis},
	{"degree", set("sedikit", "lumayan"), resolveDegree},
}

var temporalCues = []string{
	"VB-ACT", "VB-STAT", "VB-CAUS", "VB-MODL", "VB-TENSE",
	"MOD-TEMP", "DT-ORD", "DT-CARD", "Q-TEMP", "IN-TEMP",
}

func resolveDemonstrative(c window) (string, bool) {
	if c.cur() != "PRP-DEM" {
		return "", false
	}
	if is(c.next(), "NN") || is(c.prev(), "NN") {
		return "DT-DEF", true
	}
	return "PRP-DEM", true
}

func resolveMassNoun(c window) (string, bool) {
	if !is(c.cur(), "NN") {
		return "", false
	}
	switch {
	case is(c.prev(), "VB"):
		return "NN-MASS", true
	case is(c.next(), "JJ") || is(c.nextNext(), "JJ"):
		return "NN-MASS", true
	case is(c.next(), "DT"):
		return "NN-COM", true
	}
	return "", false
}

func resolveSama(c window) (string, bool) {
	switch next := c.next(); {
	case is(next, "MOD") || next == "ADV-ATT":
		return "MOD-EMPH", true
	case is(c.prev(), "VB"):
		return "IN-COM", true
	case is(next, "PRP", "NN"):
		return "IN-COM", true
	}
	return "JJ-QUALITY", true
}

func resolveBaik(c window) (string, bool) {
	if c.cur() == "JJ-QUALITY" && (c.prev() == "CON-COR" || c.next() == "CON-COR") {
		return "CON-COR", true
	}
	return "", false
}

func resolveTemporal(c window) (string, bool) {
	for _, t := range []string{c.next(), c.nextNext()} {
		for _, cue := range temporalCues {
			if t != "" && strings.HasPrefix(t, cue) {
				return "IN-TEMP", true
			}
		}
	}
	return "CON-SUB", true
}

func resolveEmphasis(c window) (string, bool) {
	if cur := c.cur(); cur != "MOD-EMPH" && cur != "MOD-ASP" {
		return "", false
	}
	if is(c.prev(), "VB") || is(c.next(), "VB") {
		return "MOD-ASP", true
	}
	return "MOD-EMPH", true
}

func resolveDegree(c window) (string, bool) {
	if is(c.cur(), "NN") {
		return "", false
	}
	prev, next := c.prev(), c.next()
	switch {
	case is(prev, "DT") && is(next, "NN"):
		return "JJ-QUALITY", true
	case is(next, "JJ"):
		return "ADV-ATT", true
	case is(prev, "VB"):
		return "JJ-QUALITY", true
	case is(next, "NN"):
		return "DT-INDEF", true
	}
	return "ADV-ATT", true
}

var demonstratives = set("ini", "itu", "tersebut")

// disambiguate applies the first matching rule to each token, left to right,
// over a tag slice that earlier rewrites have already updated, then re-scans
// demonstratives with only their immediate neighbours.
func disambiguate(in []tree.Token) []tree.Token {
	tags := make([]string, len(in))
	for i, t := range in {
		tags[i] = t.Tag
	}

	for i, t := range in {
		word := strings.ToLower(t.Text)
		for _, r := range rules {
			if !r.words[word] {
				continue
			}
			if tag, ok := r.resolve(window{tags: tags, i: i}); ok && tag != "" {
				tags[i] = tag
			}
			break
		}
	}

	for i, t := range in {
		if !demonstratives[strings.ToLower(t.Text)] {
			continue
		}
		c := window{tags: tags, i: i}
		tag := "PRP-DEM"
		if is(c.next(), "NN", "JJ") {
			tag = "DT-DEF"
		}
		if is(c.prev(), "VB", "IN") {
			tag = "PRP-DEM"
		}
		tags[i] = tag
	}

	out := make([]tree.Token, len(in))
	for i, t := range in {
		out[i] = tree.Token{Text: t.Text, Tag: tags[i]}
	}
	return out
}

func is(tag string, cats ...string) bool {
	return tag != "" && tree.HasCategory(tag, cats...)
}
