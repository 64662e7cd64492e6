package chunk

import (
	"strings"

	"github.com/cognicore/tutur/pkg/tutur/tree"
)

// builder runs the phrase builders over one segment. Items may be bare
// leaves or phrases built earlier; a phrase has no tag, so tag-driven
// checks never match it.
type builder struct {
	seg []tree.Chunk
}

func (b *builder) tag(i int) string {
	if i < 0 || i >= len(b.seg) {
		return ""
	}
	if leaf, ok := b.seg[i].(tree.Leaf); ok {
		return leaf.Tag
	}
	return ""
}

func (b *builder) isPhrase(i int, label string) bool {
	return i >= 0 && i < len(b.seg) && tree.IsNode(b.seg[i], label)
}

func isNominal(tag string) bool { return tree.HasCategory(tag, "DT", "PRP", "NN") }

func isVerb(tag string) bool { return tree.HasCategory(tag, "VB") }

func isPrep(tag string) bool { return tree.HasCategory(tag, "IN") }

func isAdverbial(tag string) bool { return tree.HasCategory(tag, "MOD", "ADV") }

// isAttributive accepts adjectives that modify a noun in place; JJ-QUALITY
// is predicative and ends the noun phrase.
func isAttributive(tag string) bool {
	return tree.HasCategory(tag, "JJ") && tag != "JJ-QUALITY"
}

func isAdjective(tag string) bool {
	return tag == "JJ-EMOTION" || tag == "JJ-QUALITY" || tag == "MOD"
}

func isOperator(tag string) bool { return tag == "MOD-TEMP" || tag == "MOD-ACT" }

// run collects the items from i while keep accepts their tag.
func (b *builder) run(i int, keep func(string) bool) ([]tree.Chunk, int) {
	var out []tree.Chunk
	for i < len(b.seg) && keep(b.tag(i)) {
		out = append(out, b.seg[i])
		i++
	}
	return out, i
}

// np builds a noun phrase. When a verb or predicative adjective follows, the
// predicate is built too and both phrases are returned.
func (b *builder) np(i int) ([]tree.Chunk, int) {
	words, i := b.run(i, func(tag string) bool { return isNominal(tag) || isAttributive(tag) })
	np := tree.NewNode(tree.LabelNP, words...)

	if next := b.tag(i); next == "JJ-QUALITY" || isVerb(next) {
		vp, j := b.vp(i)
		return []tree.Chunk{np, vp}, j
	}
	return []tree.Chunk{np}, i
}

func (b *builder) vp(i int) (tree.Node, int) {
	var kids []tree.Chunk

	if isVerb(b.tag(i)) {
		kids = append(kids, b.seg[i])
		i++
	}

	switch {
	case isOperator(b.tag(i)):
		op := b.seg[i]
		i++
		if isVerb(b.tag(i)) {
			nested, j := b.vp(i)
			kids = append(kids, tree.NewNode(tree.LabelPP, op, nested))
			i = j
		} else {
			kids = append(kids, op)
		}

	case isPrep(b.tag(i)):
		prep := b.seg[i]
		i++
		if isVerb(b.tag(i)) {
			nested, j := b.vp(i)
			kids = append(kids, tree.NewNode(tree.LabelPP, prep, nested))
			return tree.NewNode(tree.LabelVP, kids...), j
		}
		noun, j := b.run(i, isNominal)
		adv, j := b.run(j, isAdverbial)
		kids = append(kids, prepPhrase(prep, noun, adv, nil))
		i = j
	}

	i = b.absorbPP(&kids, i)

	if isVerb(b.tag(i)) && !endsWithClause(kids) {
		kids = append(kids, b.seg[i])
		i++
	}

	if isNominal(b.tag(i)) {
		obj, j := b.np(i)
		kids = append(kids, obj...)
		i = j
	}

	for t := b.tag(i); tree.HasCategory(t, "ADV") || t == "JJ-QUALITY"; t = b.tag(i) {
		kids = append(kids, b.seg[i])
		i++
	}

	for isPrep(b.tag(i)) {
		prep := b.seg[i]
		i++
		noun, j := b.run(i, isNominal)
		adv, j := b.run(j, isAdverbial)
		i = j
		var nested []tree.Chunk
		if isVerb(b.tag(i)) {
			vp, j := b.vp(i)
			nested = []tree.Chunk{vp}
			i = j
		}
		kids = append(kids, prepPhrase(prep, noun, adv, nested))
	}

	i = b.absorbPP(&kids, i)
	return tree.NewNode(tree.LabelVP, kids...), i
}

// prepPhrase assembles PP[prep, NP?, ADVP?, rest...].
func prepPhrase(prep tree.Chunk, noun, adv, rest []tree.Chunk) tree.Node {
	kids := []tree.Chunk{prep}
	if len(noun) > 0 {
		kids = append(kids, tree.NewNode(tree.LabelNP, noun...))
	}
	if len(adv) > 0 {
		kids = append(kids, tree.NewNode(tree.LabelADVP, adv...))
	}
	kids = append(kids, rest...)
	return tree.NewNode(tree.LabelPP, kids...)
}

func (b *builder) absorbPP(kids *[]tree.Chunk, i int) int {
	for b.isPhrase(i, tree.LabelPP) {
		*kids = append(*kids, b.seg[i])
		i++
	}
	return i
}

// endsWithClause reports whether the last child is a PP or VP, in which case
// a following verb belongs to a new predicate.
func endsWithClause(kids []tree.Chunk) bool {
	if len(kids) == 0 {
		return false
	}
	last := kids[len(kids)-1]
	return tree.IsNode(last, tree.LabelPP) || tree.IsNode(last, tree.LabelVP)
}

func (b *builder) pp(i int) (tree.Node, int) {
	prep := b.seg[i]
	i++

	if isAdverbial(b.tag(i)) {
		adv, j := b.run(i, isAdverbial)
		return tree.NewNode(tree.LabelPP, prep, tree.NewNode(tree.LabelADVP, adv...)), j
	}
	if b.isPhrase(i, tree.LabelNP) {
		return tree.NewNode(tree.LabelPP, prep, b.seg[i]), i + 1
	}
	if noun, j := b.run(i, isNominal); len(noun) > 0 {
		return tree.NewNode(tree.LabelPP, prep, tree.NewNode(tree.LabelNP, noun...)), j
	}
	return tree.NewNode(tree.LabelPP, prep), i
}

func (b *builder) adjp(i int) (tree.Node, int) {
	rest, j := b.run(i+1, isAdjective)
	return tree.NewNode(tree.LabelADJP, append([]tree.Chunk{b.seg[i]}, rest...)...), j
}

func (b *builder) advp(i int) (tree.Node, int) {
	rest, j := b.run(i+1, isAdverbial)
	return tree.NewNode(tree.LabelADVP, append([]tree.Chunk{b.seg[i]}, rest...)...), j
}

// interrog builds INTERROG[WH[q, quotes...], VP[...]?]. The VP part runs up
// to the first symbol.
func (b *builder) interrog(i int) (tree.Node, int) {
	quotes, j := b.run(i+1, func(tag string) bool { return strings.HasPrefix(tag, "SYM-QUOTE") })
	wh := tree.NewNode(tree.LabelWH, append([]tree.Chunk{b.seg[i]}, quotes...)...)

	body, j := b.run(j, func(tag string) bool {
		return tree.HasCategory(tag, "VB", "MOD", "ADV", "NN", "PRP", "IN", "DT", "JJ")
	})
	kids := []tree.Chunk{wh}
	if len(body) > 0 {
		kids = append(kids, tree.NewNode(tree.LabelVP, body...))
	}
	return tree.NewNode(tree.LabelInterrog, kids...), j
}
