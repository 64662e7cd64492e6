package depparse

import "github.com/cognicore/tutur/pkg/tutur/tree"

func isVerb(tag string) bool { return tree.HasCategory(tag, "VB") }

func isNominal(tag string) bool { return tree.HasCategory(tag, "PRP", "NN") }

// firstIn returns the first direct leaf child of n accepted by keep.
func firstIn(n tree.Node, keep func(string) bool) *tree.Token {
	for _, c := range n.Children {
		if leaf, ok := c.(tree.Leaf); ok && keep(leaf.Tag) {
			tok := leaf.Token
			return &tok
		}
	}
	return nil
}

// scan walks the sentence once. A node labelled label is searched one level
// deep; a bare leaf is taken directly. Whichever matches first wins.
func scan(sent []tree.Chunk, label string, keep func(string) bool) *tree.Token {
	for _, c := range sent {
		switch v := c.(type) {
		case tree.Node:
			if v.Label != label {
				continue
			}
			if tok := firstIn(v, keep); tok != nil {
				return tok
			}
		case tree.Leaf:
			if keep(v.Tag) {
				tok := v.Token
				return &tok
			}
		}
	}
	return nil
}

func findRoot(sent []tree.Chunk) *tree.Token {
	return scan(sent, tree.LabelVP, isVerb)
}

func findNSubj(sent []tree.Chunk) *tree.Token {
	return scan(sent, tree.LabelNP, isNominal)
}

// findDObj looks inside VPs only: an NP child wins over a bare nominal, in
// child order within each VP.
func findDObj(sent []tree.Chunk) *tree.Token {
	for _, c := range sent {
		vp, ok := c.(tree.Node)
		if !ok || vp.Label != tree.LabelVP {
			continue
		}
		for _, child := range vp.Children {
			switch v := child.(type) {
			case tree.Node:
				if v.Label != tree.LabelNP {
					continue
				}
				if tok := firstIn(v, isNominal); tok != nil {
					return tok
				}
			case tree.Leaf:
				if isNominal(v.Tag) {
					tok := v.Token
					return &tok
				}
			}
		}
	}
	return nil
}

// findXComp descends the whole sentence looking for open clausal
// complements below the top level. The result is never nil.
func findXComp(sent []tree.Chunk) []tree.Chunk {
	out := []tree.Chunk{}
	var walk func(cs []tree.Chunk, depth int)
	walk = func(cs []tree.Chunk, depth int) {
		for _, c := range cs {
			n, ok := c.(tree.Node)
			if !ok {
				continue
			}
			if depth > 0 && isComplement(n) {
				out = append(out, n)
			}
			walk(n.Children, depth+1)
		}
	}
	walk(sent, 0)
	return out
}

func isComplement(n tree.Node) bool {
	if n.Label != tree.LabelVP && n.Label != tree.LabelSBAR {
		return false
	}
	// TODO: tell controlled complements (mau makan, mulai bekerja) apart from adjunct VPs.
	return false
}

// findPunct collects every leaf of a PUNCT node plus every bare symbol leaf
// anywhere in the sentence. The result is never nil.
func findPunct(sent []tree.Chunk) []tree.Token {
	out := []tree.Token{}
	var walk func(cs []tree.Chunk)
	walk = func(cs []tree.Chunk) {
		for _, c := range cs {
			switch v := c.(type) {
			case tree.Node:
				if v.Label == tree.LabelPUNCT {
					out = append(out, tree.LeavesOf(v.Children)...)
					continue
				}
				walk(v.Children)
			case tree.Leaf:
				if tree.Category(v.Tag) == "SYM" || v.Tag == tree.LabelPUNCT {
					out = append(out, v.Token)
				}
			}
		}
	}
	walk(sent)
	return out
}
