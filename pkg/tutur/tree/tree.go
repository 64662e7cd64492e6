// Package tree holds the data contract shared by every analysis stage:
// tagged tokens and the phrase-chunk tree built over them.
//
// A Chunk is a closed sum type with two variants, Leaf and Node. Consumers
// switch on the concrete type; there is no third case.
package tree

import "strings"

// Phrase labels used by the chunker and the dependency extractor.
const (
	LabelS        = "S"
	LabelNP       = "NP"
	LabelVP       = "VP"
	LabelPP       = "PP"
	LabelADJP     = "ADJP"
	LabelADVP     = "ADVP"
	LabelInterrog = "INTERROG"
	LabelCONJ     = "CONJ"
	LabelINTJ     = "INTJ"
	LabelPUNCT    = "PUNCT"
	LabelWH       = "WH"
	LabelSBAR     = "SBAR"
)

// Token is a surface string paired with its part-of-speech tag.
type Token struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Chunk is either a Leaf or a Node.
type Chunk interface {
	isChunk()
}

// Leaf wraps a single tagged token.
type Leaf struct {
	Token
}

// Node is a labelled phrase whose children keep document order.
type Node struct {
	Label    string  `json:"label"`
	Children []Chunk `json:"children"`
}

func (Leaf) isChunk() {}
func (Node) isChunk() {}

// NewLeaf builds a leaf from a surface string and tag.
func NewLeaf(text, tag string) Leaf {
	return Leaf{Token: Token{Text: text, Tag: tag}}
}

// NewNode builds a labelled node. A nil child list is stored as empty.
func NewNode(label string, children ...Chunk) Node {
	if children == nil {
		children = []Chunk{}
	}
	return Node{Label: label, Children: children}
}

// Wrap turns a token sequence into bare leaves.
func Wrap(tokens []Token) []Chunk {
	out := make([]Chunk, len(tokens))
	for i, t := range tokens {
		out[i] = Leaf{Token: t}
	}
	return out
}

// Leaves returns every token reachable from c in document order.
func Leaves(c Chunk) []Token {
	var out []Token
	collect(c, &out)
	return out
}

// LeavesOf is Leaves over a chunk list.
func LeavesOf(chunks []Chunk) []Token {
	var out []Token
	for _, c := range chunks {
		collect(c, &out)
	}
	return out
}

func collect(c Chunk, out *[]Token) {
	switch v := c.(type) {
	case Leaf:
		*out = append(*out, v.Token)
	case Node:
		for _, child := range v.Children {
			collect(child, out)
		}
	}
}

// CountLeaves returns the number of tokens under c.
func CountLeaves(c Chunk) int {
	switch v := c.(type) {
	case Leaf:
		return 1
	case Node:
		n := 0
		for _, child := range v.Children {
			n += CountLeaves(child)
		}
		return n
	}
	return 0
}

// Text joins the surface strings of every leaf under chunks with single spaces.
func Text(chunks []Chunk) string {
	leaves := LeavesOf(chunks)
	parts := make([]string, len(leaves))
	for i, t := range leaves {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// IsNode reports whether c is a Node with the given label.
func IsNode(c Chunk, label string) bool {
	n, ok := c.(Node)
	return ok && n.Label == label
}
