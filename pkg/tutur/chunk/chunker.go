// Package chunk groups a tagged token sequence into shallow phrase chunks
// under a single S root.
//
// The input is first cut into segments after commas, sentence-final
// punctuation and conjunctions. Each segment is scanned left to right and
// the tag at the current position selects a phrase builder (NP, VP, PP,
// ADJP, ADVP, INTERROG). Tokens no builder claims become CONJ, INTJ or PUNCT
// singletons, or stay bare leaves. Every input token ends up exactly once
// in the output tree.
package chunk

import (
	"fmt"
	"strings"

	"github.com/cognicore/tutur/pkg/tutur/tree"
)

// Fault describes a builder failure that was isolated to one position.
type Fault struct {
	Pos   int
	Token tree.Chunk
	Err   error
}

// Options configures a Chunker.
type Options struct {
	// OnFault, when set, is called for every position whose builder panicked.
	OnFault func(Fault)
}

// Chunker is safe for concurrent use as long as OnFault is.
type Chunker struct {
	onFault func(Fault)
}

// New creates a chunker.
func New(opts Options) *Chunker {
	return &Chunker{onFault: opts.OnFault}
}

// Result is a chunk tree plus the clause spans found over its top level.
type Result struct {
	Tree    tree.Node
	Clauses []Clause
}

// Chunk builds the phrase tree for tokens. The root is always an S node.
func (c *Chunker) Chunk(tokens []tree.Token) tree.Node {
	return c.ChunkItems(tree.Wrap(tokens))
}

// Parse is Chunk plus clause boundaries.
func (c *Chunker) Parse(tokens []tree.Token) Result {
	root := c.Chunk(tokens)
	return Result{Tree: root, Clauses: Clauses(root.Children)}
}

// ChunkItems chunks a mixed sequence of leaves and already built phrases.
// Existing phrases pass through unchanged, and PP or NP phrases are absorbed
// by the VP and PP builders that can take them.
func (c *Chunker) ChunkItems(items []tree.Chunk) (root tree.Node) {
	defer func() {
		if r := recover(); r != nil {
			root = tree.NewNode(tree.LabelS, tree.Wrap(tree.LeavesOf(items))...)
		}
	}()

	var out []tree.Chunk
	for _, seg := range segments(items) {
		out = append(out, c.segment(seg)...)
	}
	return tree.NewNode(tree.LabelS, out...)
}

func (c *Chunker) segment(seg []tree.Chunk) []tree.Chunk {
	b := &builder{seg: seg}
	var out []tree.Chunk
	for i := 0; i < len(seg); {
		if _, ok := seg[i].(tree.Node); ok {
			out = append(out, seg[i])
			i++
			continue
		}
		built, next, err := c.step(b, i)
		if err == nil && next <= i {
			err = fmt.Errorf("builder made no progress at %d", i)
		}
		if err != nil {
			if c.onFault != nil {
				c.onFault(Fault{Pos: i, Token: seg[i], Err: err})
			}
			out = append(out, seg[i])
			i++
			continue
		}
		out = append(out, built...)
		i = next
	}
	return out
}

// step dispatches on the tag at i.
func (c *Chunker) step(b *builder, i int) (built []tree.Chunk, next int, err error) {
	defer func() {
		if r := recover(); r != nil {
			built, next, err = nil, i, fmt.Errorf("chunk builder panic: %v", r)
		}
	}()

	one := func(n tree.Node, j int) ([]tree.Chunk, int, error) {
		return []tree.Chunk{n}, j, nil
	}

	tag := b.tag(i)
	switch cat := tree.Category(tag); {
	case isNominal(tag) && (i == 0 || !isPrep(b.tag(i-1))):
		built, next = b.np(i)
		return built, next, nil
	case cat == "VB" || (isOperator(tag) && isVerb(b.tag(i+1))):
		return one(b.vp(i))
	case cat == "IN":
		return one(b.pp(i))
	case tag == "JJ-EMOTION" || tag == "JJ-QUALITY":
		return one(b.adjp(i))
	case cat == "MOD" || cat == "ADV":
		return one(b.advp(i))
	case cat == "WH" || cat == "Q":
		return one(b.interrog(i))
	case cat == "CON":
		return one(tree.NewNode(tree.LabelCONJ, b.seg[i]), i+1)
	case cat == "INT":
		return one(tree.NewNode(tree.LabelINTJ, b.seg[i]), i+1)
	case cat == "SYM":
		return one(tree.NewNode(tree.LabelPUNCT, b.seg[i]), i+1)
	}
	return []tree.Chunk{b.seg[i]}, i + 1, nil
}

// segments cuts items after every comma, sentence-final symbol and
// conjunction. The boundary item closes its segment.
func segments(items []tree.Chunk) [][]tree.Chunk {
	var out [][]tree.Chunk
	var cur []tree.Chunk
	for _, it := range items {
		cur = append(cur, it)
		if leaf, ok := it.(tree.Leaf); ok && isBoundary(leaf.Tag) {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

var boundaryPrefixes = []string{"SYM-COM", "SYM-DOT", "SYM-QUES", "SYM-EXCL", "CON-"}

func isBoundary(tag string) bool {
	for _, p := range boundaryPrefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	return false
}
