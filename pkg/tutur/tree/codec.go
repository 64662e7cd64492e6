package tree

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Leaves marshal as {"text","tag"}; nodes as {"label","children"}.
// DecodeChunk reverses either form by probing for the "label" key.

// DecodeChunk parses one JSON-encoded chunk.
func DecodeChunk(data []byte) (Chunk, error) {
	var probe struct {
		Label    *string           `json:"label"`
		Children []json.RawMessage `json:"children"`
		Text     string            `json:"text"`
		Tag      string            `json:"tag"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if probe.Label == nil {
		return NewLeaf(probe.Text, probe.Tag), nil
	}
	node := NewNode(*probe.Label)
	for i, raw := range probe.Children {
		child, err := DecodeChunk(raw)
		if err != nil {
			return nil, fmt.Errorf("child %d of %s: %w", i, *probe.Label, err)
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// UnmarshalJSON decodes a node and its children.
func (n *Node) UnmarshalJSON(data []byte) error {
	c, err := DecodeChunk(data)
	if err != nil {
		return err
	}
	node, ok := c.(Node)
	if !ok {
		return fmt.Errorf("expected node, got leaf")
	}
	*n = node
	return nil
}

// String renders a leaf as text/TAG.
func (l Leaf) String() string {
	return l.Text + "/" + l.Tag
}

// String renders a node in bracketed form: (S (NP dia/PRP-PER) ...).
func (n Node) String() string {
	var b strings.Builder
	writeBracketed(&b, n)
	return b.String()
}

func writeBracketed(b *strings.Builder, c Chunk) {
	switch v := c.(type) {
	case Leaf:
		b.WriteString(v.String())
	case Node:
		b.WriteByte('(')
		b.WriteString(v.Label)
		for _, child := range v.Children {
			b.WriteByte(' ')
			writeBracketed(b, child)
		}
		b.WriteByte(')')
	}
}

// Format renders c as an indented tree, one node or leaf per line.
func Format(c Chunk) string {
	var b strings.Builder
	writeIndented(&b, c, 0)
	return b.String()
}

func writeIndented(b *strings.Builder, c Chunk, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
	switch v := c.(type) {
	case Leaf:
		b.WriteString(v.String())
		b.WriteByte('\n')
	case Node:
		b.WriteString(v.Label)
		b.WriteByte('\n')
		for _, child := range v.Children {
			writeIndented(b, child, depth+1)
		}
	}
}
