package tree

// Constituent is a labelled node with the half-open leaf span it covers.
type Constituent struct {
	Label string
	Start int
	End   int
}

// Constituents lists every node under root in post-order (children before
// their parent) together with the total number of leaves.
func Constituents(root Chunk) ([]Constituent, int) {
	if root == nil {
		return nil, 0
	}
	var out []Constituent
	total := spans(root, 0, &out)
	return out, total
}

func spans(c Chunk, pos int, out *[]Constituent) int {
	switch v := c.(type) {
	case Leaf:
		return pos + 1
	case Node:
		start := pos
		for _, child := range v.Children {
			pos = spans(child, pos, out)
		}
		*out = append(*out, Constituent{Label: v.Label, Start: start, End: pos})
		return pos
	}
	return pos
}

// Annotation describes one node's position in the tree.
type Annotation struct {
	Label  string
	Parent string // empty for top-level nodes
	Depth  int
	Leaves int
}

// Annotate walks chunks pre-order and records depth and parent label for every
// node. Leaves are not annotated.
func Annotate(chunks []Chunk) []Annotation {
	var out []Annotation
	annotate(chunks, 0, "", &out)
	return out
}

func annotate(chunks []Chunk, depth int, parent string, out *[]Annotation) {
	for _, c := range chunks {
		n, ok := c.(Node)
		if !ok {
			continue
		}
		*out = append(*out, Annotation{
			Label:  n.Label,
			Parent: parent,
			Depth:  depth,
			Leaves: CountLeaves(n),
		})
		annotate(n.Children, depth+1, n.Label, out)
	}
}
