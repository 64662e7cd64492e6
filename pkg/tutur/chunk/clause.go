package chunk

import "github.com/cognicore/tutur/pkg/tutur/tree"

// Clause is a half-open span [Start, End) over top-level chunk positions.
type Clause struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Clauses splits a top-level chunk list before every VP and every
// conjunction. The spans cover the whole list. The result is metadata only
// and is never used to reshape the tree.
func Clauses(chunks []tree.Chunk) []Clause {
	var out []Clause
	start := 0
	for i, c := range chunks {
		if i > start && opensClause(c) {
			out = append(out, Clause{Start: start, End: i})
			start = i
		}
	}
	if start < len(chunks) {
		out = append(out, Clause{Start: start, End: len(chunks)})
	}
	return out
}

func opensClause(c tree.Chunk) bool {
	switch v := c.(type) {
	case tree.Node:
		return v.Label == tree.LabelVP || v.Label == tree.LabelCONJ
	case tree.Leaf:
		return tree.HasCategory(v.Tag, "CON")
	}
	return false
}
