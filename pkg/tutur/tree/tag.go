package tree

import "strings"

// Reserved tags.
const (
	// TagUnknown marks a position the decoder could not resolve.
	TagUnknown = "<UNK>"
	// TagDefault is the final fallback for tokens no source could tag.
	TagDefault = "NN-COM"
	// StartSymbol is the synthetic predecessor of the first decoding column.
	StartSymbol = "<s>"
)

// Category returns the part of a tag before the first hyphen:
// "VB-ACT" → "VB", "IN" → "IN".
func Category(tag string) string {
	if i := strings.IndexByte(tag, '-'); i >= 0 {
		return tag[:i]
	}
	return tag
}

// HasCategory reports whether tag's category is one of cats.
func HasCategory(tag string, cats ...string) bool {
	c := Category(tag)
	for _, want := range cats {
		if c == want {
			return true
		}
	}
	return false
}
