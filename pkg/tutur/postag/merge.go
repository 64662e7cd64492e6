package postag

import (
	"strings"

	"github.com/cognicore/tutur/pkg/tutur/tree"
)

// Fixed tags assigned by idiom fusion.
const (
	TagResponse = "INT-RESP"
	TagRepeat   = "NN-REPEAT"
	TagDash     = "SYM-DASH"
)

// mergeIdioms fuses fixed expressions before any lookup runs. Fused and
// dash tokens come back tagged; everything else has an empty tag.
//
//	sama-sama | sama - sama | sama sama → ("sama-sama", INT-RESP)
//	x - x                                → ("x-x", NN-REPEAT)
//	x - y                                → x, ("-", SYM-DASH), y
func mergeIdioms(tokens []string) []tree.Token {
	out := make([]tree.Token, 0, len(tokens))
	n := len(tokens)
	for i := 0; i < n; {
		tok := tokens[i]

		if strings.ToLower(tok) == "sama-sama" {
			out = append(out, tree.Token{Text: "sama-sama", Tag: TagResponse})
			i++
			continue
		}

		if i+2 < n && tokens[i+1] == "-" {
			third := tokens[i+2]
			switch {
			case isSama(tok) && isSama(third):
				out = append(out, tree.Token{Text: "sama-sama", Tag: TagResponse})
				i += 3
				continue
			case tok == third:
				out = append(out, tree.Token{Text: tok + "-" + third, Tag: TagRepeat})
				i += 3
				continue
			}
		}

		if i+1 < n && isSama(tok) && isSama(tokens[i+1]) {
			out = append(out, tree.Token{Text: "sama-sama", Tag: TagResponse})
			i += 2
			continue
		}

		if i+2 < n && tokens[i+1] == "-" {
			out = append(out, tree.Token{Text: tok}, tree.Token{Text: "-", Tag: TagDash})
			i += 2
			continue
		}

		out = append(out, tree.Token{Text: tok})
		i++
	}
	return out
}

func isSama(s string) bool { return strings.ToLower(s) == "sama" }
