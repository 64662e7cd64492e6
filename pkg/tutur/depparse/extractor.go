// Package depparse reads core grammatical relations off a chunk tree.
//
// The top-level chunk list is cut into sentences at terminal punctuation and
// each sentence gets one Record: the main predicate (root), the nominal
// subject, the direct object and every punctuation token. Searches are
// linear scans in document order, not headedness-aware, so word order alone
// decides which token fills a relation.
package depparse

import (
	"github.com/cognicore/tutur/pkg/tutur/tree"
)

// Relation names accepted by Record.Relation.
const (
	RelRoot  = "root"
	RelNSubj = "nsubj"
	RelDObj  = "dobj"
)

// Options configures an Extractor.
type Options struct {
	// SplitOnColon lets a ':' close a sentence when the next item opens with
	// a pronoun, verb or determiner. Off by default.
	SplitOnColon bool `yaml:"split_on_colon"`
}

// Record is the relation set for one sentence.
type Record struct {
	SentenceID int          `json:"sentence_id"`
	Text       string       `json:"text"`
	Root       *tree.Token  `json:"root"`
	NSubj      *tree.Token  `json:"nsubj"`
	DObj       *tree.Token  `json:"dobj"`
	XComp      []tree.Chunk `json:"xcomp"`
	Punct      []tree.Token `json:"punct"`
}

// Relation returns the token filling rel, or nil.
func (r Record) Relation(rel string) *tree.Token {
	switch rel {
	case RelRoot:
		return r.Root
	case RelNSubj:
		return r.NSubj
	case RelDObj:
		return r.DObj
	}
	return nil
}

// Extractor is stateless and safe for concurrent use.
type Extractor struct {
	splitOnColon bool
}

// New creates an extractor.
func New(opts Options) *Extractor {
	return &Extractor{splitOnColon: opts.SplitOnColon}
}

// Extract returns one record per sentence under root, in order, with
// 1-based sentence ids.
func (e *Extractor) Extract(root tree.Node) []Record {
	return e.ExtractChunks(root.Children)
}

// ExtractChunks is Extract over a bare top-level chunk list.
func (e *Extractor) ExtractChunks(chunks []tree.Chunk) []Record {
	var out []Record
	for _, sent := range e.Sentences(chunks) {
		out = append(out, Record{
			SentenceID: len(out) + 1,
			Text:       tree.Text(sent),
			Root:       findRoot(sent),
			NSubj:      findNSubj(sent),
			DObj:       findDObj(sent),
			XComp:      findXComp(sent),
			Punct:      findPunct(sent),
		})
	}
	return out
}

var terminals = map[string]bool{".": true, "?": true, "!": true}

var colonFollowers = map[string]bool{
	"PRP-PER": true,
	"PRP-DEM": true,
	"VB-ACT":  true,
	"VB-STAT": true,
	"DT-DEF":  true,
	"DT-ORD":  true,
}

// Sentences cuts a top-level chunk list after every terminal symbol. The
// terminal stays with the sentence it closes. A trailing run without a
// terminal is still a sentence.
func (e *Extractor) Sentences(chunks []tree.Chunk) [][]tree.Chunk {
	var out [][]tree.Chunk
	var cur []tree.Chunk
	for i, c := range chunks {
		cur = append(cur, c)
		lead, ok := leading(c)
		if !ok || tree.Category(lead.Tag) != "SYM" {
			continue
		}
		if terminals[lead.Text] || (lead.Text == ":" && e.splitOnColon && opensSentence(chunks, i+1)) {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func opensSentence(chunks []tree.Chunk, i int) bool {
	if i >= len(chunks) {
		return false
	}
	leaves := tree.Leaves(chunks[i])
	return len(leaves) > 0 && colonFollowers[leaves[0].Tag]
}

// leading returns c itself for a leaf, or the first child of a node when
// that child is a leaf.
func leading(c tree.Chunk) (tree.Token, bool) {
	switch v := c.(type) {
	case tree.Leaf:
		return v.Token, true
	case tree.Node:
		if len(v.Children) > 0 {
			if leaf, ok := v.Children[0].(tree.Leaf); ok {
				return leaf.Token, true
			}
		}
	}
	return tree.Token{}, false
}
