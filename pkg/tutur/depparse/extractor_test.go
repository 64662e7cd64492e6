package depparse

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/tutur/pkg/tutur/tree"
)

func leaf(text, tag string) tree.Leaf { return tree.NewLeaf(text, tag) }

func TestExtractScenario(t *testing.T) {
	root := tree.NewNode(tree.LabelS,
		tree.NewNode(tree.LabelNP, leaf("Dia", "PRP-PER")),
		tree.NewNode(tree.LabelVP, leaf("duduk", "VB-ACT")),
		tree.NewNode(tree.LabelPUNCT, leaf(".", "SYM-DOT")),
	)
	recs := New(Options{}).Extract(root)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.SentenceID != 1 || r.Text != "Dia duduk ." {
		t.Errorf("id/text = %d %q", r.SentenceID, r.Text)
	}
	if r.Root == nil || *r.Root != (tree.Token{Text: "duduk", Tag: "VB-ACT"}) {
		t.Errorf("root = %v", r.Root)
	}
	if r.NSubj == nil || *r.NSubj != (tree.Token{Text: "Dia", Tag: "PRP-PER"}) {
		t.Errorf("nsubj = %v", r.NSubj)
	}
	if r.DObj != nil {
		t.Errorf("dobj = %v, want nil", r.DObj)
	}
	if want := []tree.Token{{Text: ".", Tag: "SYM-DOT"}}; !reflect.DeepEqual(r.Punct, want) {
		t.Errorf("punct = %v, want %v", r.Punct, want)
	}
	if len(r.XComp) != 0 {
		t.Errorf("xcomp = %v", r.XComp)
	}
}

func TestExtractObject(t *testing.T) {
	root := tree.NewNode(tree.LabelS,
		tree.NewNode(tree.LabelNP, leaf("aku", "PRP-PER")),
		tree.NewNode(tree.LabelVP,
			leaf("makan", "VB-ACT"),
			tree.NewNode(tree.LabelPP, leaf("di", "IN-LOC"), tree.NewNode(tree.LabelNP, leaf("rumah", "NN-COM"))),
			tree.NewNode(tree.LabelNP, leaf("nasi", "NN-COM"), leaf("goreng", "JJ-TASTE")),
		),
	)
	r := New(Options{}).Extract(root)[0]
	if r.DObj == nil || r.DObj.Text != "nasi" {
		t.Errorf("dobj = %v, want nasi", r.DObj)
	}
	if r.Text != "aku makan di rumah nasi goreng" {
		t.Errorf("text = %q", r.Text)
	}
}

func TestExtractBareFallbacks(t *testing.T) {
	root := tree.NewNode(tree.LabelS,
		leaf("pergi", "VB-ACT"),
		leaf("kucing", "NN-COM"),
		tree.NewNode(tree.LabelVP, leaf("lari", "VB-ACT"), leaf("tikus", "NN-COM")),
	)
	r := New(Options{}).Extract(root)[0]
	if r.Root == nil || r.Root.Text != "pergi" {
		t.Errorf("root = %v, want pergi", r.Root)
	}
	if r.NSubj == nil || r.NSubj.Text != "kucing" {
		t.Errorf("nsubj = %v, want kucing", r.NSubj)
	}
	if r.DObj == nil || r.DObj.Text != "tikus" {
		t.Errorf("dobj = %v, want tikus", r.DObj)
	}
}

func TestSentenceSplit(t *testing.T) {
	dot := tree.NewNode(tree.LabelPUNCT, leaf(".", "SYM-DOT"))
	np := tree.NewNode(tree.LabelNP, leaf("dia", "PRP-PER"))
	vp := tree.NewNode(tree.LabelVP, leaf("tidur", "VB-ACT"))

	tests := []struct {
		name   string
		chunks []tree.Chunk
		want   []int
	}{
		{"one terminal at end", []tree.Chunk{np, vp, dot}, []int{3}},
		{"tokens after terminal", []tree.Chunk{np, vp, dot, np}, []int{3, 1}},
		{"bare terminal leaf", []tree.Chunk{np, leaf("?", "SYM-QUES"), vp}, []int{2, 1}},
		{"no terminal", []tree.Chunk{np, vp}, []int{2}},
		{"dot not tagged as symbol", []tree.Chunk{np, leaf(".", "NN-COM"), vp}, []int{3}},
		{"empty", nil, nil},
	}
	e := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, s := range e.Sentences(tt.chunks) {
				got = append(got, len(s))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sentence sizes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitOnColon(t *testing.T) {
	colon := tree.NewNode(tree.LabelPUNCT, leaf(":", "SYM-COLON"))
	chunks := []tree.Chunk{
		tree.NewNode(tree.LabelNP, leaf("katanya", "NN-COM")), colon,
		tree.NewNode(tree.LabelNP, leaf("saya", "PRP-PER")),
		tree.NewNode(tree.LabelVP, leaf("lapar", "VB-STAT")), colon,
		tree.NewNode(tree.LabelNP, leaf("nasi", "NN-COM")),
	}
	if got := len(New(Options{}).Sentences(chunks)); got != 1 {
		t.Errorf("default: %d sentences, want 1", got)
	}
	// Only the first colon is followed by a pronoun.
	if got := len(New(Options{SplitOnColon: true}).Sentences(chunks)); got != 2 {
		t.Errorf("split on colon: %d sentences, want 2", got)
	}
}

func TestExtractIDsAndEmpty(t *testing.T) {
	e := New(Options{})
	if recs := e.Extract(tree.NewNode(tree.LabelS)); len(recs) != 0 {
		t.Errorf("empty tree gave %d records", len(recs))
	}
	root := tree.NewNode(tree.LabelS,
		leaf("ya", "INT-RESP"), leaf("!", "SYM-EXCL"),
		leaf("tidak", "ADV-NEG"), leaf(".", "SYM-DOT"),
		leaf("oh", "INT-EXCL"),
	)
	recs := e.Extract(root)
	for i, r := range recs {
		if r.SentenceID != i+1 {
			t.Errorf("record %d has id %d", i, r.SentenceID)
		}
		if r.Root != nil || r.NSubj != nil || r.DObj != nil {
			t.Errorf("record %d found relations in a verbless sentence: %+v", i, r)
		}
	}
	if len(recs) != 3 {
		t.Errorf("got %d records, want 3", len(recs))
	}
}

func TestPunctNested(t *testing.T) {
	root := tree.NewNode(tree.LabelS,
		tree.NewNode(tree.LabelInterrog,
			tree.NewNode(tree.LabelWH, leaf("apa", "Q-WHAT"), leaf("\"", "SYM-QUOTE")),
		),
		tree.NewNode(tree.LabelPUNCT, leaf("?", "SYM-QUES")),
	)
	r := New(Options{}).Extract(root)[0]
	want := []tree.Token{{Text: "\"", Tag: "SYM-QUOTE"}, {Text: "?", Tag: "SYM-QUES"}}
	if !reflect.DeepEqual(r.Punct, want) {
		t.Errorf("punct = %v, want %v", r.Punct, want)
	}
}

func TestRecordJSON(t *testing.T) {
	r := New(Options{}).Extract(tree.NewNode(tree.LabelS, leaf("hujan", "NN-COM")))[0]
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"sentence_id":1`, `"root":null`, `"xcomp":[]`, `"punct":[]`, `"nsubj":{"text":"hujan","tag":"NN-COM"}`} {
		if !strings.Contains(s, want) {
			t.Errorf("json %s missing %s", s, want)
		}
	}
	if r.Relation(RelNSubj) != r.NSubj || r.Relation("amod") != nil {
		t.Errorf("Relation lookup mismatch")
	}
}
