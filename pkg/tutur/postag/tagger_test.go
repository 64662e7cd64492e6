package postag

import (
	"reflect"
	"testing"

	"github.com/cognicore/tutur/pkg/tutur/kb"
	"github.com/cognicore/tutur/pkg/tutur/tree"
)

func testKB() *kb.KnowledgeBase {
	return kb.NewBuilder().
		AddWord("dia", "PRP-PER").
		AddWord("aku", "PRP-PER").
		AddWord("kamu", "PRP-PER").
		AddWord("duduk", "VB-ACT").
		AddWord("makan", "VB-ACT").
		AddWord("minum", "VB-ACT").
		AddWord("di", "IN-LOC").
		AddWord("kelapa", "NN-COM").
		AddWord("air", "NN-COM").
		AddWord("dingin", "JJ-QUALITY").
		AddWord("itu", "PRP-DEM").
		AddWord("sama", "JJ-QUALITY").
		AddWord("sejak", "CON-SUB").
		AddPattern("SYM-DOT", `\.`).
		AddPattern("SYM-COM", `,`).
		AddPattern("DT-CARD", `\d+`).
		SetScore(tree.StartSymbol, "PRP-PER", -0.5).
		SetScore("PRP-PER", "VB-ACT", -0.5).
		MustBuild()
}

func TestTagScenario(t *testing.T) {
	tagger := New(testKB(), DefaultOptions())
	got := tagger.Tag([]string{"dia", "duduk", "."})
	want := []tree.Token{
		{Text: "dia", Tag: "PRP-PER"},
		{Text: "duduk", Tag: "VB-ACT"},
		{Text: ".", Tag: "SYM-DOT"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tag = %v, want %v", got, want)
	}
}

func TestTagConfixRoundTrip(t *testing.T) {
	tagger := New(testKB(), DefaultOptions())
	got := tagger.Tag([]string{"me-", "makan", "-nya"})
	want := []tree.Token{{Text: "memakannya", Tag: "VB-ACT"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tag = %v, want %v", got, want)
	}
}

func TestTagTotality(t *testing.T) {
	tagger := New(testKB(), DefaultOptions())
	inputs := [][]string{
		{"xyz", "qwe", "dia"},
		{"42", "kelapa", ",", "zzz"},
		{"di"},
		{"itu", "air", "dingin", "."},
	}
	for _, in := range inputs {
		got := tagger.Tag(in)
		if len(got) != len(in) {
			t.Errorf("Tag(%q) returned %d tokens, want %d", in, len(got), len(in))
		}
		for _, tok := range got {
			if tok.Tag == "" {
				t.Errorf("Tag(%q): empty tag for %q", in, tok.Text)
			}
		}
	}
	if got := tagger.Tag(nil); len(got) != 0 {
		t.Errorf("Tag(nil) = %v", got)
	}
}

func TestTagFallbacks(t *testing.T) {
	tagger := New(nil, DefaultOptions())
	got := tagger.Tag([]string{"di", "xyz", "ber-"})
	wantTags := []string{"IN", "NN-COM", "VB-ACT"}
	for i, w := range wantTags {
		if got[i].Tag != w {
			t.Errorf("token %q tag = %q, want %q", got[i].Text, got[i].Tag, w)
		}
	}
}

func TestMergeIdioms(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []tree.Token
	}{
		{"sama dash sama", []string{"sama", "-", "sama"}, []tree.Token{{Text: "sama-sama", Tag: TagResponse}}},
		{"sama sama", []string{"Sama", "sama"}, []tree.Token{{Text: "sama-sama", Tag: TagResponse}}},
		{"hyphenated", []string{"sama-sama"}, []tree.Token{{Text: "sama-sama", Tag: TagResponse}}},
		{"repeat", []string{"kata", "-", "kata"}, []tree.Token{{Text: "kata-kata", Tag: TagRepeat}}},
		{"distinct neighbours", []string{"dia", "-", "kamu"}, []tree.Token{
			{Text: "dia"}, {Text: "-", Tag: TagDash}, {Text: "kamu"},
		}},
		{"plain", []string{"dia", "duduk"}, []tree.Token{{Text: "dia"}, {Text: "duduk"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mergeIdioms(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("mergeIdioms(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFuseConfixes(t *testing.T) {
	tok := func(text, tag string) tree.Token { return tree.Token{Text: text, Tag: tag} }
	tests := []struct {
		name string
		in   []tree.Token
		want []tree.Token
	}{
		{"four pieces",
			[]tree.Token{tok("me-", "VB-ACT"), tok("makan", "VB-ACT"), tok("-kan", "VB-CAUS"), tok("-nya", "PRP-POSS")},
			[]tree.Token{tok("memakankannya", "VB-ACT")}},
		{"ke-an",
			[]tree.Token{tok("ke-", "NN-COM"), tok("adil", "JJ-QUALITY"), tok("-an", "NN-COM")},
			[]tree.Token{tok("keadilan", "NN-ABST")}},
		{"double suffix",
			[]tree.Token{tok("makan", "VB-ACT"), tok("-an", "NN-COM"), tok("-nya", "PRP-POSS")},
			[]tree.Token{tok("makanannya", "NN-COM")}},
		{"se before unit",
			[]tree.Token{tok("se-", "NN-COM"), tok("buah", "NN-COM"), tok("kelapa", "NN-COM")},
			[]tree.Token{tok("sebuah", "DT-NUM"), tok("kelapa", "NN-COM")}},
		{"ke before numeral",
			[]tree.Token{tok("ke-", "NN-COM"), tok("dua", "DT-NUM")},
			[]tree.Token{tok("kedua", "DT-ORD")}},
		{"passive",
			[]tree.Token{tok("di-", "VB-ACT"), tok("makan", "VB-ACT")},
			[]tree.Token{tok("dimakan", "VB-PASS")}},
		{"possessive",
			[]tree.Token{tok("buku", "NN-COM"), tok("-nya", "PRP-POSS")},
			[]tree.Token{tok("bukunya", "NN-COM")}},
		{"symbol root blocks prefix",
			[]tree.Token{tok("se-", "NN-COM"), tok(",", "SYM-COM")},
			[]tree.Token{tok("se-", "NN-COM"), tok(",", "SYM-COM")}},
		{"lone dash is not a marker",
			[]tree.Token{tok("dia", "PRP-PER"), tok("-", "SYM-DASH"), tok("kamu", "PRP-PER")},
			[]tree.Token{tok("dia", "PRP-PER"), tok("-", "SYM-DASH"), tok("kamu", "PRP-PER")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fuseConfixes(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("fuseConfixes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisambiguate(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		tags  []string
		idx   int
		want  string
	}{
		{"demonstrative before noun", []string{"itu", "kelapa"}, []string{"PRP-DEM", "NN-COM"}, 0, "DT-DEF"},
		{"demonstrative after verb", []string{"makan", "itu"}, []string{"VB-ACT", "PRP-DEM"}, 1, "PRP-DEM"},
		{"mass noun after verb", []string{"minum", "air", "dingin"}, []string{"VB-ACT", "NN-COM", "JJ-QUALITY"}, 1, "NN-MASS"},
		{"mass noun before determiner", []string{"air", "itu", "."}, []string{"NN-COM", "DT-DEF", "SYM-DOT"}, 0, "NN-COM"},
		{"sama as comitative", []string{"aku", "sama", "kamu"}, []string{"PRP-PER", "JJ-QUALITY", "PRP-PER"}, 1, "IN-COM"},
		{"sama before modal", []string{"sama", "juga"}, []string{"JJ-QUALITY", "MOD-EMPH"}, 0, "MOD-EMPH"},
		{"sama alone", []string{"sama"}, []string{"JJ-QUALITY"}, 0, "JJ-QUALITY"},
		{"baik as correlative", []string{"baik", "dia", "maupun"}, []string{"JJ-QUALITY", "PRP-PER", "CON-COR"}, 0, "JJ-QUALITY"},
		{"baik next to correlative", []string{"baik", "maupun"}, []string{"JJ-QUALITY", "CON-COR"}, 0, "CON-COR"},
		{"sejak before verb", []string{"sejak", "makan"}, []string{"CON-SUB", "VB-ACT"}, 0, "IN-TEMP"},
		{"sejak before pronoun", []string{"sejak", "dia"}, []string{"CON-SUB", "PRP-PER"}, 0, "CON-SUB"},
		{"justru near verb", []string{"dia", "justru", "pergi"}, []string{"PRP-PER", "MOD-EMPH", "VB-ACT"}, 1, "MOD-ASP"},
		{"justru alone", []string{"justru"}, []string{"MOD-ASP"}, 0, "MOD-EMPH"},
		{"sedikit before adjective", []string{"sedikit", "dingin"}, []string{"ADV-ATT", "JJ-QUALITY"}, 0, "ADV-ATT"},
		{"sedikit before noun", []string{"sedikit", "air"}, []string{"ADV-ATT", "NN-COM"}, 0, "DT-INDEF"},
		{"sedikit after verb", []string{"makan", "sedikit"}, []string{"VB-ACT", "ADV-ATT"}, 1, "JJ-QUALITY"},
		{"sedikit as noun untouched", []string{"sedikit"}, []string{"NN-COM"}, 0, "NN-COM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]tree.Token, len(tt.words))
			for i := range tt.words {
				in[i] = tree.Token{Text: tt.words[i], Tag: tt.tags[i]}
			}
			out := disambiguate(in)
			if got := out[tt.idx].Tag; got != tt.want {
				t.Errorf("tag of %q = %q, want %q", tt.words[tt.idx], got, tt.want)
			}
			if in[tt.idx].Tag != tt.tags[tt.idx] {
				t.Error("disambiguate modified its input")
			}
		})
	}
}

func TestDecoderFallback(t *testing.T) {
	d := NewDecoder(testKB(), 0)
	for _, in := range [][]string{{"xyz"}, {"xyz", "abc", "qqq"}, {"42", "xyz"}} {
		got := d.Decode(in)
		if len(got) != len(in) {
			t.Fatalf("Decode(%q) length = %d, want %d", in, len(got), len(in))
		}
		for _, tag := range got {
			if tag != tree.TagUnknown {
				t.Errorf("Decode(%q) = %q, want all %s", in, got, tree.TagUnknown)
				break
			}
		}
	}
}

func TestDecoderBestPath(t *testing.T) {
	k := kb.NewBuilder().
		AddPattern("NN-COM", `[a-z]+`).
		AddPattern("VB-ACT", `[a-z]+`).
		SetScore(tree.StartSymbol, "NN-COM", -1).
		SetScore(tree.StartSymbol, "VB-ACT", -5).
		SetScore("NN-COM", "VB-ACT", -1).
		SetScore("NN-COM", "NN-COM", -4).
		SetScore("VB-ACT", "NN-COM", -1).
		MustBuild()

	d := NewDecoder(k, 0)
	got := d.Decode([]string{"anjing", "lari"})
	if want := []string{"NN-COM", "VB-ACT"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %q, want %q", got, want)
	}

	if c := NewDecoder(k, 1).Candidates("anjing"); !reflect.DeepEqual(c, []string{"NN-COM"}) {
		t.Errorf("capped Candidates = %q", c)
	}
	if c := d.Candidates("me-"); !reflect.DeepEqual(c, []string{"VB-ACT"}) {
		t.Errorf("shape Candidates(me-) = %q", c)
	}
}

func TestShapeCandidates(t *testing.T) {
	tests := map[string][]string{
		"me-":       {"VB-ACT"},
		"-an":       {"NN-COM"},
		"-ku":       {"PRP-POSS"},
		"anak-anak": {"NN-COLL"},
		"kelapa":    nil,
	}
	for in, want := range tests {
		if got := shapeCandidates(in); !reflect.DeepEqual(got, want) {
			t.Errorf("shapeCandidates(%q) = %q, want %q", in, got, want)
		}
	}
}
