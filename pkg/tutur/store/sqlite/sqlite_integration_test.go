package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/tutur/pkg/tutur/internalerr"
	"github.com/cognicore/tutur/pkg/tutur/store"
)

func openTest(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testDoc(id string, at time.Time, subj string) store.Doc {
	return store.Doc{
		ID:        id,
		Source:    "file.txt",
		Text:      subj + " duduk. Hujan.",
		CreatedAt: at,
		Sentences: []store.Sentence{
			{
				Index:  1,
				Text:   subj + " duduk .",
				Record: `{"sentence_id":1}`,
				Relations: []store.Relation{
					{Name: "root", Word: "duduk", Tag: "VB-ACT"},
					{Name: "nsubj", Word: subj, Tag: "PRP-PER"},
				},
			},
			{Index: 2, Text: "Hujan ."},
		},
	}
}

// TestSQLiteIntegrationBasic tests the document round trip
func TestSQLiteIntegrationBasic(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	at := time.Date(2024, 3, 1, 10, 0, 0, 123, time.UTC)
	if err := st.PutDoc(ctx, testDoc("01A", at, "Dia")); err != nil {
		t.Fatalf("PutDoc: %v", err)
	}

	got, err := st.GetDoc(ctx, "01A")
	if err != nil {
		t.Fatalf("GetDoc: %v", err)
	}
	if got.Source != "file.txt" || !got.CreatedAt.Equal(at) {
		t.Errorf("doc = %+v", got)
	}
	if len(got.Sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(got.Sentences))
	}
	if got.Sentences[0].Record != `{"sentence_id":1}` || len(got.Sentences[0].Relations) != 2 {
		t.Errorf("sentence 1 = %+v", got.Sentences[0])
	}
	if got.Sentences[0].Relations[1] != (store.Relation{Name: "nsubj", Word: "Dia", Tag: "PRP-PER"}) {
		t.Errorf("relation = %+v", got.Sentences[0].Relations[1])
	}
	if len(got.Sentences[1].Relations) != 0 {
		t.Errorf("sentence 2 relations = %+v", got.Sentences[1].Relations)
	}

	if _, err := st.GetDoc(ctx, "nope"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetDoc(nope) err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteReplaceDoc(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	at := time.Unix(1000, 0)
	if err := st.PutDoc(ctx, testDoc("01A", at, "Dia")); err != nil {
		t.Fatal(err)
	}
	if err := st.PutDoc(ctx, testDoc("01A", at, "Kami")); err != nil {
		t.Fatal(err)
	}

	if refs, _ := st.FindByRelation(ctx, "nsubj", "dia", 0); len(refs) != 0 {
		t.Errorf("stale relation still indexed: %+v", refs)
	}
	refs, err := st.FindByRelation(ctx, "nsubj", "kami", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 1 || refs[0].Text != "Kami duduk ." {
		t.Errorf("refs = %+v", refs)
	}
}

func TestSQLiteListAndFind(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	base := time.Unix(5000, 0)
	for i, subj := range []string{"Dia", "aku", "dia"} {
		id := store.NewID(base.Add(time.Duration(i) * time.Minute))
		if err := st.PutDoc(ctx, testDoc(id, base.Add(time.Duration(i)*time.Minute), subj)); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := st.ListDocs(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].Sentences[0].Relations[1].Word != "dia" {
		t.Errorf("ListDocs newest first failed: %+v", docs)
	}

	refs, err := st.FindByRelation(ctx, "nsubj", "DIA", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	if refs[0].Relation.Word != "dia" || refs[1].Relation.Word != "Dia" {
		t.Errorf("refs order = %+v", refs)
	}
	if refs, _ := st.FindByRelation(ctx, "root", "duduk", 1); len(refs) != 1 {
		t.Errorf("limit not applied: %d", len(refs))
	}
}
