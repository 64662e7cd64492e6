package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/tutur/pkg/tutur/internalerr"
	"github.com/cognicore/tutur/pkg/tutur/store"
)

func doc(id string, at time.Time, subj string) store.Doc {
	return store.Doc{
		ID:        id,
		Source:    "test",
		Text:      subj + " duduk.",
		CreatedAt: at,
		Sentences: []store.Sentence{{
			Index: 1,
			Text:  subj + " duduk .",
			Relations: []store.Relation{
				{Name: "root", Word: "duduk", Tag: "VB-ACT"},
				{Name: "nsubj", Word: subj, Tag: "PRP-PER"},
			},
		}},
	}
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := New()
	d := doc("a", time.Unix(100, 0), "Dia")
	if err := s.PutDoc(ctx, d); err != nil {
		t.Fatalf("PutDoc: %v", err)
	}

	got, err := s.GetDoc(ctx, "a")
	if err != nil {
		t.Fatalf("GetDoc: %v", err)
	}
	if got.Text != d.Text || len(got.Sentences) != 1 || len(got.Sentences[0].Relations) != 2 {
		t.Errorf("GetDoc = %+v", got)
	}

	// returned docs are copies
	got.Sentences[0].Relations[0].Word = "changed"
	again, _ := s.GetDoc(ctx, "a")
	if again.Sentences[0].Relations[0].Word != "duduk" {
		t.Errorf("store shares memory with callers")
	}

	if _, err := s.GetDoc(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetDoc(missing) err = %v, want ErrNotFound", err)
	}
	if err := s.PutDoc(ctx, store.Doc{}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("PutDoc(no id) err = %v, want ErrInvalidInput", err)
	}
}

func TestListAndFind(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, d := range []store.Doc{
		doc("a", time.Unix(100, 0), "Dia"),
		doc("b", time.Unix(300, 0), "aku"),
		doc("c", time.Unix(200, 0), "dia"),
	} {
		if err := s.PutDoc(ctx, d); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := s.ListDocs(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].ID != "b" || docs[1].ID != "c" {
		t.Errorf("ListDocs order = %v", ids(docs))
	}

	refs, err := s.FindByRelation(ctx, "nsubj", "DIA", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 || refs[0].DocID != "c" || refs[1].DocID != "a" {
		t.Errorf("FindByRelation = %+v", refs)
	}
	if refs[0].Relation.Tag != "PRP-PER" || refs[0].Sentence != 1 {
		t.Errorf("ref = %+v", refs[0])
	}

	if refs, _ := s.FindByRelation(ctx, "dobj", "dia", 0); len(refs) != 0 {
		t.Errorf("dobj matched %d refs", len(refs))
	}
	if refs, _ := s.FindByRelation(ctx, "root", "duduk", 1); len(refs) != 1 {
		t.Errorf("limit not applied: %d refs", len(refs))
	}
}

func ids(docs []store.Doc) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}
