package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/tutur/pkg/tutur/internalerr"
	"github.com/cognicore/tutur/pkg/tutur/store"
)

// Store is an in-memory implementation of store.Store for tests and
// one-shot runs.
type Store struct {
	mu   sync.RWMutex
	docs map[string]store.Doc
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{docs: make(map[string]store.Doc)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// PutDoc inserts or replaces a document, keyed by ID.
func (s *Store) PutDoc(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return fmt.Errorf("put doc: empty id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.ID] = copyDoc(d)
	return nil
}

// GetDoc returns a document by ID.
func (s *Store) GetDoc(ctx context.Context, id string) (store.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, ok := s.docs[id]; ok {
		return copyDoc(doc), nil
	}
	return store.Doc{}, fmt.Errorf("doc %s: %w", id, internalerr.ErrNotFound)
}

// ListDocs returns documents newest first. ULIDs sort by creation time, so
// ties on CreatedAt fall back to the ID.
func (s *Store) ListDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = store.DefaultLimit
	}
	out := make([]store.Doc, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, copyDoc(d))
	}
	sortNewest(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FindByRelation scans every stored sentence.
func (s *Store) FindByRelation(ctx context.Context, rel, word string, limit int) ([]store.SentenceRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = store.DefaultLimit
	}
	docs := make([]store.Doc, 0, len(s.docs))
	for _, d := range s.docs {
		docs = append(docs, d)
	}
	sortNewest(docs)

	var out []store.SentenceRef
	for _, d := range docs {
		for _, sent := range d.Sentences {
			for _, r := range sent.Relations {
				if r.Name != rel || !strings.EqualFold(r.Word, word) {
					continue
				}
				out = append(out, store.SentenceRef{
					DocID:    d.ID,
					Source:   d.Source,
					Sentence: sent.Index,
					Text:     sent.Text,
					Relation: r,
				})
				if len(out) == limit {
					return out, nil
				}
			}
		}
	}
	return out, nil
}

func sortNewest(docs []store.Doc) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID > docs[j].ID
	})
}

func copyDoc(d store.Doc) store.Doc {
	out := d
	out.Sentences = make([]store.Sentence, len(d.Sentences))
	for i, s := range d.Sentences {
		s.Relations = append([]store.Relation(nil), s.Relations...)
		out.Sentences[i] = s
	}
	return out
}
