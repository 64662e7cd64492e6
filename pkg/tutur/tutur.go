package tutur

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cognicore/tutur/pkg/tutur/chunk"
	"github.com/cognicore/tutur/pkg/tutur/depparse"
	"github.com/cognicore/tutur/pkg/tutur/internalerr"
	"github.com/cognicore/tutur/pkg/tutur/kb"
	"github.com/cognicore/tutur/pkg/tutur/postag"
	"github.com/cognicore/tutur/pkg/tutur/store"
	"github.com/cognicore/tutur/pkg/tutur/tokenize"
	"github.com/cognicore/tutur/pkg/tutur/tree"
)

// Engine is the analysis pipeline facade: tokenize, tag, chunk, extract,
// and optionally persist the result.
type Engine struct {
	tokenizer *tokenize.Tokenizer
	tagger    *postag.Tagger
	chunker   *chunk.Chunker
	extractor *depparse.Extractor
	store     store.Store
	now       func() time.Time
}

// Options configures an Engine. Nil stages are built with default options
// over KB. Store is only needed for Ingest and Lookup.
type Options struct {
	KB        *kb.KnowledgeBase
	Tokenizer *tokenize.Tokenizer
	Tagger    *postag.Tagger
	Chunker   *chunk.Chunker
	Extractor *depparse.Extractor
	Store     store.Store
	// Logger reports chunk-building faults of a default Chunker. Nil disables.
	Logger *log.Logger
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	k := opts.KB
	if k == nil {
		k = kb.NewBuilder().MustBuild()
	}
	e := &Engine{
		tokenizer: opts.Tokenizer,
		tagger:    opts.Tagger,
		chunker:   opts.Chunker,
		extractor: opts.Extractor,
		store:     opts.Store,
		now:       time.Now,
	}
	if e.tokenizer == nil {
		e.tokenizer = tokenize.New(k, tokenize.DefaultOptions())
	}
	if e.tagger == nil {
		e.tagger = postag.New(k, postag.DefaultOptions())
	}
	if e.chunker == nil {
		var onFault func(chunk.Fault)
		if logger := opts.Logger; logger != nil {
			onFault = func(f chunk.Fault) {
				logger.Printf("chunk: position %d (%v) kept bare: %v", f.Pos, f.Token, f.Err)
			}
		}
		e.chunker = chunk.New(chunk.Options{OnFault: onFault})
	}
	if e.extractor == nil {
		e.extractor = depparse.New(depparse.Options{})
	}
	return e
}

// Close cleanly shuts down the store, if any
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Analysis is the output of every stage for one input.
type Analysis struct {
	Tokens  []string          `json:"tokens"`
	Tagged  []tree.Token      `json:"tagged"`
	Tree    tree.Node         `json:"tree"`
	Clauses []chunk.Clause    `json:"clauses"`
	Records []depparse.Record `json:"records"`
}

// Analyze runs the whole pipeline over raw text. It never fails; unknown
// material falls through every stage with default tags.
func (e *Engine) Analyze(text string) Analysis {
	return e.AnalyzeTokens(e.tokenizer.Tokenize(text))
}

// AnalyzeTokens runs tagging, chunking and extraction over pre-segmented
// tokens.
func (e *Engine) AnalyzeTokens(tokens []string) Analysis {
	tagged := e.tagger.Tag(tokens)
	parsed := e.chunker.Parse(tagged)
	return Analysis{
		Tokens:  tokens,
		Tagged:  tagged,
		Tree:    parsed.Tree,
		Clauses: parsed.Clauses,
		Records: e.extractor.Extract(parsed.Tree),
	}
}

// Ingest analyses text and stores it under a fresh ID.
func (e *Engine) Ingest(ctx context.Context, source, text string) (store.Doc, error) {
	if e.store == nil {
		return store.Doc{}, fmt.Errorf("ingest: %w", internalerr.ErrStoreUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return store.Doc{}, err
	}
	return e.Save(ctx, source, text, e.Analyze(text))
}

// Save stores an analysis of text produced earlier by Analyze.
func (e *Engine) Save(ctx context.Context, source, text string, a Analysis) (store.Doc, error) {
	if e.store == nil {
		return store.Doc{}, fmt.Errorf("save: %w", internalerr.ErrStoreUnavailable)
	}
	now := e.now()
	doc := store.Doc{
		ID:        store.NewID(now),
		Source:    source,
		Text:      text,
		CreatedAt: now,
		Sentences: make([]store.Sentence, 0, len(a.Records)),
	}
	for _, rec := range a.Records {
		sent, err := toSentence(rec)
		if err != nil {
			return store.Doc{}, fmt.Errorf("save %s: %w", source, err)
		}
		doc.Sentences = append(doc.Sentences, sent)
	}

	if err := e.store.PutDoc(ctx, doc); err != nil {
		return store.Doc{}, fmt.Errorf("save %s: %w", source, err)
	}
	return doc, nil
}

var relations = []string{depparse.RelRoot, depparse.RelNSubj, depparse.RelDObj}

func toSentence(rec depparse.Record) (store.Sentence, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return store.Sentence{}, err
	}
	sent := store.Sentence{Index: rec.SentenceID, Text: rec.Text, Record: string(raw)}
	for _, rel := range relations {
		if tok := rec.Relation(rel); tok != nil {
			sent.Relations = append(sent.Relations, store.Relation{Name: rel, Word: tok.Text, Tag: tok.Tag})
		}
	}
	return sent, nil
}

// Lookup returns stored sentences whose rel relation is filled by word.
func (e *Engine) Lookup(ctx context.Context, rel, word string, limit int) ([]store.SentenceRef, error) {
	if e.store == nil {
		return nil, fmt.Errorf("lookup: %w", internalerr.ErrStoreUnavailable)
	}
	if !isRelation(rel) {
		return nil, fmt.Errorf("lookup: relation %q: %w", rel, internalerr.ErrInvalidInput)
	}
	if word == "" {
		return nil, fmt.Errorf("lookup: empty word: %w", internalerr.ErrInvalidInput)
	}
	return e.store.FindByRelation(ctx, rel, word, limit)
}

func isRelation(rel string) bool {
	for _, r := range relations {
		if r == rel {
			return true
		}
	}
	return false
}
