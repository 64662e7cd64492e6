package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store persists analysed documents and answers relation queries over them.
type Store interface {
	Close() error

	// PutDoc inserts d or replaces the document with the same ID.
	PutDoc(ctx context.Context, d Doc) error
	// GetDoc returns internalerr.ErrNotFound for an unknown id.
	GetDoc(ctx context.Context, id string) (Doc, error)
	// ListDocs returns the newest documents first.
	ListDocs(ctx context.Context, limit int) ([]Doc, error)

	// FindByRelation returns sentences whose rel relation (root, nsubj,
	// dobj) has the surface word, compared case-insensitively.
	FindByRelation(ctx context.Context, rel, word string, limit int) ([]SentenceRef, error)
}

// Doc is one analysed text.
type Doc struct {
	ID        string
	Source    string
	Text      string
	CreatedAt time.Time
	Sentences []Sentence
}

// Sentence is the stored form of one extracted record.
type Sentence struct {
	Index     int // 1-based sentence id
	Text      string
	Relations []Relation
	Record    string // JSON-encoded record
}

// Relation is one filled dependency slot.
type Relation struct {
	Name string
	Word string
	Tag  string
}

// SentenceRef points at a stored sentence matched by a relation query.
type SentenceRef struct {
	DocID    string
	Source   string
	Sentence int
	Text     string
	Relation Relation
}

// DefaultLimit applies when a query passes limit <= 0.
const DefaultLimit = 20

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a ULID for a document created at t. IDs from one process
// sort in creation order.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
