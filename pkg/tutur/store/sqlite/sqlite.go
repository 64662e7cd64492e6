package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/tutur/pkg/tutur/internalerr"
	"github.com/cognicore/tutur/pkg/tutur/store"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w: %v", path, internalerr.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id TEXT PRIMARY KEY,
	source TEXT,
	text TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sentences (
	doc_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	text TEXT NOT NULL,
	record TEXT,
	PRIMARY KEY(doc_id, idx),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS relations (
	doc_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	name TEXT NOT NULL,
	word TEXT NOT NULL COLLATE NOCASE,
	tag TEXT,
	FOREIGN KEY(doc_id, idx) REFERENCES sentences(doc_id, idx) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_relations_name_word ON relations(name, word);
CREATE INDEX IF NOT EXISTS idx_docs_created ON docs(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// PutDoc inserts or replaces a document together with its sentences.
func (s *sqliteStore) PutDoc(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return fmt.Errorf("put doc: empty id: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO docs (id, source, text, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source=excluded.source,
	text=excluded.text,
	created_at=excluded.created_at;
`
	if _, err := tx.ExecContext(ctx, stmt, d.ID, d.Source, d.Text, d.CreatedAt.UTC().Format(timeLayout)); err != nil {
		return fmt.Errorf("put doc %s: %w", d.ID, err)
	}
	if err := replaceSentences(ctx, tx, d.ID, d.Sentences); err != nil {
		return fmt.Errorf("put doc %s: %w", d.ID, err)
	}
	return tx.Commit()
}

func replaceSentences(ctx context.Context, tx *sql.Tx, docID string, sents []store.Sentence) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM relations WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sentences WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if len(sents) == 0 {
		return nil
	}

	sentStmt, err := tx.PrepareContext(ctx, `INSERT INTO sentences (doc_id, idx, text, record) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer sentStmt.Close()
	relStmt, err := tx.PrepareContext(ctx, `INSERT INTO relations (doc_id, idx, name, word, tag) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer relStmt.Close()

	for _, sent := range sents {
		if _, err := sentStmt.ExecContext(ctx, docID, sent.Index, sent.Text, sent.Record); err != nil {
			return err
		}
		for _, r := range sent.Relations {
			if r.Name == "" || r.Word == "" {
				continue
			}
			if _, err := relStmt.ExecContext(ctx, docID, sent.Index, r.Name, r.Word, r.Tag); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetDoc retrieves a document by ID
func (s *sqliteStore) GetDoc(ctx context.Context, id string) (store.Doc, error) {
	var (
		d       store.Doc
		source  sql.NullString
		created string
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, source, text, created_at FROM docs WHERE id = ?`, id).
		Scan(&d.ID, &source, &d.Text, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Doc{}, fmt.Errorf("doc %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Doc{}, err
	}
	d.Source = source.String
	if d.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return store.Doc{}, fmt.Errorf("doc %s: created_at: %w", id, err)
	}

	if d.Sentences, err = s.loadSentences(ctx, id); err != nil {
		return store.Doc{}, err
	}
	return d, nil
}

func (s *sqliteStore) loadSentences(ctx context.Context, docID string) ([]store.Sentence, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, text, record FROM sentences WHERE doc_id = ? ORDER BY idx`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Sentence
	pos := make(map[int]int)
	for rows.Next() {
		var (
			sent   store.Sentence
			record sql.NullString
		)
		if err := rows.Scan(&sent.Index, &sent.Text, &record); err != nil {
			return nil, err
		}
		sent.Record = record.String
		pos[sent.Index] = len(out)
		out = append(out, sent)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	relRows, err := s.db.QueryContext(ctx, `SELECT idx, name, word, tag FROM relations WHERE doc_id = ? ORDER BY idx, rowid`, docID)
	if err != nil {
		return nil, err
	}
	defer relRows.Close()
	for relRows.Next() {
		var (
			idx int
			r   store.Relation
			tag sql.NullString
		)
		if err := relRows.Scan(&idx, &r.Name, &r.Word, &tag); err != nil {
			return nil, err
		}
		r.Tag = tag.String
		if i, ok := pos[idx]; ok {
			out[i].Relations = append(out[i].Relations, r)
		}
	}
	return out, relRows.Err()
}

// ListDocs returns the newest documents first.
func (s *sqliteStore) ListDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM docs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	docs := make([]store.Doc, 0, len(ids))
	for _, id := range ids {
		d, err := s.GetDoc(ctx, id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// FindByRelation matches the word column case-insensitively via its NOCASE
// collation.
func (s *sqliteStore) FindByRelation(ctx context.Context, rel, word string, limit int) ([]store.SentenceRef, error) {
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	const query = `
SELECT d.id, d.source, s.idx, s.text, r.name, r.word, r.tag
FROM relations r
JOIN sentences s ON s.doc_id = r.doc_id AND s.idx = r.idx
JOIN docs d ON d.id = r.doc_id
WHERE r.name = ? AND r.word = ?
ORDER BY d.created_at DESC, d.id DESC, s.idx
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, rel, word, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.SentenceRef
	for rows.Next() {
		var (
			ref         store.SentenceRef
			source, tag sql.NullString
		)
		if err := rows.Scan(&ref.DocID, &source, &ref.Sentence, &ref.Text, &ref.Relation.Name, &ref.Relation.Word, &tag); err != nil {
			return nil, err
		}
		ref.Source = source.String
		ref.Relation.Tag = tag.String
		out = append(out, ref)
	}
	return out, rows.Err()
}
