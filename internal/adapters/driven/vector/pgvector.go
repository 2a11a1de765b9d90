package vector

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingStore = (*PGStore)(nil)

// PGStore is the pgvector-backed embedding store. One table per collection;
// Load recreates the table so its dimensionality always matches the loaded
// vectors.
type PGStore struct {
	dsn        string
	collection string
	db         *sql.DB
}

// NewPGStore creates a PGStore for one collection. Connect must be called
// before use.
func NewPGStore(dsn, collection string) *PGStore {
	return &PGStore{dsn: dsn, collection: collection}
}

func (s *PGStore) Connect(ctx context.Context) error {
	if s.db != nil {
		return s.db.PingContext(ctx)
	}
	db, err := sql.Open("postgres", s.dsn)
	if err != nil {
		return fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		db.Close()
		return fmt.Errorf("ensuring vector extension: %w", err)
	}
	s.db = db
	return nil
}

func (s *PGStore) Load(ctx context.Context, docs []driven.EmbeddingDocument) error {
	if s.db == nil {
		return fmt.Errorf("store not connected")
	}
	if len(docs) == 0 {
		return nil
	}
	dims := len(docs[0].Vector)
	table := s.tableName()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return fmt.Errorf("dropping %s: %w", table, err)
	}
	create := fmt.Sprintf(
		"CREATE TABLE %s (id text PRIMARY KEY, content text NOT NULL, embedding vector(%d) NOT NULL)",
		table, dims)
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("creating %s: %w", table, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (id, content, embedding) VALUES ($1, $2, $3::vector)", table)
	for _, d := range docs {
		if _, err := tx.ExecContext(ctx, insert, d.ID, d.Text, renderVector(d.Vector)); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func (s *PGStore) SimilarTexts(ctx context.Context, vec []float32, k int) ([]driven.ScoredText, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not connected")
	}
	query := fmt.Sprintf(
		"SELECT id, content, 1 - (embedding <=> $1::vector) FROM %s ORDER BY embedding <=> $1::vector LIMIT $2",
		s.tableName())
	rows, err := s.db.QueryContext(ctx, query, renderVector(vec), k)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}
	defer rows.Close()

	var hits []driven.ScoredText
	for rows.Next() {
		var h driven.ScoredText
		if err := rows.Scan(&h.ID, &h.Text, &h.Score); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Close releases the connection pool.
func (s *PGStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PGStore) tableName() string {
	return pq.QuoteIdentifier("embeddings_" + s.collection)
}

// renderVector produces the pgvector text literal "[x,y,...]".
func renderVector(vec []float32) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
