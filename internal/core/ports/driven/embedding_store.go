package driven

import "context"

// EmbeddingDocument is one snippet loaded into an embedding store.
type EmbeddingDocument struct {
	ID     string
	Text   string
	Vector []float32
}

// ScoredText is one similarity-search hit.
type ScoredText struct {
	ID    string
	Text  string
	Score float64
}

// EmbeddingStore is a vector similarity index over text snippets, pluggable
// across backends.
type EmbeddingStore interface {
	// Connect verifies the backing store is reachable.
	Connect(ctx context.Context) error

	// Load replaces the store's documents. Drift search requires report
	// embeddings to be resolvable synchronously before the first query, so
	// Load must complete before the engine is handed out.
	Load(ctx context.Context, docs []EmbeddingDocument) error

	// SimilarTexts returns the k nearest documents to the query vector.
	SimilarTexts(ctx context.Context, vector []float32, k int) ([]ScoredText, error)
}
