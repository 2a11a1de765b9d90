// Package vector provides the embedding store backends.
package vector

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingStore = (*MemoryStore)(nil)

// MemoryStore is the in-process embedding store: brute-force cosine
// similarity over loaded documents. It is the default backend; artifact
// tables already carry the vectors, so no external service is needed.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []driven.EmbeddingDocument
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Connect(ctx context.Context) error { return nil }

func (s *MemoryStore) Load(ctx context.Context, docs []driven.EmbeddingDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = docs
	return nil
}

func (s *MemoryStore) SimilarTexts(ctx context.Context, vec []float32, k int) ([]driven.ScoredText, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]driven.ScoredText, 0, len(s.docs))
	for _, d := range s.docs {
		scored = append(scored, driven.ScoredText{
			ID:    d.ID,
			Text:  d.Text,
			Score: cosine(vec, d.Vector),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
