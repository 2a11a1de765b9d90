package mocks

import (
	"context"
	"math"
	"sort"

	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// MockEmbeddingStore is an in-memory EmbeddingStore scoring by cosine
// similarity.
type MockEmbeddingStore struct {
	docs       []driven.EmbeddingDocument
	ConnectErr error
	LoadCalls  int
}

// NewMockEmbeddingStore creates a new MockEmbeddingStore.
func NewMockEmbeddingStore() *MockEmbeddingStore {
	return &MockEmbeddingStore{}
}

func (m *MockEmbeddingStore) Connect(ctx context.Context) error {
	return m.ConnectErr
}

func (m *MockEmbeddingStore) Load(ctx context.Context, docs []driven.EmbeddingDocument) error {
	m.LoadCalls++
	m.docs = docs
	return nil
}

func (m *MockEmbeddingStore) SimilarTexts(ctx context.Context, vector []float32, k int) ([]driven.ScoredText, error) {
	scored := make([]driven.ScoredText, 0, len(m.docs))
	for _, d := range m.docs {
		scored = append(scored, driven.ScoredText{
			ID:    d.ID,
			Text:  d.Text,
			Score: cosine(vector, d.Vector),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
