package mocks

import (
	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// MockAIFactory hands out the configured mocks. Embedding stores are created
// per collection on first use and retained for inspection.
type MockAIFactory struct {
	Model    *MockChatModel
	Embed    *MockEmbedder
	Stores   map[string]*MockEmbeddingStore
	ModelErr error
	StoreErr error
}

// NewMockAIFactory creates a MockAIFactory around the given chat model.
func NewMockAIFactory(model *MockChatModel) *MockAIFactory {
	return &MockAIFactory{
		Model:  model,
		Embed:  NewMockEmbedder(),
		Stores: map[string]*MockEmbeddingStore{},
	}
}

func (f *MockAIFactory) ChatModel(cfg *domain.ProjectConfig) (driven.ChatModel, error) {
	if f.ModelErr != nil {
		return nil, f.ModelErr
	}
	return f.Model, nil
}

func (f *MockAIFactory) Embedder(cfg *domain.ProjectConfig) (driven.Embedder, error) {
	return f.Embed, nil
}

func (f *MockAIFactory) EmbeddingStore(cfg *domain.ProjectConfig, collection string) (driven.EmbeddingStore, error) {
	if f.StoreErr != nil {
		return nil, f.StoreErr
	}
	store, ok := f.Stores[collection]
	if !ok {
		store = NewMockEmbeddingStore()
		f.Stores[collection] = store
	}
	return store, nil
}
