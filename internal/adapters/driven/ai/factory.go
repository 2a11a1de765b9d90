// Package ai builds model clients and embedding stores from project
// configuration.
package ai

import (
	"fmt"

	"github.com/ragfront/ragfront-core/internal/adapters/driven/vector"
	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AIFactory = (*Factory)(nil)

// Factory creates clients per project configuration. Clients are cheap and
// built per request; nothing here is cached across projects.
type Factory struct{}

// NewFactory creates a Factory.
func NewFactory() *Factory { return &Factory{} }

func (f *Factory) ChatModel(cfg *domain.ProjectConfig) (driven.ChatModel, error) {
	return NewChatModel(cfg.APIKey, cfg.ChatModel, cfg.APIBase)
}

func (f *Factory) Embedder(cfg *domain.ProjectConfig) (driven.Embedder, error) {
	return NewEmbedder(cfg.APIKey, cfg.EmbeddingModel, cfg.APIBase)
}

func (f *Factory) EmbeddingStore(cfg *domain.ProjectConfig, collection string) (driven.EmbeddingStore, error) {
	switch cfg.VectorStore {
	case "", "memory":
		return vector.NewMemoryStore(), nil
	case "pgvector":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("pgvector store requires POSTGRES_DSN")
		}
		return vector.NewPGStore(cfg.PostgresDSN, collection), nil
	default:
		return nil, fmt.Errorf("unknown vector store %q", cfg.VectorStore)
	}
}
