package driven

import "github.com/ragfront/ragfront-core/internal/core/domain"

// AIFactory constructs model clients and embedding stores from a project's
// configuration. Engines are assembled fresh per query execution, so the
// factory is the only place backend selection happens.
type AIFactory interface {
	ChatModel(cfg *domain.ProjectConfig) (ChatModel, error)
	Embedder(cfg *domain.ProjectConfig) (Embedder, error)

	// EmbeddingStore returns the store for one named collection
	// (e.g. entity descriptions vs. community full content).
	EmbeddingStore(cfg *domain.ProjectConfig, collection string) (EmbeddingStore, error)
}
