package driven

import (
	"context"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// ChatOptions tune a single model call.
type ChatOptions struct {
	Temperature float32
	MaxTokens   int
}

// ChatResponse is the outcome of a synchronous model call.
type ChatResponse struct {
	Content      string
	PromptTokens int
}

// ChatStream delivers generated tokens in order. Recv returns io.EOF at
// natural completion.
type ChatStream interface {
	Recv() (string, error)
	Close() error
}

// ChatModel is a language-model client capable of synchronous and streamed
// generation.
type ChatModel interface {
	Complete(ctx context.Context, messages []domain.Turn, opts ChatOptions) (*ChatResponse, error)
	Stream(ctx context.Context, messages []domain.Turn, opts ChatOptions) (ChatStream, error)
}

// Embedder generates text embeddings.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
	Model() string
}
