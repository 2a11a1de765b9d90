package driving

import (
	"context"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// QueryService executes retrieval queries against built project indexes and
// shapes them into external response envelopes.
type QueryService interface {
	// CheckAPIKey validates the per-project api-key header value.
	CheckAPIKey(projectName, apiKey string) error

	// Completion runs one non-streaming chat completion.
	Completion(ctx context.Context, req *domain.CompletionRequest) (*domain.ChatCompletion, error)

	// CompletionStream runs one streaming chat completion. The channel is
	// closed after the terminal chunk; mid-stream failures surface on the
	// error channel.
	CompletionStream(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.CompletionChunk, <-chan error, error)

	// Search serves the legacy simple-search endpoints.
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchEnvelope, error)

	// Models lists the search modes as pseudo-models.
	Models() domain.ModelList
}
