package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// BasicParams configures a basic search engine: plain vector retrieval over
// text units with no entity or relationship context.
type BasicParams struct {
	Model        driven.ChatModel
	Embedder     driven.Embedder
	TextUnits    driven.EmbeddingStore
	Prompt       string
	ResponseType string
}

// BasicSearch answers from the most similar text units alone.
type BasicSearch struct {
	p BasicParams
}

// NewBasicSearch creates a basic search engine.
func NewBasicSearch(p BasicParams) *BasicSearch { return &BasicSearch{p: p} }

func (s *BasicSearch) Mode() domain.SearchMode { return domain.SearchModeBasic }

func (s *BasicSearch) Search(ctx context.Context, query string, history []domain.Turn) (*Result, error) {
	sys, data, err := s.prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	resp, err := s.p.Model.Complete(ctx, chatMessages(sys, history, query), driven.ChatOptions{})
	if err != nil {
		return nil, err
	}
	return &Result{Response: resp.Content, Context: data, PromptTokens: resp.PromptTokens}, nil
}

func (s *BasicSearch) Stream(ctx context.Context, query string, history []domain.Turn) (<-chan Event, error) {
	sys, data, err := s.prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	stream, err := s.p.Model.Stream(ctx, chatMessages(sys, history, query), driven.ChatOptions{})
	if err != nil {
		return nil, err
	}
	return pump(ctx, stream, &Context{Data: data, PromptTokens: estimateTokens(sys)}), nil
}

func (s *BasicSearch) prepare(ctx context.Context, query string) (string, map[string][]domain.Row, error) {
	vec, err := s.p.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("embedding query: %w", err)
	}
	hits, err := s.p.TextUnits.SimilarTexts(ctx, vec, maxContextTextUnits)
	if err != nil {
		return "", nil, fmt.Errorf("text unit lookup: %w", err)
	}

	var data []domain.Row
	var b strings.Builder
	b.WriteString("-----Sources-----\n")
	for _, h := range hits {
		data = append(data, domain.Row{"id": h.ID, "text": h.Text})
		fmt.Fprintf(&b, "%s\n\n", h.Text)
	}

	return fillPrompt(s.p.Prompt, b.String(), s.p.ResponseType), map[string][]domain.Row{"sources": data}, nil
}
