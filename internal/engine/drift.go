package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// DriftParams configures a drift search engine. It requires two embedding
// stores; both must be loaded before construction so embeddings resolve
// synchronously on the first query.
type DriftParams struct {
	Model        driven.ChatModel
	Embedder     driven.Embedder
	Entities     driven.EmbeddingStore // entity descriptions
	Reports      driven.EmbeddingStore // community report full content
	Views        Views
	Prompt       string
	ResponseType string
}

// DriftSearch combines a global primer over community reports with local
// refinement. Its result nests the answer under nodes[0].
type DriftSearch struct {
	p DriftParams
}

// NewDriftSearch creates a drift search engine.
func NewDriftSearch(p DriftParams) *DriftSearch { return &DriftSearch{p: p} }

func (s *DriftSearch) Mode() domain.SearchMode { return domain.SearchModeDrift }

func (s *DriftSearch) Search(ctx context.Context, query string, history []domain.Turn) (*Result, error) {
	sys, data, err := s.prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	resp, err := s.p.Model.Complete(ctx, chatMessages(sys, history, query), driven.ChatOptions{})
	if err != nil {
		return nil, err
	}
	// Drift results carry the answer inside the node tree, not at the top
	// level.
	nested := map[string]any{
		"nodes": []any{
			map[string]any{"answer": resp.Content, "query": query},
		},
	}
	return &Result{Response: nested, Context: data, PromptTokens: resp.PromptTokens}, nil
}

func (s *DriftSearch) Stream(ctx context.Context, query string, history []domain.Turn) (<-chan Event, error) {
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

// prepare runs the primer over report embeddings, then folds in the local
// entity neighbourhood.
func (s *DriftSearch) prepare(ctx context.Context, query string) (string, map[string][]domain.Row, error) {
	vec, err := s.p.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("embedding query: %w", err)
	}

	primer, err := s.p.Reports.SimilarTexts(ctx, vec, maxContextReports)
	if err != nil {
		return "", nil, fmt.Errorf("report lookup: %w", err)
	}
	hits, err := s.p.Entities.SimilarTexts(ctx, vec, maxContextEntities)
	if err != nil {
		return "", nil, fmt.Errorf("entity lookup: %w", err)
	}

	matched := make(map[string]bool, len(hits))
	for _, h := range hits {
		matched[h.ID] = true
	}
	var entities []domain.Entity
	for _, e := range s.p.Views.Entities {
		if matched[e.ID] {
			entities = append(entities, e)
		}
	}

	var repData []domain.Row
	var b strings.Builder
	b.WriteString("-----Reports-----\n")
	for _, r := range primer {
		repData = append(repData, domain.Row{"id": r.ID, "content": r.Text})
		fmt.Fprintf(&b, "%s\n\n", r.Text)
	}
	entData, entTable := entityRows(entities)
	b.WriteString(renderSection("Entities", []string{"id", "entity", "description"}, entTable))

	data := map[string][]domain.Row{
		"reports":  repData,
		"entities": entData,
	}
	return fillPrompt(s.p.Prompt, b.String(), s.p.ResponseType), data, nil
}
