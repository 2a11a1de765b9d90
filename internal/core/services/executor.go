package services

import (
	"context"
	"fmt"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/engine"
)

// Executor runs an assembled engine and normalizes its raw output into the
// mode-independent result shape.
type Executor struct{}

// NewExecutor creates an Executor.
func NewExecutor() *Executor { return &Executor{} }

// ExecuteSync runs one blocking query.
func (e *Executor) ExecuteSync(ctx context.Context, eng engine.Engine, query string, history []domain.Turn) (*domain.SearchResult, error) {
	raw, err := eng.Search(ctx, query, history)
	if err != nil {
		return nil, err
	}
	answer, err := normalizeAnswer(raw.Response)
	if err != nil {
		return nil, err
	}
	res := &domain.SearchResult{
		Answer:       answer,
		Context:      contextData(raw.Context),
		PromptTokens: raw.PromptTokens,
	}
	return res, nil
}

// ExecuteStream runs one streaming query. The returned channel carries the
// context event first, then tokens, and is closed at completion.
func (e *Executor) ExecuteStream(ctx context.Context, eng engine.Engine, query string, history []domain.Turn) (<-chan engine.Event, error) {
	return eng.Stream(ctx, query, history)
}

// normalizeAnswer is the single place the drift node tree is flattened to a
// plain answer string. Every other mode already returns a string.
func normalizeAnswer(response any) (string, error) {
	switch v := response.(type) {
	case string:
		return v, nil
	case map[string]any:
		nodes, ok := v["nodes"].([]any)
		if !ok || len(nodes) == 0 {
			return "", fmt.Errorf("drift response has no nodes")
		}
		first, ok := nodes[0].(map[string]any)
		if !ok {
			return "", fmt.Errorf("drift response node is not an object")
		}
		answer, ok := first["answer"].(string)
		if !ok {
			return "", fmt.Errorf("drift response node has no answer")
		}
		return answer, nil
	default:
		return "", fmt.Errorf("unexpected engine response type %T", response)
	}
}

// contextData shapes the engine's category map into the uniform context
// payload. Categories the mode never produced come out empty, not absent.
func contextData(m map[string][]domain.Row) domain.ContextData {
	c := domain.ContextData{
		Reports:       m["reports"],
		Entities:      m["entities"],
		Relationships: m["relationships"],
		Claims:        m["claims"],
		Sources:       m["sources"],
	}
	c.Normalize()
	return c
}
