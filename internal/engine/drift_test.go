package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven/mocks"
)

func driftFixture(t *testing.T, model *mocks.MockChatModel) *DriftSearch {
	t.Helper()
	entities := mocks.NewMockEmbeddingStore()
	require.NoError(t, entities.Load(context.Background(), []driven.EmbeddingDocument{
		{ID: "e1", Text: "Capital of France", Vector: []float32{1, 0}},
	}))
	reports := mocks.NewMockEmbeddingStore()
	require.NoError(t, reports.Load(context.Background(), []driven.EmbeddingDocument{
		{ID: "cr1", Text: "All about France", Vector: []float32{1, 0}},
		{ID: "cr2", Text: "All about Germany", Vector: []float32{0, 1}},
	}))

	return NewDriftSearch(DriftParams{
		Model:    model,
		Embedder: mocks.NewMockEmbedder(),
		Entities: entities,
		Reports:  reports,
		Views: Views{
			Entities: []domain.Entity{
				{ID: "e1", Title: "PARIS", Description: "Capital of France"},
			},
		},
		Prompt:       "{context_data}",
		ResponseType: "short",
	})
}

func TestDriftSearch_NestedResponse(t *testing.T) {
	model := mocks.NewMockChatModel("Paris.")
	eng := driftFixture(t, model)

	res, err := eng.Search(context.Background(), "capital of France?", nil)
	require.NoError(t, err)

	// The answer lives under nodes[0], not at the top level.
	nested, ok := res.Response.(map[string]any)
	require.True(t, ok)
	nodes, ok := nested["nodes"].([]any)
	require.True(t, ok)
	require.Len(t, nodes, 1)
	node := nodes[0].(map[string]any)
	assert.Equal(t, "Paris.", node["answer"])
	assert.Equal(t, "capital of France?", node["query"])
}

func TestDriftSearch_PrimerContext(t *testing.T) {
	model := mocks.NewMockChatModel("ok")
	eng := driftFixture(t, model)

	res, err := eng.Search(context.Background(), "capital of France?", nil)
	require.NoError(t, err)

	assert.Len(t, res.Context["reports"], 2)
	require.Len(t, res.Context["entities"], 1)
	assert.Equal(t, "PARIS", res.Context["entities"][0]["entity"])

	sys := model.Calls[0][0].Content
	assert.Contains(t, sys, "-----Reports-----")
	assert.Contains(t, sys, "All about France")
}

func TestDriftSearch_StreamIsPlainTokens(t *testing.T) {
	model := mocks.NewMockChatModel("Paris", ".")
	eng := driftFixture(t, model)

	events, err := eng.Stream(context.Background(), "q", nil)
	require.NoError(t, err)

	first := <-events
	require.Equal(t, EventContext, first.Kind)
	assert.Positive(t, first.Context.PromptTokens)
	for ev := range events {
		assert.Equal(t, EventToken, ev.Kind)
	}
}
