package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven/mocks"
)

func TestBasicSearch_Search(t *testing.T) {
	store := mocks.NewMockEmbeddingStore()
	require.NoError(t, store.Load(context.Background(), []driven.EmbeddingDocument{
		{ID: "t1", Text: "Paris is the capital of France.", Vector: []float32{1, 0}},
		{ID: "t2", Text: "Berlin is the capital of Germany.", Vector: []float32{0, 1}},
	}))

	model := mocks.NewMockChatModel("Paris.")
	eng := NewBasicSearch(BasicParams{
		Model:        model,
		Embedder:     mocks.NewMockEmbedder(),
		TextUnits:    store,
		Prompt:       "{context_data}",
		ResponseType: "short",
	})

	res, err := eng.Search(context.Background(), "capital of France?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Paris.", res.Response)

	// Only the sources category is populated in basic mode.
	assert.Len(t, res.Context["sources"], 2)
	assert.Empty(t, res.Context["entities"])

	sys := model.Calls[0][0].Content
	assert.Contains(t, sys, "-----Sources-----")
	assert.Contains(t, sys, "Paris is the capital of France.")

	events, err := eng.Stream(context.Background(), "capital of France?", nil)
	require.NoError(t, err)
	first := <-events
	require.Equal(t, EventContext, first.Kind)
	assert.Positive(t, first.Context.PromptTokens)
	for range events {
	}
}
