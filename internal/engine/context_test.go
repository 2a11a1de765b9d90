package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

func TestRenderSection(t *testing.T) {
	out := renderSection("Entities", []string{"id", "entity"}, [][]string{
		{"e1", "PARIS"},
		{"e2", "FRANCE"},
	})
	assert.Equal(t, "-----Entities-----\nid|entity\ne1|PARIS\ne2|FRANCE\n\n", out)

	// Empty categories render nothing at all, not an empty header.
	assert.Empty(t, renderSection("Claims", []string{"id"}, nil))
}

func TestFillPrompt(t *testing.T) {
	out := fillPrompt("ctx: {context_data} style: {response_type}", "TABLE", "short")
	assert.Equal(t, "ctx: TABLE style: short", out)
}

func TestChatMessages(t *testing.T) {
	msgs := chatMessages("sys", []domain.Turn{{Role: "user", Content: "earlier"}}, "now")
	assert.Equal(t, []domain.Turn{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "earlier"},
		{Role: "user", Content: "now"},
	}, msgs)
}

func TestLimit(t *testing.T) {
	assert.Len(t, limit([]int{1, 2, 3, 4}, 2), 2)
	assert.Len(t, limit([]int{1, 2}, 5), 2)
	assert.Empty(t, limit([]int(nil), 3))
}
