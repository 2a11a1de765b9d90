package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionRequest_QueryAndHistory(t *testing.T) {
	req := CompletionRequest{Messages: []Turn{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}}
	assert.Equal(t, "third", req.Query())
	assert.Equal(t, []Turn{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
	}, req.History())

	empty := CompletionRequest{}
	assert.Empty(t, empty.Query())
	assert.Nil(t, empty.History())
}

func TestNewCompletionID(t *testing.T) {
	id := NewCompletionID()
	assert.True(t, strings.HasPrefix(id, "chatcmpl-"))
	assert.NotEqual(t, id, NewCompletionID())
	assert.NotContains(t, strings.TrimPrefix(id, "chatcmpl-"), "-")
}
