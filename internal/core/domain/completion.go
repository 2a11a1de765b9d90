package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UsageUnavailable marks token counts the underlying engine does not report.
const UsageUnavailable = -1

// CompletionRequest is the chat-completions request body. The model field
// carries the search mode identifier.
type CompletionRequest struct {
	ProjectName           string  `json:"project_name"`
	CommunityLevel        int     `json:"community_level"`
	Messages              []Turn  `json:"messages"`
	Model                 string  `json:"model"`
	Stream                bool    `json:"stream"`
	Temperature           float32 `json:"temperature"`
	GenerateQuestion      bool    `json:"generate_question"`
	GenerateQuestionCount int     `json:"generate_question_count"`
	ShowReference         bool    `json:"show_reference"`
}

// Mode returns the search mode selected by the request.
func (r *CompletionRequest) Mode() SearchMode { return ParseSearchMode(r.Model) }

// Query returns the final user message, or "" when there is none.
func (r *CompletionRequest) Query() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1].Content
}

// History returns every message before the final one, in source order.
func (r *CompletionRequest) History() []Turn {
	if len(r.Messages) == 0 {
		return nil
	}
	return r.Messages[:len(r.Messages)-1]
}

// Usage reports token consumption. Completion and total counts are not
// tracked by the underlying engine in streaming mode and are reported as -1.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatMessage is the assistant message of a completion choice.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Choice is one completion alternative.
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatCompletion mirrors the standard chat-completion object.
type ChatCompletion struct {
	ID          string       `json:"id"`
	Object      string       `json:"object"`
	Created     int64        `json:"created"`
	Model       string       `json:"model"`
	Choices     []Choice     `json:"choices"`
	Usage       Usage        `json:"usage"`
	ContextData *ContextData `json:"context_data,omitempty"`
	Questions   []string     `json:"questions,omitempty"`
}

// Delta is the incremental content of one streamed chunk.
type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`
}

// ChunkChoice is one choice of a streamed chunk.
type ChunkChoice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

// CompletionChunk is one incremental streamed event. Index increases
// monotonically from zero; the terminal chunk carries finish_reason "stop",
// the fully assembled answer and the question-generation result.
type CompletionChunk struct {
	ID        string        `json:"id"`
	Object    string        `json:"object"`
	Created   int64         `json:"created"`
	Model     string        `json:"model"`
	Index     int           `json:"index"`
	Choices   []ChunkChoice `json:"choices"`
	Usage     *Usage        `json:"usage,omitempty"`
	Questions []string      `json:"questions,omitempty"`
}

// NewCompletionID returns an opaque unique completion token.
func NewCompletionID() string {
	return "chatcmpl-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewCompletion builds the shared envelope header for a request.
func NewCompletion(mode SearchMode) ChatCompletion {
	return ChatCompletion{
		ID:      NewCompletionID(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   string(mode),
	}
}

// ModelInfo describes one pseudo-model (search mode) for the model listing.
type ModelInfo struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the models endpoint response.
type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}
