package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChatModel = (*ChatModel)(nil)

// ChatModel is the OpenAI-compatible chat client. A custom base URL points
// it at any compatible gateway.
type ChatModel struct {
	client *openai.Client
	model  string
}

// NewChatModel creates a chat client.
func NewChatModel(apiKey, model, baseURL string) (*ChatModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("chat model name is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &ChatModel{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (c *ChatModel) Complete(ctx context.Context, messages []domain.Turn, opts driven.ChatOptions) (*driven.ChatResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.request(messages, opts))
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	return &driven.ChatResponse{
		Content:      resp.Choices[0].Message.Content,
		PromptTokens: resp.Usage.PromptTokens,
	}, nil
}

func (c *ChatModel) Stream(ctx context.Context, messages []domain.Turn, opts driven.ChatOptions) (driven.ChatStream, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.request(messages, opts))
	if err != nil {
		return nil, fmt.Errorf("chat stream: %w", err)
	}
	return &chatStream{inner: stream}, nil
}

func (c *ChatModel) request(messages []domain.Turn, opts driven.ChatOptions) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return req
}

// chatStream adapts the vendor stream to the port. Recv passes the vendor's
// io.EOF through as the natural termination signal.
type chatStream struct {
	inner *openai.ChatCompletionStream
}

func (s *chatStream) Recv() (string, error) {
	for {
		resp, err := s.inner.Recv()
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (s *chatStream) Close() error { return s.inner.Close() }
