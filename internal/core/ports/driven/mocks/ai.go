package mocks

import (
	"context"
	"hash/fnv"
	"io"
	"strings"
	"sync"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// MockChatModel is a scripted ChatModel for testing. It emits a fixed token
// sequence and records the messages of every call.
type MockChatModel struct {
	mu           sync.Mutex
	Tokens       []string
	PromptTokens int
	Err          error
	Calls        [][]domain.Turn
}

// NewMockChatModel creates a MockChatModel emitting the given tokens.
func NewMockChatModel(tokens ...string) *MockChatModel {
	return &MockChatModel{Tokens: tokens, PromptTokens: 42}
}

func (m *MockChatModel) Complete(ctx context.Context, messages []domain.Turn, opts driven.ChatOptions) (*driven.ChatResponse, error) {
	m.record(messages)
	if m.Err != nil {
		return nil, m.Err
	}
	return &driven.ChatResponse{
		Content:      strings.Join(m.Tokens, ""),
		PromptTokens: m.PromptTokens,
	}, nil
}

func (m *MockChatModel) Stream(ctx context.Context, messages []domain.Turn, opts driven.ChatOptions) (driven.ChatStream, error) {
	m.record(messages)
	if m.Err != nil {
		return nil, m.Err
	}
	return &mockChatStream{tokens: m.Tokens}, nil
}

// CallCount returns how many times the model was invoked.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockChatModel) record(messages []domain.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, messages)
}

type mockChatStream struct {
	tokens []string
	pos    int
}

func (s *mockChatStream) Recv() (string, error) {
	if s.pos >= len(s.tokens) {
		return "", io.EOF
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

func (s *mockChatStream) Close() error { return nil }

// MockEmbedder generates deterministic embeddings based on a text hash.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder creates a new MockEmbedder.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{dimensions: 64}
}

func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.generate(text)
	}
	return result, nil
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return m.generate(query), nil
}

func (m *MockEmbedder) Model() string { return "mock-embedding-model" }

func (m *MockEmbedder) generate(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	embedding := make([]float32, m.dimensions)
	for i := range embedding {
		seed = seed*1103515245 + 12345
		embedding[i] = float32(seed%1000) / 1000.0
	}
	return embedding
}
