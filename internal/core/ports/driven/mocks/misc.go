package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// MockBlobSigner returns predictable URLs, or per-blob errors.
type MockBlobSigner struct {
	Errors map[string]error
	Calls  []string
}

// NewMockBlobSigner creates a new MockBlobSigner.
func NewMockBlobSigner() *MockBlobSigner {
	return &MockBlobSigner{Errors: map[string]error{}}
}

func (m *MockBlobSigner) SignedURL(projectName, blobName string, ttl time.Duration) (string, error) {
	m.Calls = append(m.Calls, blobName)
	if err := m.Errors[blobName]; err != nil {
		return "", err
	}
	return fmt.Sprintf("https://blobs.test/%s/%s?ttl=%d", projectName, blobName, int(ttl.Seconds())), nil
}

// MockQueryCache is an in-memory QueryCache.
type MockQueryCache struct {
	entries map[string]json.RawMessage
}

// NewMockQueryCache creates a new MockQueryCache.
func NewMockQueryCache() *MockQueryCache {
	return &MockQueryCache{entries: map[string]json.RawMessage{}}
}

func (m *MockQueryCache) Get(ctx context.Context, fingerprint string) (json.RawMessage, error) {
	data, ok := m.entries[fingerprint]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return data, nil
}

func (m *MockQueryCache) Set(ctx context.Context, fingerprint string, data json.RawMessage) error {
	m.entries[fingerprint] = data
	return nil
}

// MockPromptStore resolves every prompt to a fixed template.
type MockPromptStore struct {
	Prompts map[string]string
}

// NewMockPromptStore creates a new MockPromptStore.
func NewMockPromptStore() *MockPromptStore {
	return &MockPromptStore{Prompts: map[string]string{}}
}

func (m *MockPromptStore) Load(p domain.Project, name string) (string, error) {
	if s, ok := m.Prompts[name]; ok {
		return s, nil
	}
	return "You are a helpful assistant.\n\n{context_data}\n\nStyle: {response_type}", nil
}
