package mocks

import (
	"context"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// MockIndexRunner records index invocations.
type MockIndexRunner struct {
	BuildCalls []struct {
		Project string
		Update  bool
	}
	TuneCalls []string
	BuildErr  error
	TuneErr   error
}

// NewMockIndexRunner creates a new MockIndexRunner.
func NewMockIndexRunner() *MockIndexRunner { return &MockIndexRunner{} }

func (m *MockIndexRunner) Build(ctx context.Context, p domain.Project, update bool) error {
	m.BuildCalls = append(m.BuildCalls, struct {
		Project string
		Update  bool
	}{p.Name, update})
	return m.BuildErr
}

func (m *MockIndexRunner) TunePrompts(ctx context.Context, p domain.Project) error {
	m.TuneCalls = append(m.TuneCalls, p.Name)
	return m.TuneErr
}
