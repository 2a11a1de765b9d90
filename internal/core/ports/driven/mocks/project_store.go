package mocks

import (
	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// MockProjectStore is an in-memory ProjectStore.
type MockProjectStore struct {
	Projects map[string]*domain.ProjectConfig
	Pages    map[string][]driven.PageText
	Built    map[string]bool
}

// NewMockProjectStore creates a MockProjectStore with one configured project.
func NewMockProjectStore(name string) *MockProjectStore {
	cfg := domain.DefaultProjectConfig()
	return &MockProjectStore{
		Projects: map[string]*domain.ProjectConfig{name: &cfg},
		Pages:    map[string][]driven.PageText{},
		Built:    map[string]bool{name: true},
	}
}

func (m *MockProjectStore) Resolve(name string) (domain.Project, error) {
	if err := domain.ValidateProjectName(name); err != nil {
		return domain.Project{}, err
	}
	if _, ok := m.Projects[name]; !ok {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return domain.Project{Name: name, Root: "/projects/" + name}, nil
}

func (m *MockProjectStore) Config(p domain.Project) (*domain.ProjectConfig, error) {
	cfg, ok := m.Projects[p.Name]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cfg, nil
}

func (m *MockProjectStore) Create(name string) (domain.Project, error) {
	if err := domain.ValidateProjectName(name); err != nil {
		return domain.Project{}, err
	}
	if _, ok := m.Projects[name]; ok {
		return domain.Project{}, domain.ErrProjectExists
	}
	cfg := domain.DefaultProjectConfig()
	m.Projects[name] = &cfg
	return domain.Project{Name: name, Root: "/projects/" + name}, nil
}

func (m *MockProjectStore) Delete(name string) error {
	if _, ok := m.Projects[name]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(m.Projects, name)
	return nil
}

func (m *MockProjectStore) List() ([]string, error) {
	names := make([]string, 0, len(m.Projects))
	for n := range m.Projects {
		names = append(names, n)
	}
	return names, nil
}

func (m *MockProjectStore) IsBuilt(p domain.Project) bool { return m.Built[p.Name] }

func (m *MockProjectStore) PageTexts(p domain.Project) ([]driven.PageText, error) {
	return m.Pages[p.Name], nil
}
