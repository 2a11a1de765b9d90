package http

import (
	"context"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driving"
)

// stubQueryService scripts the query surface for handler tests.
type stubQueryService struct {
	apiKeyErr     error
	searchEnv     *domain.SearchEnvelope
	searchErr     error
	searchReq     *domain.SearchRequest
	completion    *domain.ChatCompletion
	completionErr error
	chunks        []domain.CompletionChunk
	streamErr     error
	midStreamErr  error
}

var _ driving.QueryService = (*stubQueryService)(nil)

func (s *stubQueryService) CheckAPIKey(projectName, apiKey string) error { return s.apiKeyErr }

func (s *stubQueryService) Completion(ctx context.Context, req *domain.CompletionRequest) (*domain.ChatCompletion, error) {
	return s.completion, s.completionErr
}

func (s *stubQueryService) CompletionStream(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.CompletionChunk, <-chan error, error) {
	if s.streamErr != nil {
		return nil, nil, s.streamErr
	}
	chunks := make(chan domain.CompletionChunk, len(s.chunks))
	errc := make(chan error, 1)
	for _, ch := range s.chunks {
		chunks <- ch
	}
	if s.midStreamErr != nil {
		errc <- s.midStreamErr
	}
	close(chunks)
	close(errc)
	return chunks, errc, nil
}

func (s *stubQueryService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchEnvelope, error) {
	s.searchReq = req
	return s.searchEnv, s.searchErr
}

func (s *stubQueryService) Models() domain.ModelList {
	return domain.ModelList{Object: "list", Data: []domain.ModelInfo{{ID: "local", Object: "model"}}}
}

// stubProjectService scripts project administration.
type stubProjectService struct {
	projects  map[string]bool
	createErr error
}

var _ driving.ProjectService = (*stubProjectService)(nil)

func newStubProjectService(names ...string) *stubProjectService {
	s := &stubProjectService{projects: map[string]bool{}}
	for _, n := range names {
		s.projects[n] = true
	}
	return s
}

func (s *stubProjectService) Create(name string) (domain.Project, error) {
	if s.createErr != nil {
		return domain.Project{}, s.createErr
	}
	if s.projects[name] {
		return domain.Project{}, domain.ErrProjectExists
	}
	if err := domain.ValidateProjectName(name); err != nil {
		return domain.Project{}, err
	}
	s.projects[name] = true
	return domain.Project{Name: name, Root: "/projects/" + name}, nil
}

func (s *stubProjectService) Delete(name string) error {
	if !s.projects[name] {
		return domain.ErrProjectNotFound
	}
	delete(s.projects, name)
	return nil
}

func (s *stubProjectService) List() ([]string, error) {
	names := []string{}
	for n := range s.projects {
		names = append(names, n)
	}
	return names, nil
}

func (s *stubProjectService) IsBuilt(name string) (bool, error) {
	if !s.projects[name] {
		return false, domain.ErrProjectNotFound
	}
	return true, nil
}

func (s *stubProjectService) BuildIndex(ctx context.Context, name string, update bool) error {
	return nil
}

func (s *stubProjectService) GenerateData(ctx context.Context, name string) ([]string, error) {
	return nil, nil
}

func (s *stubProjectService) TunePrompts(ctx context.Context, name string) error { return nil }

func (s *stubProjectService) TestConfig(ctx context.Context, name string) (*domain.ProjectConfig, error) {
	return nil, nil
}

func (s *stubProjectService) Preview(ctx context.Context, name string) (*driving.ArtifactCounts, error) {
	return &driving.ArtifactCounts{}, nil
}
