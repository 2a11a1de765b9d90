// Package fs holds the filesystem-backed adapters: project layout, prompt
// resolution and the default query cache.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProjectStore = (*ProjectStore)(nil)

// ProjectStore manages projects as subdirectories of a single data root.
type ProjectStore struct {
	root string
}

// NewProjectStore creates a ProjectStore rooted at the data directory.
func NewProjectStore(root string) *ProjectStore {
	return &ProjectStore{root: root}
}

func (s *ProjectStore) Resolve(name string) (domain.Project, error) {
	if err := domain.ValidateProjectName(name); err != nil {
		return domain.Project{}, err
	}
	p := domain.Project{Name: name, Root: filepath.Join(s.root, name)}
	info, err := os.Stat(p.Root)
	if err != nil || !info.IsDir() {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return p, nil
}

// Config merges settings.yaml with the secrets in .env. Env values win for
// the fields they own; settings.yaml never carries keys.
func (s *ProjectStore) Config(p domain.Project) (*domain.ProjectConfig, error) {
	cfg := domain.DefaultProjectConfig()

	data, err := os.ReadFile(p.SettingsPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing settings: %w", err)
		}
	}

	env, err := godotenv.Read(p.EnvPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading env: %w", err)
	}
	if v := env["GRAPHRAG_API_KEY"]; v != "" {
		cfg.APIKey = v
	}
	if v := env["GRAPHRAG_API_BASE"]; v != "" {
		cfg.APIBase = v
	}
	if v := env["API_KEY"]; v != "" {
		cfg.ProjectAPIKey = v
	}
	if v := env["POSTGRES_DSN"]; v != "" {
		cfg.PostgresDSN = v
	}
	return &cfg, nil
}

func (s *ProjectStore) Create(name string) (domain.Project, error) {
	if err := domain.ValidateProjectName(name); err != nil {
		return domain.Project{}, err
	}
	p := domain.Project{Name: name, Root: filepath.Join(s.root, name)}
	if _, err := os.Stat(p.Root); err == nil {
		return domain.Project{}, domain.ErrProjectExists
	}

	for _, dir := range []string{p.Root, p.InputDir(), p.OriginalDir(), p.OutputDir(), p.PromptsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.Project{}, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	settings, err := yaml.Marshal(domain.DefaultProjectConfig())
	if err != nil {
		return domain.Project{}, err
	}
	if err := os.WriteFile(p.SettingsPath(), settings, 0o644); err != nil {
		return domain.Project{}, fmt.Errorf("writing settings: %w", err)
	}

	envTemplate := "GRAPHRAG_API_KEY=\nGRAPHRAG_API_BASE=\nAPI_KEY=\n"
	if err := os.WriteFile(p.EnvPath(), []byte(envTemplate), 0o600); err != nil {
		return domain.Project{}, fmt.Errorf("writing env: %w", err)
	}
	return p, nil
}

func (s *ProjectStore) Delete(name string) error {
	p, err := s.Resolve(name)
	if err != nil {
		return err
	}
	return os.RemoveAll(p.Root)
}

func (s *ProjectStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() && domain.ValidateProjectName(e.Name()) == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *ProjectStore) IsBuilt(p domain.Project) bool {
	for _, table := range domain.RequiredArtifacts() {
		if _, err := os.Stat(filepath.Join(p.OutputDir(), table+".parquet")); err != nil {
			return false
		}
	}
	return true
}

func (s *ProjectStore) PageTexts(p domain.Project) ([]driven.PageText, error) {
	entries, err := os.ReadDir(p.PDFCacheDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []driven.PageText{}, nil
		}
		return nil, err
	}

	pages := []driven.PageText{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(p.PDFCacheDir(), e.Name()))
		if err != nil {
			return nil, err
		}
		pages = append(pages, driven.PageText{Name: e.Name(), Content: string(content)})
	}
	return pages, nil
}
