package domain

import (
	"path/filepath"
	"regexp"
)

var projectNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateProjectName checks the sanitized-name constraint shared by every
// surface that accepts a project name.
func ValidateProjectName(name string) error {
	if !projectNameRe.MatchString(name) {
		return ErrInvalidProjectName
	}
	return nil
}

// Project is a filesystem-rooted unit of configuration, index artifacts and
// caches.
type Project struct {
	Name string `json:"name"`
	Root string `json:"root"`
}

// OutputDir holds the artifact tables produced by the indexing engine.
func (p Project) OutputDir() string { return filepath.Join(p.Root, "output") }

// InputDir holds the normalized text files fed to the indexing engine.
func (p Project) InputDir() string { return filepath.Join(p.Root, "input") }

// OriginalDir holds the raw uploaded files before normalization.
func (p Project) OriginalDir() string { return filepath.Join(p.Root, "original") }

// PromptsDir holds per-project prompt overrides.
func (p Project) PromptsDir() string { return filepath.Join(p.Root, "prompts") }

// PDFCacheDir holds per-page extraction text and rendered page images.
func (p Project) PDFCacheDir() string { return filepath.Join(p.Root, "pdf_cache") }

// SettingsPath is the engine configuration document.
func (p Project) SettingsPath() string { return filepath.Join(p.Root, "settings.yaml") }

// EnvPath holds project secrets and endpoints.
func (p Project) EnvPath() string { return filepath.Join(p.Root, ".env") }

// ProjectConfig is the resolved per-project configuration (settings.yaml
// merged with .env secrets).
type ProjectConfig struct {
	APIBase        string `yaml:"api_base"`
	APIKey         string `yaml:"-"` // from .env, never from settings.yaml
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`

	// VectorStore selects the embedding store backend: "memory" or "pgvector".
	VectorStore string `yaml:"vector_store"`
	PostgresDSN string `yaml:"-"` // from .env

	CommunityLevel int    `yaml:"community_level"`
	ResponseType   string `yaml:"response_type"`

	// ProjectAPIKey guards the query endpoints for this project (API_KEY in .env).
	// Empty means the project is open.
	ProjectAPIKey string `yaml:"-"`
}

// DefaultProjectConfig returns the settings written by project initialization.
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		ChatModel:      "gpt-4o",
		EmbeddingModel: "text-embedding-3-small",
		VectorStore:    "memory",
		CommunityLevel: 2,
		ResponseType:   "Multiple Paragraphs",
	}
}
