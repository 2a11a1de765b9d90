package driving

import (
	"context"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// ArtifactCounts summarizes a built index for preview.
type ArtifactCounts struct {
	Entities      int `json:"entities"`
	Relationships int `json:"relationships"`
	Communities   int `json:"communities"`
	Reports       int `json:"reports"`
	TextUnits     int `json:"text_units"`
	Covariates    int `json:"covariates"`
}

// ProjectService manages project lifecycle and index operations.
type ProjectService interface {
	Create(name string) (domain.Project, error)
	Delete(name string) error
	List() ([]string, error)
	IsBuilt(name string) (bool, error)

	// BuildIndex delegates to the external indexing engine; update revises
	// existing artifacts instead of rebuilding.
	BuildIndex(ctx context.Context, name string, update bool) error

	// GenerateData normalizes original/ files into input/ text files.
	GenerateData(ctx context.Context, name string) ([]string, error)

	// TunePrompts runs the engine's automatic prompt tuning.
	TunePrompts(ctx context.Context, name string) error

	// TestConfig resolves and sanity-checks the project configuration.
	TestConfig(ctx context.Context, name string) (*domain.ProjectConfig, error)

	// Preview reports artifact row counts for a built index.
	Preview(ctx context.Context, name string) (*ArtifactCounts, error)
}
