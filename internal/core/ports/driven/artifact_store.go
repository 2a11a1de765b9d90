package driven

import (
	"context"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// ArtifactStore reads the tabular index artifacts produced by the external
// indexing engine. Implementations return *domain.MissingArtifactError when
// a table's backing storage object cannot be located.
type ArtifactStore interface {
	Nodes(ctx context.Context, p domain.Project) ([]domain.Node, error)
	Entities(ctx context.Context, p domain.Project) ([]domain.Entity, error)
	Relationships(ctx context.Context, p domain.Project) ([]domain.Relationship, error)
	Communities(ctx context.Context, p domain.Project) ([]domain.Community, error)
	CommunityReports(ctx context.Context, p domain.Project) ([]domain.CommunityReport, error)
	TextUnits(ctx context.Context, p domain.Project) ([]domain.TextUnit, error)

	// Covariates reads the optional claims table.
	Covariates(ctx context.Context, p domain.Project) ([]domain.Covariate, error)
}
