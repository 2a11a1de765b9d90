package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Loader resolves a project and reads every artifact table needed for one
// query execution. It holds no cross-call state: artifacts are re-read per
// request so a rebuilt index is picked up without a restart.
type Loader struct {
	projects  driven.ProjectStore
	artifacts driven.ArtifactStore
	log       *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(projects driven.ProjectStore, artifacts driven.ArtifactStore, log *slog.Logger) *Loader {
	return &Loader{projects: projects, artifacts: artifacts, log: log}
}

// LoadContext resolves the project, its configuration and all artifact
// tables. A missing required table surfaces as *domain.MissingArtifactError;
// the optional covariates table is left nil when absent.
func (l *Loader) LoadContext(ctx context.Context, projectName string) (domain.Project, *domain.ProjectConfig, *domain.Tables, error) {
	p, err := l.projects.Resolve(projectName)
	if err != nil {
		return domain.Project{}, nil, nil, err
	}
	cfg, err := l.projects.Config(p)
	if err != nil {
		return domain.Project{}, nil, nil, err
	}

	t := &domain.Tables{}
	if t.Nodes, err = l.artifacts.Nodes(ctx, p); err != nil {
		return domain.Project{}, nil, nil, err
	}
	if t.CommunityReports, err = l.artifacts.CommunityReports(ctx, p); err != nil {
		return domain.Project{}, nil, nil, err
	}
	if t.TextUnits, err = l.artifacts.TextUnits(ctx, p); err != nil {
		return domain.Project{}, nil, nil, err
	}
	if t.Relationships, err = l.artifacts.Relationships(ctx, p); err != nil {
		return domain.Project{}, nil, nil, err
	}
	if t.Entities, err = l.artifacts.Entities(ctx, p); err != nil {
		return domain.Project{}, nil, nil, err
	}
	if t.Communities, err = l.artifacts.Communities(ctx, p); err != nil {
		return domain.Project{}, nil, nil, err
	}

	t.Covariates, err = l.artifacts.Covariates(ctx, p)
	if err != nil {
		var missing *domain.MissingArtifactError
		if !errors.As(err, &missing) {
			return domain.Project{}, nil, nil, err
		}
		t.Covariates = nil
	}

	l.log.Debug("artifacts loaded",
		"project", p.Name,
		"entities", len(t.Entities),
		"reports", len(t.CommunityReports),
		"covariates", t.HasCovariates())
	return p, cfg, t, nil
}
