package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
	"github.com/ragfront/ragfront-core/internal/core/ports/driving"
	"github.com/ragfront/ragfront-core/internal/normalisers"
)

// Ensure projectService implements ProjectService
var _ driving.ProjectService = (*projectService)(nil)

// projectService manages project lifecycle and delegates index operations to
// the external engine.
type projectService struct {
	projects    driven.ProjectStore
	artifacts   driven.ArtifactStore
	runner      driven.IndexRunner
	normalisers *normalisers.Registry
	log         *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(
	projects driven.ProjectStore,
	artifacts driven.ArtifactStore,
	runner driven.IndexRunner,
	registry *normalisers.Registry,
	log *slog.Logger,
) driving.ProjectService {
	return &projectService{
		projects:    projects,
		artifacts:   artifacts,
		runner:      runner,
		normalisers: registry,
		log:         log,
	}
}

func (s *projectService) Create(name string) (domain.Project, error) {
	p, err := s.projects.Create(name)
	if err != nil {
		return domain.Project{}, err
	}
	s.log.Info("project created", "project", p.Name, "root", p.Root)
	return p, nil
}

func (s *projectService) Delete(name string) error {
	if err := s.projects.Delete(name); err != nil {
		return err
	}
	s.log.Info("project deleted", "project", name)
	return nil
}

func (s *projectService) List() ([]string, error) {
	return s.projects.List()
}

func (s *projectService) IsBuilt(name string) (bool, error) {
	p, err := s.projects.Resolve(name)
	if err != nil {
		return false, err
	}
	return s.projects.IsBuilt(p), nil
}

func (s *projectService) BuildIndex(ctx context.Context, name string, update bool) error {
	p, err := s.projects.Resolve(name)
	if err != nil {
		return err
	}
	if update && !s.projects.IsBuilt(p) {
		return domain.ErrNotBuilt
	}
	s.log.Info("index run starting", "project", name, "update", update)
	if err := s.runner.Build(ctx, p, update); err != nil {
		return fmt.Errorf("index run: %w", err)
	}
	s.log.Info("index run finished", "project", name)
	return nil
}

// GenerateData normalizes every supported file under original/ into input/
// and returns the produced filenames. Unsupported extensions are skipped,
// not errors: conversion of binary formats happens upstream.
func (s *projectService) GenerateData(ctx context.Context, name string) ([]string, error) {
	p, err := s.projects.Resolve(name)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(p.OriginalDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading original dir: %w", err)
	}
	if err := os.MkdirAll(p.InputDir(), 0o755); err != nil {
		return nil, err
	}

	produced := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := s.normalisers.Get(entry.Name())
		if n == nil {
			s.log.Debug("skipping unsupported file", "project", name, "file", entry.Name())
			continue
		}
		content, err := os.ReadFile(filepath.Join(p.OriginalDir(), entry.Name()))
		if err != nil {
			return nil, err
		}
		outName, out, err := n.Normalise(entry.Name(), content)
		if err != nil {
			return nil, fmt.Errorf("normalising %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(p.InputDir(), outName), out, 0o644); err != nil {
			return nil, err
		}
		produced = append(produced, outName)
	}
	s.log.Info("input data generated", "project", name, "files", len(produced))
	return produced, nil
}

func (s *projectService) TunePrompts(ctx context.Context, name string) error {
	p, err := s.projects.Resolve(name)
	if err != nil {
		return err
	}
	return s.runner.TunePrompts(ctx, p)
}

func (s *projectService) TestConfig(ctx context.Context, name string) (*domain.ProjectConfig, error) {
	p, err := s.projects.Resolve(name)
	if err != nil {
		return nil, err
	}
	cfg, err := s.projects.Config(p)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("GRAPHRAG_API_KEY is not set for project %s", name)
	}
	return cfg, nil
}

func (s *projectService) Preview(ctx context.Context, name string) (*driving.ArtifactCounts, error) {
	p, err := s.projects.Resolve(name)
	if err != nil {
		return nil, err
	}

	counts := &driving.ArtifactCounts{}
	entities, err := s.artifacts.Entities(ctx, p)
	if err != nil {
		return nil, err
	}
	counts.Entities = len(entities)

	rels, err := s.artifacts.Relationships(ctx, p)
	if err != nil {
		return nil, err
	}
	counts.Relationships = len(rels)

	communities, err := s.artifacts.Communities(ctx, p)
	if err != nil {
		return nil, err
	}
	counts.Communities = len(communities)

	reports, err := s.artifacts.CommunityReports(ctx, p)
	if err != nil {
		return nil, err
	}
	counts.Reports = len(reports)

	units, err := s.artifacts.TextUnits(ctx, p)
	if err != nil {
		return nil, err
	}
	counts.TextUnits = len(units)

	if covariates, err := s.artifacts.Covariates(ctx, p); err == nil {
		counts.Covariates = len(covariates)
	}
	return counts, nil
}
