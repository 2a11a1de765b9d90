package mocks

import (
	"context"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// MockArtifactStore serves artifact tables from memory. Tables whose name is
// in Missing return a MissingArtifactError.
type MockArtifactStore struct {
	Tables  domain.Tables
	Missing map[string]bool
}

// NewMockArtifactStore creates a MockArtifactStore serving the given tables.
func NewMockArtifactStore(tables domain.Tables) *MockArtifactStore {
	return &MockArtifactStore{Tables: tables, Missing: map[string]bool{}}
}

func (m *MockArtifactStore) Nodes(ctx context.Context, p domain.Project) ([]domain.Node, error) {
	if m.Missing[domain.TableNodes] {
		return nil, &domain.MissingArtifactError{Table: domain.TableNodes}
	}
	return m.Tables.Nodes, nil
}

func (m *MockArtifactStore) Entities(ctx context.Context, p domain.Project) ([]domain.Entity, error) {
	if m.Missing[domain.TableEntities] {
		return nil, &domain.MissingArtifactError{Table: domain.TableEntities}
	}
	return m.Tables.Entities, nil
}

func (m *MockArtifactStore) Relationships(ctx context.Context, p domain.Project) ([]domain.Relationship, error) {
	if m.Missing[domain.TableRelationships] {
		return nil, &domain.MissingArtifactError{Table: domain.TableRelationships}
	}
	return m.Tables.Relationships, nil
}

func (m *MockArtifactStore) Communities(ctx context.Context, p domain.Project) ([]domain.Community, error) {
	if m.Missing[domain.TableCommunities] {
		return nil, &domain.MissingArtifactError{Table: domain.TableCommunities}
	}
	return m.Tables.Communities, nil
}

func (m *MockArtifactStore) CommunityReports(ctx context.Context, p domain.Project) ([]domain.CommunityReport, error) {
	if m.Missing[domain.TableCommunityReports] {
		return nil, &domain.MissingArtifactError{Table: domain.TableCommunityReports}
	}
	return m.Tables.CommunityReports, nil
}

func (m *MockArtifactStore) TextUnits(ctx context.Context, p domain.Project) ([]domain.TextUnit, error) {
	if m.Missing[domain.TableTextUnits] {
		return nil, &domain.MissingArtifactError{Table: domain.TableTextUnits}
	}
	return m.Tables.TextUnits, nil
}

func (m *MockArtifactStore) Covariates(ctx context.Context, p domain.Project) ([]domain.Covariate, error) {
	if m.Missing[domain.TableCovariates] || m.Tables.Covariates == nil {
		return nil, &domain.MissingArtifactError{Table: domain.TableCovariates}
	}
	return m.Tables.Covariates, nil
}
