// Package parquet reads the columnar artifact tables the external indexing
// engine writes under a project's output directory.
package parquet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ArtifactStore = (*Store)(nil)

// Store is the filesystem-backed artifact reader. Every call re-reads the
// backing file so a rebuilt index is visible immediately.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store { return &Store{} }

func (s *Store) Nodes(ctx context.Context, p domain.Project) ([]domain.Node, error) {
	return readTable[domain.Node](p, domain.TableNodes)
}

func (s *Store) Entities(ctx context.Context, p domain.Project) ([]domain.Entity, error) {
	return readTable[domain.Entity](p, domain.TableEntities)
}

func (s *Store) Relationships(ctx context.Context, p domain.Project) ([]domain.Relationship, error) {
	return readTable[domain.Relationship](p, domain.TableRelationships)
}

func (s *Store) Communities(ctx context.Context, p domain.Project) ([]domain.Community, error) {
	return readTable[domain.Community](p, domain.TableCommunities)
}

func (s *Store) CommunityReports(ctx context.Context, p domain.Project) ([]domain.CommunityReport, error) {
	return readTable[domain.CommunityReport](p, domain.TableCommunityReports)
}

func (s *Store) TextUnits(ctx context.Context, p domain.Project) ([]domain.TextUnit, error) {
	return readTable[domain.TextUnit](p, domain.TableTextUnits)
}

func (s *Store) Covariates(ctx context.Context, p domain.Project) ([]domain.Covariate, error) {
	return readTable[domain.Covariate](p, domain.TableCovariates)
}

// TablePath returns the backing file of one artifact table.
func TablePath(p domain.Project, table string) string {
	return filepath.Join(p.OutputDir(), table+".parquet")
}

func readTable[T any](p domain.Project, table string) ([]T, error) {
	path := TablePath(p, table)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.MissingArtifactError{Table: table}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}
