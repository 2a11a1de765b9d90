package parquet

import (
	"context"
	"os"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

func testProject(t *testing.T) domain.Project {
	t.Helper()
	p := domain.Project{Name: "demo", Root: t.TempDir()}
	require.NoError(t, os.MkdirAll(p.OutputDir(), 0o755))
	return p
}

func TestStore_MissingTable(t *testing.T) {
	p := testProject(t)
	store := NewStore()

	_, err := store.Entities(context.Background(), p)
	var missing *domain.MissingArtifactError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.TableEntities, missing.Table)
}

func TestStore_ReadRelationships(t *testing.T) {
	p := testProject(t)
	rows := []domain.Relationship{
		{ID: "r1", Source: "PARIS", Target: "FRANCE", Description: "capital of", Weight: 1.5},
		{ID: "r2", Source: "BERLIN", Target: "GERMANY", Description: "capital of", Weight: 2},
	}
	require.NoError(t, parquet.WriteFile(TablePath(p, domain.TableRelationships), rows))

	got, err := NewStore().Relationships(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestStore_ReadEntitiesWithEmbeddings(t *testing.T) {
	p := testProject(t)
	rows := []domain.Entity{
		{ID: "e1", Title: "PARIS", Description: "Capital of France",
			TextUnitIDs: []string{"t1", "t2"}, DescriptionEmbedding: []float32{0.1, 0.2}},
	}
	require.NoError(t, parquet.WriteFile(TablePath(p, domain.TableEntities), rows))

	got, err := NewStore().Entities(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []float32{0.1, 0.2}, got[0].DescriptionEmbedding)
	assert.Equal(t, []string{"t1", "t2"}, got[0].TextUnitIDs)
}

func TestTablePath(t *testing.T) {
	p := domain.Project{Name: "demo", Root: "/data/demo"}
	assert.Equal(t, "/data/demo/output/create_final_nodes.parquet",
		TablePath(p, domain.TableNodes))
}
