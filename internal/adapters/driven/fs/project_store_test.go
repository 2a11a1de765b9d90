package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

func TestProjectStore_CreateScaffold(t *testing.T) {
	store := NewProjectStore(t.TempDir())

	p, err := store.Create("demo")
	require.NoError(t, err)

	for _, dir := range []string{p.InputDir(), p.OriginalDir(), p.OutputDir(), p.PromptsDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
	assert.FileExists(t, p.SettingsPath())
	assert.FileExists(t, p.EnvPath())

	_, err = store.Create("demo")
	assert.ErrorIs(t, err, domain.ErrProjectExists)
}

func TestProjectStore_CreateRejectsBadNames(t *testing.T) {
	store := NewProjectStore(t.TempDir())
	for _, name := range []string{"../escape", "has space", ""} {
		_, err := store.Create(name)
		assert.ErrorIs(t, err, domain.ErrInvalidProjectName, name)
	}
}

func TestProjectStore_Resolve(t *testing.T) {
	store := NewProjectStore(t.TempDir())
	_, err := store.Resolve("missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	created, err := store.Create("demo")
	require.NoError(t, err)
	resolved, err := store.Resolve("demo")
	require.NoError(t, err)
	assert.Equal(t, created, resolved)
}

func TestProjectStore_ConfigDefaultsAndEnvMerge(t *testing.T) {
	store := NewProjectStore(t.TempDir())
	p, err := store.Create("demo")
	require.NoError(t, err)

	cfg, err := store.Config(p)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
	assert.Equal(t, 2, cfg.CommunityLevel)
	assert.Empty(t, cfg.APIKey)

	env := "GRAPHRAG_API_KEY=sk-test\nGRAPHRAG_API_BASE=https://llm.example\nAPI_KEY=guard\nPOSTGRES_DSN=postgres://db\n"
	require.NoError(t, os.WriteFile(p.EnvPath(), []byte(env), 0o600))
	settings := "chat_model: gpt-4o-mini\ncommunity_level: 3\n"
	require.NoError(t, os.WriteFile(p.SettingsPath(), []byte(settings), 0o644))

	cfg, err = store.Config(p)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "https://llm.example", cfg.APIBase)
	assert.Equal(t, "guard", cfg.ProjectAPIKey)
	assert.Equal(t, "postgres://db", cfg.PostgresDSN)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, 3, cfg.CommunityLevel)
}

func TestProjectStore_ListAndDelete(t *testing.T) {
	store := NewProjectStore(t.TempDir())
	for _, name := range []string{"beta", "alpha"} {
		_, err := store.Create(name)
		require.NoError(t, err)
	}

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	require.NoError(t, store.Delete("alpha"))
	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)

	assert.ErrorIs(t, store.Delete("alpha"), domain.ErrProjectNotFound)
}

func TestProjectStore_ListEmptyRoot(t *testing.T) {
	store := NewProjectStore(filepath.Join(t.TempDir(), "nowhere"))
	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestProjectStore_IsBuilt(t *testing.T) {
	store := NewProjectStore(t.TempDir())
	p, err := store.Create("demo")
	require.NoError(t, err)
	assert.False(t, store.IsBuilt(p))

	for _, table := range domain.RequiredArtifacts() {
		path := filepath.Join(p.OutputDir(), table+".parquet")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	assert.True(t, store.IsBuilt(p))
}

func TestProjectStore_PageTexts(t *testing.T) {
	store := NewProjectStore(t.TempDir())
	p, err := store.Create("demo")
	require.NoError(t, err)

	pages, err := store.PageTexts(p)
	require.NoError(t, err)
	assert.Empty(t, pages)

	require.NoError(t, os.MkdirAll(p.PDFCacheDir(), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(p.PDFCacheDir(), "doc.pdf_page_1.png.txt"), []byte("page one"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(p.PDFCacheDir(), "doc.pdf_page_1.png"), []byte("binary"), 0o644))

	pages, err = store.PageTexts(p)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "doc.pdf_page_1.png.txt", pages[0].Name)
	assert.Equal(t, "page one", pages[0].Content)
}
