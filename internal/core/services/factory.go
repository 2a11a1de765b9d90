package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
	"github.com/ragfront/ragfront-core/internal/engine"
)

// Embedding store collection names, one per embedded artifact column.
const (
	collectionEntityDescription = "entity_description"
	collectionReportContent     = "community_full_content"
	collectionTextUnitText      = "text_unit_text"
)

// BuildOptions tune one engine assembly.
type BuildOptions struct {
	CommunityLevel   int
	DynamicSelection bool

	// PromptOverride replaces the stored system prompt when non-empty.
	PromptOverride string
}

// Factory assembles a search engine for one query execution. Engines are
// never shared between requests.
type Factory struct {
	ai      driven.AIFactory
	prompts driven.PromptStore
	log     *slog.Logger
}

// NewFactory creates a Factory.
func NewFactory(ai driven.AIFactory, prompts driven.PromptStore, log *slog.Logger) *Factory {
	return &Factory{ai: ai, prompts: prompts, log: log}
}

// Build assembles the engine for the given mode. Any assembly failure is
// wrapped in *domain.EngineBuildError.
func (f *Factory) Build(ctx context.Context, mode domain.SearchMode, p domain.Project, cfg *domain.ProjectConfig, tables *domain.Tables, opts BuildOptions) (engine.Engine, error) {
	eng, err := f.build(ctx, mode, p, cfg, tables, opts)
	if err != nil {
		return nil, &domain.EngineBuildError{Mode: mode, Err: err}
	}
	return eng, nil
}

func (f *Factory) build(ctx context.Context, mode domain.SearchMode, p domain.Project, cfg *domain.ProjectConfig, tables *domain.Tables, opts BuildOptions) (engine.Engine, error) {
	model, err := f.ai.ChatModel(cfg)
	if err != nil {
		return nil, fmt.Errorf("chat model: %w", err)
	}

	level := opts.CommunityLevel
	if level <= 0 {
		level = cfg.CommunityLevel
	}
	views := communityViews(tables, level)

	switch mode {
	case domain.SearchModeLocal:
		embedder, entities, err := f.entityStore(ctx, cfg, views.Entities)
		if err != nil {
			return nil, err
		}
		prompt, err := f.prompt(p, driven.PromptLocalSearch, opts.PromptOverride)
		if err != nil {
			return nil, err
		}
		return engine.NewLocalSearch(engine.LocalParams{
			Model:        model,
			Embedder:     embedder,
			Entities:     entities,
			Views:        views,
			Prompt:       prompt,
			ResponseType: cfg.ResponseType,
		}), nil

	case domain.SearchModeGlobal:
		mapPrompt, err := f.prompt(p, driven.PromptGlobalMap, opts.PromptOverride)
		if err != nil {
			return nil, err
		}
		reducePrompt, err := f.prompt(p, driven.PromptGlobalReduce, "")
		if err != nil {
			return nil, err
		}
		knowledge, err := f.prompt(p, driven.PromptGlobalKnowledge, "")
		if err != nil {
			return nil, err
		}
		return engine.NewGlobalSearch(engine.GlobalParams{
			Model:            model,
			Reports:          views.Reports,
			Communities:      tables.Communities,
			MapPrompt:        mapPrompt,
			ReducePrompt:     reducePrompt,
			KnowledgePrompt:  knowledge,
			ResponseType:     cfg.ResponseType,
			DynamicSelection: opts.DynamicSelection,
		}), nil

	case domain.SearchModeDrift:
		embedder, entities, err := f.entityStore(ctx, cfg, views.Entities)
		if err != nil {
			return nil, err
		}
		// Report embeddings must be resident before the engine is handed
		// out; the primer resolves them synchronously on the first query.
		reports, err := f.loadStore(ctx, cfg, collectionReportContent, reportDocs(views.Reports))
		if err != nil {
			return nil, err
		}
		prompt, err := f.prompt(p, driven.PromptDriftSearch, opts.PromptOverride)
		if err != nil {
			return nil, err
		}
		return engine.NewDriftSearch(engine.DriftParams{
			Model:        model,
			Embedder:     embedder,
			Entities:     entities,
			Reports:      reports,
			Views:        views,
			Prompt:       prompt,
			ResponseType: cfg.ResponseType,
		}), nil

	case domain.SearchModeBasic:
		embedder, err := f.ai.Embedder(cfg)
		if err != nil {
			return nil, fmt.Errorf("embedder: %w", err)
		}
		units, err := f.loadStore(ctx, cfg, collectionTextUnitText, textUnitDocs(tables.TextUnits))
		if err != nil {
			return nil, err
		}
		prompt, err := f.prompt(p, driven.PromptBasicSearch, opts.PromptOverride)
		if err != nil {
			return nil, err
		}
		return engine.NewBasicSearch(engine.BasicParams{
			Model:        model,
			Embedder:     embedder,
			TextUnits:    units,
			Prompt:       prompt,
			ResponseType: cfg.ResponseType,
		}), nil
	}
	return nil, fmt.Errorf("unsupported search mode %q", mode)
}

func (f *Factory) prompt(p domain.Project, name, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	s, err := f.prompts.Load(p, name)
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", name, err)
	}
	return s, nil
}

func (f *Factory) entityStore(ctx context.Context, cfg *domain.ProjectConfig, entities []domain.Entity) (driven.Embedder, driven.EmbeddingStore, error) {
	embedder, err := f.ai.Embedder(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("embedder: %w", err)
	}
	store, err := f.loadStore(ctx, cfg, collectionEntityDescription, entityDocs(entities))
	if err != nil {
		return nil, nil, err
	}
	return embedder, store, nil
}

func (f *Factory) loadStore(ctx context.Context, cfg *domain.ProjectConfig, collection string, docs []driven.EmbeddingDocument) (driven.EmbeddingStore, error) {
	store, err := f.ai.EmbeddingStore(cfg, collection)
	if err != nil {
		return nil, fmt.Errorf("embedding store %s: %w", collection, err)
	}
	if err := store.Connect(ctx); err != nil {
		return nil, fmt.Errorf("embedding store %s: %w", collection, err)
	}
	if err := store.Load(ctx, docs); err != nil {
		return nil, fmt.Errorf("loading %s: %w", collection, err)
	}
	return store, nil
}

// communityViews cuts the artifact tables to the requested community level.
// Entities are admitted when their node appears at or below the level;
// reports when their community sits at or below it.
func communityViews(tables *domain.Tables, level int) engine.Views {
	admitted := make(map[string]bool)
	for _, n := range tables.Nodes {
		if int(n.Level) <= level {
			admitted[n.Title] = true
		}
	}

	var v engine.Views
	for _, e := range tables.Entities {
		if len(admitted) == 0 || admitted[e.Title] {
			v.Entities = append(v.Entities, e)
		}
	}
	for _, r := range tables.CommunityReports {
		if int(r.Level) <= level {
			v.Reports = append(v.Reports, r)
		}
	}
	v.Relationships = tables.Relationships
	v.TextUnits = tables.TextUnits
	v.Claims = tables.Covariates
	return v
}

func entityDocs(entities []domain.Entity) []driven.EmbeddingDocument {
	var docs []driven.EmbeddingDocument
	for _, e := range entities {
		if len(e.DescriptionEmbedding) == 0 {
			continue
		}
		docs = append(docs, driven.EmbeddingDocument{ID: e.ID, Text: e.Description, Vector: e.DescriptionEmbedding})
	}
	return docs
}

func reportDocs(reports []domain.CommunityReport) []driven.EmbeddingDocument {
	var docs []driven.EmbeddingDocument
	for _, r := range reports {
		if len(r.FullContentEmbedding) == 0 {
			continue
		}
		docs = append(docs, driven.EmbeddingDocument{ID: r.ID, Text: r.FullContent, Vector: r.FullContentEmbedding})
	}
	return docs
}

func textUnitDocs(units []domain.TextUnit) []driven.EmbeddingDocument {
	var docs []driven.EmbeddingDocument
	for _, u := range units {
		if len(u.Embedding) == 0 {
			continue
		}
		docs = append(docs, driven.EmbeddingDocument{ID: u.ID, Text: u.Text, Vector: u.Embedding})
	}
	return docs
}
