package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
	"github.com/ragfront/ragfront-core/internal/core/ports/driving"
)

// Ensure queryService implements QueryService
var _ driving.QueryService = (*queryService)(nil)

// queryService orchestrates one query execution: load artifacts, assemble
// an engine, run it and shape the response envelope.
type queryService struct {
	loader      *Loader
	factory     *Factory
	executor    *Executor
	composer    *Composer
	cache       *ResultCache
	queryCache  driven.QueryCache
	attribution *Attribution
	questions   *QuestionGen
	log         *slog.Logger
}

// NewQueryService creates a QueryService. The result cache is injected so
// its lifetime and capacity are owned by the caller, not by this package.
func NewQueryService(
	loader *Loader,
	factory *Factory,
	executor *Executor,
	composer *Composer,
	cache *ResultCache,
	queryCache driven.QueryCache,
	attribution *Attribution,
	questions *QuestionGen,
	log *slog.Logger,
) driving.QueryService {
	return &queryService{
		loader:      loader,
		factory:     factory,
		executor:    executor,
		composer:    composer,
		cache:       cache,
		queryCache:  queryCache,
		attribution: attribution,
		questions:   questions,
		log:         log,
	}
}

// CheckAPIKey validates the caller's api-key against the project's key in
// constant time. Projects without a configured key are open.
func (s *queryService) CheckAPIKey(projectName, apiKey string) error {
	p, err := s.loader.projects.Resolve(projectName)
	if err != nil {
		return err
	}
	cfg, err := s.loader.projects.Config(p)
	if err != nil {
		return err
	}
	if cfg.ProjectAPIKey == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(cfg.ProjectAPIKey), []byte(apiKey)) != 1 {
		return domain.ErrInvalidAPIKey
	}
	return nil
}

func (s *queryService) Completion(ctx context.Context, req *domain.CompletionRequest) (*domain.ChatCompletion, error) {
	query := req.Query()
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	start := time.Now()

	p, cfg, tables, err := s.loader.LoadContext(ctx, req.ProjectName)
	if err != nil {
		return nil, err
	}
	eng, err := s.factory.Build(ctx, req.Mode(), p, cfg, tables, BuildOptions{CommunityLevel: req.CommunityLevel})
	if err != nil {
		return nil, err
	}
	res, err := s.executor.ExecuteSync(ctx, eng, query, req.History())
	if err != nil {
		return nil, err
	}

	var questions []string
	if req.GenerateQuestion && req.Mode() == domain.SearchModeLocal {
		model, merr := s.factory.ai.ChatModel(cfg)
		if merr != nil {
			questions = []string{questionPlaceholder}
		} else {
			questions = s.questions.Generate(ctx, model, p, req.History(), query, res.Answer, res.Context, req.GenerateQuestionCount)
		}
	}

	s.log.Info("completion served",
		"project", req.ProjectName,
		"mode", req.Mode(),
		"duration", time.Since(start))
	return s.composer.Compose(req, res, questions), nil
}

func (s *queryService) CompletionStream(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.CompletionChunk, <-chan error, error) {
	query := req.Query()
	if query == "" {
		return nil, nil, domain.ErrEmptyQuery
	}

	p, cfg, tables, err := s.loader.LoadContext(ctx, req.ProjectName)
	if err != nil {
		return nil, nil, err
	}
	eng, err := s.factory.Build(ctx, req.Mode(), p, cfg, tables, BuildOptions{CommunityLevel: req.CommunityLevel})
	if err != nil {
		return nil, nil, err
	}
	events, err := s.executor.ExecuteStream(ctx, eng, query, req.History())
	if err != nil {
		return nil, nil, err
	}

	var questionFn QuestionFunc
	if req.GenerateQuestion && req.Mode() == domain.SearchModeLocal {
		questionFn = func(ctx context.Context, answer string, data domain.ContextData) []string {
			model, merr := s.factory.ai.ChatModel(cfg)
			if merr != nil {
				return []string{questionPlaceholder}
			}
			return s.questions.Generate(ctx, model, p, req.History(), query, answer, data, req.GenerateQuestionCount)
		}
	}

	chunks, errc := s.composer.ComposeStream(ctx, req, events, questionFn)
	return chunks, errc, nil
}

func (s *queryService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchEnvelope, error) {
	if req.Query == "" {
		return nil, domain.ErrEmptyQuery
	}

	key := CacheKey{
		Project:          req.ProjectName,
		Mode:             req.Mode,
		CommunityLevel:   req.CommunityLevel,
		DynamicSelection: req.DynamicCommunitySelection,
		Query:            req.Query,
	}
	cacheable := req.UserCache && req.Mode == domain.SearchModeLocal
	if cacheable {
		if env := s.lookupCached(ctx, key); env != nil {
			s.log.Info("search served from cache", "project", req.ProjectName, "query", req.Query)
			return env, nil
		}
	}

	p, cfg, tables, err := s.loader.LoadContext(ctx, req.ProjectName)
	if err != nil {
		return nil, err
	}
	eng, err := s.factory.Build(ctx, req.Mode, p, cfg, tables, BuildOptions{
		CommunityLevel:   req.CommunityLevel,
		DynamicSelection: req.DynamicCommunitySelection,
	})
	if err != nil {
		return nil, err
	}
	res, err := s.executor.ExecuteSync(ctx, eng, req.Query, nil)
	if err != nil {
		return nil, err
	}

	env := &domain.SearchEnvelope{
		Message:  "ok",
		Response: res.Answer,
		Query:    req.Query,
	}
	if req.QuerySource && req.Mode == domain.SearchModeLocal {
		env.Sources = s.attribution.Resolve(p, res.Context.Sources)
	}
	if req.ContextData {
		ctxData := res.Context
		env.Context = &ctxData
	}

	if cacheable {
		s.storeCached(ctx, key, env)
	}
	return env, nil
}

func (s *queryService) Models() domain.ModelList {
	created := time.Now().Unix()
	list := domain.ModelList{Object: "list"}
	for _, mode := range domain.AllSearchModes() {
		list.Data = append(list.Data, domain.ModelInfo{
			ID:      string(mode),
			Object:  "model",
			Created: created,
			OwnedBy: "ragfront",
		})
	}
	return list
}

// lookupCached checks the in-memory result cache, then the persistent query
// cache. Persistent-cache problems are logged and treated as misses.
func (s *queryService) lookupCached(ctx context.Context, key CacheKey) *domain.SearchEnvelope {
	if env := s.cache.Get(key); env != nil {
		return env
	}
	if s.queryCache == nil {
		return nil
	}
	raw, err := s.queryCache.Get(ctx, fingerprint(key))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.log.Warn("query cache read failed", "error", err)
		}
		return nil
	}
	var env domain.SearchEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.log.Warn("query cache entry corrupt", "error", err)
		return nil
	}
	s.cache.Put(key, &env)
	return &env
}

func (s *queryService) storeCached(ctx context.Context, key CacheKey, env *domain.SearchEnvelope) {
	s.cache.Put(key, env)
	if s.queryCache == nil {
		return
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return
	}
	if err := s.queryCache.Set(ctx, fingerprint(key), raw); err != nil {
		s.log.Warn("query cache write failed", "error", err)
	}
}

// fingerprint derives the persistent cache key: a SHA-256 digest of the
// canonical key rendering.
func fingerprint(key CacheKey) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%t|%s",
		key.Project, key.Mode, key.CommunityLevel, key.DynamicSelection, key.Query)))
	return hex.EncodeToString(sum[:])
}
