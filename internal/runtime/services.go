// Package runtime assembles the adapters and core services shared by the
// server and CLI entrypoints.
package runtime

import (
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ragfront/ragfront-core/internal/adapters/driven/ai"
	"github.com/ragfront/ragfront-core/internal/adapters/driven/blob"
	"github.com/ragfront/ragfront-core/internal/adapters/driven/fs"
	"github.com/ragfront/ragfront-core/internal/adapters/driven/indexer"
	"github.com/ragfront/ragfront-core/internal/adapters/driven/parquet"
	redisadapter "github.com/ragfront/ragfront-core/internal/adapters/driven/redis"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
	"github.com/ragfront/ragfront-core/internal/core/ports/driving"
	"github.com/ragfront/ragfront-core/internal/core/services"
	"github.com/ragfront/ragfront-core/internal/normalisers"
)

// Config selects the backing infrastructure.
type Config struct {
	// DataRoot is the directory holding all project directories.
	DataRoot string

	// RedisURL switches the query cache from filesystem to Redis when set.
	RedisURL string

	// BlobSecret signs download URLs; BlobBaseURL is the address they
	// point at.
	BlobSecret  string
	BlobBaseURL string

	// IndexerBinary is the external indexing engine executable.
	IndexerBinary string

	// ResultCacheCapacity bounds the in-memory result cache (0 = default).
	ResultCacheCapacity int

	// QueryCacheTTL bounds Redis cache entries (0 = default).
	QueryCacheTTL time.Duration

	Logger *slog.Logger
}

// Services holds the assembled application.
type Services struct {
	Query    driving.QueryService
	Projects driving.ProjectService

	ProjectStore driven.ProjectStore
	Blobs        *blob.Signer

	redis *goredis.Client
}

// New wires adapters into services per the configuration.
func New(cfg Config) (*Services, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	projectStore := fs.NewProjectStore(cfg.DataRoot)
	artifactStore := parquet.NewStore()
	promptStore := fs.NewPromptStore()
	signer := blob.NewSigner(cfg.BlobSecret, cfg.BlobBaseURL)
	aiFactory := ai.NewFactory()

	s := &Services{
		ProjectStore: projectStore,
		Blobs:        signer,
	}

	var queryCache driven.QueryCache
	if cfg.RedisURL != "" {
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		s.redis = goredis.NewClient(opts)
		queryCache = redisadapter.NewQueryCache(s.redis, cfg.QueryCacheTTL)
	} else {
		queryCache = fs.NewQueryCache(cfg.DataRoot)
	}

	loader := services.NewLoader(projectStore, artifactStore, logger)
	factory := services.NewFactory(aiFactory, promptStore, logger)
	attribution := services.NewAttribution(projectStore, signer, logger)
	questions := services.NewQuestionGen(promptStore, logger)

	s.Query = services.NewQueryService(
		loader,
		factory,
		services.NewExecutor(),
		services.NewComposer(),
		services.NewResultCache(cfg.ResultCacheCapacity),
		queryCache,
		attribution,
		questions,
		logger,
	)

	runner := indexer.NewRunner(cfg.IndexerBinary, logger)
	s.Projects = services.NewProjectService(
		projectStore,
		artifactStore,
		runner,
		normalisers.NewDefaultRegistry(),
		logger,
	)
	return s, nil
}

// Close releases held infrastructure connections.
func (s *Services) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
