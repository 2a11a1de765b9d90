package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.QueryCache = (*QueryCache)(nil)

// QueryCache stores query results as one JSON file per fingerprint under
// {root}/cache/query_cache/.
type QueryCache struct {
	root string
}

// NewQueryCache creates a filesystem QueryCache rooted at the data
// directory.
func NewQueryCache(root string) *QueryCache {
	return &QueryCache{root: root}
}

func (c *QueryCache) dir() string {
	return filepath.Join(c.root, "cache", "query_cache")
}

func (c *QueryCache) path(fingerprint string) string {
	return filepath.Join(c.dir(), fingerprint+".json")
}

func (c *QueryCache) Get(ctx context.Context, fingerprint string) (json.RawMessage, error) {
	data, err := os.ReadFile(c.path(fingerprint))
	if os.IsNotExist(err) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}
	return data, nil
}

func (c *QueryCache) Set(ctx context.Context, fingerprint string, data json.RawMessage) error {
	if err := os.MkdirAll(c.dir(), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(c.path(fingerprint), data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}
