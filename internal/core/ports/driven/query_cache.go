package driven

import (
	"context"
	"encoding/json"
)

// QueryCache is the disk- or Redis-backed auxiliary cache keyed by a
// SHA-256 fingerprint of the cached text. Get returns domain.ErrCacheMiss
// when no entry exists.
type QueryCache interface {
	Get(ctx context.Context, fingerprint string) (json.RawMessage, error)
	Set(ctx context.Context, fingerprint string, data json.RawMessage) error
}
