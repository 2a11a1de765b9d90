package driven

import (
	"context"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// IndexRunner invokes the external indexing engine. The core only shells
// out and reads the produced artifacts; the graph build itself is opaque.
type IndexRunner interface {
	// Build runs a full index build; update revises existing artifacts.
	Build(ctx context.Context, p domain.Project, update bool) error

	// TunePrompts runs the engine's automatic prompt tuning.
	TunePrompts(ctx context.Context, p domain.Project) error
}
