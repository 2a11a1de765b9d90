// Package indexer shells out to the external indexing engine. The graph
// build itself is opaque to this server; only exit status and artifacts
// matter.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.IndexRunner = (*Runner)(nil)

// Runner invokes the indexing engine binary as a subprocess.
type Runner struct {
	binary string
	log    *slog.Logger
}

// NewRunner creates a Runner for the given engine binary.
func NewRunner(binary string, log *slog.Logger) *Runner {
	return &Runner{binary: binary, log: log}
}

func (r *Runner) Build(ctx context.Context, p domain.Project, update bool) error {
	verb := "index"
	if update {
		verb = "update"
	}
	return r.run(ctx, p, verb, "--root", p.Root)
}

func (r *Runner) TunePrompts(ctx context.Context, p domain.Project) error {
	return r.run(ctx, p, "prompt-tune", "--root", p.Root, "--output", p.PromptsDir())
}

func (r *Runner) run(ctx context.Context, p domain.Project, args ...string) error {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = p.Root
	cmd.Env = append(os.Environ(), "GRAPHRAG_PROMPT_DIR="+p.PromptsDir())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	r.log.Info("running indexing engine", "project", p.Name, "args", args)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("indexing engine %v: %w", args, err)
	}
	return nil
}
