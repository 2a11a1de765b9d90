package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore resolves system prompts: a per-project override file under
// prompts/ wins, otherwise the built-in default is used.
type PromptStore struct{}

// NewPromptStore creates a PromptStore.
func NewPromptStore() *PromptStore { return &PromptStore{} }

func (s *PromptStore) Load(p domain.Project, name string) (string, error) {
	path := filepath.Join(p.PromptsDir(), name+".txt")
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("reading prompt %s: %w", path, err)
	}
	def, ok := defaultPrompts[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	return def, nil
}
