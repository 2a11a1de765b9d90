package driven

import "github.com/ragfront/ragfront-core/internal/core/domain"

// Prompt names resolvable through a PromptStore.
const (
	PromptLocalSearch     = "local_search"
	PromptGlobalMap       = "global_map"
	PromptGlobalReduce    = "global_reduce"
	PromptGlobalKnowledge = "global_knowledge"
	PromptDriftSearch     = "drift_search"
	PromptBasicSearch     = "basic_search"
	PromptQuestionGen     = "question_gen"
)

// PromptStore resolves system prompts: a project override file when present,
// otherwise a built-in default.
type PromptStore interface {
	Load(p domain.Project, name string) (string, error)
}
