package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// DefaultQuestionCount is the number of follow-up questions generated when
// the request does not specify one.
const DefaultQuestionCount = 5

// questionPlaceholder is returned when generation fails; the completion
// itself already succeeded at that point and must not be discarded.
const questionPlaceholder = "Failed to generate follow-up questions."

// QuestionGen produces candidate follow-up questions from a completed
// answer.
type QuestionGen struct {
	prompts driven.PromptStore
	log     *slog.Logger
}

// NewQuestionGen creates a QuestionGen.
func NewQuestionGen(prompts driven.PromptStore, log *slog.Logger) *QuestionGen {
	return &QuestionGen{prompts: prompts, log: log}
}

// Generate asks the model for follow-up questions grounded in the retrieval
// evidence and the questions the user has asked so far. Only user turns of
// the history count as questions; assistant turns are conversation output,
// not input. Failures degrade to a single placeholder question rather than
// an error.
func (g *QuestionGen) Generate(ctx context.Context, model driven.ChatModel, p domain.Project, history []domain.Turn, query, answer string, data domain.ContextData, count int) []string {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	prompt, err := g.prompts.Load(p, driven.PromptQuestionGen)
	if err != nil {
		g.log.Warn("question prompt unavailable", "project", p.Name, "error", err)
		return []string{questionPlaceholder}
	}
	sys := strings.ReplaceAll(prompt, "{question_count}", fmt.Sprintf("%d", count))
	sys = strings.ReplaceAll(sys, "{context_data}", questionContextText(data))

	asked := make([]string, 0, len(history)+1)
	for _, turn := range history {
		if turn.Role == "user" {
			asked = append(asked, turn.Content)
		}
	}
	asked = append(asked, query)

	messages := []domain.Turn{
		{Role: "system", Content: sys},
		{Role: "user", Content: strings.Join(asked, "\n")},
		{Role: "assistant", Content: answer},
	}
	resp, err := model.Complete(ctx, messages, driven.ChatOptions{})
	if err != nil {
		g.log.Warn("question generation failed", "project", p.Name, "error", err)
		return []string{questionPlaceholder}
	}

	var questions []string
	for _, line := range strings.Split(resp.Content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-0123456789. "))
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == count {
			break
		}
	}
	if len(questions) == 0 {
		return []string{questionPlaceholder}
	}
	return questions
}

// questionContextText renders the retrieval evidence for the question
// prompt, one block per non-empty category.
func questionContextText(data domain.ContextData) string {
	var b strings.Builder
	writeRows := func(name string, rows []domain.Row, cols ...string) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(&b, "-----%s-----\n", name)
		for _, row := range rows {
			vals := make([]string, 0, len(cols))
			for _, c := range cols {
				vals = append(vals, row[c])
			}
			b.WriteString(strings.Join(vals, "|"))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	writeRows("Reports", data.Reports, "id", "title", "content")
	writeRows("Entities", data.Entities, "id", "entity", "description")
	writeRows("Relationships", data.Relationships, "id", "source", "target", "description")
	writeRows("Claims", data.Claims, "id", "subject", "description")
	writeRows("Sources", data.Sources, "id", "text")
	return b.String()
}
