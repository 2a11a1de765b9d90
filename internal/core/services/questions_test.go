package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven/mocks"
)

func TestQuestionGen_Generate(t *testing.T) {
	g := NewQuestionGen(mocks.NewMockPromptStore(), slog.Default())
	model := mocks.NewMockChatModel("- What about Lyon?\n- What about Nice?\n- What about Lille?")
	p := domain.Project{Name: "demo"}

	questions := g.Generate(context.Background(), model, p, nil, "capital?", "Paris.", domain.ContextData{}, 2)
	if len(questions) != 2 {
		t.Fatalf("count must cap the questions, got %d", len(questions))
	}
	if questions[0] != "What about Lyon?" {
		t.Fatalf("list markers should be trimmed, got %q", questions[0])
	}
}

func TestQuestionGen_UsesHistoryAndContext(t *testing.T) {
	g := NewQuestionGen(mocks.NewMockPromptStore(), slog.Default())
	model := mocks.NewMockChatModel("- What about Lyon?")
	p := domain.Project{Name: "demo"}

	history := []domain.Turn{
		{Role: "user", Content: "Tell me about France"},
		{Role: "assistant", Content: "France is a country."},
		{Role: "user", Content: "How large is it?"},
	}
	data := domain.ContextData{
		Entities: []domain.Row{{"id": "e1", "entity": "PARIS", "description": "Capital of France"}},
		Sources:  []domain.Row{{"id": "t1", "text": "Paris is the capital of France."}},
	}

	g.Generate(context.Background(), model, p, history, "And its capital?", "Paris.", data, 3)

	if len(model.Calls) != 1 {
		t.Fatalf("expected one model call, got %d", len(model.Calls))
	}
	msgs := model.Calls[0]

	// The retrieval evidence is rendered into the system prompt.
	sys := msgs[0].Content
	if !strings.Contains(sys, "PARIS") || !strings.Contains(sys, "Paris is the capital of France.") {
		t.Fatalf("context data should reach the system prompt, got %q", sys)
	}

	// The user message carries every user question so far, in order, and
	// no assistant output.
	asked := msgs[1].Content
	for _, q := range []string{"Tell me about France", "How large is it?", "And its capital?"} {
		if !strings.Contains(asked, q) {
			t.Fatalf("question history should include %q, got %q", q, asked)
		}
	}
	if strings.Contains(asked, "France is a country.") {
		t.Fatalf("assistant turns must not enter the question history, got %q", asked)
	}
	if strings.Index(asked, "Tell me about France") > strings.Index(asked, "How large is it?") {
		t.Fatalf("question history out of order: %q", asked)
	}
}

func TestQuestionGen_DegradesToPlaceholder(t *testing.T) {
	g := NewQuestionGen(mocks.NewMockPromptStore(), slog.Default())
	model := mocks.NewMockChatModel()
	model.Err = errors.New("model unavailable")
	p := domain.Project{Name: "demo"}

	questions := g.Generate(context.Background(), model, p, nil, "q", "a", domain.ContextData{}, 5)
	if len(questions) != 1 || questions[0] != questionPlaceholder {
		t.Fatalf("failures must degrade to the placeholder, got %+v", questions)
	}
}
