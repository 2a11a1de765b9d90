package services

import (
	"context"
	"strings"
	"testing"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/engine"
)

func TestStripReferences(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"no markers", "Paris is the capital.", "Paris is the capital."},
		{"single marker", "Paris [Data: Entities (12)] is big.", "Paris is big."},
		{"multiple groups", "A [Data: Reports (2, 7); Entities (12)] B [Data: Sources (1)]", "A B"},
		{"trailing marker", "Paris is the capital [Data: Entities (12)]", "Paris is the capital"},
		{"marker only", "[Data: Entities (1)]", ""},
		{"unclosed bracket left alone", "text [Data: Entities (1", "text [Data: Entities (1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripReferences(tt.in); got != tt.want {
				t.Fatalf("StripReferences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestComposer_Compose(t *testing.T) {
	c := NewComposer()
	req := &domain.CompletionRequest{Model: "local"}
	res := &domain.SearchResult{
		Answer:       "Paris is the capital [Data: Entities (12)]",
		PromptTokens: 42,
	}
	res.Context.Normalize()

	completion := c.Compose(req, res, nil)

	if got := completion.Choices[0].Message.Content; got != "Paris is the capital" {
		t.Fatalf("expected stripped answer, got %q", got)
	}
	if completion.Choices[0].FinishReason != "stop" {
		t.Fatalf("expected finish_reason stop, got %q", completion.Choices[0].FinishReason)
	}
	if completion.Usage.PromptTokens != 42 {
		t.Fatalf("expected prompt tokens 42, got %d", completion.Usage.PromptTokens)
	}
	if completion.Usage.CompletionTokens != domain.UsageUnavailable || completion.Usage.TotalTokens != domain.UsageUnavailable {
		t.Fatalf("untracked counts must be -1, got %+v", completion.Usage)
	}
	if completion.ContextData == nil || completion.ContextData.Entities == nil {
		t.Fatal("context data categories must be present")
	}
}

func TestComposer_ComposeShowReference(t *testing.T) {
	c := NewComposer()
	req := &domain.CompletionRequest{Model: "local", ShowReference: true}
	res := &domain.SearchResult{Answer: "Paris [Data: Entities (12)]"}

	completion := c.Compose(req, res, nil)
	if got := completion.Choices[0].Message.Content; got != "Paris [Data: Entities (12)]" {
		t.Fatalf("show_reference must keep markers, got %q", got)
	}
}

func eventChannel(tokens []string, promptTokens int) <-chan engine.Event {
	ch := make(chan engine.Event)
	go func() {
		defer close(ch)
		ch <- engine.Event{Kind: engine.EventContext, Context: &engine.Context{PromptTokens: promptTokens}}
		for _, tok := range tokens {
			ch <- engine.Event{Kind: engine.EventToken, Token: tok}
		}
	}()
	return ch
}

func TestComposer_ComposeStream(t *testing.T) {
	c := NewComposer()
	req := &domain.CompletionRequest{Model: "local"}
	tokens := []string{"Paris", " is", " the capital", " [Data: Entities (12)]"}

	chunks, errc := c.ComposeStream(context.Background(), req, eventChannel(tokens, 42), nil)

	var collected []domain.CompletionChunk
	for chunk := range chunks {
		collected = append(collected, chunk)
	}
	if err := <-errc; err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}

	if len(collected) != len(tokens)+1 {
		t.Fatalf("expected %d chunks, got %d", len(tokens)+1, len(collected))
	}

	var deltas strings.Builder
	for i, chunk := range collected[:len(tokens)] {
		if chunk.Index != i {
			t.Fatalf("chunk %d has index %d", i, chunk.Index)
		}
		if chunk.ID != collected[0].ID {
			t.Fatal("all chunks must share one completion id")
		}
		if chunk.Choices[0].FinishReason != nil {
			t.Fatalf("non-terminal chunk %d carries a finish reason", i)
		}
		deltas.WriteString(chunk.Choices[0].Delta.Content)
	}

	terminal := collected[len(collected)-1]
	if terminal.Choices[0].FinishReason == nil || *terminal.Choices[0].FinishReason != "stop" {
		t.Fatal("terminal chunk must carry finish_reason stop")
	}
	if got := terminal.Choices[0].Delta.Content; got != StripReferences(deltas.String()) {
		t.Fatalf("terminal answer %q must equal stripped delta concat %q", got, StripReferences(deltas.String()))
	}
	if terminal.Usage == nil || terminal.Usage.PromptTokens != 42 {
		t.Fatalf("terminal usage should carry engine prompt tokens, got %+v", terminal.Usage)
	}
	if terminal.Usage.CompletionTokens != domain.UsageUnavailable {
		t.Fatal("untracked counts must be -1")
	}
}

func TestComposer_ComposeStreamQuestions(t *testing.T) {
	c := NewComposer()
	req := &domain.CompletionRequest{Model: "local"}
	questionFn := func(ctx context.Context, answer string, data domain.ContextData) []string {
		if answer != "Paris" {
			t.Fatalf("question hook received %q", answer)
		}
		if len(data.Entities) != 1 {
			t.Fatalf("question hook should receive the stream's context data, got %+v", data)
		}
		return []string{"What about Lyon?"}
	}

	events := make(chan engine.Event)
	go func() {
		defer close(events)
		events <- engine.Event{Kind: engine.EventContext, Context: &engine.Context{
			Data: map[string][]domain.Row{"entities": {{"id": "e1", "entity": "PARIS"}}},
		}}
		events <- engine.Event{Kind: engine.EventToken, Token: "Paris"}
	}()
	chunks, _ := c.ComposeStream(context.Background(), req, events, questionFn)

	var last domain.CompletionChunk
	for chunk := range chunks {
		last = chunk
	}
	if len(last.Questions) != 1 || last.Questions[0] != "What about Lyon?" {
		t.Fatalf("terminal chunk should carry questions, got %+v", last.Questions)
	}
}

func TestComposer_ComposeStreamError(t *testing.T) {
	c := NewComposer()
	req := &domain.CompletionRequest{Model: "local"}

	ch := make(chan engine.Event)
	go func() {
		defer close(ch)
		ch <- engine.Event{Kind: engine.EventContext, Context: &engine.Context{}}
		ch <- engine.Event{Kind: engine.EventToken, Token: "partial"}
		ch <- engine.Event{Kind: engine.EventError, Err: context.DeadlineExceeded}
	}()

	chunks, errc := c.ComposeStream(context.Background(), req, ch, nil)
	for range chunks {
	}
	if err := <-errc; err == nil {
		t.Fatal("expected the engine error on the error channel")
	}
}
