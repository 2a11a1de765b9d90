package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/engine"
)

// referenceRe matches inline data reference markers such as
// "[Data: Reports (2, 7); Entities (12)]" together with the whitespace
// around them.
var referenceRe = regexp.MustCompile(`\s*\[Data:[^\]]*\]\s*`)

// StripReferences removes data reference markers from generated text. The
// whitespace a marker leaves behind is collapsed so the remaining sentence
// reads naturally.
func StripReferences(s string) string {
	return strings.TrimSpace(referenceRe.ReplaceAllString(s, " "))
}

// Composer shapes execution results into the chat-completion envelope, both
// as a single object and as an ordered chunk stream.
type Composer struct{}

// NewComposer creates a Composer.
func NewComposer() *Composer { return &Composer{} }

// Compose builds the non-streaming completion object.
func (c *Composer) Compose(req *domain.CompletionRequest, res *domain.SearchResult, questions []string) *domain.ChatCompletion {
	answer := res.Answer
	if !req.ShowReference {
		answer = StripReferences(answer)
	}
	ctxData := res.Context

	completion := domain.NewCompletion(req.Mode())
	completion.Choices = []domain.Choice{{
		Index:        0,
		Message:      domain.ChatMessage{Role: "assistant", Content: answer},
		FinishReason: "stop",
	}}
	completion.Usage = domain.Usage{
		PromptTokens:     res.PromptTokens,
		CompletionTokens: domain.UsageUnavailable,
		TotalTokens:      domain.UsageUnavailable,
	}
	completion.ContextData = &ctxData
	completion.Questions = questions
	return &completion
}

// QuestionFunc produces follow-up questions from the assembled answer and
// the retrieval evidence of the stream's context event. It is invoked after
// streaming completes, before the terminal chunk.
type QuestionFunc func(ctx context.Context, answer string, data domain.ContextData) []string

// ComposeStream converts engine events into the chunk sequence: one chunk
// per token sharing a single completion id with a zero-based monotonically
// increasing index, then a terminal chunk with finish reason "stop" carrying
// the fully assembled filtered answer, then channel close. Engine errors
// surface on the error channel and end the stream.
func (c *Composer) ComposeStream(ctx context.Context, req *domain.CompletionRequest, events <-chan engine.Event, questions QuestionFunc) (<-chan domain.CompletionChunk, <-chan error) {
	out := make(chan domain.CompletionChunk)
	errc := make(chan error, 1)

	id := domain.NewCompletionID()
	created := time.Now().Unix()
	model := string(req.Mode())

	go func() {
		defer close(out)
		defer close(errc)

		index := 0
		promptTokens := 0
		var ctxData domain.ContextData
		var assembled strings.Builder

		emit := func(ch domain.CompletionChunk) bool {
			select {
			case out <- ch:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for ev := range events {
			switch ev.Kind {
			case engine.EventContext:
				// Context is envelope metadata, never a visible delta.
				promptTokens = ev.Context.PromptTokens
				ctxData = contextData(ev.Context.Data)

			case engine.EventToken:
				// Tokens stream raw: a reference marker can span token
				// boundaries, so filtering happens once on the assembled
				// answer in the terminal chunk.
				assembled.WriteString(ev.Token)
				ok := emit(domain.CompletionChunk{
					ID:      id,
					Object:  "chat.completion.chunk",
					Created: created,
					Model:   model,
					Index:   index,
					Choices: []domain.ChunkChoice{{
						Index: 0,
						Delta: domain.Delta{Content: ev.Token},
					}},
				})
				if !ok {
					return
				}
				index++

			case engine.EventError:
				errc <- ev.Err
				return
			}
		}

		answer := assembled.String()
		if !req.ShowReference {
			answer = StripReferences(answer)
		}
		var qs []string
		if questions != nil {
			qs = questions(ctx, answer, ctxData)
		}

		stop := "stop"
		emit(domain.CompletionChunk{
			ID:      id,
			Object:  "chat.completion.chunk",
			Created: created,
			Model:   model,
			Index:   index,
			Choices: []domain.ChunkChoice{{
				Index:        0,
				Delta:        domain.Delta{Content: answer},
				FinishReason: &stop,
			}},
			Usage: &domain.Usage{
				PromptTokens:     promptTokens,
				CompletionTokens: domain.UsageUnavailable,
				TotalTokens:      domain.UsageUnavailable,
			},
			Questions: qs,
		})
	}()

	return out, errc
}
