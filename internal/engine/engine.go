// Package engine assembles and executes the four retrieval strategies over
// loaded index artifacts. Engines are ephemeral: constructed fresh per query
// execution and discarded afterwards.
package engine

import (
	"context"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// EventKind tags a streamed event.
type EventKind int

const (
	// EventContext carries the retrieval context. It is always the first
	// event of a stream and is never visible output.
	EventContext EventKind = iota

	// EventToken carries one generated text fragment.
	EventToken

	// EventError terminates the stream with a failure.
	EventError
)

// Event is one element of a streamed execution: a discriminated union of
// context payload, token and error.
type Event struct {
	Kind    EventKind
	Token   string
	Context *Context
	Err     error
}

// Context is the retrieval evidence payload of a stream.
type Context struct {
	Data         map[string][]domain.Row
	PromptTokens int
}

// Result is the raw outcome of one engine execution. Response is a string
// for local, global and basic search; drift search returns its nested
// node structure and consumers must normalize it.
type Result struct {
	Response     any
	Context      map[string][]domain.Row
	PromptTokens int
}

// Engine executes one retrieval strategy.
type Engine interface {
	Mode() domain.SearchMode
	Search(ctx context.Context, query string, history []domain.Turn) (*Result, error)

	// Stream delivers an ordered, single-pass event sequence: one context
	// event, then tokens until natural completion. The channel is closed
	// when the stream ends.
	Stream(ctx context.Context, query string, history []domain.Turn) (<-chan Event, error)
}
