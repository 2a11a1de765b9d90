package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// LocalParams configures a local search engine.
type LocalParams struct {
	Model        driven.ChatModel
	Embedder     driven.Embedder
	Entities     driven.EmbeddingStore // entity description embeddings
	Views        Views
	Prompt       string
	ResponseType string
}

// Views are the artifact slices visible at the configured community level.
type Views struct {
	Entities      []domain.Entity
	Relationships []domain.Relationship
	Reports       []domain.CommunityReport
	TextUnits     []domain.TextUnit
	Claims        []domain.Covariate // empty when covariates are absent
}

// LocalSearch answers from the graph neighbourhood of entities matching the
// query.
type LocalSearch struct {
	p LocalParams
}

// NewLocalSearch creates a local search engine.
func NewLocalSearch(p LocalParams) *LocalSearch { return &LocalSearch{p: p} }

func (s *LocalSearch) Mode() domain.SearchMode { return domain.SearchModeLocal }

func (s *LocalSearch) Search(ctx context.Context, query string, history []domain.Turn) (*Result, error) {
	sys, data, err := s.prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	resp, err := s.p.Model.Complete(ctx, chatMessages(sys, history, query), driven.ChatOptions{})
	if err != nil {
		return nil, err
	}
	return &Result{Response: resp.Content, Context: data, PromptTokens: resp.PromptTokens}, nil
}

func (s *LocalSearch) Stream(ctx context.Context, query string, history []domain.Turn) (<-chan Event, error) {
	sys, data, err := s.prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	stream, err := s.p.Model.Stream(ctx, chatMessages(sys, history, query), driven.ChatOptions{})
	if err != nil {
		return nil, err
	}
	return pump(ctx, stream, &Context{Data: data, PromptTokens: estimateTokens(sys)}), nil
}

// prepare selects the query's graph neighbourhood and renders it as the
// system prompt context.
func (s *LocalSearch) prepare(ctx context.Context, query string) (string, map[string][]domain.Row, error) {
	vec, err := s.p.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("embedding query: %w", err)
	}
	hits, err := s.p.Entities.SimilarTexts(ctx, vec, maxContextEntities)
	if err != nil {
		return "", nil, fmt.Errorf("entity lookup: %w", err)
	}

	matched := make(map[string]bool, len(hits))
	for _, h := range hits {
		matched[h.ID] = true
	}

	var entities []domain.Entity
	titles := make(map[string]bool)
	ids := make(map[string]bool)
	for _, e := range s.p.Views.Entities {
		if matched[e.ID] {
			entities = append(entities, e)
			titles[e.Title] = true
			ids[e.ID] = true
		}
	}

	var rels []domain.Relationship
	for _, r := range s.p.Views.Relationships {
		if titles[r.Source] || titles[r.Target] {
			rels = append(rels, r)
		}
	}
	rels = limit(rels, maxContextRelations)

	var units []domain.TextUnit
	for _, u := range s.p.Views.TextUnits {
		for _, id := range u.EntityIDs {
			if ids[id] {
				units = append(units, u)
				break
			}
		}
	}
	units = limit(units, maxContextTextUnits)

	var claims []domain.Covariate
	for _, c := range s.p.Views.Claims {
		if ids[c.SubjectID] {
			claims = append(claims, c)
		}
	}
	claims = limit(claims, maxContextClaims)

	reports := limit(s.p.Views.Reports, maxContextReports)

	entData, entTable := entityRows(entities)
	relData, relTable := relationshipRows(rels)
	repData, repTable := reportRows(reports)
	srcData, srcTable := textUnitRows(units)
	clmData, clmTable := claimRows(claims)

	var b strings.Builder
	b.WriteString(renderSection("Reports", []string{"id", "title", "content"}, repTable))
	b.WriteString(renderSection("Entities", []string{"id", "entity", "description"}, entTable))
	b.WriteString(renderSection("Relationships", []string{"id", "source", "target", "description"}, relTable))
	b.WriteString(renderSection("Claims", []string{"id", "subject", "description"}, clmTable))
	b.WriteString(renderSection("Sources", []string{"id", "text"}, srcTable))

	data := map[string][]domain.Row{
		"reports":       repData,
		"entities":      entData,
		"relationships": relData,
		"claims":        clmData,
		"sources":       srcData,
	}
	return fillPrompt(s.p.Prompt, b.String(), s.p.ResponseType), data, nil
}

// pump forwards a chat stream as tagged events: the context payload first,
// then one event per token, closing at natural completion.
func pump(ctx context.Context, stream driven.ChatStream, ec *Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		defer stream.Close()

		select {
		case out <- Event{Kind: EventContext, Context: ec}:
		case <-ctx.Done():
			return
		}

		for {
			tok, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				select {
				case out <- Event{Kind: EventError, Err: err}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case out <- Event{Kind: EventToken, Token: tok}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
