package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Reports are mapped in batches of this size during the map phase.
const globalMapBatchSize = 5

// Minimum report rank admitted by dynamic community selection.
const dynamicSelectionMinRank = 5.0

// GlobalParams configures a global search engine.
type GlobalParams struct {
	Model        driven.ChatModel
	Reports      []domain.CommunityReport // already cut to the community level
	Communities  []domain.Community
	MapPrompt    string
	ReducePrompt string
	// KnowledgePrompt is appended to the reduce prompt when general
	// knowledge may be included in the answer.
	KnowledgePrompt string
	ResponseType    string

	// DynamicSelection replaces the fixed level cut with a rank-based
	// relevance heuristic.
	DynamicSelection bool
}

// GlobalSearch answers via a map/reduce pass over community reports.
type GlobalSearch struct {
	p GlobalParams
}

// NewGlobalSearch creates a global search engine.
func NewGlobalSearch(p GlobalParams) *GlobalSearch { return &GlobalSearch{p: p} }

func (s *GlobalSearch) Mode() domain.SearchMode { return domain.SearchModeGlobal }

func (s *GlobalSearch) Search(ctx context.Context, query string, history []domain.Turn) (*Result, error) {
	mapped, data, promptTokens, err := s.mapPhase(ctx, query)
	if err != nil {
		return nil, err
	}
	resp, err := s.p.Model.Complete(ctx, s.reduceMessages(mapped, history, query), driven.ChatOptions{})
	if err != nil {
		return nil, err
	}
	return &Result{Response: resp.Content, Context: data, PromptTokens: promptTokens + resp.PromptTokens}, nil
}

func (s *GlobalSearch) Stream(ctx context.Context, query string, history []domain.Turn) (<-chan Event, error) {
	mapped, data, promptTokens, err := s.mapPhase(ctx, query)
	if err != nil {
		return nil, err
	}
	stream, err := s.p.Model.Stream(ctx, s.reduceMessages(mapped, history, query), driven.ChatOptions{})
	if err != nil {
		return nil, err
	}
	return pump(ctx, stream, &Context{Data: data, PromptTokens: promptTokens}), nil
}

// mapPhase rates every report batch against the query in parallel. The
// fan-out is internal to the engine and opaque to callers.
func (s *GlobalSearch) mapPhase(ctx context.Context, query string) ([]string, map[string][]domain.Row, int, error) {
	reports := s.selectReports()
	data, _ := reportRows(reports)

	batches := batchReports(reports, globalMapBatchSize)
	outputs := make([]string, len(batches))
	errs := make([]error, len(batches))
	var tokens int

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i, batch := range batches {
		wg.Add(1)
		go func(i int, batch []domain.CommunityReport) {
			defer wg.Done()
			var b strings.Builder
			for _, r := range batch {
				fmt.Fprintf(&b, "## %s\n%s\n\n", r.Title, r.Summary)
			}
			sys := fillPrompt(s.p.MapPrompt, b.String(), s.p.ResponseType)
			resp, err := s.p.Model.Complete(ctx, chatMessages(sys, nil, query), driven.ChatOptions{})
			if err != nil {
				errs[i] = err
				return
			}
			outputs[i] = resp.Content
			mu.Lock()
			tokens += resp.PromptTokens
			mu.Unlock()
		}(i, batch)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, 0, fmt.Errorf("map phase: %w", err)
		}
	}
	return outputs, map[string][]domain.Row{"reports": data}, tokens, nil
}

func (s *GlobalSearch) reduceMessages(mapped []string, history []domain.Turn, query string) []domain.Turn {
	sys := fillPrompt(s.p.ReducePrompt, strings.Join(mapped, "\n\n"), s.p.ResponseType)
	if s.p.KnowledgePrompt != "" {
		sys += "\n\n" + s.p.KnowledgePrompt
	}
	return chatMessages(sys, history, query)
}

// selectReports applies either the fixed level cut (the reports slice is
// already cut) or the dynamic rank heuristic.
func (s *GlobalSearch) selectReports() []domain.CommunityReport {
	if !s.p.DynamicSelection {
		return s.p.Reports
	}
	var selected []domain.CommunityReport
	for _, r := range s.p.Reports {
		if r.Rank >= dynamicSelectionMinRank {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		return s.p.Reports
	}
	return selected
}

func batchReports(reports []domain.CommunityReport, size int) [][]domain.CommunityReport {
	if len(reports) == 0 {
		return nil
	}
	var batches [][]domain.CommunityReport
	for start := 0; start < len(reports); start += size {
		end := start + size
		if end > len(reports) {
			end = len(reports)
		}
		batches = append(batches, reports[start:end])
	}
	return batches
}
