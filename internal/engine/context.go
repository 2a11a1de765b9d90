package engine

import (
	"fmt"
	"strings"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// Context assembly limits. These bound the prompt size, not correctness;
// rows beyond the limit are simply not surfaced to the model.
const (
	maxContextEntities  = 10
	maxContextRelations = 10
	maxContextReports   = 5
	maxContextTextUnits = 10
	maxContextClaims    = 10
)

// renderSection formats one context category as a delimited text table.
func renderSection(name string, header []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "-----%s-----\n", name)
	b.WriteString(strings.Join(header, "|"))
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(strings.Join(r, "|"))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func entityRows(entities []domain.Entity) (data []domain.Row, table [][]string) {
	for _, e := range entities {
		data = append(data, domain.Row{"id": e.ID, "entity": e.Title, "description": e.Description})
		table = append(table, []string{e.ID, e.Title, e.Description})
	}
	return data, table
}

func relationshipRows(rels []domain.Relationship) (data []domain.Row, table [][]string) {
	for _, r := range rels {
		data = append(data, domain.Row{
			"id":          r.ID,
			"source":      r.Source,
			"target":      r.Target,
			"description": r.Description,
		})
		table = append(table, []string{r.ID, r.Source, r.Target, r.Description})
	}
	return data, table
}

func reportRows(reports []domain.CommunityReport) (data []domain.Row, table [][]string) {
	for _, r := range reports {
		data = append(data, domain.Row{"id": r.ID, "title": r.Title, "content": r.Summary})
		table = append(table, []string{r.ID, r.Title, r.Summary})
	}
	return data, table
}

func textUnitRows(units []domain.TextUnit) (data []domain.Row, table [][]string) {
	for _, u := range units {
		data = append(data, domain.Row{"id": u.ID, "text": u.Text})
		table = append(table, []string{u.ID, u.Text})
	}
	return data, table
}

func claimRows(claims []domain.Covariate) (data []domain.Row, table [][]string) {
	for _, c := range claims {
		data = append(data, domain.Row{"id": c.ID, "subject": c.SubjectID, "description": c.Description})
		table = append(table, []string{c.ID, c.SubjectID, c.Description})
	}
	return data, table
}

// estimateTokens approximates a prompt's token count at four bytes per
// token. Streams never see the model's usage report, so the streamed
// context event carries this estimate instead.
func estimateTokens(s string) int { return (len(s) + 3) / 4 }

// fillPrompt substitutes the context and response-type placeholders of a
// system prompt.
func fillPrompt(prompt, contextText, responseType string) string {
	s := strings.ReplaceAll(prompt, "{context_data}", contextText)
	return strings.ReplaceAll(s, "{response_type}", responseType)
}

// chatMessages builds the message sequence: system prompt, prior turns in
// source order, then the current query.
func chatMessages(system string, history []domain.Turn, query string) []domain.Turn {
	msgs := make([]domain.Turn, 0, len(history)+2)
	msgs = append(msgs, domain.Turn{Role: "system", Content: system})
	msgs = append(msgs, history...)
	msgs = append(msgs, domain.Turn{Role: "user", Content: query})
	return msgs
}

func limit[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
