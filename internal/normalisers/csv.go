package normalisers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVNormaliser flattens tabular rows into sentence-like lines. Each cell is
// rendered as 【column】value so the indexing engine keeps the column context
// attached to the value.
type CSVNormaliser struct{}

func (n *CSVNormaliser) SupportedExtensions() []string { return []string{".csv"} }
func (n *CSVNormaliser) Priority() int                 { return 0 }

func (n *CSVNormaliser) Normalise(name string, content []byte) (string, []byte, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return "", nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if len(rows) == 0 {
		return name + ".txt", nil, nil
	}

	header := rows[0]
	var b strings.Builder
	for _, row := range rows[1:] {
		var parts []string
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			col := ""
			if i < len(header) {
				col = strings.TrimSpace(header[i])
			}
			parts = append(parts, fmt.Sprintf("【%s】%s", col, cell))
		}
		if len(parts) == 0 {
			continue
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}
	return name + ".txt", []byte(b.String()), nil
}
