package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
)

// CSVParser reads spreadsheet exports of question/answer content (FAQ
// sheets). The first row is a header. Each data row becomes a level 3
// heading from its first cell followed by a paragraph holding the remaining
// non-empty cells, one per line.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader) (doctree.Sequence, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	seq := doctree.Sequence{}
	if len(records) < 2 {
		return seq, nil
	}

	for _, row := range records[1:] {
		if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		if q := strings.TrimSpace(row[0]); q != "" {
			seq = append(seq, doctree.Heading(3, doctree.Text(q)))
		}

		var inline []doctree.Node
		for _, cell := range row[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if len(inline) > 0 {
				inline = append(inline, doctree.LineBreak())
			}
			inline = append(inline, doctree.Text(cell))
		}
		if len(inline) > 0 {
			seq = append(seq, doctree.Paragraph(inline...))
		}
	}
	return seq, nil
}
