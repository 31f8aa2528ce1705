package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
)

// TextParser handles plain text fields. Blank lines separate paragraphs;
// single newlines become line breaks.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader) (doctree.Sequence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	seq := doctree.Sequence{}
	var current []doctree.Node

	flush := func() {
		if len(current) > 0 {
			seq = append(seq, doctree.Paragraph(current...))
			current = nil
		}
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if len(current) > 0 {
			current = append(current, doctree.LineBreak())
		}
		current = append(current, doctree.Text(line))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return seq, nil
}
