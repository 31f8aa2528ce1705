// Package output turns rendered documents into files and response bodies.
package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dgallion1/richdoc/internal/parser"
	"github.com/dgallion1/richdoc/internal/render"
	"golang.org/x/net/html"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

// Writer serializes a rendered document in one output format.
type Writer interface {
	Write(w io.Writer, doc render.Document) error
	ContentType() string
	Extension() string
}

var writers = map[string]func() Writer{
	"html":     func() Writer { return &HTMLWriter{} },
	"json":     func() Writer { return &JSONWriter{} },
	"text":     func() Writer { return &TextWriter{} },
	"txt":      func() Writer { return &TextWriter{} },
	"markdown": func() Writer { return &MarkdownWriter{} },
	"md":       func() Writer { return &MarkdownWriter{} },
	"docx":     func() Writer { return &DOCXWriter{} },
	"pdf":      func() Writer { return &PDFWriter{} },
}

// ForFormat returns the writer for a format name. Empty means html.
func ForFormat(format string) (Writer, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if name == "" {
		name = "html"
	}
	newWriter, ok := writers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return newWriter(), nil
}

// Formats lists the accepted format names.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// inlinePlain flattens inline content back to plain text for targets that
// do their own escaping (docx, pdf).
func inlinePlain(in []render.Inline) string {
	var b strings.Builder
	for _, i := range in {
		switch i.Kind {
		case render.InlineBreak:
			b.WriteByte('\n')
		default:
			b.WriteString(html.UnescapeString(i.HTML))
		}
	}
	return b.String()
}

// expandMarkup replaces sanitized markup blocks with their structure, for
// targets that cannot embed HTML. Unknown elements inside the markup are
// dropped.
func expandMarkup(blocks []render.Block) []render.Block {
	out := make([]render.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind != render.BlockMarkup {
			out = append(out, b)
			continue
		}
		seq, err := (&parser.HTMLParser{}).Parse(strings.NewReader(b.HTML))
		if err != nil {
			continue
		}
		out = append(out, render.BuildSequence(seq, render.NewContext(render.PolicySilent)).Blocks...)
	}
	return out
}
