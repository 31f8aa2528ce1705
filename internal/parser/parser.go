package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
)

// Parser converts a source document into the canonical node sequence.
type Parser interface {
	Parse(r io.Reader) (doctree.Sequence, error)
}

// SupportedFormats lists the source formats this service can read.
var SupportedFormats = map[string]bool{
	"json":     true,
	"lexical":  true,
	"markdown": true,
	"md":       true,
	"html":     true,
	"htm":      true,
	"text":     true,
	"txt":      true,
	"docx":     true,
	"pdf":      true,
	"csv":      true,
}

// Options tunes the parsers that need it.
type Options struct {
	PDFFallbackPdftotext bool
}

// ForFormat returns the parser for a named source format with default
// options.
func ForFormat(format string) (Parser, error) {
	return Options{}.ForFormat(format)
}

// ForFormat returns the parser for a named source format.
func (o Options) ForFormat(format string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json", "lexical":
		return &JSONParser{}, nil
	case "markdown", "md":
		return &MarkdownParser{}, nil
	case "html", "htm":
		return &HTMLParser{}, nil
	case "text", "txt":
		return &TextParser{}, nil
	case "docx":
		return &DOCXParser{}, nil
	case "pdf":
		return &PDFParser{FallbackPdftotext: o.PDFFallbackPdftotext}, nil
	case "csv":
		return &CSVParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported source format: %s", format)
	}
}

// ForFile picks a parser from a filename extension.
func (o Options) ForFile(filename string) (Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !SupportedFormats[ext] {
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
	return o.ForFormat(ext)
}

// ForFile picks a parser from a filename extension with default options.
func ForFile(filename string) (Parser, error) {
	return Options{}.ForFile(filename)
}

// IsSupportedFormat checks if a source format name is supported.
func IsSupportedFormat(format string) bool {
	return SupportedFormats[strings.ToLower(format)]
}
