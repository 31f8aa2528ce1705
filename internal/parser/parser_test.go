package parser

import "testing"

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"", "*parser.JSONParser"},
		{"json", "*parser.JSONParser"},
		{"Lexical", "*parser.JSONParser"},
		{"md", "*parser.MarkdownParser"},
		{"markdown", "*parser.MarkdownParser"},
		{" html ", "*parser.HTMLParser"},
		{"txt", "*parser.TextParser"},
		{"docx", "*parser.DOCXParser"},
		{"csv", "*parser.CSVParser"},
	}
	for _, tt := range tests {
		p, err := ForFormat(tt.format)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.format, err)
			continue
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.format, tt.want, got)
		}
	}

	if _, err := ForFormat("xlsx"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestForFile(t *testing.T) {
	if p, err := ForFile("notes/README.MD"); err != nil || typeName(p) != "*parser.MarkdownParser" {
		t.Errorf("expected markdown parser, got %v (err %v)", p, err)
	}
	if p, err := ForFile("body.json"); err != nil || typeName(p) != "*parser.JSONParser" {
		t.Errorf("expected json parser, got %v (err %v)", p, err)
	}
	if _, err := ForFile("report.xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := ForFile("noext"); err == nil {
		t.Error("expected error for missing extension")
	}
}

func TestOptions_PDFFallback(t *testing.T) {
	p, err := Options{PDFFallbackPdftotext: true}.ForFormat("pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pdf, ok := p.(*PDFParser)
	if !ok || !pdf.FallbackPdftotext {
		t.Errorf("expected pdf parser with fallback enabled, got %#v", p)
	}
}

func TestIsSupportedFormat(t *testing.T) {
	if !IsSupportedFormat("HTML") {
		t.Error("expected html to be supported")
	}
	if IsSupportedFormat("xlsx") {
		t.Error("expected xlsx to be unsupported as a source")
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *JSONParser:
		return "*parser.JSONParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *TextParser:
		return "*parser.TextParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *CSVParser:
		return "*parser.CSVParser"
	}
	return "unknown"
}
