package parser

import (
	"bytes"
	"testing"

	"github.com/dgallion1/richdoc/internal/doctree"
	"github.com/fumiama/go-docx"
)

func buildDocx(t *testing.T) []byte {
	t.Helper()
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().Style("Heading1").AddText("Karriere")
	doc.AddParagraph().AddText("Line one\nLine two")
	doc.AddParagraph().Style("ListBullet").AddText("Bullet A")
	doc.AddParagraph().Style("ListBullet").AddText("Bullet B")
	doc.AddParagraph().Style("ListNumber").AddText("Step 1")
	doc.AddParagraph().AddText("   ")
	doc.AddParagraph().Style("Heading 3").AddText("Kontakt")

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write docx fixture: %v", err)
	}
	return buf.Bytes()
}

func TestDOCXParser(t *testing.T) {
	p := &DOCXParser{}
	seq, err := p.Parse(bytes.NewReader(buildDocx(t)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKinds := []doctree.Kind{
		doctree.KindHeading, doctree.KindParagraph, doctree.KindList, doctree.KindList, doctree.KindHeading,
	}
	if len(seq) != len(wantKinds) {
		t.Fatalf("expected %d nodes, got %d: %#v", len(wantKinds), len(seq), seq)
	}
	for i, k := range wantKinds {
		if seq[i].Kind != k {
			t.Errorf("node[%d]: expected %s, got %s", i, k, seq[i].Kind)
		}
	}

	if seq[0].Level != 1 || seq[0].Children[0].Value != "Karriere" {
		t.Errorf("expected h1 Karriere, got %#v", seq[0])
	}
	para := seq[1].Children
	if len(para) != 3 || para[1].Kind != doctree.KindLineBreak {
		t.Errorf("expected text, break, text; got %#v", para)
	}
	if seq[2].Ordered || len(seq[2].Children) != 2 {
		t.Errorf("expected 2-item bullet list, got ordered=%v items=%d", seq[2].Ordered, len(seq[2].Children))
	}
	if !seq[3].Ordered {
		t.Error("expected numbered list")
	}
	if seq[4].Level != 3 {
		t.Errorf("expected spaced style name to map to h3, got %d", seq[4].Level)
	}
}

func TestDOCXParser_InvalidInput(t *testing.T) {
	p := &DOCXParser{}
	if _, err := p.Parse(bytes.NewReader([]byte("not a zip"))); err == nil {
		t.Error("expected error for invalid docx")
	}
}
