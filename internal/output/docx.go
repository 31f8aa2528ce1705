package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
	"github.com/dgallion1/richdoc/internal/render"
	"github.com/fumiama/go-docx"
)

// DOCXWriter exports a document for editors who review copy in Word.
type DOCXWriter struct{}

// Heading run sizes in half-points, by level.
var docxHeadingSizes = [...]string{"36", "30", "26", "24"}

func (dw *DOCXWriter) Write(w io.Writer, doc render.Document) error {
	d := docx.New().WithDefaultTheme().WithA4Page()
	writeDocxBlocks(d, expandMarkup(doc.Blocks), 0)
	if _, err := d.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func (dw *DOCXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}
func (dw *DOCXWriter) Extension() string { return ".docx" }

func writeDocxBlocks(d *docx.Docx, blocks []render.Block, indent int) {
	pad := strings.Repeat("    ", indent)
	for _, b := range blocks {
		switch b.Kind {
		case render.BlockParagraph:
			d.AddParagraph().AddText(pad + inlinePlain(b.Inline))
		case render.BlockHeading:
			level := doctree.ClampLevel(b.Level)
			d.AddParagraph().
				Style("Heading" + strconv.Itoa(level)).
				AddText(inlinePlain(b.Inline)).
				Bold().
				Size(docxHeadingSizes[level-1])
		case render.BlockList:
			style := "ListBullet"
			if b.Ordered {
				style = "ListNumber"
			}
			for i, it := range b.Items {
				marker := "• "
				if b.Ordered {
					marker = strconv.Itoa(i+1) + ". "
				}
				d.AddParagraph().Style(style).AddText(pad + marker + inlinePlain(it.Inline))
				writeDocxBlocks(d, it.Blocks, indent+1)
			}
		case render.BlockDiagnostic:
			d.AddParagraph().
				AddText(inlinePlain([]render.Inline{{Kind: render.InlineText, HTML: b.HTML}})).
				Font("Courier New", "Courier New", "Courier New", "default").
				Size("18")
		}
	}
}
