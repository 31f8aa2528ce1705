package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
	"github.com/dgallion1/richdoc/internal/render"
	"github.com/jung-kurt/gofpdf"
)

// PDFWriter prints a document on A4 with the core Helvetica fonts. Text is
// translated to cp1252, which covers the Western European copy the site
// publishes.
type PDFWriter struct {
	Title string
}

var pdfHeadingSizes = [...]float64{18, 15, 13, 12}

func (pw *PDFWriter) Write(w io.Writer, doc render.Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	if pw.Title != "" {
		pdf.SetTitle(pw.Title, true)
	}
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if pw.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(pw.Title), "", "L", false)
		pdf.Ln(4)
	}

	writePDFBlocks(pdf, tr, expandMarkup(doc.Blocks), 0)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (pw *PDFWriter) ContentType() string { return "application/pdf" }
func (pw *PDFWriter) Extension() string   { return ".pdf" }

func writePDFBlocks(pdf *gofpdf.Fpdf, tr func(string) string, blocks []render.Block, indent int) {
	pad := strings.Repeat("    ", indent)
	for _, b := range blocks {
		switch b.Kind {
		case render.BlockParagraph:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(pad+inlinePlain(b.Inline)), "", "L", false)
			pdf.Ln(3)
		case render.BlockHeading:
			size := pdfHeadingSizes[doctree.ClampLevel(b.Level)-1]
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, size*0.6, tr(inlinePlain(b.Inline)), "", "L", false)
			pdf.Ln(2)
		case render.BlockList:
			for i, it := range b.Items {
				marker := "• "
				if b.Ordered {
					marker = strconv.Itoa(i+1) + ". "
				}
				pdf.SetFont("Helvetica", "", 10)
				pdf.MultiCell(0, 5, tr(pad+marker+inlinePlain(it.Inline)), "", "L", false)
				writePDFBlocks(pdf, tr, it.Blocks, indent+1)
			}
			pdf.Ln(3)
		case render.BlockDiagnostic:
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			text := inlinePlain([]render.Inline{{Kind: render.InlineText, HTML: b.HTML}})
			pdf.MultiCell(0, 4.5, tr(text), "", "L", true)
			pdf.Ln(3)
		}
	}
}
