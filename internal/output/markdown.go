package output

import (
	"fmt"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/dgallion1/richdoc/internal/render"
)

// MarkdownWriter converts the HTML rendering to Markdown, for editors that
// migrate fields into Markdown-backed collections.
type MarkdownWriter struct{}

func (mw *MarkdownWriter) Write(w io.Writer, doc render.Document) error {
	fragment, err := HTMLString(doc.Blocks)
	if err != nil {
		return err
	}
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return fmt.Errorf("convert to markdown: %w", err)
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return nil
	}
	_, err = io.WriteString(w, md+"\n")
	return err
}

func (mw *MarkdownWriter) ContentType() string { return "text/markdown; charset=utf-8" }
func (mw *MarkdownWriter) Extension() string   { return ".md" }
