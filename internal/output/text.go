package output

import (
	"io"

	"github.com/dgallion1/richdoc/internal/render"
)

// TextWriter emits the plain summary.
type TextWriter struct{}

func (tw *TextWriter) Write(w io.Writer, doc render.Document) error {
	if doc.Summary == "" {
		return nil
	}
	_, err := io.WriteString(w, doc.Summary+"\n")
	return err
}

func (tw *TextWriter) ContentType() string { return "text/plain; charset=utf-8" }
func (tw *TextWriter) Extension() string   { return ".txt" }
