package output

import (
	"encoding/json"
	"io"

	"github.com/dgallion1/richdoc/internal/render"
)

// JSONWriter emits the block descriptors and summary for clients that do
// their own markup.
type JSONWriter struct{}

func (jw *JSONWriter) Write(w io.Writer, doc render.Document) error {
	if doc.Blocks == nil {
		doc.Blocks = []render.Block{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (jw *JSONWriter) ContentType() string { return "application/json" }
func (jw *JSONWriter) Extension() string   { return ".json" }
