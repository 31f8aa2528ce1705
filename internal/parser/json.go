package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dgallion1/richdoc/internal/doctree"
)

// JSONParser handles CMS rich-text fields serialized as JSON (Lexical and
// the looser shapes older content was saved in).
type JSONParser struct{}

func (p *JSONParser) Parse(r io.Reader) (doctree.Sequence, error) {
	return Decode(r)
}

// Decode reads one JSON value and normalizes it. Only malformed JSON is an
// error; an empty body is an empty document.
func Decode(r io.Reader) (doctree.Sequence, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return doctree.Sequence{}, nil
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return Normalize(v), nil
}
