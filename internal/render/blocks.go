package render

// BlockKind names a block descriptor variant.
type BlockKind string

const (
	BlockParagraph  BlockKind = "paragraph"
	BlockHeading    BlockKind = "heading"
	BlockList       BlockKind = "list"
	BlockMarkup     BlockKind = "markup"     // sanitized trusted HTML
	BlockDiagnostic BlockKind = "diagnostic" // raw value dump, diagnostic policy only
)

// InlineKind names an inline element variant.
type InlineKind string

const (
	InlineText       InlineKind = "text"
	InlineBreak      InlineKind = "break"
	InlineDiagnostic InlineKind = "diagnostic"
)

// Inline is one run of inline content. HTML is always safe to emit as-is:
// text runs are escaped before they get here.
type Inline struct {
	Kind InlineKind `json:"kind"`
	HTML string     `json:"html,omitempty"`
}

// Item is one list item: its inline content followed by any nested blocks.
type Item struct {
	Inline []Inline `json:"inlineContent"`
	Blocks []Block  `json:"blocks,omitempty"`
}

// Block is the descriptor handed to the presentation layer.
//
//	paragraph:  Inline
//	heading:    Level (1-4), Inline
//	list:       Ordered, Items
//	markup:     HTML (sanitized)
//	diagnostic: HTML (escaped dump)
type Block struct {
	Kind    BlockKind `json:"blockKind"`
	Level   int       `json:"level,omitempty"`
	Ordered bool      `json:"ordered,omitempty"`
	Inline  []Inline  `json:"inlineContent,omitempty"`
	Items   []Item    `json:"items,omitempty"`
	HTML    string    `json:"html,omitempty"`
}

// Stats counts what a render call saw. Callers log or aggregate these; the
// engine itself never logs.
type Stats struct {
	Nodes     int `json:"nodes"`
	Unknown   int `json:"unknown"`
	Truncated int `json:"truncated"`
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Nodes += o.Nodes
	s.Unknown += o.Unknown
	s.Truncated += o.Truncated
}

// Output is what Render produces for a single node. Block-level nodes fill
// Blocks; Text and LineBreak fill Inline.
type Output struct {
	Blocks []Block
	Inline []Inline
	Stats  Stats
}

// Document is one fully rendered field: both targets plus stats.
type Document struct {
	Blocks  []Block `json:"blocks"`
	Summary string  `json:"summary"`
	Stats   Stats   `json:"stats"`
	Trusted bool    `json:"trusted,omitempty"`
}
