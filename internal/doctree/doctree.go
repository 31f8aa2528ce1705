package doctree

// MaxDepth bounds every recursive walk over a document. Input comes from
// content authors and is never trusted to be shallow or acyclic.
const MaxDepth = 64

// Kind discriminates the Node variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindRoot
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindLineBreak
	KindText
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindRoot:      "root",
	KindParagraph: "paragraph",
	KindHeading:   "heading",
	KindList:      "list",
	KindListItem:  "listitem",
	KindLineBreak: "linebreak",
	KindText:      "text",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Node is one element of a normalized document tree. Which fields are
// meaningful depends on Kind:
//
//	Heading:  Level (1-4), Children
//	List:     Ordered, Children (each a ListItem)
//	Text:     Value
//	Unknown:  Raw, Truncated, Children (if any were discoverable)
//
// Nodes are values; nothing in this module mutates a Node after it is built.
type Node struct {
	Kind      Kind
	Level     int
	Ordered   bool
	Value     string
	Raw       any
	Truncated bool // Unknown produced by the depth bound
	Children  []Node
}

// Sequence is the canonical, ordered list of top-level nodes.
type Sequence []Node

// Root wraps the sequence in a Root node.
func (s Sequence) Root() Node {
	return Node{Kind: KindRoot, Children: []Node(s)}
}

func Root(children ...Node) Node {
	return Node{Kind: KindRoot, Children: children}
}

func Paragraph(children ...Node) Node {
	return Node{Kind: KindParagraph, Children: children}
}

// Heading builds a heading node with its level clamped to [1,4].
func Heading(level int, children ...Node) Node {
	return Node{Kind: KindHeading, Level: ClampLevel(level), Children: children}
}

func List(ordered bool, items ...Node) Node {
	return Node{Kind: KindList, Ordered: ordered, Children: items}
}

func ListItem(children ...Node) Node {
	return Node{Kind: KindListItem, Children: children}
}

func LineBreak() Node {
	return Node{Kind: KindLineBreak}
}

func Text(value string) Node {
	return Node{Kind: KindText, Value: value}
}

// Unknown captures a value that did not match any known shape.
func Unknown(raw any, children ...Node) Node {
	return Node{Kind: KindUnknown, Raw: raw, Children: children}
}

// Truncated marks a subtree cut off by the depth bound or by a cycle.
func Truncated(raw any) Node {
	return Node{Kind: KindUnknown, Raw: raw, Truncated: true}
}

// IsLeaf reports whether the kind can never carry children.
func (n Node) IsLeaf() bool {
	return n.Kind == KindText || n.Kind == KindLineBreak
}

// DefaultHeadingLevel is used when a heading carries no usable level.
const DefaultHeadingLevel = 2

// ClampLevel pins a heading level to the supported range [1,4].
func ClampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 4:
		return 4
	}
	return level
}
