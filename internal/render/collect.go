package render

import (
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
)

// DefaultSeparator joins text runs in summaries.
const DefaultSeparator = " "

// CollectText concatenates the text of every leaf under children, joined by
// sep. Each run is trimmed and empty runs are dropped, so the result never
// has leading, trailing or doubled separators. Unknown nodes contribute the
// text of their children.
func CollectText(children []doctree.Node, sep string) string {
	return Collector{Separator: sep}.Collect(children)
}

// Collector is the configurable form of CollectText.
type Collector struct {
	Separator string
	// Unknown resolves Unknown nodes. Nil recurses into their children.
	Unknown func(n doctree.Node) string
}

func (c Collector) Collect(children []doctree.Node) string {
	var parts []string
	c.walk(children, 1, &parts)
	return strings.Join(parts, c.Separator)
}

func (c Collector) walk(nodes []doctree.Node, depth int, parts *[]string) {
	for _, n := range nodes {
		if depth > doctree.MaxDepth {
			c.unknown(doctree.Truncated(nil), depth, parts)
			return
		}
		switch n.Kind {
		case doctree.KindText:
			c.push(n.Value, parts)
		case doctree.KindLineBreak:
			// Contributes nothing; adjacent runs are still separated.
		case doctree.KindUnknown:
			c.unknown(n, depth, parts)
		default:
			c.walk(n.Children, depth+1, parts)
		}
	}
}

func (c Collector) unknown(n doctree.Node, depth int, parts *[]string) {
	if c.Unknown != nil {
		c.push(c.Unknown(n), parts)
		return
	}
	c.walk(n.Children, depth+1, parts)
}

func (c Collector) push(s string, parts *[]string) {
	if s = strings.TrimSpace(s); s != "" {
		*parts = append(*parts, s)
	}
}
