package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/richdoc/internal/doctree"
	"golang.org/x/net/html"
)

// maxDumpBytes caps one diagnostic dump.
const maxDumpBytes = 2048

// Render renders a single node. It is total: every node, including
// hand-built trees deeper than doctree.MaxDepth, produces an Output.
func Render(node doctree.Node, ctx Context) Output {
	r := &renderer{policy: ctx.Policy()}
	var out Output
	switch node.Kind {
	case doctree.KindText, doctree.KindLineBreak:
		out.Inline = r.inlines([]doctree.Node{node}, 1)
	default:
		out.Blocks = r.block(node, 1)
	}
	out.Stats = r.stats
	return out
}

type renderer struct {
	policy Policy
	stats  Stats
}

// blocks renders a block-level sequence. Runs of stray inline nodes (text
// directly under the root, for instance) are grouped into a paragraph.
func (r *renderer) blocks(nodes []doctree.Node, depth int) []Block {
	out := []Block{}
	var pending []doctree.Node
	flush := func() {
		if len(pending) > 0 {
			out = append(out, Block{Kind: BlockParagraph, Inline: r.inlines(pending, depth)})
			pending = nil
		}
	}
	for _, n := range nodes {
		if n.IsLeaf() {
			pending = append(pending, n)
			continue
		}
		flush()
		out = append(out, r.block(n, depth)...)
	}
	flush()
	return out
}

func (r *renderer) block(n doctree.Node, depth int) []Block {
	if depth > doctree.MaxDepth {
		return r.unknownBlock(doctree.Truncated(nil))
	}

	switch n.Kind {
	case doctree.KindRoot:
		// The root is a wrapper; its children are the top level.
		r.stats.Nodes++
		return r.blocks(n.Children, depth)
	case doctree.KindParagraph:
		r.stats.Nodes++
		return []Block{{Kind: BlockParagraph, Inline: r.inlines(n.Children, depth+1)}}
	case doctree.KindHeading:
		r.stats.Nodes++
		level := n.Level
		if level == 0 {
			level = doctree.DefaultHeadingLevel
		}
		return []Block{{
			Kind:   BlockHeading,
			Level:  doctree.ClampLevel(level),
			Inline: r.inlines(n.Children, depth+1),
		}}
	case doctree.KindList:
		r.stats.Nodes++
		items := make([]Item, 0, len(n.Children))
		for _, c := range n.Children {
			if c.Kind != doctree.KindListItem {
				c = doctree.ListItem(c)
			}
			items = append(items, r.item(c, depth+1))
		}
		return []Block{{Kind: BlockList, Ordered: n.Ordered, Items: items}}
	case doctree.KindListItem:
		// A list item outside a list renders as its content.
		r.stats.Nodes++
		it := r.itemContent(n.Children, depth+1)
		if len(it.Inline) == 0 {
			return it.Blocks
		}
		out := []Block{{Kind: BlockParagraph, Inline: it.Inline}}
		return append(out, it.Blocks...)
	case doctree.KindText, doctree.KindLineBreak:
		return []Block{{Kind: BlockParagraph, Inline: r.inlines([]doctree.Node{n}, depth)}}
	}
	return r.unknownBlock(n)
}

// item renders one list item: inline content first, then nested blocks.
// Once a block child appears, later inline runs become paragraphs.
func (r *renderer) item(n doctree.Node, depth int) Item {
	if depth > doctree.MaxDepth {
		return Item{Inline: r.unknownInline(doctree.Truncated(nil))}
	}
	r.stats.Nodes++
	return r.itemContent(n.Children, depth+1)
}

func (r *renderer) itemContent(children []doctree.Node, depth int) Item {
	it := Item{Inline: []Inline{}}
	var pending []doctree.Node
	for _, c := range children {
		switch {
		case len(it.Blocks) == 0 && (c.IsLeaf() || c.Kind == doctree.KindUnknown):
			it.Inline = append(it.Inline, r.inlines([]doctree.Node{c}, depth)...)
		case c.IsLeaf():
			pending = append(pending, c)
		default:
			if len(pending) > 0 {
				it.Blocks = append(it.Blocks, Block{Kind: BlockParagraph, Inline: r.inlines(pending, depth)})
				pending = nil
			}
			it.Blocks = append(it.Blocks, r.block(c, depth)...)
		}
	}
	if len(pending) > 0 {
		it.Blocks = append(it.Blocks, Block{Kind: BlockParagraph, Inline: r.inlines(pending, depth)})
	}
	return it
}

// inlines renders inline content. Block nodes in inline position are
// flattened into their own inline content.
func (r *renderer) inlines(nodes []doctree.Node, depth int) []Inline {
	out := []Inline{}
	for _, n := range nodes {
		if depth > doctree.MaxDepth {
			return append(out, r.unknownInline(doctree.Truncated(nil))...)
		}
		switch n.Kind {
		case doctree.KindText:
			r.stats.Nodes++
			out = append(out, Inline{Kind: InlineText, HTML: html.EscapeString(n.Value)})
		case doctree.KindLineBreak:
			r.stats.Nodes++
			out = append(out, Inline{Kind: InlineBreak})
		case doctree.KindUnknown:
			out = append(out, r.unknownInline(n)...)
		default:
			r.stats.Nodes++
			out = append(out, r.inlines(n.Children, depth+1)...)
		}
	}
	return out
}

func (r *renderer) countUnknown(n doctree.Node) {
	r.stats.Nodes++
	r.stats.Unknown++
	if n.Truncated {
		r.stats.Truncated++
	}
}

func (r *renderer) unknownBlock(n doctree.Node) []Block {
	r.countUnknown(n)
	switch r.policy {
	case PolicyBestEffort:
		if s := recoverText(n); s != "" {
			return []Block{{
				Kind:   BlockParagraph,
				Inline: []Inline{{Kind: InlineText, HTML: html.EscapeString(s)}},
			}}
		}
	case PolicyDiagnostic:
		return []Block{{Kind: BlockDiagnostic, HTML: html.EscapeString(dump(n))}}
	}
	return nil
}

func (r *renderer) unknownInline(n doctree.Node) []Inline {
	r.countUnknown(n)
	switch r.policy {
	case PolicyBestEffort:
		if s := recoverText(n); s != "" {
			return []Inline{{Kind: InlineText, HTML: html.EscapeString(s)}}
		}
	case PolicyDiagnostic:
		return []Inline{{Kind: InlineDiagnostic, HTML: html.EscapeString(dump(n))}}
	}
	return nil
}

// resolveUnknown is the summary-side counterpart of unknownBlock.
func resolveUnknown(p Policy) func(doctree.Node) string {
	switch p {
	case PolicyBestEffort:
		return recoverText
	case PolicyDiagnostic:
		return dump
	}
	return func(doctree.Node) string { return "" }
}

// recoverText finds the text an unknown node still carries: its children,
// else a raw string, else a raw "text" field.
func recoverText(n doctree.Node) string {
	if s := CollectText(n.Children, DefaultSeparator); s != "" {
		return s
	}
	switch raw := n.Raw.(type) {
	case string:
		return strings.TrimSpace(raw)
	case map[string]any:
		if s, ok := raw["text"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// dump renders the raw value for developers. Cyclic values are reported by
// encoding/json instead of being walked.
func dump(n doctree.Node) string {
	if n.Truncated {
		return fmt.Sprintf("[truncated: cyclic or nested deeper than %d levels]", doctree.MaxDepth)
	}
	if s, ok := n.Raw.(string); ok {
		return truncateBytes(s, maxDumpBytes)
	}
	b, err := json.MarshalIndent(n.Raw, "", "  ")
	if err != nil {
		return fmt.Sprintf("[unrenderable %T: %v]", n.Raw, err)
	}
	return truncateBytes(string(b), maxDumpBytes)
}

func truncateBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
