package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLParser reads pre-approved HTML fragments (legacy CMS fields that were
// stored as markup) into the node model, so they render through the same
// escaped path as everything else.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader) (doctree.Sequence, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	seq := doctree.Sequence{}
	for _, n := range nodes {
		seq = append(seq, htmlNodes(n, 1, false)...)
	}
	return seq, nil
}

// htmlNodes converts one DOM node. Containers and inline formatting are
// flattened into their children, so one DOM node can yield several nodes.
func htmlNodes(n *html.Node, depth int, inline bool) []doctree.Node {
	if depth > doctree.MaxDepth {
		return []doctree.Node{doctree.Truncated(map[string]any{"tag": n.Data})}
	}

	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" && !inline {
			return nil
		}
		return []doctree.Node{doctree.Text(collapseSpace(n.Data))}
	case html.ElementNode:
	default:
		return nil
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return nil
	case atom.P:
		return []doctree.Node{doctree.Paragraph(htmlChildren(n, depth, true)...)}
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		return []doctree.Node{doctree.Heading(level, htmlChildren(n, depth, true)...)}
	case atom.Ul, atom.Ol:
		var items []doctree.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			for _, it := range htmlNodes(c, depth+1, false) {
				if it.Kind != doctree.KindListItem {
					it = doctree.ListItem(it)
				}
				items = append(items, it)
			}
		}
		return []doctree.Node{doctree.List(n.DataAtom == atom.Ol, items...)}
	case atom.Li:
		return []doctree.Node{doctree.ListItem(htmlChildren(n, depth, true)...)}
	case atom.Br:
		return []doctree.Node{doctree.LineBreak()}
	case atom.B, atom.Strong, atom.I, atom.Em, atom.U, atom.S, atom.Span, atom.A,
		atom.Code, atom.Small, atom.Sub, atom.Sup, atom.Mark, atom.Abbr:
		return htmlChildren(n, depth, true)
	case atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer:
		return htmlChildren(n, depth, inline)
	}

	return []doctree.Node{doctree.Unknown(map[string]any{"tag": n.Data}, htmlChildren(n, depth, inline)...)}
}

func htmlChildren(n *html.Node, depth int, inline bool) []doctree.Node {
	var out []doctree.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, htmlNodes(c, depth+1, inline)...)
	}
	return out
}

// collapseSpace folds runs of whitespace the way a browser would.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' || r == '\f' {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
