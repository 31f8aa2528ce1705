package output

import (
	"bytes"
	"io"

	"github.com/dgallion1/richdoc/internal/doctree"
	"github.com/dgallion1/richdoc/internal/render"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DiagnosticClass marks elements holding diagnostic dumps.
const DiagnosticClass = "richdoc-diagnostic"

// HTMLWriter emits an HTML fragment, one element per block.
type HTMLWriter struct{}

func (hw *HTMLWriter) Write(w io.Writer, doc render.Document) error {
	for i, n := range HTMLNodes(doc.Blocks) {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

func (hw *HTMLWriter) ContentType() string { return "text/html; charset=utf-8" }
func (hw *HTMLWriter) Extension() string   { return ".html" }

// HTMLString renders blocks to an HTML fragment string.
func HTMLString(blocks []render.Block) (string, error) {
	var buf bytes.Buffer
	if err := (&HTMLWriter{}).Write(&buf, render.Document{Blocks: blocks}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HTMLNodes maps block descriptors to DOM nodes. Inline HTML in the
// descriptors is already escaped or sanitized, so it enters the tree as raw
// nodes and is never re-parsed.
func HTMLNodes(blocks []render.Block) []*html.Node {
	nodes := make([]*html.Node, 0, len(blocks))
	for _, b := range blocks {
		if n := blockNode(b); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4}

func blockNode(b render.Block) *html.Node {
	switch b.Kind {
	case render.BlockParagraph:
		p := element(atom.P)
		appendInline(p, b.Inline)
		return p
	case render.BlockHeading:
		h := element(headingAtoms[doctree.ClampLevel(b.Level)-1])
		appendInline(h, b.Inline)
		return h
	case render.BlockList:
		tag := atom.Ul
		if b.Ordered {
			tag = atom.Ol
		}
		list := element(tag)
		for _, it := range b.Items {
			li := element(atom.Li)
			appendInline(li, it.Inline)
			for _, n := range HTMLNodes(it.Blocks) {
				li.AppendChild(n)
			}
			list.AppendChild(li)
		}
		return list
	case render.BlockMarkup:
		return &html.Node{Type: html.RawNode, Data: b.HTML}
	case render.BlockDiagnostic:
		pre := element(atom.Pre, html.Attribute{Key: "class", Val: DiagnosticClass})
		pre.AppendChild(&html.Node{Type: html.RawNode, Data: b.HTML})
		return pre
	}
	return nil
}

func appendInline(parent *html.Node, in []render.Inline) {
	for _, i := range in {
		switch i.Kind {
		case render.InlineText:
			parent.AppendChild(&html.Node{Type: html.RawNode, Data: i.HTML})
		case render.InlineBreak:
			parent.AppendChild(element(atom.Br))
		case render.InlineDiagnostic:
			code := element(atom.Code, html.Attribute{Key: "class", Val: DiagnosticClass})
			code.AppendChild(&html.Node{Type: html.RawNode, Data: i.HTML})
			parent.AppendChild(code)
		}
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}
