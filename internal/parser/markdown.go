package parser

import (
	"bytes"
	"io"

	"github.com/dgallion1/richdoc/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown-authored fields using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader) (doctree.Sequence, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	seq := doctree.Sequence{}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		seq = append(seq, mdBlock(n, src, 1))
	}
	return seq, nil
}

func mdBlock(n ast.Node, src []byte, depth int) doctree.Node {
	if depth > doctree.MaxDepth {
		return doctree.Truncated(mdRaw(n))
	}

	switch node := n.(type) {
	case *ast.Heading:
		return doctree.Heading(node.Level, mdInline(node, src, depth+1)...)
	case *ast.Paragraph, *ast.TextBlock:
		return doctree.Paragraph(mdInline(node, src, depth+1)...)
	case *ast.List:
		var items []doctree.Node
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			items = append(items, mdListItem(c, src, depth+1))
		}
		return doctree.List(node.IsOrdered(), items...)
	case *ast.ListItem:
		return mdListItem(node, src, depth)
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		return doctree.Unknown(string(mdLines(n, src)))
	}

	// Blockquotes, thematic breaks and extension blocks keep their kind name
	// in the raw value; their content stays reachable as children.
	var children []doctree.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		children = append(children, mdBlock(c, src, depth+1))
	}
	return doctree.Unknown(mdRaw(n), children...)
}

// mdListItem inlines tight-list text blocks so "- One" becomes a list item
// holding text rather than a nested paragraph.
func mdListItem(n ast.Node, src []byte, depth int) doctree.Node {
	if depth > doctree.MaxDepth {
		return doctree.ListItem(doctree.Truncated(mdRaw(n)))
	}
	var children []doctree.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*ast.TextBlock); ok {
			children = append(children, mdInline(c, src, depth+1)...)
			continue
		}
		children = append(children, mdBlock(c, src, depth+1))
	}
	return doctree.ListItem(children...)
}

// mdInline flattens inline formatting (emphasis, links, code spans) down to
// text runs and line breaks.
func mdInline(n ast.Node, src []byte, depth int) []doctree.Node {
	if depth > doctree.MaxDepth {
		return []doctree.Node{doctree.Truncated(mdRaw(n))}
	}

	var out []doctree.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch in := c.(type) {
		case *ast.Text:
			v := string(in.Segment.Value(src))
			switch {
			case in.HardLineBreak():
				out = append(out, doctree.Text(v), doctree.LineBreak())
			case in.SoftLineBreak():
				out = append(out, doctree.Text(v+" "))
			default:
				out = append(out, doctree.Text(v))
			}
		case *ast.String:
			out = append(out, doctree.Text(string(in.Value)))
		case *ast.AutoLink:
			out = append(out, doctree.Text(string(in.Label(src))))
		case *ast.RawHTML:
			var buf bytes.Buffer
			for i := 0; i < in.Segments.Len(); i++ {
				seg := in.Segments.At(i)
				buf.Write(seg.Value(src))
			}
			out = append(out, doctree.Unknown(buf.String()))
		default:
			out = append(out, mdInline(c, src, depth+1)...)
		}
	}
	return out
}

// mdLines returns the raw source lines of a block such as a code block.
func mdLines(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}

func mdRaw(n ast.Node) map[string]any {
	return map[string]any{"kind": n.Kind().String()}
}
