package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser reads Word documents that editors paste content from.
// Heading styles become headings, numbered or bulleted paragraphs become
// list items and everything else is a paragraph.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader) (doctree.Sequence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	seq := doctree.Sequence{}
	var list *doctree.Node
	flushList := func() {
		if list != nil {
			seq = append(seq, *list)
			list = nil
		}
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		inline := docxInline(para)
		if len(inline) == 0 {
			continue
		}

		if ordered, isList := docxListKind(para); isList {
			if list == nil || list.Ordered != ordered {
				flushList()
				l := doctree.List(ordered)
				list = &l
			}
			list.Children = append(list.Children, doctree.ListItem(inline...))
			continue
		}
		flushList()

		if level := docxHeadingLevel(para); level > 0 {
			seq = append(seq, doctree.Heading(level, inline...))
		} else {
			seq = append(seq, doctree.Paragraph(inline...))
		}
	}
	flushList()
	return seq, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	style := docxStyle(para)
	switch {
	case strings.EqualFold(style, "Title"):
		return 1
	case strings.HasPrefix(style, "heading"):
		n := strings.TrimSpace(strings.TrimPrefix(style, "heading"))
		if len(n) == 1 && n[0] >= '1' && n[0] <= '9' {
			return int(n[0] - '0')
		}
	}
	return 0
}

// docxListKind reports whether the paragraph is a list item. Numbering
// definitions are not resolved, so only the style name tells ordered lists
// apart.
func docxListKind(para *docx.Paragraph) (ordered, ok bool) {
	style := docxStyle(para)
	if strings.HasPrefix(style, "listnumber") {
		return true, true
	}
	if strings.HasPrefix(style, "listbullet") {
		return false, true
	}
	if para.Properties != nil && para.Properties.NumProperties != nil {
		return false, true
	}
	return false, false
}

// docxStyle returns the lowercased style name with spaces removed, so
// "Heading 2" and "Heading2" compare equal.
func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
}

func docxInline(para *docx.Paragraph) []doctree.Node {
	var out []doctree.Node
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, doctree.Text(buf.String()))
			buf.Reset()
		}
	}
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			switch t := rc.(type) {
			case *docx.Text:
				buf.WriteString(t.Text)
			case *docx.Tab:
				buf.WriteByte(' ')
			case *docx.BarterRabbet:
				flush()
				out = append(out, doctree.LineBreak())
			}
		}
	}
	flush()

	// Drop paragraphs that hold nothing but whitespace and breaks.
	for _, n := range out {
		if n.Kind == doctree.KindText && strings.TrimSpace(n.Value) != "" {
			return out
		}
	}
	return nil
}
