package render

import (
	"strings"
	"testing"

	"github.com/dgallion1/richdoc/internal/doctree"
)

func TestCollectText(t *testing.T) {
	tests := []struct {
		name  string
		nodes []doctree.Node
		sep   string
		want  string
	}{
		{"empty", nil, " ", ""},
		{"single", []doctree.Node{doctree.Text("a")}, " ", "a"},
		{"nested", []doctree.Node{
			doctree.Heading(1, doctree.Text("Title")),
			doctree.List(false, doctree.ListItem(doctree.Text("x")), doctree.ListItem(doctree.Text("y"))),
		}, " ", "Title x y"},
		{"elides empty runs", []doctree.Node{
			doctree.Text("  "), doctree.Text("a"), doctree.Paragraph(), doctree.Text(""), doctree.Text("b "),
		}, ", ", "a, b"},
		{"linebreak contributes nothing", []doctree.Node{
			doctree.Text("a"), doctree.LineBreak(), doctree.Text("b"),
		}, " ", "a b"},
		{"unknown children are collected", []doctree.Node{
			doctree.Unknown("quote", doctree.Text("inner")),
		}, " ", "inner"},
	}
	for _, tt := range tests {
		if got := CollectText(tt.nodes, tt.sep); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestCollectText_Associative(t *testing.T) {
	seqs := [][]doctree.Node{
		{doctree.Text("a")},
		{doctree.Text(" padded "), doctree.LineBreak()},
		{doctree.Paragraph(doctree.Text("p1"), doctree.Text("p2")), doctree.Text("")},
		{doctree.List(true, doctree.ListItem(doctree.Text("one")))},
		{doctree.LineBreak(), doctree.Heading(2, doctree.Text("h"))},
	}
	for _, sep := range []string{" ", " | "} {
		for i, a := range seqs {
			for j, b := range seqs {
				joined := append(append([]doctree.Node{}, a...), b...)
				left := CollectText(joined, sep)
				right := strings.TrimSpace(CollectText(a, sep) + sep + CollectText(b, sep))
				if left != right {
					t.Errorf("sep %q, A=%d B=%d: expected %q, got %q", sep, i, j, right, left)
				}
			}
		}
	}
}

func TestCollector_UnknownHook(t *testing.T) {
	nodes := []doctree.Node{
		doctree.Text("first"), doctree.LineBreak(), doctree.Text("second"),
		doctree.Unknown(map[string]any{"text": "raw"}),
	}
	c := Collector{
		Separator: " ",
		Unknown:   func(n doctree.Node) string { return "[?]" },
	}
	if got := c.Collect(nodes); got != "first second [?]" {
		t.Errorf("expected %q, got %q", "first second [?]", got)
	}
}

func TestCollectText_DepthBound(t *testing.T) {
	n := doctree.Text("deep")
	for i := 0; i < 200; i++ {
		n = doctree.Paragraph(n)
	}
	if got := CollectText([]doctree.Node{n}, " "); got != "" {
		t.Errorf("expected text below the bound to be dropped, got %q", got)
	}
}
