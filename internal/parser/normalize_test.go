package parser

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/richdoc/internal/doctree"
)

func decodeAny(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("bad test fixture %q: %v", s, err)
	}
	return v
}

func TestNormalize_EmptyInputs(t *testing.T) {
	inputs := map[string]any{
		"nil":            nil,
		"empty array":    []any{},
		"empty object":   map[string]any{},
		"number":         42.0,
		"bool":           true,
		"root no kids":   map[string]any{"root": map[string]any{}},
		"children mixed": map[string]any{"children": "nope"},
	}
	for name, in := range inputs {
		seq := Normalize(in)
		if seq == nil {
			t.Errorf("%s: expected non-nil sequence", name)
		}
		if len(seq) != 0 {
			t.Errorf("%s: expected empty sequence, got %d nodes", name, len(seq))
		}
	}
}

func TestNormalize_BareStringIsOpaque(t *testing.T) {
	seq := Normalize("<b>raw</b>")
	if len(seq) != 1 {
		t.Fatalf("expected 1 node, got %d", len(seq))
	}
	if seq[0].Kind != doctree.KindUnknown {
		t.Fatalf("expected unknown node, got %s", seq[0].Kind)
	}
	if seq[0].Raw != "<b>raw</b>" {
		t.Errorf("expected raw string to be preserved, got %v", seq[0].Raw)
	}
}

func TestNormalize_ShapeEquivalence(t *testing.T) {
	elems := `[{"type":"paragraph","children":[{"text":"a"}]},{"type":"heading","tag":"h3","children":[{"type":"text","text":"b"}]},"c"]`
	bare := Normalize(decodeAny(t, elems))
	wrapped := Normalize(decodeAny(t, `{"children":`+elems+`}`))
	rooted := Normalize(decodeAny(t, `{"root":{"children":`+elems+`}}`))

	if len(bare) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(bare))
	}
	if !reflect.DeepEqual(bare, wrapped) {
		t.Errorf("bare and {children} shapes differ:\n%#v\n%#v", bare, wrapped)
	}
	if !reflect.DeepEqual(bare, rooted) {
		t.Errorf("bare and {root:{children}} shapes differ:\n%#v\n%#v", bare, rooted)
	}
}

func TestNormalize_RootWinsOverChildren(t *testing.T) {
	in := decodeAny(t, `{"root":{"children":[{"text":"root"}]},"children":[{"text":"plain"}]}`)
	seq := Normalize(in)
	if len(seq) != 1 || seq[0].Value != "root" {
		t.Errorf("expected root.children to win, got %#v", seq)
	}
}

func TestNormalize_ElementMapping(t *testing.T) {
	in := decodeAny(t, `[
		{"type":"Paragraph","children":[{"text":"p"},{"type":"linebreak"},{"text":"q"}]},
		{"type":"heading","level":7,"children":[{"text":"h"}]},
		{"type":"heading","children":[{"text":"d"}]},
		{"type":"list","listType":"number","children":[{"type":"listitem","children":[{"text":"one"}]}]},
		{"type":"LIST","tag":"ol","items":[{"text":"bare"}]},
		{"type":"quote","children":[{"text":"q"}]},
		{"type":"text"},
		{"text":5}
	]`)
	seq := Normalize(in)
	if len(seq) != 8 {
		t.Fatalf("expected 8 nodes, got %d", len(seq))
	}

	p := seq[0]
	if p.Kind != doctree.KindParagraph || len(p.Children) != 3 {
		t.Fatalf("expected paragraph with 3 children, got %s with %d", p.Kind, len(p.Children))
	}
	if p.Children[1].Kind != doctree.KindLineBreak {
		t.Errorf("expected linebreak, got %s", p.Children[1].Kind)
	}

	if seq[1].Kind != doctree.KindHeading || seq[1].Level != 4 {
		t.Errorf("expected heading clamped to 4, got %s level %d", seq[1].Kind, seq[1].Level)
	}
	if seq[2].Level != doctree.DefaultHeadingLevel {
		t.Errorf("expected default heading level %d, got %d", doctree.DefaultHeadingLevel, seq[2].Level)
	}

	if !seq[3].Ordered {
		t.Error("expected listType=number to be ordered")
	}
	if !seq[4].Ordered {
		t.Error("expected tag=ol to be ordered")
	}
	if len(seq[4].Children) != 1 || seq[4].Children[0].Kind != doctree.KindListItem {
		t.Fatalf("expected bare item wrapped in a list item, got %#v", seq[4].Children)
	}
	if seq[4].Children[0].Children[0].Value != "bare" {
		t.Errorf("expected wrapped text %q, got %#v", "bare", seq[4].Children[0])
	}

	q := seq[5]
	if q.Kind != doctree.KindUnknown || len(q.Children) != 1 {
		t.Errorf("expected unknown quote with discoverable children, got %s with %d", q.Kind, len(q.Children))
	}
	if seq[6].Kind != doctree.KindUnknown {
		t.Errorf("expected text node without text to be unknown, got %s", seq[6].Kind)
	}
	if seq[7].Kind != doctree.KindUnknown {
		t.Errorf("expected non-string text to be unknown, got %s", seq[7].Kind)
	}
}

func TestNormalize_ListOrderingDefaults(t *testing.T) {
	tests := []struct {
		json string
		want bool
	}{
		{`{"type":"list"}`, false},
		{`{"type":"list","ordered":true}`, true},
		{`{"type":"list","ordered":false,"listType":"number"}`, false},
		{`{"type":"list","listType":"bullet"}`, false},
		{`{"type":"list","tag":"ul"}`, false},
	}
	for _, tt := range tests {
		seq := Normalize([]any{decodeAny(t, tt.json)})
		if seq[0].Ordered != tt.want {
			t.Errorf("%s: expected ordered=%v, got %v", tt.json, tt.want, seq[0].Ordered)
		}
	}
}

func deepParagraphs(depth int) any {
	var node any = map[string]any{"text": "leaf"}
	for i := 0; i < depth; i++ {
		node = map[string]any{"type": "paragraph", "children": []any{node}}
	}
	return []any{node}
}

func maxDepth(n doctree.Node) int {
	best := 0
	for _, c := range n.Children {
		if d := maxDepth(c); d > best {
			best = d
		}
	}
	return best + 1
}

func TestNormalize_DepthBound(t *testing.T) {
	seq := Normalize(deepParagraphs(500))
	if len(seq) != 1 {
		t.Fatalf("expected 1 node, got %d", len(seq))
	}
	// MaxDepth real levels plus the truncated placeholder.
	if d := maxDepth(seq[0]); d != doctree.MaxDepth+1 {
		t.Errorf("expected depth %d, got %d", doctree.MaxDepth+1, d)
	}

	n := seq[0]
	for len(n.Children) > 0 {
		n = n.Children[0]
	}
	if n.Kind != doctree.KindUnknown || !n.Truncated {
		t.Errorf("expected a truncated unknown at the bottom, got %s truncated=%v", n.Kind, n.Truncated)
	}
}

func TestNormalize_WithinDepthBoundIsUntouched(t *testing.T) {
	seq := Normalize(deepParagraphs(doctree.MaxDepth - 1))
	n := seq[0]
	for len(n.Children) > 0 {
		n = n.Children[0]
	}
	if n.Kind != doctree.KindText || n.Value != "leaf" {
		t.Errorf("expected leaf text to survive, got %s %q", n.Kind, n.Value)
	}
}

func TestNormalize_CyclicInputTerminates(t *testing.T) {
	m := map[string]any{"type": "paragraph"}
	m["children"] = []any{m}

	seq := Normalize(map[string]any{"root": map[string]any{"children": []any{m}}})
	if len(seq) != 1 {
		t.Fatalf("expected 1 node, got %d", len(seq))
	}
	if d := maxDepth(seq[0]); d > doctree.MaxDepth+1 {
		t.Errorf("expected depth <= %d, got %d", doctree.MaxDepth+1, d)
	}
}

func TestNormalize_TypedInputsPassThrough(t *testing.T) {
	seq := doctree.Sequence{doctree.Paragraph(doctree.Text("x"))}
	if got := Normalize(seq); !reflect.DeepEqual(got, seq) {
		t.Errorf("expected typed sequence to pass through, got %#v", got)
	}
	root := doctree.Root(doctree.Text("y"))
	if got := Normalize(root); len(got) != 1 || got[0].Value != "y" {
		t.Errorf("expected root children, got %#v", got)
	}
	mixed := Normalize([]any{doctree.Text("z"), map[string]any{"text": "w"}})
	if len(mixed) != 2 || mixed[0].Value != "z" || mixed[1].Value != "w" {
		t.Errorf("expected typed and raw elements to mix, got %#v", mixed)
	}
}

func TestNormalize_RawMessage(t *testing.T) {
	seq := Normalize(json.RawMessage(`{"root":{"children":[{"type":"paragraph","children":[{"text":"hi"}]}]}}`))
	if len(seq) != 1 || seq[0].Kind != doctree.KindParagraph {
		t.Fatalf("expected one paragraph, got %#v", seq)
	}
	if bad := Normalize(json.RawMessage(`{`)); len(bad) != 0 {
		t.Errorf("expected malformed raw JSON to normalize to empty, got %#v", bad)
	}
}

func TestDecode(t *testing.T) {
	seq, err := Decode(strings.NewReader(`{"root":{"children":[{"type":"heading","level":3,"children":[{"text":"T"}]}]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq) != 1 || seq[0].Level != 3 {
		t.Errorf("expected heading level 3 from json.Number, got %#v", seq)
	}

	empty, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error for empty body: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty sequence, got %d nodes", len(empty))
	}

	if _, err := Decode(strings.NewReader(`{"root":`)); err == nil {
		t.Error("expected error for malformed json")
	}
}

func countNodes(n doctree.Node) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}

func TestNormalize_CyclicFanOutTerminates(t *testing.T) {
	m := map[string]any{"type": "paragraph"}
	m["children"] = []any{m, m, map[string]any{"text": "kept"}}

	done := make(chan doctree.Sequence, 1)
	go func() { done <- Normalize(map[string]any{"root": map[string]any{"children": []any{m, m}}}) }()

	var seq doctree.Sequence
	select {
	case seq = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("expected normalize to finish on a self-referencing map with fan-out")
	}

	if len(seq) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(seq))
	}
	p := seq[0]
	if len(p.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(p.Children))
	}
	for i := 0; i < 2; i++ {
		if !p.Children[i].Truncated {
			t.Errorf("expected self reference %d to be truncated, got %s", i, p.Children[i].Kind)
		}
	}
	if p.Children[2].Value != "kept" {
		t.Errorf("expected sibling text to survive, got %#v", p.Children[2])
	}
	if n := countNodes(p); n != 4 {
		t.Errorf("expected 4 nodes, got %d", n)
	}
}

func TestNormalize_SharedSiblingsAreNotCycles(t *testing.T) {
	shared := map[string]any{"text": "same"}
	seq := Normalize([]any{
		map[string]any{"type": "paragraph", "children": []any{shared, shared}},
	})
	for _, c := range seq[0].Children {
		if c.Kind != doctree.KindText || c.Value != "same" {
			t.Errorf("expected repeated sibling to be text, got %s truncated=%v", c.Kind, c.Truncated)
		}
	}
}

func TestNormalize_HugeHeadingLevelClamps(t *testing.T) {
	tests := []struct {
		level any
		want  int
	}{
		{1e300, 4},
		{-1e300, 1},
		{json.Number("1e300"), 4},
		{3.0, 3},
	}
	for _, tt := range tests {
		seq := Normalize([]any{map[string]any{"type": "heading", "level": tt.level}})
		if seq[0].Level != tt.want {
			t.Errorf("level %v: expected %d, got %d", tt.level, tt.want, seq[0].Level)
		}
	}
}
