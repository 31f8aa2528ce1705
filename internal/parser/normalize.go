package parser

import (
	"encoding/json"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
)

// Normalize turns an arbitrary value purporting to be a rich-text document
// into the canonical top-level node sequence. Accepted shapes, first match
// wins:
//
//  1. nil                          -> empty sequence
//  2. string                       -> one Unknown node carrying the string
//  3. array                        -> the array elements
//  4. {root: {children: [...]}}    -> root.children
//  5. {children: [...]}            -> children
//  6. anything else                -> empty sequence
//
// A bare string is deliberately not interpreted: whether it is escaped text
// or trusted markup is decided by the caller at render time.
//
// Normalize never panics and never returns nil.
func Normalize(input any) doctree.Sequence {
	switch v := input.(type) {
	case nil:
		return doctree.Sequence{}
	case string:
		return doctree.Sequence{doctree.Unknown(v)}
	case doctree.Sequence:
		if v == nil {
			return doctree.Sequence{}
		}
		return v
	case doctree.Node:
		if v.Kind == doctree.KindRoot {
			return doctree.Sequence(append([]doctree.Node{}, v.Children...))
		}
		return doctree.Sequence{v}
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return doctree.Sequence{}
		}
		return Normalize(decoded)
	}

	if elems, ok := asSlice(input); ok {
		return normalizeAll(elems, 1, nil)
	}
	if m, ok := asMap(input); ok {
		if root, ok := asMap(m["root"]); ok {
			if elems, ok := asSlice(root["children"]); ok {
				return normalizeAll(elems, 1, nil)
			}
		}
		if elems, ok := asSlice(m["children"]); ok {
			return normalizeAll(elems, 1, nil)
		}
	}
	return doctree.Sequence{}
}

// ancestors holds the identities of the maps on the path to the current
// element. An element that is its own ancestor is truncated, so the work
// done on cyclic input is bounded by its size rather than by its depth.
type ancestors []uintptr

func normalizeAll(elems []any, depth int, path ancestors) doctree.Sequence {
	out := make(doctree.Sequence, 0, len(elems))
	for _, el := range elems {
		out = append(out, normalizeElement(el, depth, path))
	}
	return out
}

// normalizeElement maps one raw element to a node. depth is the element's
// own depth; the top-level sequence is depth 1.
func normalizeElement(el any, depth int, path ancestors) doctree.Node {
	if depth > doctree.MaxDepth {
		return doctree.Truncated(el)
	}

	switch v := el.(type) {
	case doctree.Node:
		return v
	case string:
		return doctree.Text(v)
	}

	m, ok := asMap(el)
	if !ok {
		return doctree.Unknown(el)
	}
	id := reflect.ValueOf(m).Pointer()
	if slices.Contains(path, id) {
		return doctree.Truncated(el)
	}
	path = append(path[:len(path):len(path)], id)

	text, hasText := m["text"].(string)
	switch strings.ToLower(stringField(m, "type")) {
	case "paragraph":
		return doctree.Paragraph(childrenOf(m, depth, path)...)
	case "heading":
		return doctree.Heading(headingLevel(m), childrenOf(m, depth, path)...)
	case "list":
		return doctree.List(isOrdered(m), listItems(m, depth, path)...)
	case "listitem":
		return doctree.ListItem(childrenOf(m, depth, path)...)
	case "linebreak":
		return doctree.LineBreak()
	case "text":
		if hasText {
			return doctree.Text(text)
		}
	case "":
		if _, typed := m["type"]; !typed && hasText {
			return doctree.Text(text)
		}
	}
	return doctree.Unknown(el, childrenOf(m, depth, path)...)
}

func childrenOf(m map[string]any, depth int, path ancestors) []doctree.Node {
	elems, ok := asSlice(m["children"])
	if !ok || len(elems) == 0 {
		return nil
	}
	return normalizeAll(elems, depth+1, path)
}

// listItems reads "items", falling back to "children". Anything that is not
// a list item gets wrapped in one so the List invariant holds.
func listItems(m map[string]any, depth int, path ancestors) []doctree.Node {
	elems, ok := asSlice(m["items"])
	if !ok {
		elems, ok = asSlice(m["children"])
	}
	if !ok || len(elems) == 0 {
		return nil
	}
	items := normalizeAll(elems, depth+1, path)
	for i, it := range items {
		if it.Kind != doctree.KindListItem {
			items[i] = doctree.ListItem(it)
		}
	}
	return items
}

// headingLevel reads "level", then a "tag" like "h3". Defaults to 2.
func headingLevel(m map[string]any) int {
	if n, ok := intField(m, "level"); ok {
		return doctree.ClampLevel(n)
	}
	tag := strings.ToLower(stringField(m, "tag"))
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '9' {
		return doctree.ClampLevel(int(tag[1] - '0'))
	}
	return doctree.DefaultHeadingLevel
}

func isOrdered(m map[string]any) bool {
	if b, ok := m["ordered"].(bool); ok {
		return b
	}
	if lt := stringField(m, "listType"); lt != "" {
		return strings.EqualFold(lt, "number")
	}
	return strings.EqualFold(stringField(m, "tag"), "ol")
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	}
	return nil, false
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) (int, bool) {
	switch x := m[key].(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return floatToInt(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), true
		}
		if f, err := x.Float64(); err == nil {
			return floatToInt(f)
		}
	case string:
		if i, err := strconv.Atoi(x); err == nil {
			return i, true
		}
	}
	return 0, false
}

// floatToInt converts with saturation; out-of-range floats have no defined
// int conversion.
func floatToInt(f float64) (int, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= math.MaxInt32:
		return math.MaxInt32, true
	case f <= math.MinInt32:
		return math.MinInt32, true
	}
	return int(f), true
}
