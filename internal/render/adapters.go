package render

import (
	"strings"

	"github.com/dgallion1/richdoc/internal/doctree"
	"github.com/dgallion1/richdoc/internal/parser"
)

// Structured normalizes input and returns its block descriptors. Leaf text
// is always escaped; a bare string is never treated as markup here (use
// StructuredTrusted for that).
func Structured(input any, ctx Context) []Block {
	return Render(parser.Normalize(input).Root(), ctx).Blocks
}

// Summary normalizes input and returns its text as one trimmed line,
// suitable for labels, aria text and previews. Unknown nodes are resolved
// by the context's policy.
func Summary(input any, ctx Context) string {
	return summarize(parser.Normalize(input), ctx)
}

func summarize(seq doctree.Sequence, ctx Context) string {
	c := Collector{
		Separator: DefaultSeparator,
		Unknown:   resolveUnknown(ctx.Policy()),
	}
	return strings.TrimSpace(c.Collect(seq))
}

// Build renders both targets from a single normalization pass.
func Build(input any, ctx Context) Document {
	return BuildSequence(parser.Normalize(input), ctx)
}

// BuildSequence is Build for an already normalized sequence, as produced by
// the source parsers.
func BuildSequence(seq doctree.Sequence, ctx Context) Document {
	out := Render(seq.Root(), ctx)
	return Document{
		Blocks:  out.Blocks,
		Summary: summarize(seq, ctx),
		Stats:   out.Stats,
	}
}
