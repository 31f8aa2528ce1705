package render

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TrustedHTML is markup a CMS author entered in a field that is configured
// to hold HTML. Converting a string to TrustedHTML is the caller's explicit
// statement that the content is pre-approved; nothing in this package does
// that conversion implicitly.
type TrustedHTML string

// The UGC policy still strips scripts and event handlers from trusted
// markup. bluemonday policies are safe for concurrent use once built.
var trustedPolicy = bluemonday.UGCPolicy()

// StructuredTrusted returns trusted markup as a single markup block.
func StructuredTrusted(markup TrustedHTML) []Block {
	clean := strings.TrimSpace(trustedPolicy.Sanitize(string(markup)))
	if clean == "" {
		return []Block{}
	}
	return []Block{{Kind: BlockMarkup, HTML: clean}}
}

// SummaryTrusted returns trusted markup unchanged apart from surrounding
// whitespace.
func SummaryTrusted(markup TrustedHTML) string {
	return strings.TrimSpace(string(markup))
}

// BuildTrusted is Build for the trusted path.
func BuildTrusted(markup TrustedHTML) Document {
	return Document{
		Blocks:  StructuredTrusted(markup),
		Summary: SummaryTrusted(markup),
		Trusted: true,
	}
}

// TrustedFromField pulls markup out of a field value stored either as a
// string or as {"html": "..."}. The second result is false when the value
// holds neither.
func TrustedFromField(v any) (TrustedHTML, bool) {
	switch f := v.(type) {
	case string:
		return TrustedHTML(f), true
	case TrustedHTML:
		return f, true
	case map[string]any:
		if s, ok := f["html"].(string); ok {
			return TrustedHTML(s), true
		}
	}
	return "", false
}
