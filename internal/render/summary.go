package render

import (
	"strconv"
	"strings"
	"unicode"
)

// Excerpt shortens s to at most maxRunes runes plus an ellipsis, cutting at
// a word boundary where one exists. maxRunes <= 0 means no limit.
func Excerpt(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return s
	}

	cut := maxRunes
	for i := maxRunes; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimRightFunc(string(runes[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}

// Label produces an accessible label for an expandable item such as an FAQ
// entry: the heading if set, else the summary of the body, else
// "Question N" (index is zero-based).
func Label(heading string, body any, index int) string {
	if h := strings.TrimSpace(heading); h != "" {
		return h
	}
	if s := Summary(body, NewContext(PolicySilent)); s != "" {
		return s
	}
	return "Question " + strconv.Itoa(index+1)
}
