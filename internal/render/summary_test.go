package render

import (
	"strings"
	"testing"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"  padded  ", 0, "padded"},
		{"Hello wonderful world", 10, "Hello…"},
		{"Hello, world and more", 13, "Hello, world…"},
		{"Supercalifragilistic", 5, "Super…"},
		{"Größenwahn über alles", 11, "Größenwahn…"},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.in, tt.max); got != tt.want {
			t.Errorf("Excerpt(%q, %d): expected %q, got %q", tt.in, tt.max, tt.want, got)
		}
	}
}

func TestLabel(t *testing.T) {
	body := []any{map[string]any{"type": "paragraph", "children": []any{map[string]any{"text": "How do I apply?"}}}}

	if got := Label("  Bewerbung  ", body, 0); got != "Bewerbung" {
		t.Errorf("expected heading, got %q", got)
	}
	if got := Label("", body, 0); got != "How do I apply?" {
		t.Errorf("expected body summary, got %q", got)
	}
	if got := Label("", nil, 2); got != "Question 3" {
		t.Errorf("expected fallback label, got %q", got)
	}
	if got := Label("", "<b>html</b>", 0); got != "Question 1" {
		t.Errorf("expected raw strings to stay out of labels, got %q", got)
	}
}

func TestTrustedFromField(t *testing.T) {
	tests := []struct {
		in   any
		want TrustedHTML
		ok   bool
	}{
		{"<p>x</p>", "<p>x</p>", true},
		{map[string]any{"html": "<em>y</em>"}, "<em>y</em>", true},
		{map[string]any{"root": map[string]any{}}, "", false},
		{42, "", false},
		{nil, "", false},
	}
	for _, tt := range tests {
		got, ok := TrustedFromField(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%#v: expected (%q, %v), got (%q, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}

func TestStructuredTrusted_Sanitizes(t *testing.T) {
	blocks := StructuredTrusted(`<p onclick="steal()">Hi <a href="javascript:x()">there</a></p><script>bad()</script>`)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	got := blocks[0].HTML
	for _, bad := range []string{"onclick", "<script", "javascript:"} {
		if strings.Contains(got, bad) {
			t.Errorf("expected %q to be stripped, got %q", bad, got)
		}
	}
	if !strings.Contains(got, "<p>Hi") {
		t.Errorf("expected allowed markup to survive, got %q", got)
	}

	if empty := StructuredTrusted("   "); len(empty) != 0 {
		t.Errorf("expected no blocks for blank markup, got %#v", empty)
	}
}

func TestBuildTrusted(t *testing.T) {
	doc := BuildTrusted(" <b>raw</b> ")
	if !doc.Trusted || doc.Summary != "<b>raw</b>" {
		t.Errorf("expected trusted document with verbatim summary, got %+v", doc)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicySilent, false},
		{"Silent", PolicySilent, false},
		{"best-effort", PolicyBestEffort, false},
		{"best_effort", PolicyBestEffort, false},
		{" diagnostic ", PolicyDiagnostic, false},
		{"loud", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: unexpected error state: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNewContext_InvalidPolicyIsSilent(t *testing.T) {
	if p := NewContext("loud").Policy(); p != PolicySilent {
		t.Errorf("expected silent, got %q", p)
	}
	var zero Context
	if p := zero.Policy(); p != PolicySilent {
		t.Errorf("expected zero context to be silent, got %q", p)
	}
}
