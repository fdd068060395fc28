package sanitize

import (
	"strings"
	"testing"
)

func TestTextStripsMarkup(t *testing.T) {
	tests := map[string]string{
		"Plain title":                          "Plain title",
		"<b>Bold</b> title":                    "Bold title",
		"Name<script>alert('x')</script>":      "Name",
		"a < b & c":                            "a < b & c",
		`<img src=x onerror="alert(1)">Avatar`: "Avatar",
	}
	for input, want := range tests {
		if got := Text(input); got != want {
			t.Fatalf("Text(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDescriptionKeepsInlineFormatting(t *testing.T) {
	input := `Read the <strong>terms</strong> <a href="https://example.com" onclick="x()">here</a><script>alert(1)</script>`
	got := New().Description(input)
	if !strings.Contains(got, "<strong>terms</strong>") {
		t.Fatalf("expected strong tag to remain, got %q", got)
	}
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Fatalf("expected link to remain, got %q", got)
	}
	if strings.Contains(got, "onclick") || strings.Contains(got, "script") {
		t.Fatalf("expected unsafe markup to be removed, got %q", got)
	}
}
