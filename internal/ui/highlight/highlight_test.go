package highlight

import (
	"strings"
	"testing"
)

func TestCodeDisabledPassesThrough(t *testing.T) {
	h := New(false)
	code := "func main() {}"
	if got := h.Code(code, "go"); got != code {
		t.Errorf("disabled highlighter must not touch input, got %q", got)
	}
}

func TestCodeAddsColorSequences(t *testing.T) {
	h := New(true)
	got := h.Code("func main() {}", "go")
	if !strings.Contains(got, "\x1b[") {
		t.Error("expected ANSI sequences in highlighted output")
	}
}

func TestCodeUnknownLanguageFallsBack(t *testing.T) {
	h := New(true)
	got := h.Code("plain words", "no-such-language")
	if !strings.Contains(got, "plain words") {
		t.Errorf("content must survive fallback lexing, got %q", got)
	}
}

func TestMarkdownHighlightsFences(t *testing.T) {
	h := New(true)
	in := "before\n```go\nfunc main() {}\n```\nafter"
	got := h.Markdown(in)
	if strings.Contains(got, "```") {
		t.Error("fence markers should be replaced")
	}
	if !strings.Contains(got, "before") || !strings.Contains(got, "after") {
		t.Error("surrounding text must be preserved")
	}
}

func TestMarkdownDisabled(t *testing.T) {
	h := New(false)
	in := "```go\nfunc main() {}\n```"
	if got := h.Markdown(in); got != in {
		t.Errorf("disabled highlighter must not touch markdown, got %q", got)
	}
}
