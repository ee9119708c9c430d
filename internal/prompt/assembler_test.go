package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cadre-sh/cadre/internal/persona"
)

func testPersona() *persona.Persona {
	return &persona.Persona{
		ID:          "reviewer",
		Title:       "Code Reviewer",
		Role:        "code review and standards",
		Personality: []string{"direct", "thorough"},
		Style:       "concise",
		Body:        "Focus on correctness first.",
		Expertise: persona.Expertise{
			Primary:   []string{"code review"},
			Secondary: []string{"testing"},
		},
		WhenToUse: []string{"pull request feedback"},
	}
}

func TestBootstrapWins(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nid: reviewer\n---\nBootstrap instructions for the reviewer.\n"
	if err := os.WriteFile(filepath.Join(dir, "Reviewer.md"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	a := NewAssembler(dir)
	got := a.BuildSystemPrompt(testPersona())
	if got != "Bootstrap instructions for the reviewer." {
		t.Errorf("expected bootstrap body verbatim, got %q", got)
	}
}

func TestBootstrapCaseInsensitiveMatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "REVIEWER.md"), []byte("caps doc"), 0644); err != nil {
		t.Fatal(err)
	}

	a := NewAssembler(dir)
	if got := a.BuildSystemPrompt(testPersona()); got != "caps doc" {
		t.Errorf("expected case-insensitive filename match, got %q", got)
	}
}

func TestFallbackSynthesis(t *testing.T) {
	a := NewAssembler(filepath.Join(t.TempDir(), "missing"))
	got := a.BuildSystemPrompt(testPersona())

	for _, want := range []string{
		"Code Reviewer",
		"code review and standards",
		"Focus on correctness first.",
		"direct",
		"Communication style: concise",
		"Primary expertise: code review",
		"Secondary expertise: testing",
		"pull request feedback",
		"documentation lookup",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("synthesized prompt missing %q:\n%s", want, got)
		}
	}
}

func TestCacheIsWriteOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviewer.md")
	if err := os.WriteFile(path, []byte("first version"), 0644); err != nil {
		t.Fatal(err)
	}

	a := NewAssembler(dir)
	p := testPersona()

	first := a.BuildSystemPrompt(p)
	if first != "first version" {
		t.Fatalf("expected first version, got %q", first)
	}

	if err := os.WriteFile(path, []byte("second version"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := a.BuildSystemPrompt(p); got != "first version" {
		t.Errorf("cache should serve the first build, got %q", got)
	}

	a.Invalidate()
	if got := a.BuildSystemPrompt(p); got != "second version" {
		t.Errorf("invalidate should allow re-read, got %q", got)
	}
}

func TestSynthesizeMinimalPersona(t *testing.T) {
	got := Synthesize(&persona.Persona{ID: "sre"})
	if !strings.Contains(got, "You are sre") {
		t.Errorf("expected id used when title missing, got %q", got)
	}
	if !strings.Contains(got, "external tools") {
		t.Errorf("expected tool categories block, got %q", got)
	}
}
