package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cadre-sh/cadre/internal/errors"
)

// fakeInvoker records invocations and returns canned content
type fakeInvoker struct {
	calls []struct {
		name  string
		input map[string]any
	}
	content string
	err     error
}

func (f *fakeInvoker) Invoke(ctx context.Context, name string, input map[string]any) (string, error) {
	f.calls = append(f.calls, struct {
		name  string
		input map[string]any
	}{name, input})
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func TestRegisterKnowledgeToolsCatalog(t *testing.T) {
	r := NewRegistry()
	RegisterKnowledgeTools(r, &fakeInvoker{})

	want := []string{"analyze_code", "best_practices", "dependency_info", "lookup_docs", "team_knowledge"}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d tools, got %d: %v", len(want), len(got), got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("names[%d] = %s, want %s", i, got[i], name)
		}
	}
}

func TestDefinitionsKeepRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	RegisterKnowledgeTools(r, &fakeInvoker{})

	defs := r.Definitions()
	if len(defs) == 0 || defs[0].Name != "lookup_docs" {
		t.Fatalf("expected lookup_docs first, got %+v", defs)
	}
	for _, def := range defs {
		if def.Description == "" {
			t.Errorf("tool %s has empty description", def.Name)
		}
		if def.InputSchema["type"] != "object" {
			t.Errorf("tool %s schema is not an object", def.Name)
		}
	}
}

func TestExecuteRoutesToInvoker(t *testing.T) {
	inv := &fakeInvoker{content: "func main() documentation"}
	r := NewRegistry()
	RegisterKnowledgeTools(r, inv)

	out, err := r.Execute(context.Background(), "lookup_docs", map[string]any{"query": "main"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "documentation") {
		t.Errorf("unexpected output: %q", out)
	}
	if len(inv.calls) != 1 || inv.calls[0].name != "lookup_docs" {
		t.Fatalf("invoker not called correctly: %+v", inv.calls)
	}
	if inv.calls[0].input["query"] != "main" {
		t.Errorf("input not forwarded: %+v", inv.calls[0].input)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	r := NewRegistry()
	_, err := r.Execute(context.Background(), "nonexistent", nil)
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if errors.GetCategory(err) != errors.CategoryTool {
		t.Errorf("expected tool category, got %s", errors.GetCategory(err))
	}
}

func TestExecuteValidatesRequiredInput(t *testing.T) {
	inv := &fakeInvoker{}
	r := NewRegistry()
	RegisterKnowledgeTools(r, inv)

	_, err := r.Execute(context.Background(), "lookup_docs", map[string]any{})
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	_, err = r.Execute(context.Background(), "lookup_docs", map[string]any{"query": ""})
	if err == nil {
		t.Fatal("expected error for empty required field")
	}
	if len(inv.calls) != 0 {
		t.Errorf("invoker should not be called on validation failure, got %d calls", len(inv.calls))
	}
}

func TestExecutePropagatesInvokerError(t *testing.T) {
	inv := &fakeInvoker{err: fmt.Errorf("service down")}
	r := NewRegistry()
	RegisterKnowledgeTools(r, inv)

	_, err := r.Execute(context.Background(), "team_knowledge", map[string]any{"query": "deploys"})
	if err == nil {
		t.Fatal("expected propagated error")
	}
}

func TestRegisterReplacesByName(t *testing.T) {
	r := NewRegistry()
	first := &knowledgeTool{name: "lookup_docs", description: "first", schema: map[string]any{}, invoker: &fakeInvoker{}}
	second := &knowledgeTool{name: "lookup_docs", description: "second", schema: map[string]any{}, invoker: &fakeInvoker{}}
	r.Register(first)
	r.Register(second)

	if len(r.List()) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(r.List()))
	}
	tool, _ := r.Get("lookup_docs")
	if tool.Description() != "second" {
		t.Errorf("replacement did not take effect")
	}
}
