package llm

import (
	"testing"

	"github.com/cadre-sh/cadre/internal/errors"
)

func TestSelectModelPrefersFamilyOrder(t *testing.T) {
	models := []ModelInfo{
		{ID: "claude-haiku-4-5-20251015", Family: "claude-haiku"},
		{ID: "claude-sonnet-4-5-20250929", Family: "claude-sonnet"},
		{ID: "claude-opus-4-5-20251101", Family: "claude-opus"},
	}

	m, err := SelectModel(models, []string{"claude-opus", "claude-sonnet", "claude-haiku"})
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if m.Family != "claude-opus" {
		t.Errorf("expected opus family, got %s", m.Family)
	}
}

func TestSelectModelFallsThroughPreferences(t *testing.T) {
	models := []ModelInfo{
		{ID: "claude-haiku-4-5-20251015", Family: "claude-haiku"},
	}

	m, err := SelectModel(models, []string{"claude-opus", "claude-sonnet", "claude-haiku"})
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if m.Family != "claude-haiku" {
		t.Errorf("expected haiku, got %s", m.Family)
	}
}

func TestSelectModelNoPreferenceMatchUsesFirst(t *testing.T) {
	models := []ModelInfo{
		{ID: "other-model-1", Family: "other"},
		{ID: "other-model-2", Family: "other"},
	}

	m, err := SelectModel(models, []string{"claude-opus"})
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if m.ID != "other-model-1" {
		t.Errorf("expected first model, got %s", m.ID)
	}
}

func TestSelectModelMatchesByIDPrefix(t *testing.T) {
	models := []ModelInfo{
		{ID: "claude-sonnet-4-5-20250929"},
	}

	m, err := SelectModel(models, []string{"claude-sonnet"})
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if m.ID != "claude-sonnet-4-5-20250929" {
		t.Errorf("prefix match failed, got %s", m.ID)
	}
}

func TestSelectModelEmptyList(t *testing.T) {
	_, err := SelectModel(nil, []string{"claude-opus"})
	if err == nil {
		t.Fatal("expected error for empty model list")
	}
	if errors.GetCategory(err) != errors.CategoryLLM {
		t.Errorf("expected llm category, got %s", errors.GetCategory(err))
	}
}
