package llm

import (
	"testing"
)

func TestBuildInputSchemaRequiredStringSlice(t *testing.T) {
	// The built-in tool catalog declares required fields as []string.
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query":    map[string]any{"type": "string"},
			"language": map[string]any{"type": "string"},
		},
		"required": []string{"query"},
	}

	result := buildInputSchema(schema)

	if len(result.Required) != 1 || result.Required[0] != "query" {
		t.Errorf("required = %v, want [query]", result.Required)
	}
	props, ok := result.Properties.(map[string]any)
	if !ok {
		t.Fatalf("properties not carried through: %T", result.Properties)
	}
	if _, ok := props["query"]; !ok {
		t.Error("query property missing")
	}
}

func TestBuildInputSchemaRequiredAnySlice(t *testing.T) {
	// Schemas decoded from JSON carry required as []any.
	schema := map[string]any{
		"type":     "object",
		"required": []any{"code", "focus", 42},
	}

	result := buildInputSchema(schema)

	if len(result.Required) != 2 || result.Required[0] != "code" || result.Required[1] != "focus" {
		t.Errorf("required = %v, want [code focus]", result.Required)
	}
}

func TestBuildInputSchemaNoRequired(t *testing.T) {
	result := buildInputSchema(map[string]any{"type": "object"})
	if len(result.Required) != 0 {
		t.Errorf("required = %v, want empty", result.Required)
	}
	if result.Type != "object" {
		t.Errorf("type = %q, want object", result.Type)
	}
}
