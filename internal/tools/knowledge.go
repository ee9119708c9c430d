package tools

import (
	"context"
	"fmt"
)

// Invoker executes a named tool on the knowledge service
type Invoker interface {
	Invoke(ctx context.Context, name string, input map[string]any) (string, error)
}

// knowledgeTool is a model-facing tool backed by the knowledge service. All
// built-in tools share the same shape; the service owns the semantics.
type knowledgeTool struct {
	name        string
	description string
	schema      map[string]any
	invoker     Invoker
}

func (t *knowledgeTool) Name() string               { return t.name }
func (t *knowledgeTool) Description() string        { return t.description }
func (t *knowledgeTool) InputSchema() map[string]any { return t.schema }

func (t *knowledgeTool) Execute(ctx context.Context, input map[string]any) (string, error) {
	if err := validateRequired(t.schema, input); err != nil {
		return "", err
	}
	return t.invoker.Invoke(ctx, t.name, input)
}

// validateRequired rejects inputs missing a required string field before the
// request leaves the process
func validateRequired(schema map[string]any, input map[string]any) error {
	required, ok := schema["required"].([]string)
	if !ok {
		return nil
	}
	for _, field := range required {
		v, present := input[field]
		if !present {
			return fmt.Errorf("%s is required", field)
		}
		if s, isString := v.(string); isString && s == "" {
			return fmt.Errorf("%s is required", field)
		}
	}
	return nil
}

func stringProp(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

// RegisterKnowledgeTools adds the built-in knowledge-backed tool catalog to a
// registry
func RegisterKnowledgeTools(r *Registry, invoker Invoker) {
	r.Register(&knowledgeTool{
		name:        "lookup_docs",
		description: "Look up documentation for a language feature, standard library symbol, or framework API. Returns relevant documentation excerpts.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query":    stringProp("What to look up, e.g. a function name, package, or concept."),
				"language": stringProp("Programming language or ecosystem to scope the lookup to."),
			},
			"required": []string{"query"},
		},
		invoker: invoker,
	})

	r.Register(&knowledgeTool{
		name:        "analyze_code",
		description: "Analyze a code snippet for structure, complexity, and potential issues. Returns an analysis summary.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"code":     stringProp("The code snippet to analyze."),
				"language": stringProp("Language of the snippet."),
				"focus":    stringProp("Optional focus area, e.g. 'performance' or 'security'."),
			},
			"required": []string{"code"},
		},
		invoker: invoker,
	})

	r.Register(&knowledgeTool{
		name:        "best_practices",
		description: "Retrieve recommended practices for a topic, pattern, or technology. Returns curated guidance.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": stringProp("The topic to get recommendations for."),
			},
			"required": []string{"topic"},
		},
		invoker: invoker,
	})

	r.Register(&knowledgeTool{
		name:        "dependency_info",
		description: "Get version, license, and advisory information for a dependency. Returns package metadata.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":      stringProp("Package or module name."),
				"ecosystem": stringProp("Package ecosystem, e.g. 'go', 'npm', 'pypi'."),
			},
			"required": []string{"name"},
		},
		invoker: invoker,
	})

	r.Register(&knowledgeTool{
		name:        "team_knowledge",
		description: "Search the team's internal knowledge base for decisions, runbooks, and conventions. Returns matching entries.",
		schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": stringProp("Free-text search across the knowledge base."),
			},
			"required": []string{"query"},
		},
		invoker: invoker,
	})
}
