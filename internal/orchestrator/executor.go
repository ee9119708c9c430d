package orchestrator

import (
	"context"
	"fmt"

	"github.com/cadre-sh/cadre/internal/llm"
	"github.com/cadre-sh/cadre/internal/logger"
	"github.com/cadre-sh/cadre/internal/tools"
)

// toolResult holds the outcome of one tool call, keyed by its call id
type toolResult struct {
	Name       string
	Result     string
	Error      bool
	ToolCallID string
}

// executeToolCalls runs a round's buffered tool calls in the order the model
// emitted them. A failing tool never aborts the round: the failure text
// becomes the tool result so the model can react to it, and a short notice
// goes to the sink.
func executeToolCalls(ctx context.Context, registry *tools.Registry, calls []llm.ToolCall, sink Sink) []toolResult {
	results := make([]toolResult, 0, len(calls))

	for _, call := range calls {
		logger.Debug("executing tool %s (call %s)", call.Name, call.ID)

		out, err := registry.Execute(ctx, call.Name, call.Input)
		if err != nil {
			logger.Warn("tool %s failed: %v", call.Name, err)
			sink.Notice(fmt.Sprintf("tool %s failed: %v", call.Name, err))
			results = append(results, toolResult{
				Name:       call.Name,
				Result:     fmt.Sprintf("Error: %v", err),
				Error:      true,
				ToolCallID: call.ID,
			})
			continue
		}

		results = append(results, toolResult{
			Name:       call.Name,
			Result:     out,
			ToolCallID: call.ID,
		})
	}

	return results
}
