package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/cadre-sh/cadre/internal/config"
	"github.com/cadre-sh/cadre/internal/logger"
)

// AnthropicProvider implements Provider on the Anthropic SDK
type AnthropicProvider struct {
	client *anthropic.Client
	config *config.Config
}

// NewAnthropicProvider creates a provider from config
func NewAnthropicProvider(cfg *config.Config) *AnthropicProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.RateLimit.MaxRetries),
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicProvider{
		client: &client,
		config: cfg,
	}
}

// knownModels is the static capability list. Family is the id prefix used by
// model selection.
var knownModels = []ModelInfo{
	{ID: "claude-opus-4-5-20251101", Name: "Claude Opus 4.5", Family: "claude-opus"},
	{ID: "claude-sonnet-4-5-20250929", Name: "Claude Sonnet 4.5", Family: "claude-sonnet"},
	{ID: "claude-haiku-4-5-20251015", Name: "Claude Haiku 4.5", Family: "claude-haiku"},
}

// ListModels returns the models this provider can serve
func (p *AnthropicProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	out := make([]ModelInfo, len(knownModels))
	copy(out, knownModels)
	return out, nil
}

// ChatStream sends one round and streams back text and tool-call fragments
func (p *AnthropicProvider) ChatStream(ctx context.Context, req Request) <-chan StreamChunk {
	ch := make(chan StreamChunk, 100)

	go func() {
		defer close(ch)

		params := p.buildParams(req)
		stream := p.client.Messages.NewStreaming(ctx, params)

		var currentToolCall *ToolCall
		var toolInputJSON strings.Builder
		var usage Usage

		for stream.Next() {
			event := stream.Current()

			switch e := event.AsAny().(type) {
			case anthropic.ContentBlockStartEvent:
				if block, ok := e.ContentBlock.AsAny().(anthropic.ToolUseBlock); ok {
					currentToolCall = &ToolCall{
						ID:   block.ID,
						Name: block.Name,
					}
					toolInputJSON.Reset()
				}

			case anthropic.ContentBlockDeltaEvent:
				switch delta := e.Delta.AsAny().(type) {
				case anthropic.TextDelta:
					ch <- StreamChunk{Type: "text", Text: delta.Text}
				case anthropic.InputJSONDelta:
					toolInputJSON.WriteString(delta.PartialJSON)
				case anthropic.ThinkingDelta:
					ch <- StreamChunk{Type: "thinking", Text: delta.Thinking}
				}

			case anthropic.ContentBlockStopEvent:
				if currentToolCall != nil {
					input, err := parseToolInput(toolInputJSON.String())
					if err != nil {
						logger.Warn("unparseable tool input for %s: %v", currentToolCall.Name, err)
						input = map[string]any{}
					}
					currentToolCall.Input = input
					ch <- StreamChunk{Type: "tool_call", ToolCall: currentToolCall}
					currentToolCall = nil
					toolInputJSON.Reset()
				}

			case anthropic.MessageDeltaEvent:
				usage.OutputTokens = e.Usage.OutputTokens

			case anthropic.MessageStartEvent:
				usage.InputTokens = e.Message.Usage.InputTokens

			case anthropic.MessageStopEvent:
				ch <- StreamChunk{Type: "done", Usage: &usage}
			}
		}

		if err := stream.Err(); err != nil {
			logger.Error("anthropic stream error: %v", err)
			ch <- StreamChunk{Type: "error", Error: err}
		}
	}()

	return ch
}

func (p *AnthropicProvider) buildParams(req Request) anthropic.MessageNewParams {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.Models.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokens),
		Messages:  convertMessages(req.Messages),
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Type: "text", Text: req.System},
		}
	}

	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	if len(req.Tools) > 0 {
		apiTools := make([]anthropic.ToolUnionParam, 0, len(req.Tools))
		for _, tool := range req.Tools {
			apiTools = append(apiTools, anthropic.ToolUnionParam{
				OfTool: &anthropic.ToolParam{
					Name:        tool.Name,
					Description: anthropic.String(tool.Description),
					InputSchema: buildInputSchema(tool.InputSchema),
				},
			})
		}
		params.Tools = apiTools
	}

	return params
}

// convertMessages maps transcript turns onto the wire format. Assistant tool
// calls become tool_use blocks; tool results ride in user messages keyed by
// call id.
func convertMessages(messages []Message) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case RoleUser:
			result = append(result, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))

		case RoleAssistant:
			if len(msg.ToolCalls) == 0 {
				result = append(result, anthropic.NewAssistantMessage(
					anthropic.NewTextBlock(msg.Content),
				))
				continue
			}
			blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.ToolCalls)+1)
			if msg.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    tc.ID,
						Name:  tc.Name,
						Input: tc.Input,
					},
				})
			}
			result = append(result, anthropic.NewAssistantMessage(blocks...))

		case RoleTool:
			result = append(result, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(msg.ToolCallID, msg.Content, false),
			))
		}
	}

	return result
}

func parseToolInput(jsonStr string) (map[string]any, error) {
	if jsonStr == "" || jsonStr == "{}" {
		return map[string]any{}, nil
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// buildInputSchema converts a tool's schema map to the SDK's param type.
// The required list arrives as []string from our own catalog and as []any
// when the schema came through JSON.
func buildInputSchema(schema map[string]any) anthropic.ToolInputSchemaParam {
	result := anthropic.ToolInputSchemaParam{Type: "object"}

	if props, ok := schema["properties"].(map[string]any); ok {
		result.Properties = props
	}
	switch req := schema["required"].(type) {
	case []string:
		result.Required = req
	case []any:
		required := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				required = append(required, s)
			}
		}
		result.Required = required
	}

	return result
}
