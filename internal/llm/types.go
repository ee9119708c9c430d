package llm

import "context"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn of a conversation transcript. An assistant turn may
// carry tool calls; a tool turn carries the result for exactly one call id.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a tool-call request emitted by the model
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]any
}

// ToolDefinition describes a tool to the model
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// Usage reports token consumption for one round
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// StreamChunk is one fragment of a streamed response
type StreamChunk struct {
	Type     string // "text", "thinking", "tool_call", "done", "error"
	Text     string
	ToolCall *ToolCall
	Usage    *Usage
	Error    error
}

// ModelInfo describes one available model for the capability query
type ModelInfo struct {
	ID     string
	Name   string
	Family string
}

// Request carries everything a provider needs for one round. A Temperature
// of zero means "provider default".
type Request struct {
	Model       string
	System      string
	Messages    []Message
	Tools       []ToolDefinition
	MaxTokens   int
	Temperature float64
}

// Provider is the language-model boundary: a capability query plus a
// streaming send.
type Provider interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
	ChatStream(ctx context.Context, req Request) <-chan StreamChunk
}
