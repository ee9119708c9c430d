package llm

import (
	"context"
	"sync"
)

// MockProvider implements Provider for testing.
type MockProvider struct {
	// Injectable behavior
	ListModelsFunc func(ctx context.Context) ([]ModelInfo, error)
	ChatStreamFunc func(ctx context.Context, req Request) <-chan StreamChunk

	// Scripted rounds. When set and ChatStreamFunc is nil, each ChatStream
	// call drains the next script in order; calls past the end replay the
	// last one.
	Scripts [][]StreamChunk

	mu sync.Mutex

	// Call recording
	ChatStreamCalls []Request
}

// NewMockProvider creates a mock provider with sensible defaults.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// ListModels calls the injected ListModelsFunc or returns a default model.
func (m *MockProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return []ModelInfo{
		{ID: "mock-model", Name: "Mock Model", Family: "mock"},
	}, nil
}

// ChatStream calls the injected ChatStreamFunc, plays the next script, or
// returns a default stream.
func (m *MockProvider) ChatStream(ctx context.Context, req Request) <-chan StreamChunk {
	m.mu.Lock()
	m.ChatStreamCalls = append(m.ChatStreamCalls, req)
	call := len(m.ChatStreamCalls) - 1
	m.mu.Unlock()

	if m.ChatStreamFunc != nil {
		return m.ChatStreamFunc(ctx, req)
	}

	if len(m.Scripts) > 0 {
		idx := call
		if idx >= len(m.Scripts) {
			idx = len(m.Scripts) - 1
		}
		script := m.Scripts[idx]
		ch := make(chan StreamChunk, len(script))
		go func() {
			defer close(ch)
			for _, chunk := range script {
				ch <- chunk
			}
		}()
		return ch
	}

	ch := make(chan StreamChunk, 2)
	go func() {
		defer close(ch)
		ch <- StreamChunk{Type: "text", Text: "mock response"}
		ch <- StreamChunk{Type: "done"}
	}()
	return ch
}

// Calls returns the number of ChatStream invocations so far.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatStreamCalls)
}
