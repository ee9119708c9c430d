package orchestrator

import (
	"strings"
	"sync"
)

// Sink receives the conversation loop's output as it is produced. Text
// arrives in fragments; notices are short out-of-band lines (tool failures,
// degraded service) rendered inline with a marker by the caller.
type Sink interface {
	StreamText(text string)
	StreamThinking(text string)
	Notice(text string)
	StreamDone()
}

// CaptureSink buffers everything it receives. Used by one-shot callers and
// tests.
type CaptureSink struct {
	mu       sync.Mutex
	text     strings.Builder
	thinking strings.Builder
	notices  []string
	done     int
}

func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

func (s *CaptureSink) StreamText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text.WriteString(text)
}

func (s *CaptureSink) StreamThinking(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thinking.WriteString(text)
}

func (s *CaptureSink) Notice(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, text)
}

func (s *CaptureSink) StreamDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done++
}

// Text returns all streamed text so far
func (s *CaptureSink) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text.String()
}

// Notices returns a copy of the notices received so far
func (s *CaptureSink) Notices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.notices))
	copy(out, s.notices)
	return out
}

// DoneCount returns how many StreamDone signals were received
func (s *CaptureSink) DoneCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
