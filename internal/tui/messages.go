package tui

import "github.com/cadre-sh/cadre/internal/handoff"

// StreamMsg carries one fragment of conversation output into the UI loop
type StreamMsg struct {
	Type     string // "text", "thinking", "notice", "done", "info", "error"
	Text     string
	IsError  bool
}

// TurnDoneMsg signals that a full turn finished, with its handoff suggestions
type TurnDoneMsg struct {
	Suggestions []handoff.Suggestion
}

// PersonaChangedMsg updates the header after a persona switch
type PersonaChangedMsg struct {
	ID    string
	Title string
}

// TickMsg drives the spinner animation
type TickMsg struct{}

// QuitMsg signals the TUI to quit
type QuitMsg struct{}

func NewTextMsg(text string) StreamMsg     { return StreamMsg{Type: "text", Text: text} }
func NewThinkingMsg(text string) StreamMsg { return StreamMsg{Type: "thinking", Text: text} }
func NewNoticeMsg(text string) StreamMsg   { return StreamMsg{Type: "notice", Text: text} }
func NewDoneMsg() StreamMsg                { return StreamMsg{Type: "done"} }
func NewInfoMsg(text string) StreamMsg     { return StreamMsg{Type: "info", Text: text} }
func NewErrorMsg(text string) StreamMsg    { return StreamMsg{Type: "error", Text: text, IsError: true} }
