package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cadre-sh/cadre/internal/handoff"
)

func readyModel(t *testing.T) Model {
	t.Helper()
	m := NewModel("reviewer", "Code Reviewer", "claude-opus-4-5", make(chan tea.Msg, 10))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestWindowSizeInitializesViewport(t *testing.T) {
	m := readyModel(t)
	if !m.ready {
		t.Fatal("model should be ready after first WindowSizeMsg")
	}
	if m.state != StateIdle {
		t.Errorf("expected idle state, got %d", m.state)
	}
}

func TestStreamTextAccumulates(t *testing.T) {
	m := readyModel(t)

	updated, _ := m.Update(NewTextMsg("hello "))
	m = updated.(Model)
	updated, _ = m.Update(NewTextMsg("world"))
	m = updated.(Model)

	if m.streaming.String() != "hello world" {
		t.Errorf("streaming buffer = %q", m.streaming.String())
	}
}

func TestTurnDoneFlushesAndAddsSuggestions(t *testing.T) {
	m := readyModel(t)
	m.state = StateStreaming

	updated, _ := m.Update(NewTextMsg("the answer"))
	m = updated.(Model)

	updated, _ = m.Update(TurnDoneMsg{Suggestions: []handoff.Suggestion{
		{From: "reviewer", To: "security", Reason: "mentioned exploit", Confidence: handoff.High},
	}})
	m = updated.(Model)

	if m.state != StateIdle {
		t.Errorf("expected idle after turn done, got %d", m.state)
	}
	if m.streaming.Len() != 0 {
		t.Error("streaming buffer should be flushed")
	}

	blocks := *m.blocks
	if len(blocks) != 2 {
		t.Fatalf("expected assistant + suggestions blocks, got %d", len(blocks))
	}
	if blocks[0].Type != BlockAssistant || blocks[0].Content != "the answer" {
		t.Errorf("unexpected first block: %+v", blocks[0])
	}
	if blocks[1].Type != BlockSuggestions || blocks[1].Suggestions[0].To != "security" {
		t.Errorf("unexpected suggestions block: %+v", blocks[1])
	}
}

func TestNoticeFlushesStreamFirst(t *testing.T) {
	m := readyModel(t)

	updated, _ := m.Update(NewTextMsg("partial"))
	m = updated.(Model)
	updated, _ = m.Update(NewNoticeMsg("tool lookup_docs failed"))
	m = updated.(Model)

	blocks := *m.blocks
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Type != BlockAssistant {
		t.Errorf("streamed text should flush before the notice")
	}
	if blocks[1].Type != BlockNotice {
		t.Errorf("expected notice block, got %+v", blocks[1])
	}
}

func TestPersonaChangedUpdatesHeader(t *testing.T) {
	m := readyModel(t)

	updated, _ := m.Update(PersonaChangedMsg{ID: "security", Title: "Security Analyst"})
	m = updated.(Model)

	if m.personaID != "security" || m.personaTitle != "Security Analyst" {
		t.Errorf("persona not updated: %s/%s", m.personaID, m.personaTitle)
	}
	if !strings.Contains(m.headerView(), "Security Analyst") {
		t.Error("header should show the new persona")
	}
}

func TestSubmitInvokesCallback(t *testing.T) {
	m := readyModel(t)

	got := make(chan string, 1)
	m.SetSubmitCallback(func(input string) { got <- input })
	m.textInput.SetValue("review my diff")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.state != StateStreaming {
		t.Errorf("expected streaming state after submit, got %d", m.state)
	}
	if input := <-got; input != "review my diff" {
		t.Errorf("callback got %q", input)
	}
	blocks := *m.blocks
	if len(blocks) != 1 || blocks[0].Type != BlockUser {
		t.Errorf("expected user block, got %+v", blocks)
	}
}

func TestWrapTextBreaksLongLines(t *testing.T) {
	long := strings.Repeat("word ", 30)
	wrapped := wrapText(long, 40)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 40 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
	if wrapText("short", 40) != "short" {
		t.Error("short lines should pass through")
	}
}
