package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cadre-sh/cadre/internal/config"
	"github.com/cadre-sh/cadre/internal/handoff"
	"github.com/cadre-sh/cadre/internal/llm"
	"github.com/cadre-sh/cadre/internal/orchestrator"
	"github.com/cadre-sh/cadre/internal/persona"
	"github.com/cadre-sh/cadre/internal/workflow"
)

// App wires the conversation loop into the chat panel and owns the
// conversation history for the session.
type App struct {
	orch      *orchestrator.Orchestrator
	registry  *persona.Registry
	handoffs  *handoff.Engine
	workflows *workflow.Manager
	cfg       *config.Config

	mu            sync.Mutex
	personaID     string
	history       []llm.Message
	lastSuggested []handoff.Suggestion
	sessionID     string

	program    *tea.Program
	streamChan chan tea.Msg
}

// NewApp builds the chat application
func NewApp(orch *orchestrator.Orchestrator, registry *persona.Registry, handoffs *handoff.Engine, workflows *workflow.Manager, cfg *config.Config, personaID string) *App {
	return &App{
		orch:       orch,
		registry:   registry,
		handoffs:   handoffs,
		workflows:  workflows,
		cfg:        cfg,
		personaID:  personaID,
		streamChan: make(chan tea.Msg, 500),
	}
}

// IsTTYAvailable reports whether stdin and stdout are attached to a terminal
func IsTTYAvailable() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		info, err := f.Stat()
		if err != nil || (info.Mode()&os.ModeCharDevice) == 0 {
			return false
		}
	}
	return true
}

// Run starts the panel and blocks until the user quits
func (a *App) Run(modelName string) error {
	if !IsTTYAvailable() {
		return fmt.Errorf("chat mode requires a terminal")
	}

	p, ok := a.registry.Get(a.personaID)
	if !ok {
		return fmt.Errorf("unknown persona: %s", a.personaID)
	}

	model := NewModel(p.ID, p.Title, modelName, a.streamChan)
	model.SetSubmitCallback(a.handleSubmit)

	a.program = tea.NewProgram(model, tea.WithAltScreen())
	tuiLog.Info("chat panel starting with persona %s", p.ID)
	_, err := a.program.Run()
	return err
}

// handleSubmit runs on its own goroutine per submission
func (a *App) handleSubmit(input string) {
	if strings.HasPrefix(input, "/") {
		a.handleCommand(input)
		return
	}
	a.respond(input)
}

func (a *App) respond(input string) {
	a.mu.Lock()
	personaID := a.personaID
	history := make([]llm.Message, len(a.history))
	copy(history, a.history)
	a.mu.Unlock()

	sink := &streamSink{ch: a.streamChan}
	result, err := a.orch.Respond(context.Background(), personaID, history, input, sink)
	if err != nil {
		a.streamChan <- NewErrorMsg(err.Error())
		a.streamChan <- TurnDoneMsg{}
		return
	}

	a.mu.Lock()
	a.history = append(a.history,
		llm.Message{Role: llm.RoleUser, Content: input},
		llm.Message{Role: llm.RoleAssistant, Content: result.Text},
	)
	a.lastSuggested = result.Suggestions
	a.mu.Unlock()

	a.streamChan <- TurnDoneMsg{Suggestions: result.Suggestions}
}

// streamSink relays orchestrator output into the bubbletea loop
type streamSink struct {
	ch chan tea.Msg
}

func (s *streamSink) StreamText(text string)     { s.ch <- NewTextMsg(text) }
func (s *streamSink) StreamThinking(text string) { s.ch <- NewThinkingMsg(text) }
func (s *streamSink) Notice(text string)         { s.ch <- NewNoticeMsg(text) }
func (s *streamSink) StreamDone()                { s.ch <- NewDoneMsg() }
