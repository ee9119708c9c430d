package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cadre-sh/cadre/internal/handoff"
	"github.com/cadre-sh/cadre/internal/logger"
)

var tuiLog = logger.WithPrefix("TUI")

// AppState tracks what the panel is doing
type AppState int

const (
	StateStarting AppState = iota
	StateIdle
	StateStreaming
)

// BlockType classifies a rendered conversation block
type BlockType int

const (
	BlockUser BlockType = iota
	BlockAssistant
	BlockThinking
	BlockNotice
	BlockInfo
	BlockError
	BlockSuggestions
)

// ContentBlock is one rendered piece of the conversation
type ContentBlock struct {
	Type        BlockType
	Content     string
	Suggestions []handoff.Suggestion
}

// modelCallbacks survive bubbletea's model copies
type modelCallbacks struct {
	onSubmit func(string)
}

// Model is the bubbletea model for the chat panel
type Model struct {
	width  int
	height int

	state        AppState
	personaID    string
	personaTitle string
	modelName    string
	ready        bool
	quitting     bool

	// pointers so the data survives model copies
	blocks    *[]ContentBlock
	streaming *strings.Builder
	thinking  *strings.Builder

	viewport  viewport.Model
	textInput textinput.Model

	streamChan chan tea.Msg

	spinnerFrame int

	callbacks *modelCallbacks
}

// NewModel builds the initial model
func NewModel(personaID, personaTitle, modelName string, streamChan chan tea.Msg) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask anything, or /help for commands"
	ti.Focus()
	ti.CharLimit = 4096

	blocks := make([]ContentBlock, 0, 64)

	return Model{
		state:        StateStarting,
		personaID:    personaID,
		personaTitle: personaTitle,
		modelName:    modelName,
		blocks:       &blocks,
		streaming:    &strings.Builder{},
		thinking:     &strings.Builder{},
		textInput:    ti,
		streamChan:   streamChan,
		callbacks:    &modelCallbacks{},
	}
}

// SetSubmitCallback registers the handler for submitted input
func (m *Model) SetSubmitCallback(fn func(string)) {
	m.callbacks.onSubmit = fn
}

// Init starts the stream listener
func (m Model) Init() tea.Cmd {
	return m.waitForStream()
}

// waitForStream relays the next message from the stream channel into the
// bubbletea loop
func (m Model) waitForStream() tea.Cmd {
	return func() tea.Msg {
		return <-m.streamChan
	}
}

func (m *Model) appendBlock(b ContentBlock) {
	*m.blocks = append(*m.blocks, b)
}

// flushStreaming moves accumulated stream text into a finished block
func (m *Model) flushStreaming() {
	if m.thinking.Len() > 0 {
		m.appendBlock(ContentBlock{Type: BlockThinking, Content: m.thinking.String()})
		m.thinking.Reset()
	}
	if m.streaming.Len() > 0 {
		m.appendBlock(ContentBlock{Type: BlockAssistant, Content: m.streaming.String()})
		m.streaming.Reset()
	}
}
