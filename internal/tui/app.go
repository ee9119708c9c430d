package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := m.height - 4
		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.textInput.Width = m.width - 4
			m.ready = true
			m.state = StateIdle
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
			m.textInput.Width = m.width - 4
		}
		m.updateViewportContent()
		return m, nil

	case StreamMsg:
		return m.handleStreamMsg(msg)

	case TurnDoneMsg:
		m.flushStreaming()
		if len(msg.Suggestions) > 0 {
			m.appendBlock(ContentBlock{Type: BlockSuggestions, Suggestions: msg.Suggestions})
		}
		m.state = StateIdle
		m.updateViewportContent()
		return m, m.waitForStream()

	case PersonaChangedMsg:
		m.personaID = msg.ID
		m.personaTitle = msg.Title
		return m, m.waitForStream()

	case TickMsg:
		if m.state == StateStreaming {
			m.spinnerFrame++
			return m, tickCmd()
		}
		return m, nil

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if msg.Type == tea.KeyEnter && m.state == StateIdle {
		input := m.textInput.Value()
		if input == "" {
			return m, nil
		}
		m.textInput.Reset()

		m.appendBlock(ContentBlock{Type: BlockUser, Content: input})
		m.state = StateStreaming
		m.updateViewportContent()

		if m.callbacks.onSubmit != nil {
			submit := m.callbacks.onSubmit
			go submit(input)
		}
		return m, tickCmd()
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) handleStreamMsg(msg StreamMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case "text":
		m.streaming.WriteString(msg.Text)
	case "thinking":
		m.thinking.WriteString(msg.Text)
	case "notice":
		m.flushStreaming()
		m.appendBlock(ContentBlock{Type: BlockNotice, Content: msg.Text})
	case "info":
		m.flushStreaming()
		m.appendBlock(ContentBlock{Type: BlockInfo, Content: msg.Text})
	case "error":
		m.flushStreaming()
		m.appendBlock(ContentBlock{Type: BlockError, Content: msg.Text})
		m.state = StateIdle
	case "done":
		// the turn-level TurnDoneMsg finishes the block; nothing to do here
	}

	m.updateViewportContent()
	return m, m.waitForStream()
}
