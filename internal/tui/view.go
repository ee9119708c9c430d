package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var viewSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// View renders the chat panel
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) headerView() string {
	persona := headerPersonaStyle.Render(m.personaTitle)
	model := headerModelStyle.Render(m.modelName)
	line := fmt.Sprintf("%s  %s", persona, model)
	return headerStyle.Width(m.width).Render(line)
}

func (m Model) footerView() string {
	var status string
	if m.state == StateStreaming {
		frame := viewSpinnerFrames[m.spinnerFrame%len(viewSpinnerFrames)]
		status = spinnerStyle.Render(frame + " thinking")
	} else {
		status = inputPromptStyle.Render("> ") + m.textInput.View()
	}
	help := headerModelStyle.Render("/help  ctrl+c to quit")
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(help) - 2
	if gap < 1 {
		gap = 1
	}
	return footerStyle.Width(m.width).Render(status + strings.Repeat(" ", gap) + help)
}

// updateViewportContent re-renders all blocks plus any in-flight stream text
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, block := range *m.blocks {
		b.WriteString(m.renderBlock(block))
		b.WriteString("\n")
	}

	if m.thinking.Len() > 0 {
		b.WriteString(thinkingStyle.Render(m.thinking.String()))
		b.WriteString("\n")
	}
	if m.streaming.Len() > 0 {
		b.WriteString(assistantStyle.Render(m.streaming.String()))
		b.WriteString("\n")
	}

	m.viewport.SetContent(wrapText(b.String(), m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) renderBlock(block ContentBlock) string {
	switch block.Type {
	case BlockUser:
		return userPrefixStyle.Render("you ") + block.Content + "\n"
	case BlockAssistant:
		return assistantStyle.Render(block.Content) + "\n"
	case BlockThinking:
		return thinkingStyle.Render(block.Content) + "\n"
	case BlockNotice:
		return noticeStyle.Render("⚠ " + block.Content)
	case BlockInfo:
		return infoStyle.Render("ℹ " + block.Content)
	case BlockError:
		return errorStyle.Render("✗ " + block.Content)
	case BlockSuggestions:
		var b strings.Builder
		b.WriteString(suggestionStyle.Render("Consider handing off to:"))
		for _, s := range block.Suggestions {
			b.WriteString("\n  ")
			b.WriteString(suggestionTargetStyle.Render(s.To))
			b.WriteString(suggestionStyle.Render(fmt.Sprintf(" - %s [%s]", s.Reason, s.Confidence)))
		}
		return b.String() + "\n"
	}
	return block.Content
}

// wrapText soft-wraps long lines to the viewport width
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out strings.Builder
	for _, line := range strings.Split(text, "\n") {
		for lipgloss.Width(line) > width {
			cut := width
			if cut > len(line) {
				cut = len(line)
			}
			// back up to a space when there is one nearby
			slice := line[:cut]
			if idx := strings.LastIndex(slice, " "); idx > width/2 {
				cut = idx
			}
			out.WriteString(line[:cut])
			out.WriteString("\n")
			line = strings.TrimLeft(line[cut:], " ")
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
	return strings.TrimSuffix(out.String(), "\n")
}
