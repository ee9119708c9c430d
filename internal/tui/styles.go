package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("39")
	successColor = lipgloss.Color("82")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")
	dimColor     = lipgloss.Color("240")
	personaColor = lipgloss.Color("213")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	headerPersonaStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(personaColor)

	headerModelStyle = lipgloss.NewStyle().
				Foreground(dimColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	userPrefixStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	thinkingStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	suggestionTargetStyle = lipgloss.NewStyle().
				Foreground(personaColor).
				Bold(true)
)
